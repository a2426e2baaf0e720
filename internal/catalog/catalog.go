// Package catalog mantiene el snapshot en memoria de productos, categorías y
// proveedores. Es la única fuente de stock que consulta el carrito; el stock
// sólo cambia en la base de datos remota y llega aquí con Refresh.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pos-service/internal/metrics"
	"pos-service/internal/models"
)

type ProductStore interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, in *models.ProductInput) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, in *models.ProductInput) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	SetImage(ctx context.Context, id primitive.ObjectID, url string) error
}

type LookupStore interface {
	ActiveCategories(ctx context.Context) ([]models.Category, error)
	ActiveSuppliers(ctx context.Context) ([]models.Supplier, error)
}

// WriteError es un fallo de escritura en la base de datos remota
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Snapshot es una vista consistente de las tres colecciones
type Snapshot struct {
	Products    []models.Product
	Categories  []models.Category
	Suppliers   []models.Supplier
	RefreshedAt time.Time
}

// Store es el snapshot del catálogo compartido por el carrito y los handlers
type Store struct {
	products ProductStore
	lookups  LookupStore

	// refreshMu ordena los refrescos: un fetch viejo nunca pisa uno más nuevo
	refreshMu sync.Mutex

	mu          sync.RWMutex
	productList []models.Product
	byID        map[primitive.ObjectID]int
	categories  []models.Category
	suppliers   []models.Supplier
	refreshedAt time.Time

	listenersMu sync.Mutex
	listeners   []func()
}

// New crea el store vacío; se llena con el primer Refresh
func New(products ProductStore, lookups LookupStore) *Store {
	return &Store{
		products: products,
		lookups:  lookups,
		byID:     make(map[primitive.ObjectID]int),
	}
}

// OnRefresh registra una función que corre después de cada refresco exitoso
func (s *Store) OnRefresh(fn func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Refresh trae las tres colecciones en paralelo y reemplaza los snapshots
// juntos. Si alguna lectura falla, los snapshots anteriores se conservan.
// Los refrescos concurrentes se ejecutan de a uno, del fetch a los listeners.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	var (
		products   []models.Product
		categories []models.Category
		suppliers  []models.Supplier
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.lookups.ActiveCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		suppliers, err = s.lookups.ActiveSuppliers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.CatalogRefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("refresh catalog: %w", err)
	}

	byID := make(map[primitive.ObjectID]int, len(products))
	for i := range products {
		byID[products[i].ID] = i
	}

	s.mu.Lock()
	s.productList = products
	s.byID = byID
	s.categories = categories
	s.suppliers = suppliers
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	metrics.CatalogRefreshTotal.WithLabelValues("ok").Inc()
	metrics.CatalogProducts.Set(float64(len(products)))
	zap.L().Debug("catalog refreshed",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
		zap.Int("suppliers", len(suppliers)),
	)

	s.notify()
	return nil
}

func (s *Store) notify() {
	s.listenersMu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// SaveProduct valida e inserta (id nil) o actualiza un producto, luego refresca
func (s *Store) SaveProduct(ctx context.Context, in *models.ProductInput, id *primitive.ObjectID) (primitive.ObjectID, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return primitive.NilObjectID, err
	}

	var savedID primitive.ObjectID
	if id != nil {
		if err := s.products.Update(ctx, *id, in); err != nil {
			return primitive.NilObjectID, &WriteError{Op: "update product", Err: err}
		}
		savedID = *id
	} else {
		newID, err := s.products.Create(ctx, in)
		if err != nil {
			return primitive.NilObjectID, &WriteError{Op: "create product", Err: err}
		}
		savedID = newID
	}

	s.refreshAfterWrite(ctx, "save product")
	return savedID, nil
}

// DeactivateProduct hace el borrado lógico y refresca
func (s *Store) DeactivateProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.SoftDelete(ctx, id); err != nil {
		return &WriteError{Op: "deactivate product", Err: err}
	}
	s.refreshAfterWrite(ctx, "deactivate product")
	return nil
}

// SetProductImage guarda la URL de la imagen y refresca
func (s *Store) SetProductImage(ctx context.Context, id primitive.ObjectID, url string) error {
	if err := s.products.SetImage(ctx, id, url); err != nil {
		return &WriteError{Op: "set product image", Err: err}
	}
	s.refreshAfterWrite(ctx, "set product image")
	return nil
}

// La escritura ya quedó persistida; un fallo al refrescar sólo deja el
// snapshot viejo hasta el próximo refresco.
func (s *Store) refreshAfterWrite(ctx context.Context, op string) {
	if err := s.Refresh(ctx); err != nil {
		zap.L().Warn("catalog refresh after write failed", zap.String("op", op), zap.Error(err))
	}
}

// Product devuelve una copia del producto del snapshot actual
func (s *Store) Product(id primitive.ObjectID) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return s.productList[i], true
}

// Products devuelve todos los productos, activos o no, ordenados por nombre
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.productList...)
}

// Search devuelve los productos elegibles para la vista de ventas
func (s *Store) Search(f models.ProductFilter) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Product, 0)
	for i := range s.productList {
		if s.productList[i].Matches(f) {
			result = append(result, s.productList[i])
		}
	}
	return result
}

// Categories devuelve las categorías activas
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

// Suppliers devuelve los proveedores activos
func (s *Store) Suppliers() []models.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Supplier(nil), s.suppliers...)
}

// RefreshedAt es el momento del último refresco exitoso
func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// Snapshot devuelve las tres colecciones tomadas bajo el mismo lock
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Products:    append([]models.Product(nil), s.productList...),
		Categories:  append([]models.Category(nil), s.categories...),
		Suppliers:   append([]models.Supplier(nil), s.suppliers...),
		RefreshedAt: s.refreshedAt,
	}
}
