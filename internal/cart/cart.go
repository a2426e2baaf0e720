// Package cart implementa el carrito en memoria de la caja.
//
// Invariante: toda línea cumple 1 <= Quantity <= stock actual del producto
// según el catálogo. Los conflictos de stock nunca son errores; se devuelven
// como Notice para mostrarlos al cajero.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-service/internal/metrics"
	"pos-service/internal/models"
)

// StockSource es la fuente autoritativa del stock actual
type StockSource interface {
	Product(id primitive.ObjectID) (models.Product, bool)
}

// Line es una línea del carrito. SellPrice y Stock son el snapshot del
// producto cuando se agregó la línea.
type Line struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Name      string             `json:"name"`
	SKU       string             `json:"sku"`
	Quantity  int64              `json:"quantity"`
	SellPrice decimal.Decimal    `json:"sell_price"`
	Stock     int64              `json:"stock"`
}

// Subtotal es precio por cantidad
func (l Line) Subtotal() decimal.Decimal {
	return l.SellPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart es el carrito de la caja; las líneas mantienen el orden de inserción
type Cart struct {
	source StockSource

	mu    sync.Mutex
	lines []Line
}

// New crea un carrito vacío que valida el stock contra source
func New(source StockSource) *Cart {
	return &Cart{source: source}
}

// AddItem agrega una unidad del producto. Devuelve un aviso (y no cambia nada)
// si el producto está inactivo, sin stock, o si la unidad extra supera el stock.
func (c *Cart) AddItem(product models.Product) *Notice {
	// El stock y el estado se leen del catálogo, no del valor recibido
	if current, ok := c.source.Product(product.ID); ok {
		product = current
	}

	if product.Lifecycle() != models.LifecycleActive {
		return record(newNotice(NoticeInactive, product, 0))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(product.ID); i >= 0 {
		if c.lines[i].Quantity+1 > product.Stock {
			return record(newNotice(NoticeInsufficientStock, product, product.Stock))
		}
		c.lines[i].Quantity++
		return nil
	}

	if product.Stock <= 0 {
		return record(newNotice(NoticeOutOfStock, product, 0))
	}
	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		Quantity:  1,
		SellPrice: product.SellPrice,
		Stock:     product.Stock,
	})
	return nil
}

// SetQuantity fija la cantidad de una línea existente. Cantidad <= 0 quita la
// línea; una cantidad mayor al stock actual se recorta al stock con un aviso.
func (c *Cart) SetQuantity(productID primitive.ObjectID, quantity int64) *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}
	product, ok := c.source.Product(productID)
	if !ok {
		return nil
	}

	if quantity <= 0 {
		c.removeAt(i)
		return nil
	}
	if quantity > product.Stock {
		if product.Stock <= 0 {
			c.removeAt(i)
			return record(newNotice(NoticeOutOfStock, product, 0))
		}
		c.lines[i].Quantity = product.Stock
		return record(newNotice(NoticeClamped, product, product.Stock))
	}
	c.lines[i].Quantity = quantity
	return nil
}

// RemoveItem quita la línea si existe
func (c *Cart) RemoveItem(productID primitive.ObjectID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
}

// Clear vacía el carrito
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total suma precio por cantidad de todas las líneas
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.lines)
}

// Size es el número de líneas distintas, no de unidades
func (c *Cart) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines devuelve una copia de las líneas en orden de inserción
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Snapshot devuelve las líneas y su total tomados juntos
func (c *Cart) Snapshot() ([]Line, decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...), total(c.lines)
}

// Reconcile vuelve a aplicar el invariante contra el catálogo recién
// refrescado: recorta cantidades, quita productos inactivos o agotados y
// actualiza el snapshot de stock de cada línea.
func (c *Cart) Reconcile() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	var notices []Notice
	kept := c.lines[:0]
	for _, line := range c.lines {
		product, ok := c.source.Product(line.ProductID)
		if !ok {
			kept = append(kept, line)
			continue
		}
		switch {
		case product.Lifecycle() != models.LifecycleActive:
			notices = append(notices, *record(newNotice(NoticeInactive, product, 0)))
			continue
		case product.Stock <= 0:
			notices = append(notices, *record(newNotice(NoticeOutOfStock, product, 0)))
			continue
		case line.Quantity > product.Stock:
			line.Quantity = product.Stock
			notices = append(notices, *record(newNotice(NoticeClamped, product, product.Stock)))
		}
		line.Stock = product.Stock
		kept = append(kept, line)
	}
	c.lines = kept
	return notices
}

func (c *Cart) indexOf(productID primitive.ObjectID) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

func total(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Subtotal())
	}
	return sum
}

func record(n *Notice) *Notice {
	metrics.CartNoticesTotal.WithLabelValues(string(n.Kind)).Inc()
	return n
}
