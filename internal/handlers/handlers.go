// Package handlers expone el catálogo, el carrito y el checkout por HTTP
package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-service/internal/catalog"
	"pos-service/internal/models"
)

// Catalog es lo que los handlers usan del catalog.Store
type Catalog interface {
	Products() []models.Product
	Product(id primitive.ObjectID) (models.Product, bool)
	Search(f models.ProductFilter) []models.Product
	Categories() []models.Category
	Suppliers() []models.Supplier
	Snapshot() catalog.Snapshot
	RefreshedAt() time.Time
	Refresh(ctx context.Context) error
	SaveProduct(ctx context.Context, in *models.ProductInput, id *primitive.ObjectID) (primitive.ObjectID, error)
	DeactivateProduct(ctx context.Context, id primitive.ObjectID) error
	SetProductImage(ctx context.Context, id primitive.ObjectID, url string) error
}

type ProductFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type TransactionFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
}

type Checkouter interface {
	Checkout(ctx context.Context, payment models.PaymentInfo) (*models.Transaction, error)
}
