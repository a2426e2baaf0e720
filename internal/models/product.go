package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lifecycle es el estado de vida de un producto; el borrado siempre es lógico
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleInactive Lifecycle = "inactive"
)

// Product representa un producto del catálogo
type Product struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name         string              `json:"name" bson:"name"`
	SKU          string              `json:"sku" bson:"sku"`
	Barcode      *string             `json:"barcode,omitempty" bson:"barcode,omitempty"`
	CategoryID   primitive.ObjectID  `json:"category_id" bson:"category_id"`
	CategoryName string              `json:"category_name,omitempty" bson:"category_name,omitempty"`
	SupplierID   *primitive.ObjectID `json:"supplier_id,omitempty" bson:"supplier_id,omitempty"`
	SupplierName string              `json:"supplier_name,omitempty" bson:"supplier_name,omitempty"`
	BuyPrice     decimal.Decimal     `json:"buy_price" bson:"buy_price"`
	SellPrice    decimal.Decimal     `json:"sell_price" bson:"sell_price"`
	Stock        int64               `json:"stock" bson:"stock"`
	MinStock     int64               `json:"min_stock" bson:"min_stock"`
	IsActive     bool                `json:"is_active" bson:"is_active"`
	ImageURL     string              `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}

// Lifecycle devuelve el estado derivado del flag is_active
func (p *Product) Lifecycle() Lifecycle {
	if p.IsActive {
		return LifecycleActive
	}
	return LifecycleInactive
}

// IsLowStock indica si el stock está en o por debajo del mínimo configurado
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Matches aplica el filtro de la vista de ventas sobre un producto
func (p *Product) Matches(f ProductFilter) bool {
	if p.Lifecycle() != LifecycleActive {
		return false
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.Barcode != "" && p.Barcode != nil && *p.Barcode == f.Barcode {
		return true
	}
	if f.Query == "" {
		return f.Barcode == ""
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.SKU), q)
}

// ProductFilter son los criterios de búsqueda de la vista de ventas.
// Barcode viene del escáner y hace match exacto.
type ProductFilter struct {
	Query      string
	CategoryID *primitive.ObjectID
	Barcode    string
}

// ProductInput representa los campos editables desde el formulario de producto
type ProductInput struct {
	Name       string          `json:"name" validate:"required,max=200"`
	SKU        string          `json:"sku" validate:"required,max=64"`
	Barcode    string          `json:"barcode" validate:"omitempty,max=64"`
	CategoryID string          `json:"category_id" validate:"required,mongodb"`
	SupplierID string          `json:"supplier_id" validate:"omitempty,mongodb"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	Stock      int64           `json:"stock" validate:"min=0"`
	MinStock   int64           `json:"min_stock" validate:"min=0"`
	IsActive   *bool           `json:"is_active"`
}

// Normalize recorta espacios; un barcode o supplier vacío significa "sin valor"
func (in *ProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.SupplierID = strings.TrimSpace(in.SupplierID)
}

// Active devuelve el flag efectivo; un producto nuevo es activo por defecto
func (in *ProductInput) Active() bool {
	if in.IsActive == nil {
		return true
	}
	return *in.IsActive
}
