package stats

import "pos-service/internal/models"

// Stats son los contadores del dashboard
type Stats struct {
	TotalProducts    int              `json:"total_products"`
	TotalCategories  int              `json:"total_categories"`
	LowStock         int              `json:"low_stock"`
	CartItems        int              `json:"cart_items"`
	LowStockProducts []models.Product `json:"low_stock_products"`
}

// Compute deriva los contadores; sólo cuenta entidades activas
func Compute(products []models.Product, categories []models.Category, cartSize int) Stats {
	s := Stats{
		CartItems:        cartSize,
		LowStockProducts: make([]models.Product, 0),
	}
	for i := range products {
		if products[i].Lifecycle() != models.LifecycleActive {
			continue
		}
		s.TotalProducts++
		if products[i].IsLowStock() {
			s.LowStockProducts = append(s.LowStockProducts, products[i])
		}
	}
	for i := range categories {
		if categories[i].IsActive {
			s.TotalCategories++
		}
	}
	s.LowStock = len(s.LowStockProducts)
	return s
}
