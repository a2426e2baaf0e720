package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos-service/internal/cart"
	"pos-service/internal/stats"
)

type CatalogHandler struct {
	catalog Catalog
	cart    *cart.Cart
}

func NewCatalogHandler(catalog Catalog, c *cart.Cart) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, cart: c}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.Categories()})
}

func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.Suppliers()})
}

// Stats devuelve los contadores del dashboard sobre el snapshot actual
func (h *CatalogHandler) Stats(c *gin.Context) {
	snap := h.catalog.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"stats":        stats.Compute(snap.Products, snap.Categories, h.cart.Size()),
		"refreshed_at": snap.RefreshedAt,
	})
}

// Refresh vuelve a leer el catálogo; si falla se conserva el snapshot anterior
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		zap.L().Warn("manual catalog refresh failed", zap.String("request_id", requestID(c)), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "catalog refresh failed"})
		return
	}
	snap := h.catalog.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"products":     len(snap.Products),
		"categories":   len(snap.Categories),
		"suppliers":    len(snap.Suppliers),
		"refreshed_at": snap.RefreshedAt,
	})
}
