package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pos-service/internal/handlers"
)

type Handlers struct {
	Products *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Catalog  *handlers.CatalogHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.GET("/products", h.Products.ListProducts)
		v1.GET("/products/search", h.Products.SearchProducts)
		v1.GET("/products/:id", h.Products.GetProduct)
		v1.POST("/products", h.Products.CreateProduct)
		v1.PUT("/products/:id", h.Products.UpdateProduct)
		v1.DELETE("/products/:id", h.Products.DeleteProduct)
		v1.POST("/products/:id/image", h.Products.UploadImage)

		v1.GET("/categories", h.Catalog.ListCategories)
		v1.GET("/suppliers", h.Catalog.ListSuppliers)
		v1.GET("/stats", h.Catalog.Stats)
		v1.POST("/catalog/refresh", h.Catalog.Refresh)

		v1.GET("/cart", h.Cart.GetCart)
		v1.DELETE("/cart", h.Cart.ClearCart)
		v1.POST("/cart/items", h.Cart.AddItem)
		v1.PUT("/cart/items/:product_id", h.Cart.SetQuantity)
		v1.DELETE("/cart/items/:product_id", h.Cart.RemoveItem)

		v1.POST("/checkout", h.Checkout.Checkout)
		v1.GET("/transactions/:id", h.Checkout.GetTransaction)
	}
}
