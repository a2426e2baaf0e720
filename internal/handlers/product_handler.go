package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"pos-service/internal/cache"
	"pos-service/internal/models"
	"pos-service/internal/repository"
	"pos-service/internal/storage"
)

// SearchCachePrefix agrupa las búsquedas cacheadas; se invalida en cada refresco
const SearchCachePrefix = "products:search:"

// searchEntry guarda el resultado junto al refresco del catálogo que lo produjo
type searchEntry struct {
	products    []models.Product
	refreshedAt time.Time
}

type ProductHandler struct {
	catalog  Catalog
	products ProductFinder
	images   storage.ImageStore
	cache    *cache.Cache
	now      func() time.Time
}

// NewProductHandler crea el handler. images puede ser nil si no hay bucket
// configurado; en ese caso la subida de imágenes responde 503.
func NewProductHandler(catalog Catalog, products ProductFinder, images storage.ImageStore, c *cache.Cache) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		products: products,
		images:   images,
		cache:    c,
		now:      time.Now,
	}
}

// ListProducts lista todo el catálogo, activos e inactivos, por nombre
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products := h.catalog.Products()
	c.JSON(http.StatusOK, gin.H{
		"data":  products,
		"total": len(products),
	})
}

// SearchProducts es la búsqueda de la vista de ventas (con caché)
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Query:   strings.TrimSpace(c.Query("q")),
		Barcode: strings.TrimSpace(c.Query("barcode")),
	}
	category := c.Query("category_id")
	if category != "" {
		id, err := repository.ParseID(category)
		if err != nil {
			badRequest(c, "invalid category_id")
			return
		}
		filter.CategoryID = &id
	}

	cacheKey := fmt.Sprintf("%sq=%s|cat=%s|bc=%s", SearchCachePrefix, strings.ToLower(filter.Query), category, filter.Barcode)
	refreshedAt := h.catalog.RefreshedAt()
	if cached, found := h.cache.Get(cacheKey); found {
		if entry := cached.(searchEntry); entry.refreshedAt.Equal(refreshedAt) {
			c.JSON(http.StatusOK, gin.H{"data": entry.products, "total": len(entry.products)})
			return
		}
	}

	products := h.catalog.Search(filter)
	// Un refresco durante la búsqueda deja el resultado viejo; no se cachea
	if h.catalog.RefreshedAt().Equal(refreshedAt) {
		h.cache.Set(cacheKey, searchEntry{products: products, refreshedAt: refreshedAt})
	}
	c.JSON(http.StatusOK, gin.H{"data": products, "total": len(products)})
}

// GetProduct busca en el snapshot y, si no está, en la base de datos
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := repository.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if product, ok := h.catalog.Product(id); ok {
		c.JSON(http.StatusOK, product)
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct crea un nuevo producto
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.catalog.SaveProduct(c.Request.Context(), &in, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSaved(c, http.StatusCreated, id)
}

// UpdateProduct reemplaza los campos editables de un producto
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := repository.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}

	if _, err := h.catalog.SaveProduct(c.Request.Context(), &in, &id); err != nil {
		respondError(c, err)
		return
	}
	h.respondSaved(c, http.StatusOK, id)
}

// DeleteProduct realiza un borrado lógico
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := repository.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.catalog.DeactivateProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "product deactivated"})
}

// UploadImage sube la imagen (campo multipart "image") y guarda su URL
func (h *ProductHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "image storage is not configured"})
		return
	}

	id, err := repository.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if _, ok := h.catalog.Product(id); !ok {
		respondError(c, repository.ErrProductNotFound)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "image file is required")
		return
	}
	if header.Size > storage.MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "image is too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "could not read image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		badRequest(c, "could not read image")
		return
	}
	if len(data) > storage.MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "image is too large"})
		return
	}

	contentType, ext, err := storage.DetectImage(data)
	if err != nil {
		respondError(c, err)
		return
	}

	objectPath := storage.ImagePath(id, h.now().UnixMilli(), ext)
	url, err := h.images.Upload(c.Request.Context(), objectPath, data, contentType)
	if err != nil {
		zap.L().Error("image upload failed",
			zap.String("request_id", requestID(c)),
			zap.String("product_id", id.Hex()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "image upload failed"})
		return
	}

	if err := h.catalog.SetProductImage(c.Request.Context(), id, url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "image_url": url})
}

// Si el refresco posterior a la escritura falló el producto puede no estar
// todavía en el snapshot; se responde sólo con el id.
func (h *ProductHandler) respondSaved(c *gin.Context, status int, id primitive.ObjectID) {
	if product, ok := h.catalog.Product(id); ok {
		c.JSON(status, product)
		return
	}
	c.JSON(status, gin.H{"id": id})
}
