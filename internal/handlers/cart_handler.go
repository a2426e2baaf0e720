package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pos-service/internal/cart"
	"pos-service/internal/repository"
)

type CartHandler struct {
	cart    *cart.Cart
	catalog Catalog
}

func NewCartHandler(c *cart.Cart, catalog Catalog) *CartHandler {
	return &CartHandler{cart: c, catalog: catalog}
}

// CartResponse es el estado del carrito. Notice sólo aparece cuando la
// operación generó un aviso de stock.
type CartResponse struct {
	Items  []cart.Line     `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Size   int             `json:"size"`
	Notice *cart.Notice    `json:"notice,omitempty"`
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type setQuantityRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	h.respond(c, nil)
}

// AddItem agrega una unidad del producto
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id, err := repository.ParseID(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	product, ok := h.catalog.Product(id)
	if !ok {
		respondError(c, repository.ErrProductNotFound)
		return
	}
	h.respond(c, h.cart.AddItem(product))
}

// SetQuantity fija la cantidad de una línea; cero o menos la quita
func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, err := repository.ParseID(c.Param("product_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	h.respond(c, h.cart.SetQuantity(id, *req.Quantity))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := repository.ParseID(c.Param("product_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.cart.RemoveItem(id)
	h.respond(c, nil)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	h.respond(c, nil)
}

func (h *CartHandler) respond(c *gin.Context, notice *cart.Notice) {
	lines, total := h.cart.Snapshot()
	if lines == nil {
		lines = []cart.Line{}
	}
	c.JSON(http.StatusOK, CartResponse{
		Items:  lines,
		Total:  total,
		Size:   len(lines),
		Notice: notice,
	})
}
