package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-service/internal/models"
	"pos-service/internal/repository"
)

type CheckoutHandler struct {
	checkout     Checkouter
	transactions TransactionFinder
}

func NewCheckoutHandler(checkout Checkouter, transactions TransactionFinder) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, transactions: transactions}
}

// Checkout registra la venta del carrito actual. El body es opcional: sin
// datos de pago se asume cliente Guest, efectivo y pago exacto.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var payment models.PaymentInfo
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payment); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	tx, err := h.checkout.Checkout(c.Request.Context(), payment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GetTransaction devuelve una venta con sus líneas
func (h *CheckoutHandler) GetTransaction(c *gin.Context) {
	id, err := repository.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	tx, err := h.transactions.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}
