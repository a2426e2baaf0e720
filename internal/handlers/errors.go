package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"pos-service/internal/catalog"
	"pos-service/internal/checkout"
	"pos-service/internal/models"
	"pos-service/internal/repository"
	"pos-service/internal/storage"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type StepErrorResponse struct {
	Error           string  `json:"error"`
	Step            string  `json:"step"`
	TransactionCode string  `json:"transaction_code"`
	TransactionID   string  `json:"transaction_id,omitempty"`
	ProductID       *string `json:"product_id,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError traduce los errores del dominio a códigos HTTP
func respondError(c *gin.Context, err error) {
	var validationErrs models.ValidationErrors
	var stepErr *checkout.StepError
	var writeErr *catalog.WriteError

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: validationErrs.Fields()})
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
	case errors.Is(err, repository.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "transaction not found"})
	case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrInsufficientPayment):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrUnsupportedImage):
		c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{Error: err.Error()})
	case errors.As(err, &stepErr):
		resp := StepErrorResponse{
			Error:           stepErr.Err.Error(),
			Step:            stepErr.Step.String(),
			TransactionCode: stepErr.Code,
		}
		if !stepErr.TransactionID.IsZero() {
			resp.TransactionID = stepErr.TransactionID.Hex()
		}
		if stepErr.ProductID != nil {
			id := stepErr.ProductID.Hex()
			resp.ProductID = &id
		}
		c.JSON(http.StatusBadGateway, resp)
	case errors.As(err, &writeErr):
		// El único índice único de products es el SKU
		if mongo.IsDuplicateKeyError(writeErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:  "validation failed",
				Fields: map[string]string{"sku": "sku already exists"},
			})
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: writeErr.Error()})
	default:
		zap.L().Error("request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
