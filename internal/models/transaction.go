package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultCustomerName  = "Guest"
	DefaultPaymentMethod = "cash"

	TransactionStatusCompleted = "completed"
)

// Transaction es el registro de una venta; inmutable una vez creado
type Transaction struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code           string             `json:"transaction_code" bson:"transaction_code"`
	CustomerName   string             `json:"customer_name" bson:"customer_name"`
	TotalAmount    decimal.Decimal    `json:"total_amount" bson:"total_amount"`
	PaymentMethod  string             `json:"payment_method" bson:"payment_method"`
	PaymentAmount  decimal.Decimal    `json:"payment_amount" bson:"payment_amount"`
	ChangeAmount   decimal.Decimal    `json:"change_amount" bson:"change_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount" bson:"discount_amount"`
	Status         string             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	Items          []TransactionItem  `json:"items" bson:"-"`
}

// TransactionItem es una línea de la venta con el precio al momento de vender
type TransactionItem struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TransactionID primitive.ObjectID `json:"transaction_id" bson:"transaction_id"`
	ProductID     primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity      int64              `json:"quantity" bson:"quantity"`
	Price         decimal.Decimal    `json:"price" bson:"price"`
	Subtotal      decimal.Decimal    `json:"subtotal" bson:"subtotal"`
}

// PaymentInfo son los datos de pago que acompañan al checkout.
// Amount en cero significa pago exacto.
type PaymentInfo struct {
	CustomerName string          `json:"customer_name"`
	Method       string          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
}
