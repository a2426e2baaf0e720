package cart

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pos-service/internal/models"
)

// NoticeKind identifica el motivo del aviso
type NoticeKind string

const (
	NoticeInactive          NoticeKind = "inactive"
	NoticeOutOfStock        NoticeKind = "out_of_stock"
	NoticeInsufficientStock NoticeKind = "insufficient_stock"
	NoticeClamped           NoticeKind = "clamped"
)

// Notice es un aviso para el cajero; no es un error
type Notice struct {
	Kind      NoticeKind         `json:"kind"`
	ProductID primitive.ObjectID `json:"product_id"`
	Available int64              `json:"available"`
	Message   string             `json:"message"`
}

func newNotice(kind NoticeKind, p models.Product, available int64) *Notice {
	var msg string
	switch kind {
	case NoticeInactive:
		msg = fmt.Sprintf("product %s is inactive and cannot be sold", p.Name)
	case NoticeOutOfStock:
		msg = fmt.Sprintf("product %s is out of stock", p.Name)
	case NoticeInsufficientStock:
		msg = fmt.Sprintf("insufficient stock for %s: only %d available", p.Name, available)
	case NoticeClamped:
		msg = fmt.Sprintf("stock for %s is only %d", p.Name, available)
	}
	return &Notice{Kind: kind, ProductID: p.ID, Available: available, Message: msg}
}
