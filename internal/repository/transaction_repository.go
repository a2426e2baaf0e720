package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pos-service/internal/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository persiste las ventas y sus líneas.
// Cada método es una llamada independiente; no hay transacción multi-documento.
type TransactionRepository struct {
	transactions *mongo.Collection
	items        *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		transactions: db.Collection("transactions"),
		items:        db.Collection("transaction_items"),
	}
}

// Create inserta la cabecera de la venta y devuelve el ID generado
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := *tx
	doc.ID = primitive.NewObjectID()
	if _, err := r.transactions.InsertOne(ctx, doc); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert transaction: %w", err)
	}
	return doc.ID, nil
}

// CreateItems inserta todas las líneas de una venta en un solo batch y
// completa el ID de cada una
func (r *TransactionRepository) CreateItems(ctx context.Context, items []models.TransactionItem) error {
	if len(items) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Los IDs se asignan sobre el slice del llamador para que vuelvan en la respuesta
	docs := make([]interface{}, 0, len(items))
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, items[i])
	}
	if _, err := r.items.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert transaction items: %w", err)
	}
	return nil
}

// FindByID obtiene una venta con sus líneas
func (r *TransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tx models.Transaction
	if err := r.transactions.FindOne(ctx, bson.M{"_id": id}).Decode(&tx); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	cursor, err := r.items.Find(ctx, bson.M{"transaction_id": id})
	if err != nil {
		return nil, fmt.Errorf("find transaction items: %w", err)
	}
	defer cursor.Close(ctx)

	tx.Items = make([]models.TransactionItem, 0)
	if err := cursor.All(ctx, &tx.Items); err != nil {
		return nil, fmt.Errorf("decode transaction items: %w", err)
	}
	return &tx, nil
}
