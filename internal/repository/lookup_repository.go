package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pos-service/internal/models"
)

// LookupRepository lee las entidades de consulta (categorías y proveedores)
type LookupRepository struct {
	categories *mongo.Collection
	suppliers  *mongo.Collection
}

func NewLookupRepository(db *mongo.Database) *LookupRepository {
	return &LookupRepository{
		categories: db.Collection("categories"),
		suppliers:  db.Collection("suppliers"),
	}
}

// ActiveCategories lista las categorías activas ordenadas por nombre
func (r *LookupRepository) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := findActive(ctx, r.categories, &categories); err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	return categories, nil
}

// ActiveSuppliers lista los proveedores activos ordenados por nombre
func (r *LookupRepository) ActiveSuppliers(ctx context.Context) ([]models.Supplier, error) {
	suppliers := make([]models.Supplier, 0)
	if err := findActive(ctx, r.suppliers, &suppliers); err != nil {
		return nil, fmt.Errorf("find suppliers: %w", err)
	}
	return suppliers, nil
}

func findActive(ctx context.Context, coll *mongo.Collection, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}
