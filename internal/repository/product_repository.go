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

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid id")
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

// FindAll lista todos los productos ordenados por nombre, con el nombre de
// categoría y proveedor embebidos
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		lookupStage("categories", "category_id", "category"),
		lookupStage("suppliers", "supplier_id", "supplier"),
		{{Key: "$set", Value: bson.D{
			{Key: "category_name", Value: firstOf("$category.name")},
			{Key: "supplier_name", Value: firstOf("$supplier.name")},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "category", Value: 0},
			{Key: "supplier", Value: 0},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Create inserta un producto nuevo y devuelve su ID
func (r *ProductRepository) Create(ctx context.Context, in *models.ProductInput) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc, err := productFields(in)
	if err != nil {
		return primitive.NilObjectID, err
	}
	now := time.Now()
	id := primitive.NewObjectID()
	doc["_id"] = id
	doc["created_at"] = now
	doc["updated_at"] = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// Update reemplaza los campos editables de un producto
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, in *models.ProductInput) error {
	doc, err := productFields(in)
	if err != nil {
		return err
	}
	return r.set(ctx, id, doc)
}

// SoftDelete marca un producto como inactivo; nunca se borra físicamente
func (r *ProductRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.set(ctx, id, bson.M{"is_active": false})
}

// SetStock fija el stock absoluto de un producto
func (r *ProductRepository) SetStock(ctx context.Context, id primitive.ObjectID, stock int64) error {
	return r.set(ctx, id, bson.M{"stock": stock})
}

// SetImage guarda la URL pública de la imagen del producto
func (r *ProductRepository) SetImage(ctx context.Context, id primitive.ObjectID, url string) error {
	return r.set(ctx, id, bson.M{"image_url": url})
}

func (r *ProductRepository) set(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Agregar updated_at automáticamente
	update["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ParseID convierte un string hex a ObjectID
func ParseID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objID, nil
}

func productFields(in *models.ProductInput) (bson.M, error) {
	categoryID, err := ParseID(in.CategoryID)
	if err != nil {
		return nil, err
	}

	doc := bson.M{
		"name":        in.Name,
		"sku":         in.SKU,
		"category_id": categoryID,
		"buy_price":   in.BuyPrice,
		"sell_price":  in.SellPrice,
		"stock":       in.Stock,
		"min_stock":   in.MinStock,
		"is_active":   in.Active(),
		"barcode":     nil,
		"supplier_id": nil,
	}
	if in.Barcode != "" {
		doc["barcode"] = in.Barcode
	}
	if in.SupplierID != "" {
		supplierID, err := ParseID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		doc["supplier_id"] = supplierID
	}
	return doc, nil
}

func lookupStage(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func firstOf(path string) bson.D {
	return bson.D{{Key: "$arrayElemAt", Value: bson.A{path, 0}}}
}
