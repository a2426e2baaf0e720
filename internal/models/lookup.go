package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category es una entidad de consulta; sólo las activas se ofrecen al asignar productos
type Category struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	IsActive bool               `json:"is_active" bson:"is_active"`
}

// Supplier es una entidad de consulta, igual que Category
type Supplier struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	IsActive bool               `json:"is_active" bson:"is_active"`
}
