package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	// ListProducts returns one window of matching products plus the total
	// count of matches ignoring the window. Products come back with a bare
	// CategoryID; population is the use case's job.
	ListProducts(ctx context.Context, opts ProductListOptions) ([]Product, int64, error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}
