package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryRepository interface {
	// ListCategories returns one window of matching categories plus the
	// total count of matches ignoring the window.
	ListCategories(ctx context.Context, opts ListOptions) ([]Category, int64, error)
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*Category, error)
	GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Category, error)
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, update CategoryUpdate) (*Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
}
