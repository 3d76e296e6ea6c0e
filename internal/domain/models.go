package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	CategoryID  primitive.ObjectID `json:"-" bson:"categoryId"`

	// Category holds the populated categoryId reference on read paths.
	// It stays nil when the referenced category no longer exists.
	Category *Category `json:"categoryId" bson:"-"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CategoryUpdate is a partial update: only non-nil fields overwrite.
type CategoryUpdate struct {
	Name *string
}

func (u CategoryUpdate) Empty() bool {
	return u.Name == nil
}

// ProductUpdate is a partial update: only non-nil fields overwrite.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	CategoryID  *primitive.ObjectID
}

func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Quantity == nil && u.CategoryID == nil
}

// ListOptions describes a windowed, sorted, optionally filtered listing.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
	SortBy string
	Order  string
}

// ProductListOptions adds the optional exact category filter.
type ProductListOptions struct {
	ListOptions
	CategoryID *primitive.ObjectID
}

// Pagination describes the window a listing was cut from.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

// NewPagination computes the envelope for one page of a result set of
// `total` records. Limit must be positive; callers validate that first.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
		Limit:   limit,
	}
}

type CategoryPage struct {
	Categories []Category `json:"categories"`
	Pagination Pagination `json:"pagination"`
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
