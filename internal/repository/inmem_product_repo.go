package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog_service/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryProductRepository implements domain.ProductRepository with an
// in-process map, mirroring the mongo repository's semantics.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]domain.Product
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[primitive.ObjectID]domain.Product),
	}
}

func (r *InMemoryProductRepository) ListProducts(ctx context.Context, opts domain.ProductListOptions) ([]domain.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Product{}
	search := strings.ToLower(opts.Search)
	for _, product := range r.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(product.Name), search) &&
			!strings.Contains(strings.ToLower(product.Description), search) {
			continue
		}
		if opts.CategoryID != nil && product.CategoryID != *opts.CategoryID {
			continue
		}
		matched = append(matched, product)
	}

	sortProducts(matched, opts.SortBy, opts.Order)

	total := int64(len(matched))
	lo, hi := windowBounds(len(matched), opts.Page, opts.Limit)
	return matched[lo:hi], total, nil
}

func (r *InMemoryProductRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "product", ID: id.Hex()}
	}
	return &product, nil
}

func (r *InMemoryProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return product, nil
}

func (r *InMemoryProductRepository) UpdateProduct(ctx context.Context, id primitive.ObjectID, update domain.ProductUpdate) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "product", ID: id.Hex()}
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Quantity != nil {
		product.Quantity = *update.Quantity
	}
	if update.CategoryID != nil {
		product.CategoryID = *update.CategoryID
	}
	product.UpdatedAt = time.Now().UTC()
	r.products[id] = product
	return &product, nil
}

func (r *InMemoryProductRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return &domain.NotFoundError{Resource: "product", ID: id.Hex()}
	}
	delete(r.products, id)
	return nil
}

func sortProducts(products []domain.Product, sortBy, order string) {
	desc := order == "desc"
	sort.Slice(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if desc {
			a, b = b, a
		}
		switch sortBy {
		case "description":
			if a.Description != b.Description {
				return a.Description < b.Description
			}
		case "price":
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case "quantity":
			if a.Quantity != b.Quantity {
				return a.Quantity < b.Quantity
			}
		case "createdAt":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case "updatedAt":
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		default:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		}
		return a.ID.Hex() < b.ID.Hex()
	})
}

// windowBounds clips the skip/limit window to the matched set.
func windowBounds(n, page, limit int) (int, int) {
	lo := (page - 1) * limit
	if lo >= n {
		return 0, 0
	}
	hi := lo + limit
	if hi > n {
		hi = n
	}
	return lo, hi
}
