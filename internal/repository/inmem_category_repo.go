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

// InMemoryCategoryRepository implements domain.CategoryRepository with an
// in-process map. It mirrors the mongo repository's semantics so tests can
// run without a live store.
type InMemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]domain.Category
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: make(map[primitive.ObjectID]domain.Category),
	}
}

func (r *InMemoryCategoryRepository) ListCategories(ctx context.Context, opts domain.ListOptions) ([]domain.Category, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Category{}
	search := strings.ToLower(opts.Search)
	for _, category := range r.categories {
		if search != "" && !strings.Contains(strings.ToLower(category.Name), search) {
			continue
		}
		matched = append(matched, category)
	}

	sortCategories(matched, opts.SortBy, opts.Order)

	total := int64(len(matched))
	lo, hi := windowBounds(len(matched), opts.Page, opts.Limit)
	return matched[lo:hi], total, nil
}

func (r *InMemoryCategoryRepository) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "category", ID: id.Hex()}
	}
	return &category, nil
}

func (r *InMemoryCategoryRepository) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := []domain.Category{}
	for _, id := range ids {
		if category, ok := r.categories[id]; ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (r *InMemoryCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now
	category.UpdatedAt = now
	r.categories[category.ID] = *category
	return category, nil
}

func (r *InMemoryCategoryRepository) UpdateCategory(ctx context.Context, id primitive.ObjectID, update domain.CategoryUpdate) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "category", ID: id.Hex()}
	}
	if update.Name != nil {
		category.Name = *update.Name
	}
	category.UpdatedAt = time.Now().UTC()
	r.categories[id] = category
	return &category, nil
}

func (r *InMemoryCategoryRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return &domain.NotFoundError{Resource: "category", ID: id.Hex()}
	}
	delete(r.categories, id)
	return nil
}

func sortCategories(categories []domain.Category, sortBy, order string) {
	desc := order == "desc"
	sort.Slice(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if desc {
			a, b = b, a
		}
		switch sortBy {
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
