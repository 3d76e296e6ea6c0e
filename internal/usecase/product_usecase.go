package usecase

import (
	"context"
	"errors"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductUseCase interface {
	ListProducts(ctx context.Context, opts domain.ProductListOptions) (*domain.ProductPage, error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, update domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

type productUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, opts domain.ProductListOptions) (*domain.ProductPage, error) {
	if err := validateListOptions(&opts.ListOptions, productSortFields); err != nil {
		uc.log.Warnf("Use Case: Rejected product listing options: %v", err)
		return nil, err
	}

	products, total, err := uc.productRepo.ListProducts(ctx, opts)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, err
	}

	if err := uc.populateAll(ctx, products); err != nil {
		return nil, err
	}

	return &domain.ProductPage{
		Products:   products,
		Pagination: domain.NewPagination(opts.Page, opts.Limit, total),
	}, nil
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %s: %v", id.Hex(), err)
		return nil, err
	}
	if err := uc.populate(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Name == "" {
		uc.log.Warn("Use Case: Attempted to create product with empty name")
		return nil, domain.NewValidationError("product name cannot be empty")
	}
	if product.Price < 0 {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with negative price: %f", product.Name, product.Price)
		return nil, domain.NewValidationError("product price cannot be negative")
	}
	if product.Quantity < 0 {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with negative quantity: %d", product.Name, product.Quantity)
		return nil, domain.NewValidationError("product quantity cannot be negative")
	}

	category, err := uc.requireCategory(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	createdProduct, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}
	createdProduct.Category = category

	uc.log.Infof("Use Case: Product '%s' created with ID %s", createdProduct.Name, createdProduct.ID.Hex())
	return createdProduct, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id primitive.ObjectID, update domain.ProductUpdate) (*domain.Product, error) {
	if update.Name != nil && *update.Name == "" {
		uc.log.Warnf("Use Case: Attempted update for product ID %s with empty name", id.Hex())
		return nil, domain.NewValidationError("product name cannot be empty")
	}
	if update.Price != nil && *update.Price < 0 {
		uc.log.Warnf("Use Case: Attempted update for product ID %s with negative price", id.Hex())
		return nil, domain.NewValidationError("product price cannot be negative")
	}
	if update.Quantity != nil && *update.Quantity < 0 {
		uc.log.Warnf("Use Case: Attempted update for product ID %s with negative quantity", id.Hex())
		return nil, domain.NewValidationError("product quantity cannot be negative")
	}
	if update.CategoryID != nil {
		if _, err := uc.requireCategory(ctx, *update.CategoryID); err != nil {
			return nil, err
		}
	}
	if update.Empty() {
		return uc.GetProductByID(ctx, id)
	}

	updatedProduct, err := uc.productRepo.UpdateProduct(ctx, id, update)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update product ID %s: %v", id.Hex(), err)
		return nil, err
	}
	if err := uc.populate(ctx, updatedProduct); err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated for ID %s", id.Hex())
	return updatedProduct, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := uc.productRepo.DeleteProduct(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %s: %v", id.Hex(), err)
		return err
	}

	uc.log.Infof("Use Case: Product deleted for ID %s", id.Hex())
	return nil
}

// requireCategory resolves a category reference for a write, turning a
// missing category into a validation error on the product payload.
func (uc *productUseCase) requireCategory(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			uc.log.Warnf("Use Case: Category ID %s does not exist", id.Hex())
			return nil, domain.NewValidationError("category with id %s does not exist", id.Hex())
		}
		uc.log.Errorf("Use Case: Failed to check category ID %s: %v", id.Hex(), err)
		return nil, err
	}
	return category, nil
}

// populate resolves the category reference on a single product. A dangling
// reference is tolerated: the product comes back with a nil category.
func (uc *productUseCase) populate(ctx context.Context, product *domain.Product) error {
	category, err := uc.categoryRepo.GetCategoryByID(ctx, product.CategoryID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			uc.log.Warnf("Use Case: Product %s references missing category %s", product.ID.Hex(), product.CategoryID.Hex())
			return nil
		}
		uc.log.Errorf("Use Case: Failed to populate category for product %s: %v", product.ID.Hex(), err)
		return err
	}
	product.Category = category
	return nil
}

// populateAll resolves category references for a page of products with a
// single batched fetch.
func (uc *productUseCase) populateAll(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for i := range products {
		if !seen[products[i].CategoryID] {
			seen[products[i].CategoryID] = true
			ids = append(ids, products[i].CategoryID)
		}
	}

	categories, err := uc.categoryRepo.GetCategoriesByIDs(ctx, ids)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to batch-populate categories: %v", err)
		return err
	}

	byID := map[primitive.ObjectID]*domain.Category{}
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for i := range products {
		products[i].Category = byID[products[i].CategoryID]
	}
	return nil
}
