package usecase

import (
	"context"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryUseCase interface {
	ListCategories(ctx context.Context, opts domain.ListOptions) (*domain.CategoryPage, error)
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, update domain.CategoryUpdate) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		log:          logger,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, opts domain.ListOptions) (*domain.CategoryPage, error) {
	if err := validateListOptions(&opts, categorySortFields); err != nil {
		uc.log.Warnf("Use Case: Rejected category listing options: %v", err)
		return nil, err
	}

	categories, total, err := uc.categoryRepo.ListCategories(ctx, opts)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, err
	}

	return &domain.CategoryPage{
		Categories: categories,
		Pagination: domain.NewPagination(opts.Page, opts.Limit, total),
	}, nil
}

func (uc *categoryUseCase) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category ID %s: %v", id.Hex(), err)
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		uc.log.Warn("Use Case: Attempted to create category with empty name")
		return nil, domain.NewValidationError("category name cannot be empty")
	}

	createdCategory, err := uc.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", category.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created with ID %s", createdCategory.Name, createdCategory.ID.Hex())
	return createdCategory, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id primitive.ObjectID, update domain.CategoryUpdate) (*domain.Category, error) {
	if update.Name != nil && *update.Name == "" {
		uc.log.Warnf("Use Case: Attempted update for category ID %s with empty name", id.Hex())
		return nil, domain.NewValidationError("category name cannot be empty")
	}
	if update.Empty() {
		// Nothing to change; behave like a read so the caller still gets
		// the current document or a not-found.
		return uc.categoryRepo.GetCategoryByID(ctx, id)
	}

	updatedCategory, err := uc.categoryRepo.UpdateCategory(ctx, id, update)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update category ID %s: %v", id.Hex(), err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category updated for ID %s", id.Hex())
	return updatedCategory, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	// Products referencing this category keep their reference; reads
	// tolerate the dangling pointer.
	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %s: %v", id.Hex(), err)
		return err
	}

	uc.log.Infof("Use Case: Category deleted for ID %s", id.Hex())
	return nil
}
