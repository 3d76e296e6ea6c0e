package repository

import (
	"context"
	"errors"
	"time"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCategoryRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoCategoryRepository(db *mongo.Database, logger *logrus.Logger) domain.CategoryRepository {
	return &mongoCategoryRepository{
		coll: db.Collection("categories"),
		log:  logger,
	}
}

func (r *mongoCategoryRepository) ListCategories(ctx context.Context, opts domain.ListOptions) ([]domain.Category, int64, error) {
	filter := bson.M{}
	if opts.Search != "" {
		filter["name"] = substringRegex(opts.Search)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: opts.SortBy, Value: sortDirection(opts.Order)}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, 0, &domain.StoreError{Op: "could not list categories", Err: err}
	}
	categories := []domain.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		r.log.Errorf("Failed to decode category list: %v", err)
		return nil, 0, &domain.StoreError{Op: "could not decode categories", Err: err}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		r.log.Errorf("Failed to count categories: %v", err)
		return nil, 0, &domain.StoreError{Op: "could not count categories", Err: err}
	}

	r.log.Infof("Retrieved %d of %d categories (page %d, limit %d)", len(categories), total, opts.Page, opts.Limit)
	return categories, total, nil
}

func (r *mongoCategoryRepository) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	category := &domain.Category{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Category with ID %s not found", id.Hex())
			return nil, &domain.NotFoundError{Resource: "category", ID: id.Hex()}
		}
		r.log.Errorf("Failed to get category by ID %s: %v", id.Hex(), err)
		return nil, &domain.StoreError{Op: "could not get category by id", Err: err}
	}
	return category, nil
}

func (r *mongoCategoryRepository) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Category, error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.log.Errorf("Failed to fetch categories by IDs: %v", err)
		return nil, &domain.StoreError{Op: "could not fetch categories by ids", Err: err}
	}
	categories := []domain.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		r.log.Errorf("Failed to decode categories by IDs: %v", err)
		return nil, &domain.StoreError{Op: "could not decode categories by ids", Err: err}
	}
	return categories, nil
}

func (r *mongoCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, category)
	if err != nil {
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, &domain.StoreError{Op: "could not create category", Err: err}
	}

	category.ID = result.InsertedID.(primitive.ObjectID)
	r.log.Infof("Category created successfully with ID: %s, Name: %s", category.ID.Hex(), category.Name)
	return category, nil
}

func (r *mongoCategoryRepository) UpdateCategory(ctx context.Context, id primitive.ObjectID, update domain.CategoryUpdate) (*domain.Category, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}

	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	category := &domain.Category{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, updateOpts).Decode(category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Category with ID %s not found for update", id.Hex())
			return nil, &domain.NotFoundError{Resource: "category", ID: id.Hex()}
		}
		r.log.Errorf("Failed to update category ID %s: %v", id.Hex(), err)
		return nil, &domain.StoreError{Op: "could not update category", Err: err}
	}

	r.log.Infof("Category updated successfully with ID: %s", id.Hex())
	return category, nil
}

func (r *mongoCategoryRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Errorf("Failed to delete category ID %s: %v", id.Hex(), err)
		return &domain.StoreError{Op: "could not delete category", Err: err}
	}
	if result.DeletedCount == 0 {
		r.log.Warnf("Attempted to delete non-existent category ID %s", id.Hex())
		return &domain.NotFoundError{Resource: "category", ID: id.Hex()}
	}

	r.log.Infof("Category deleted successfully with ID: %s", id.Hex())
	return nil
}
