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

type mongoProductRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoProductRepository(db *mongo.Database, logger *logrus.Logger) domain.ProductRepository {
	return &mongoProductRepository{
		coll: db.Collection("products"),
		log:  logger,
	}
}

func (r *mongoProductRepository) ListProducts(ctx context.Context, opts domain.ProductListOptions) ([]domain.Product, int64, error) {
	filter := bson.M{}
	if opts.Search != "" {
		// Substring match on either field, the behavior the catalog search
		// box expects.
		re := substringRegex(opts.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}
	if opts.CategoryID != nil {
		filter["categoryId"] = *opts.CategoryID
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: opts.SortBy, Value: sortDirection(opts.Order)}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, 0, &domain.StoreError{Op: "could not list products", Err: err}
	}
	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		r.log.Errorf("Failed to decode product list: %v", err)
		return nil, 0, &domain.StoreError{Op: "could not decode products", Err: err}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		r.log.Errorf("Failed to count products: %v", err)
		return nil, 0, &domain.StoreError{Op: "could not count products", Err: err}
	}

	r.log.Infof("Retrieved %d of %d products (page %d, limit %d)", len(products), total, opts.Page, opts.Limit)
	return products, total, nil
}

func (r *mongoProductRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Product with ID %s not found", id.Hex())
			return nil, &domain.NotFoundError{Resource: "product", ID: id.Hex()}
		}
		r.log.Errorf("Failed to get product by ID %s: %v", id.Hex(), err)
		return nil, &domain.StoreError{Op: "could not get product by id", Err: err}
	}
	return product, nil
}

func (r *mongoProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, &domain.StoreError{Op: "could not create product", Err: err}
	}

	product.ID = result.InsertedID.(primitive.ObjectID)
	r.log.Infof("Product created successfully with ID: %s, Name: %s", product.ID.Hex(), product.Name)
	return product, nil
}

func (r *mongoProductRepository) UpdateProduct(ctx context.Context, id primitive.ObjectID, update domain.ProductUpdate) (*domain.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.CategoryID != nil {
		set["categoryId"] = *update.CategoryID
	}

	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	product := &domain.Product{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, updateOpts).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Product with ID %s not found for update", id.Hex())
			return nil, &domain.NotFoundError{Resource: "product", ID: id.Hex()}
		}
		r.log.Errorf("Failed to update product ID %s: %v", id.Hex(), err)
		return nil, &domain.StoreError{Op: "could not update product", Err: err}
	}

	r.log.Infof("Product updated successfully with ID: %s", id.Hex())
	return product, nil
}

func (r *mongoProductRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", id.Hex(), err)
		return &domain.StoreError{Op: "could not delete product", Err: err}
	}
	if result.DeletedCount == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id.Hex())
		return &domain.NotFoundError{Resource: "product", ID: id.Hex()}
	}

	r.log.Infof("Product deleted successfully with ID: %s", id.Hex())
	return nil
}
