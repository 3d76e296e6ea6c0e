package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"catalog_service/internal/domain"
	"catalog_service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productFixture struct {
	uc           ProductUseCase
	productRepo  *repository.InMemoryProductRepository
	categoryRepo *repository.InMemoryCategoryRepository
}

func newProductFixture() *productFixture {
	productRepo := repository.NewInMemoryProductRepository()
	categoryRepo := repository.NewInMemoryCategoryRepository()
	return &productFixture{
		uc:           NewProductUseCase(productRepo, categoryRepo, newTestLogger()),
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (f *productFixture) mustCreateCategory(t *testing.T, name string) domain.Category {
	t.Helper()
	category, err := f.categoryRepo.CreateCategory(context.Background(), &domain.Category{Name: name})
	require.NoError(t, err)
	return *category
}

func (f *productFixture) mustCreateProduct(t *testing.T, name string, price float64, categoryID primitive.ObjectID) domain.Product {
	t.Helper()
	product, err := f.uc.CreateProduct(context.Background(), &domain.Product{
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return *product
}

func productListOptions() domain.ProductListOptions {
	return domain.ProductListOptions{ListOptions: domain.ListOptions{
		Page: 1, Limit: 10, SortBy: "name", Order: "asc",
	}}
}

func TestCreateProduct_PopulatesCategory(t *testing.T) {
	f := newProductFixture()
	category := f.mustCreateCategory(t, "Kitchen")

	created, err := f.uc.CreateProduct(context.Background(), &domain.Product{
		Name:        "Kettle",
		Description: "electric",
		Price:       25,
		Quantity:    4,
		CategoryID:  category.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, created.Category)
	assert.Equal(t, category.ID, created.Category.ID)
	assert.Equal(t, "Kitchen", created.Category.Name)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newProductFixture()
	category := f.mustCreateCategory(t, "Kitchen")

	tests := []struct {
		name    string
		product domain.Product
	}{
		{"empty name", domain.Product{Name: "", Price: 1, CategoryID: category.ID}},
		{"negative price", domain.Product{Name: "Kettle", Price: -1, CategoryID: category.ID}},
		{"negative quantity", domain.Product{Name: "Kettle", Price: 1, Quantity: -1, CategoryID: category.ID}},
		{"unknown category", domain.Product{Name: "Kettle", Price: 1, CategoryID: primitive.NewObjectID()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateProduct(context.Background(), &tt.product)
			var validationErr *domain.ValidationError
			assert.True(t, errors.As(err, &validationErr), "expected validation error, got %v", err)
		})
	}
}

func TestCreateProduct_ZeroPriceAllowed(t *testing.T) {
	f := newProductFixture()
	category := f.mustCreateCategory(t, "Freebies")

	created, err := f.uc.CreateProduct(context.Background(), &domain.Product{
		Name:       "Sticker",
		Price:      0,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, created.Price)
}

func TestGetProductByID_Populates(t *testing.T) {
	f := newProductFixture()
	category := f.mustCreateCategory(t, "Kitchen")
	created := f.mustCreateProduct(t, "Kettle", 25, category.ID)

	fetched, err := f.uc.GetProductByID(context.Background(), created.ID)
	require.NoError(t, err)

	require.NotNil(t, fetched.Category)
	assert.Equal(t, category.ID, fetched.Category.ID)
}

func TestGetProductByID_MissingIDIsNotFound(t *testing.T) {
	f := newProductFixture()

	_, err := f.uc.GetProductByID(context.Background(), primitive.NewObjectID())

	var notFound *domain.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestUpdateProduct_PartialUpdatePreservesOtherFields(t *testing.T) {
	f := newProductFixture()
	category := f.mustCreateCategory(t, "Kitchen")

	created, err := f.uc.CreateProduct(context.Background(), &domain.Product{
		Name:        "Kettle",
		Description: "electric",
		Price:       25,
		Quantity:    4,
		CategoryID:  category.ID,
	})
	require.NoError(t, err)

	price := 9.99
	updated, err := f.uc.UpdateProduct(context.Background(), created.ID, domain.ProductUpdate{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 9.99, updated.Price)
	assert.Equal(t, "Kettle", updated.Name)
	assert.Equal(t, "electric", updated.Description)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, category.ID, updated.CategoryID)
	require.NotNil(t, updated.Category)
	assert.Equal(t, category.ID, updated.Category.ID)
}

func TestUpdateProduct_Validation(t *testing.T) {
	f := newProductFixture()
	category := f.mustCreateCategory(t, "Kitchen")
	created := f.mustCreateProduct(t, "Kettle", 25, category.ID)

	var validationErr *domain.ValidationError

	empty := ""
	_, err := f.uc.UpdateProduct(context.Background(), created.ID, domain.ProductUpdate{Name: &empty})
	assert.True(t, errors.As(err, &validationErr))

	negative := -2.0
	_, err = f.uc.UpdateProduct(context.Background(), created.ID, domain.ProductUpdate{Price: &negative})
	assert.True(t, errors.As(err, &validationErr))

	missingCategory := primitive.NewObjectID()
	_, err = f.uc.UpdateProduct(context.Background(), created.ID, domain.ProductUpdate{CategoryID: &missingCategory})
	assert.True(t, errors.As(err, &validationErr))
}

func TestUpdateProduct_MissingIDIsNotFound(t *testing.T) {
	f := newProductFixture()
	price := 9.99

	_, err := f.uc.UpdateProduct(context.Background(), primitive.NewObjectID(), domain.ProductUpdate{Price: &price})

	var notFound *domain.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestDeleteCategory_LeavesDanglingReference(t *testing.T) {
	f := newProductFixture()
	category := f.mustCreateCategory(t, "Kitchen")
	created := f.mustCreateProduct(t, "Kettle", 25, category.ID)

	// No restrict-on-delete: the category goes away even though a product
	// still references it.
	require.NoError(t, f.categoryRepo.DeleteCategory(context.Background(), category.ID))

	fetched, err := f.uc.GetProductByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, fetched.CategoryID)
	assert.Nil(t, fetched.Category)

	page, err := f.uc.ListProducts(context.Background(), productListOptions())
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Nil(t, page.Products[0].Category)
}

func TestListProducts_WindowScenario(t *testing.T) {
	f := newProductFixture()
	category := f.mustCreateCategory(t, "Kitchen")
	for i := 1; i <= 12; i++ {
		f.mustCreateProduct(t, fmt.Sprintf("prod-%02d", i), float64(i), category.ID)
	}

	opts := productListOptions()
	opts.Page = 2
	opts.Limit = 5
	page, err := f.uc.ListProducts(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, domain.Pagination{Current: 2, Pages: 3, Total: 12, Limit: 5}, page.Pagination)
	require.Len(t, page.Products, 5)
	for i, product := range page.Products {
		assert.Equal(t, fmt.Sprintf("prod-%02d", i+6), product.Name)
		require.NotNil(t, product.Category)
		assert.Equal(t, category.ID, product.Category.ID)
	}
}

func TestListProducts_CategoryFilter(t *testing.T) {
	f := newProductFixture()
	kitchen := f.mustCreateCategory(t, "Kitchen")
	office := f.mustCreateCategory(t, "Office")
	f.mustCreateProduct(t, "Kettle", 25, kitchen.ID)
	f.mustCreateProduct(t, "Toaster", 30, kitchen.ID)
	f.mustCreateProduct(t, "Stapler", 5, office.ID)

	opts := productListOptions()
	opts.CategoryID = &kitchen.ID
	page, err := f.uc.ListProducts(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, int64(2), page.Pagination.Total)
	for _, product := range page.Products {
		assert.Equal(t, kitchen.ID, product.CategoryID)
	}
}

func TestListProducts_RejectsZeroLimit(t *testing.T) {
	f := newProductFixture()

	opts := productListOptions()
	opts.Limit = 0
	_, err := f.uc.ListProducts(context.Background(), opts)

	var validationErr *domain.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
