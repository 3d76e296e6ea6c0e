package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog_service/internal/domain"
	"catalog_service/internal/repository"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testEnv struct {
	router     *gin.Engine
	categoryUC usecase.CategoryUseCase
	productUC  usecase.ProductUseCase
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	categoryRepo := repository.NewInMemoryCategoryRepository()
	productRepo := repository.NewInMemoryProductRepository()
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, logger)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, logger)

	router := gin.New()
	NewCategoryHandler(categoryUC, logger).RegisterRoutes(router)
	NewProductHandler(productUC, logger).RegisterRoutes(router)

	return &testEnv{router: router, categoryUC: categoryUC, productUC: productUC}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeErrorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestCreateCategoryEndpoint(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/category", gin.H{"name": "Books"})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	var category domain.Category
	require.NoError(t, json.Unmarshal(resp.Data, &category))
	assert.Equal(t, "Books", category.Name)
	assert.False(t, category.ID.IsZero())
}

func TestCreateCategoryEndpoint_EmptyName(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/category", gin.H{"name": ""})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decodeErrorMessage(t, w))
}

func TestListCategoriesEndpoint(t *testing.T) {
	env := newTestEnv()
	for i := 1; i <= 12; i++ {
		_, err := env.categoryUC.CreateCategory(context.Background(), &domain.Category{Name: fmt.Sprintf("cat-%02d", i)})
		require.NoError(t, err)
	}

	w := env.do(t, http.MethodGet, "/api/categories?page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	var page domain.CategoryPage
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, domain.Pagination{Current: 2, Pages: 3, Total: 12, Limit: 5}, page.Pagination)
	assert.Len(t, page.Categories, 5)
}

func TestListCategoriesEndpoint_Search(t *testing.T) {
	env := newTestEnv()
	for _, name := range []string{"Electronics", "Books", "Small electric tools"} {
		_, err := env.categoryUC.CreateCategory(context.Background(), &domain.Category{Name: name})
		require.NoError(t, err)
	}

	w := env.do(t, http.MethodGet, "/api/categories?search=elec", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var page domain.CategoryPage
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &page))
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestListCategoriesEndpoint_ZeroLimitRejected(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/categories?limit=0", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoryEndpoint_BadAndMissingIDs(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/category/not-a-hex-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/category/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCategoryEndpoint(t *testing.T) {
	env := newTestEnv()
	created, err := env.categoryUC.CreateCategory(context.Background(), &domain.Category{Name: "Books"})
	require.NoError(t, err)

	w := env.do(t, http.MethodPut, "/api/category/"+created.ID.Hex(), gin.H{"name": "Used Books"})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Category updated successfully", resp.Message)

	var category domain.Category
	require.NoError(t, json.Unmarshal(resp.Data, &category))
	assert.Equal(t, "Used Books", category.Name)
}

func TestDeleteCategoryEndpoint(t *testing.T) {
	env := newTestEnv()
	created, err := env.categoryUC.CreateCategory(context.Background(), &domain.Category{Name: "Books"})
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, "/api/category/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	// Deleting again is a 404; not-found semantics are uniform.
	w = env.do(t, http.MethodDelete, "/api/category/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
