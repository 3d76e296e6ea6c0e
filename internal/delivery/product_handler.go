package delivery

import (
	"net/http"

	"catalog_service/internal/domain"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.GET("/product/:id", h.GetProductByID)
		api.POST("/product", h.CreateProduct)
		api.PUT("/product/:id", h.UpdateProduct)
		api.DELETE("/product/:id", h.DeleteProduct)
	}
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CategoryID  string  `json:"categoryId"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	CategoryID  *string  `json:"categoryId"`
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	opts := domain.ProductListOptions{ListOptions: listOptionsFromQuery(c)}
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.log.Warnf("Invalid categoryId filter: %s", raw)
			ErrorResponse(c, http.StatusBadRequest, "invalid categoryId filter format")
			return
		}
		opts.CategoryID = &categoryID
	}

	page, err := h.useCase.ListProducts(c.Request.Context(), opts)
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, page)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		h.log.Warnf("Invalid product ID parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "invalid product ID format")
		return
	}

	product, err := h.useCase.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product by ID %s: %v", id.Hex(), err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		h.log.Warnf("Invalid categoryId in create product request: %s", req.CategoryID)
		ErrorResponse(c, http.StatusBadRequest, "categoryId must be a valid category ID")
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  categoryID,
	}
	createdProduct, err := h.useCase.CreateProduct(c.Request.Context(), product)
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", req.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, createdProduct)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		h.log.Warnf("Invalid product ID parameter for update: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "invalid product ID format")
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for update product ID %s: %v", id.Hex(), err)
		ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	update := domain.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if req.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*req.CategoryID)
		if err != nil {
			h.log.Warnf("Invalid categoryId in update product request: %s", *req.CategoryID)
			ErrorResponse(c, http.StatusBadRequest, "categoryId must be a valid category ID")
			return
		}
		update.CategoryID = &categoryID
	}

	updatedProduct, err := h.useCase.UpdateProduct(c.Request.Context(), id, update)
	if err != nil {
		h.log.Errorf("Failed to update product ID %s: %v", id.Hex(), err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessMessageResponse(c, http.StatusOK, updatedProduct, "Product updated successfully")
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		h.log.Warnf("Invalid product ID parameter for delete: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "invalid product ID format")
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete product ID %s: %v", id.Hex(), err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
