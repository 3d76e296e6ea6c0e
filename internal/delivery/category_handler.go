package delivery

import (
	"net/http"

	"catalog_service/internal/domain"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/categories", h.ListCategories)
		api.GET("/category/:id", h.GetCategoryByID)
		api.POST("/category", h.CreateCategory)
		api.PUT("/category/:id", h.UpdateCategory)
		api.DELETE("/category/:id", h.DeleteCategory)
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type updateCategoryRequest struct {
	Name *string `json:"name"`
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	opts := listOptionsFromQuery(c)

	page, err := h.useCase.ListCategories(c.Request.Context(), opts)
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, page)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		h.log.Warnf("Invalid category ID parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "invalid category ID format")
		return
	}

	category, err := h.useCase.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get category by ID %s: %v", id.Hex(), err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	createdCategory, err := h.useCase.CreateCategory(c.Request.Context(), &domain.Category{Name: req.Name})
	if err != nil {
		h.log.Errorf("Failed to create category '%s': %v", req.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, createdCategory)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		h.log.Warnf("Invalid category ID parameter for update: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "invalid category ID format")
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for update category ID %s: %v", id.Hex(), err)
		ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updatedCategory, err := h.useCase.UpdateCategory(c.Request.Context(), id, domain.CategoryUpdate{Name: req.Name})
	if err != nil {
		h.log.Errorf("Failed to update category ID %s: %v", id.Hex(), err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessMessageResponse(c, http.StatusOK, updatedCategory, "Category updated successfully")
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		h.log.Warnf("Invalid category ID parameter for delete: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "invalid category ID format")
		return
	}

	if err := h.useCase.DeleteCategory(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete category ID %s: %v", id.Hex(), err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
