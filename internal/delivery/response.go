package delivery

import (
	"errors"
	"net/http"

	"catalog_service/internal/domain"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorBody struct {
	Message string `json:"message"`
}

func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessMessageResponse(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Message: message})
}

// mapErrorToStatus translates the domain error variants into HTTP
// statuses. Anything unrecognized (store failures included) is a 500.
func mapErrorToStatus(err error) int {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
