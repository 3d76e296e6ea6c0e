package delivery

import (
	"strconv"

	"catalog_service/internal/domain"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// intQuery reads an integer query parameter, falling back to the default
// when the parameter is absent or not a number. Out-of-range values are
// passed through so the use case can reject them.
func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func listOptionsFromQuery(c *gin.Context) domain.ListOptions {
	return domain.ListOptions{
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 10),
		Search: c.Query("search"),
		SortBy: c.DefaultQuery("sortBy", "name"),
		Order:  c.DefaultQuery("order", "asc"),
	}
}

// objectIDParam parses the :id path parameter.
func objectIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
