package usecase

import "catalog_service/internal/domain"

// maxListLimit caps page sizes so a single request cannot drag the whole
// collection over the wire.
const maxListLimit = 100

var categorySortFields = map[string]bool{
	"name":      true,
	"createdAt": true,
	"updatedAt": true,
}

var productSortFields = map[string]bool{
	"name":        true,
	"description": true,
	"price":       true,
	"quantity":    true,
	"createdAt":   true,
	"updatedAt":   true,
}

// validateListOptions rejects windows that would make the pagination
// arithmetic undefined (page or limit below 1) and clamps oversized
// limits. Sort field and order are checked against the entity's allow
// list.
func validateListOptions(opts *domain.ListOptions, sortFields map[string]bool) error {
	if opts.Page < 1 {
		return domain.NewValidationError("page must be a positive integer")
	}
	if opts.Limit < 1 {
		return domain.NewValidationError("limit must be a positive integer")
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}
	if opts.Order != "asc" && opts.Order != "desc" {
		return domain.NewValidationError("order must be 'asc' or 'desc'")
	}
	if !sortFields[opts.SortBy] {
		return domain.NewValidationError("cannot sort by field '%s'", opts.SortBy)
	}
	return nil
}
