package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// substringRegex builds a case-insensitive literal substring matcher.
// The input is escaped so regex metacharacters in user searches match
// themselves.
func substringRegex(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

func sortDirection(order string) int {
	if order == "desc" {
		return -1
	}
	return 1
}
