package helper

import (
	"strings"

	"gorm.io/gorm"
)

// ApplyOrdering maps ?ordering=field / ?ordering=-field onto an ORDER BY,
// restricted to the allowed column set. Anything else falls back.
func ApplyOrdering(q *gorm.DB, ordering string, allowed map[string]string, fallback string) *gorm.DB {
	ordering = strings.TrimSpace(ordering)
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	if col, ok := allowed[field]; ok {
		dir := "ASC"
		if desc {
			dir = "DESC"
		}
		return q.Order(col + " " + dir)
	}
	return q.Order(fallback)
}
