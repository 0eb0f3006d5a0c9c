package viewmodel

import (
	"strings"

	"people-directory/domain/models"
)

// Filter keeps the records whose "first last" contains term, ignoring case.
// The term is not trimmed and order is preserved.
func Filter(records []models.Person, term string) []models.Person {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	out := make([]models.Person, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.FullName()), needle) {
			out = append(out, r)
		}
	}
	return out
}
