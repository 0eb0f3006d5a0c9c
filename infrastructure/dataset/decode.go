package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"people-directory/domain/models"
)

// Decode parses a JSON array of records and rejects duplicate ids.
func Decode(r io.Reader) ([]models.Person, error) {
	var persons []models.Person
	if err := json.NewDecoder(r).Decode(&persons); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if persons == nil {
		persons = []models.Person{}
	}

	seen := make(map[int]struct{}, len(persons))
	for _, p := range persons {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("dataset has duplicate id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return persons, nil
}
