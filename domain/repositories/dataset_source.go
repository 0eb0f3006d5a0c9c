package repositories

import (
	"context"

	"people-directory/domain/models"
)

// DatasetSource provides the seed collection used when nothing is stored yet.
type DatasetSource interface {
	Fetch(ctx context.Context) ([]models.Person, error)
	// Location describes where the dataset is read from, for logs.
	Location() string
}
