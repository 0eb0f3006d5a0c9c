package repositories

import (
	"context"

	"people-directory/domain/models"
)

// PersonRepository stores the whole record collection as one serialized value.
type PersonRepository interface {
	// Load returns found=false when nothing has been stored yet.
	Load(ctx context.Context) (persons []models.Person, found bool, err error)
	// SaveAll replaces the stored collection.
	SaveAll(ctx context.Context, persons []models.Person) error
	// Raw returns the stored serialization as is.
	Raw(ctx context.Context) (string, bool, error)
	// Clear removes the stored collection so the next start seeds again.
	Clear(ctx context.Context) error
}
