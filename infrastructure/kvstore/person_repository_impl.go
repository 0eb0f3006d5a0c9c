package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"people-directory/domain/models"
	"people-directory/domain/repositories"
	"people-directory/pkg/logger"
)

type PersonRepositoryImpl struct {
	store repositories.KeyValueStore
	key   string
}

// NewPersonRepository stores the collection as a JSON array under key.
func NewPersonRepository(store repositories.KeyValueStore, key string) repositories.PersonRepository {
	return &PersonRepositoryImpl{store: store, key: key}
}

func (r *PersonRepositoryImpl) Load(ctx context.Context) ([]models.Person, bool, error) {
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", r.key, err)
	}
	if !found {
		return nil, false, nil
	}

	var persons []models.Person
	if err := json.Unmarshal([]byte(raw), &persons); err != nil {
		return nil, true, fmt.Errorf("failed to decode %q: %w", r.key, err)
	}
	return persons, true, nil
}

func (r *PersonRepositoryImpl) SaveAll(ctx context.Context, persons []models.Person) error {
	if persons == nil {
		persons = []models.Person{}
	}
	data, err := json.Marshal(persons)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("failed to write %q: %w", r.key, err)
	}
	logger.Store("collection_written", "Collection written through", map[string]interface{}{
		"key":   r.key,
		"count": len(persons),
		"bytes": len(data),
	})
	return nil
}

func (r *PersonRepositoryImpl) Raw(ctx context.Context) (string, bool, error) {
	return r.store.Get(ctx, r.key)
}

func (r *PersonRepositoryImpl) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}
