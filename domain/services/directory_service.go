package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"people-directory/domain/dto"
	"people-directory/domain/viewmodel"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPersistFailed   = errors.New("failed to persist collection")
)

// ChangeEvent is emitted after a mutation has been written through.
type ChangeEvent struct {
	Intent    string
	RecordID  int
	SessionID uuid.UUID
	Count     int
}

type DirectoryService interface {
	// Bootstrap loads the stored collection, or seeds it from the dataset in
	// the background when nothing is stored. It runs at most once.
	Bootstrap(ctx context.Context) error
	// Seeded is closed once bootstrap has finished, whatever the outcome.
	Seeded() <-chan struct{}

	OpenSession(ctx context.Context) (uuid.UUID, viewmodel.View)
	CloseSession(id uuid.UUID)
	SessionCount() int
	// SweepSessions drops sessions idle for longer than idle.
	SweepSessions(idle time.Duration) int
	// Touch marks the given sessions as active now. Unknown ids are ignored.
	Touch(ids ...uuid.UUID)

	View(id uuid.UUID) (viewmodel.View, error)
	Dispatch(ctx context.Context, id uuid.UUID, intent viewmodel.Intent) (viewmodel.View, error)

	ListRecords(search string) []dto.PersonResponse
	OnChange(fn func(ChangeEvent))
}
