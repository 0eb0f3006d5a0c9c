package serviceimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"people-directory/domain/dto"
	"people-directory/domain/models"
	"people-directory/domain/repositories"
	"people-directory/domain/services"
	"people-directory/domain/viewmodel"
	"people-directory/pkg/logger"
	"people-directory/pkg/metrics"
)

type sessionEntry struct {
	state    viewmodel.Session
	lastSeen time.Time
}

// DirectoryServiceImpl owns the canonical collection and every session's UI
// state. One mutex serializes all intents, seeding included.
type DirectoryServiceImpl struct {
	personRepo repositories.PersonRepository
	source     repositories.DatasetSource
	clock      func() time.Time

	mu        sync.Mutex
	records   []models.Person
	sessions  map[uuid.UUID]*sessionEntry
	listeners []func(services.ChangeEvent)

	bootOnce sync.Once
	seeded   chan struct{}
}

// NewDirectoryService wires the service. A nil clock means time.Now.
func NewDirectoryService(personRepo repositories.PersonRepository, source repositories.DatasetSource, clock func() time.Time) *DirectoryServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	return &DirectoryServiceImpl{
		personRepo: personRepo,
		source:     source,
		clock:      clock,
		records:    []models.Person{},
		sessions:   make(map[uuid.UUID]*sessionEntry),
		seeded:     make(chan struct{}),
	}
}

var _ services.DirectoryService = (*DirectoryServiceImpl)(nil)

func (s *DirectoryServiceImpl) Bootstrap(ctx context.Context) error {
	var err error
	s.bootOnce.Do(func() {
		err = s.bootstrap(ctx)
	})
	return err
}

func (s *DirectoryServiceImpl) bootstrap(ctx context.Context) error {
	persons, found, err := s.personRepo.Load(ctx)
	if err != nil {
		metrics.SeedTotal.WithLabelValues("store_failed").Inc()
		logger.SeedError("load_failed", "Failed to load stored collection", err, nil)
		close(s.seeded)
		return err
	}

	if found {
		s.mu.Lock()
		s.records = persons
		s.mu.Unlock()
		metrics.Records.Set(float64(len(persons)))
		metrics.SeedTotal.WithLabelValues("stored").Inc()
		logger.Seed("loaded", "Loaded stored collection", map[string]interface{}{"count": len(persons)})
		close(s.seeded)
		return nil
	}

	if s.source == nil {
		metrics.SeedTotal.WithLabelValues("fetch_failed").Inc()
		logger.SeedError("no_source", "Nothing stored and no dataset configured", nil, nil)
		close(s.seeded)
		return nil
	}

	// fire and forget: not tied to the caller's context
	go s.seedFromDataset()
	return nil
}

func (s *DirectoryServiceImpl) seedFromDataset() {
	defer close(s.seeded)

	ctx := context.Background()
	start := s.clock()
	persons, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.SeedTotal.WithLabelValues("fetch_failed").Inc()
		logger.SeedError("fetch_failed", "Error fetching the dataset", err, map[string]interface{}{
			"location": s.source.Location(),
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// records that could not be stored are not adopted
	if err := s.personRepo.SaveAll(ctx, persons); err != nil {
		metrics.SeedTotal.WithLabelValues("store_failed").Inc()
		metrics.WritesTotal.WithLabelValues("error").Inc()
		logger.SeedError("seed_write_failed", "Failed to store fetched dataset", err, nil)
		return
	}
	metrics.WritesTotal.WithLabelValues("ok").Inc()
	s.records = persons
	metrics.Records.Set(float64(len(persons)))
	metrics.SeedTotal.WithLabelValues("seeded").Inc()
	logger.Seed("seeded", "Seeded collection from dataset", map[string]interface{}{
		"count":    len(persons),
		"location": s.source.Location(),
		"duration": s.clock().Sub(start).String(),
	})
}

func (s *DirectoryServiceImpl) Seeded() <-chan struct{} {
	return s.seeded
}

func (s *DirectoryServiceImpl) OpenSession(ctx context.Context) (uuid.UUID, viewmodel.View) {
	id := uuid.New()
	now := s.clock()

	s.mu.Lock()
	entry := &sessionEntry{lastSeen: now}
	s.sessions[id] = entry
	view := viewmodel.Render(viewmodel.State{Records: s.records, Session: entry.state}, now)
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.Sessions.Set(float64(count))
	logger.Session(id.String(), "opened", "Session opened", nil)
	return id, view
}

func (s *DirectoryServiceImpl) CloseSession(id uuid.UUID) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	if ok {
		metrics.Sessions.Set(float64(count))
		logger.Session(id.String(), "closed", "Session closed", nil)
	}
}

func (s *DirectoryServiceImpl) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *DirectoryServiceImpl) SweepSessions(idle time.Duration) int {
	cutoff := s.clock().Add(-idle)

	s.mu.Lock()
	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.Sessions.Set(float64(count))
	return removed
}

func (s *DirectoryServiceImpl) Touch(ids ...uuid.UUID) {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if entry, ok := s.sessions[id]; ok {
			entry.lastSeen = now
		}
	}
}

func (s *DirectoryServiceImpl) View(id uuid.UUID) (viewmodel.View, error) {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return viewmodel.View{}, fmt.Errorf("%w: %s", services.ErrSessionNotFound, id)
	}
	entry.lastSeen = now
	return viewmodel.Render(viewmodel.State{Records: s.records, Session: entry.state}, now), nil
}

// Dispatch reduces one intent for a session. Mutations are written through
// before they are committed, so a failed write leaves everything unchanged.
func (s *DirectoryServiceImpl) Dispatch(ctx context.Context, id uuid.UUID, intent viewmodel.Intent) (viewmodel.View, error) {
	name := viewmodel.Name(intent)
	now := s.clock()

	s.mu.Lock()
	entry, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		metrics.IntentsTotal.WithLabelValues(name, "no_session").Inc()
		return viewmodel.View{}, fmt.Errorf("%w: %s", services.ErrSessionNotFound, id)
	}
	entry.lastSeen = now

	current := viewmodel.State{Records: s.records, Session: entry.state}
	res, err := viewmodel.Reduce(current, intent, now)
	if err != nil {
		s.mu.Unlock()
		metrics.IntentsTotal.WithLabelValues(name, "rejected").Inc()
		return viewmodel.Render(current, now), err
	}

	if res.Persist {
		if err := s.personRepo.SaveAll(ctx, res.State.Records); err != nil {
			s.mu.Unlock()
			metrics.WritesTotal.WithLabelValues("error").Inc()
			metrics.IntentsTotal.WithLabelValues(name, "error").Inc()
			logger.StoreError("write_through_failed", "Failed to persist collection", err, map[string]interface{}{
				"intent":     name,
				"session_id": id.String(),
			})
			return viewmodel.Render(current, now), fmt.Errorf("%w: %v", services.ErrPersistFailed, err)
		}
		metrics.WritesTotal.WithLabelValues("ok").Inc()
		s.records = res.State.Records
		metrics.Records.Set(float64(len(s.records)))
	}
	entry.state = res.State.Session
	view := viewmodel.Render(res.State, now)
	listeners := append([]func(services.ChangeEvent){}, s.listeners...)
	count := len(s.records)
	s.mu.Unlock()

	metrics.IntentsTotal.WithLabelValues(name, "ok").Inc()

	if res.Persist {
		evt := services.ChangeEvent{Intent: name, RecordID: recordID(intent, current), SessionID: id, Count: count}
		logger.Session(id.String(), "collection_changed", "Collection changed", map[string]interface{}{
			"intent":    name,
			"record_id": evt.RecordID,
			"count":     count,
		})
		for _, fn := range listeners {
			fn(evt)
		}
	}
	return view, nil
}

func recordID(intent viewmodel.Intent, before viewmodel.State) int {
	switch in := intent.(type) {
	case viewmodel.Delete:
		return in.ID
	case viewmodel.Save:
		return before.Session.Editing.ID
	}
	return 0
}

func (s *DirectoryServiceImpl) ListRecords(search string) []dto.PersonResponse {
	now := s.clock()
	s.mu.Lock()
	records := s.records
	s.mu.Unlock()
	return dto.PersonsToResponse(viewmodel.Filter(records, search), now)
}

// OnChange registers fn to run after every committed mutation, outside the lock.
func (s *DirectoryServiceImpl) OnChange(fn func(services.ChangeEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
