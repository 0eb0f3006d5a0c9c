package di

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"people-directory/application/serviceimpl"
	"people-directory/domain/models"
	"people-directory/domain/services"
	"people-directory/domain/viewmodel"
	"people-directory/infrastructure/kvstore"
	wsmanager "people-directory/infrastructure/websocket"
	"people-directory/pkg/config"
)

const sampleDataset = `[
  {"id": 1, "first": "Ann", "last": "Lee", "dob": "2000-01-01", "gender": "female", "country": "US", "description": "x"},
  {"id": 2, "first": "Bob", "last": "Stone", "dob": "2006-01-01", "gender": "male", "country": "US", "description": "y"}
]`

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "people.json")
	require.NoError(t, os.WriteFile(datasetPath, []byte(sampleDataset), 0644))

	return &config.Config{
		Store:   config.StoreConfig{Driver: driver, Key: "users"},
		SQLite:  config.SQLiteConfig{Path: filepath.Join(dir, "db", "directory.db")},
		Dataset: config.DatasetConfig{URL: datasetPath},
		JWT:     config.JWTConfig{Secret: "secret"},
		Session: config.SessionConfig{TTLMinutes: 30, SweepCronExpr: "*/5 * * * *"},
	}
}

func waitSeeded(t *testing.T, c *Container) {
	t.Helper()
	select {
	case <-c.DirectoryService.Seeded():
	case <-time.After(2 * time.Second):
		t.Fatal("bootstrap did not finish")
	}
}

func TestContainer_SeedsEmptyStore(t *testing.T) {
	for _, driver := range []string{config.StoreDriverMemory, config.StoreDriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			c := NewContainer(testConfig(t, driver))
			require.NoError(t, c.Initialize())
			defer c.Cleanup()

			waitSeeded(t, c)
			assert.Len(t, c.DirectoryService.ListRecords(""), 2)

			_, found, err := c.Store.Get(context.Background(), "users")
			require.NoError(t, err)
			assert.True(t, found)

			assert.True(t, c.Scheduler.IsRunning())
			assert.Contains(t, c.Scheduler.ListJobs(), sessionSweepJobID)
		})
	}
}

func TestContainer_SQLiteSurvivesRestart(t *testing.T) {
	cfg := testConfig(t, config.StoreDriverSQLite)

	first := NewContainer(cfg)
	require.NoError(t, first.Initialize())
	waitSeeded(t, first)
	require.NoError(t, first.Cleanup())

	// dataset gone: the second start must read the stored collection
	require.NoError(t, os.Remove(cfg.Dataset.URL))

	second := NewContainer(cfg)
	require.NoError(t, second.Initialize())
	defer second.Cleanup()
	waitSeeded(t, second)
	assert.Len(t, second.DirectoryService.ListRecords(""), 2)
}

func TestContainer_BadCronFails(t *testing.T) {
	cfg := testConfig(t, config.StoreDriverMemory)
	cfg.Session.SweepCronExpr = "sometimes"

	c := NewContainer(cfg)
	assert.Error(t, c.Initialize())
	c.Cleanup()
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := testConfig(t, "etcd")
	_, err := OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}

type recordingConn struct {
	mu   sync.Mutex
	sent []interface{}
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v)
	return nil
}

func (c *recordingConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func TestSweepIdleSessions_KeepsConnectedWatchers(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	store := kvstore.NewMemoryStore()
	repo := kvstore.NewPersonRepository(store, "users")
	require.NoError(t, repo.SaveAll(context.Background(), []models.Person{
		{ID: 1, First: "Ann", Last: "Lee", DOB: "2000-01-01", Gender: models.GenderFemale, Country: "US"},
		{ID: 2, First: "Bob", Last: "Stone", DOB: "2000-01-01", Gender: models.GenderMale, Country: "US"},
	}))
	svc := serviceimpl.NewDirectoryService(repo, nil, func() time.Time { return now })
	require.NoError(t, svc.Bootstrap(context.Background()))

	manager := wsmanager.NewManager()
	svc.OnChange(broadcastChange(svc, manager))

	watcher, _ := svc.OpenSession(context.Background())
	idleOnly, _ := svc.OpenSession(context.Background())
	conn := &recordingConn{}
	manager.RegisterClient(conn, watcher)
	defer manager.UnregisterClient(conn)

	now = now.Add(61 * time.Minute)
	assert.Equal(t, 1, sweepIdleSessions(svc, manager, 60*time.Minute))

	_, err := svc.View(watcher)
	require.NoError(t, err, "a connected session survives the sweep")
	_, err = svc.View(idleOnly)
	assert.ErrorIs(t, err, services.ErrSessionNotFound)

	actor, _ := svc.OpenSession(context.Background())
	_, err = svc.Dispatch(context.Background(), actor, viewmodel.Delete{ID: 1, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, conn.count(), "the watcher still receives views")
}

func TestNewPostgresStore_ClosesOnMigrationFailure(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	_, err = newPostgresStore(db, func(*gorm.DB) error { return errors.New("permission denied for schema public") })
	require.Error(t, err)
	assert.Error(t, sqlDB.Ping(), "connection pool must be closed")
}
