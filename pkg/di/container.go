package di

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"people-directory/application/serviceimpl"
	"people-directory/domain/dto"
	"people-directory/domain/repositories"
	"people-directory/domain/services"
	"people-directory/infrastructure/dataset"
	"people-directory/infrastructure/kvstore"
	wsmanager "people-directory/infrastructure/websocket"
	"people-directory/interfaces/api/handlers"
	"people-directory/pkg/config"
	"people-directory/pkg/logger"
	"people-directory/pkg/scheduler"
)

const sessionSweepJobID = "session-sweep"

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	Store     repositories.KeyValueStore
	Dataset   repositories.DatasetSource
	Scheduler *scheduler.GocronScheduler

	// Repositories
	PersonRepository repositories.PersonRepository

	// Services
	DirectoryService services.DirectoryService
}

func NewContainer(cfg *config.Config) *Container {
	return &Container{Config: cfg}
}

func (c *Container) Initialize() error {
	if c.Config == nil {
		return fmt.Errorf("container has no configuration")
	}
	logger.Startup("config_loaded", "Configuration loaded", map[string]interface{}{
		"store_driver": c.Config.Store.Driver,
		"dataset":      c.Config.Dataset.URL,
	})

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := OpenStore(ctx, c.Config)
	if err != nil {
		return err
	}
	c.Store = store

	source, err := dataset.NewSource(c.Config.Dataset.URL, c.Config.Minio)
	if err != nil {
		// the dataset only matters when nothing is stored yet
		logger.StartupWarn("dataset_not_configured", "Dataset source unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		c.Dataset = source
		logger.Startup("dataset_configured", "Dataset source configured", map[string]interface{}{"location": source.Location()})
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.PersonRepository = kvstore.NewPersonRepository(c.Store, c.Config.Store.Key)
	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	svc := serviceimpl.NewDirectoryService(c.PersonRepository, c.Dataset, time.Now)
	c.DirectoryService = svc

	svc.OnChange(broadcastChange(svc, wsmanager.Manager))

	// a malformed stored value is logged and the server runs with an empty collection
	if err := svc.Bootstrap(context.Background()); err != nil {
		logger.StartupWarn("bootstrap_failed", "Bootstrap failed, starting with an empty collection", map[string]interface{}{"error": err.Error()})
	}

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	c.Scheduler = scheduler.NewScheduler()

	idle := time.Duration(c.Config.Session.TTLMinutes) * time.Minute
	err := c.Scheduler.AddJob(sessionSweepJobID, c.Config.Session.SweepCronExpr, func() {
		sweepIdleSessions(c.DirectoryService, wsmanager.Manager, idle)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	c.Scheduler.Start()
	logger.Startup("scheduler_started", "Scheduler started", map[string]interface{}{"session_sweep": c.Config.Session.SweepCronExpr})
	return nil
}

// broadcastChange pushes every other connected session its own fresh view.
func broadcastChange(svc services.DirectoryService, manager *wsmanager.WebSocketManager) func(services.ChangeEvent) {
	return func(evt services.ChangeEvent) {
		sent := manager.BroadcastViews(evt.SessionID, func(sessionID uuid.UUID) (interface{}, error) {
			view, err := svc.View(sessionID)
			if err != nil {
				return nil, err
			}
			return dto.WSMessage{Type: "view", Data: view}, nil
		})
		if sent > 0 {
			logger.WebSocket("views_pushed", "Pushed views after change", map[string]interface{}{
				"intent":  evt.Intent,
				"clients": sent,
			})
		}
	}
}

// sweepIdleSessions drops idle sessions. A session with an open websocket is
// never idle, even when it only watches.
func sweepIdleSessions(svc services.DirectoryService, manager *wsmanager.WebSocketManager, idle time.Duration) int {
	svc.Touch(manager.SessionIDs()...)
	removed := svc.SweepSessions(idle)
	if removed > 0 {
		logger.Scheduler("sessions_swept", "Dropped idle sessions", map[string]interface{}{
			"removed":   removed,
			"remaining": svc.SessionCount(),
		})
	}
	return removed
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	if c.Scheduler != nil && c.Scheduler.IsRunning() {
		c.Scheduler.Stop()
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			logger.StartupWarn("store_close_failed", "Failed to close store", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("store_closed", "Store closed", nil)
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		DirectoryService: c.DirectoryService,
		Store:            c.Store,
		StoreDriver:      c.Config.Store.Driver,
	}
}
