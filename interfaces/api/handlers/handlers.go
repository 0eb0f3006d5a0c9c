package handlers

import (
	"people-directory/domain/repositories"
	"people-directory/domain/services"
	"people-directory/pkg/config"
)

// Services contains everything the handlers depend on.
type Services struct {
	DirectoryService services.DirectoryService
	Store            repositories.KeyValueStore
	StoreDriver      string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Session   *SessionHandler
	Directory *DirectoryHandler
	Health    *HealthHandler
	Log       *LogHandler
}

func NewHandlers(svc *Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Session:   NewSessionHandler(svc.DirectoryService, cfg.JWT.Secret, cfg.Session.TTLMinutes),
		Directory: NewDirectoryHandler(svc.DirectoryService),
		Health:    NewHealthHandler(svc.DirectoryService, svc.Store, svc.StoreDriver),
		Log:       NewLogHandler(cfg),
	}
}
