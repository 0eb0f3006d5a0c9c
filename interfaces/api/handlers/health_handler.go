package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"people-directory/domain/repositories"
	"people-directory/domain/services"
	wsmanager "people-directory/infrastructure/websocket"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	directoryService services.DirectoryService
	store            repositories.KeyValueStore
	storeDriver      string
}

func NewHealthHandler(directoryService services.DirectoryService, store repositories.KeyValueStore, storeDriver string) *HealthHandler {
	return &HealthHandler{
		directoryService: directoryService,
		store:            store,
		storeDriver:      storeDriver,
	}
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"` // "ok", "pending", "error"
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Metrics    HealthMetrics              `json:"metrics"`
}

type HealthMetrics struct {
	Records          int `json:"records"`
	Sessions         int `json:"sessions"`
	WebSocketClients int `json:"websocket_clients"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Server is running",
		"service": "People Directory API",
	})
}

// DetailedHealth godoc
// @Summary Get detailed system health
// @Description Store connectivity, bootstrap status and live counters
// @Tags Health
// @Produce json
// @Success 200 {object} DetailedHealthResponse
// @Router /health/detailed [get]
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	response := DetailedHealthResponse{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
		Metrics: HealthMetrics{
			Records:          len(h.directoryService.ListRecords("")),
			Sessions:         h.directoryService.SessionCount(),
			WebSocketClients: wsmanager.Manager.ClientCount(),
		},
	}

	storeHealth := h.checkStore(ctx)
	response.Components["store"] = storeHealth

	seedHealth := h.checkBootstrap()
	response.Components["bootstrap"] = seedHealth

	switch {
	case storeHealth.Status != "ok":
		response.Status = "unhealthy"
	case seedHealth.Status != "ok":
		response.Status = "degraded"
	default:
		response.Status = "healthy"
	}

	statusCode := fiber.StatusOK
	if response.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}
	return c.Status(statusCode).JSON(response)
}

func (h *HealthHandler) checkStore(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.store == nil {
		return ComponentHealth{Status: "error", Message: "Store not configured"}
	}
	if err := h.store.Ping(ctx); err != nil {
		return ComponentHealth{Status: "error", Message: h.storeDriver + " ping failed: " + err.Error()}
	}
	return ComponentHealth{
		Status:  "ok",
		Message: "Driver: " + h.storeDriver,
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkBootstrap() ComponentHealth {
	select {
	case <-h.directoryService.Seeded():
		return ComponentHealth{Status: "ok", Message: "Collection loaded"}
	default:
		return ComponentHealth{Status: "pending", Message: "Dataset fetch in progress"}
	}
}
