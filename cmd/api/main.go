package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"people-directory/interfaces/api/handlers"
	"people-directory/interfaces/api/middleware"
	"people-directory/interfaces/api/routes"
	"people-directory/pkg/config"
	"people-directory/pkg/di"
	"people-directory/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log.Dir, cfg.Log.Console); err != nil {
		fmt.Printf("Warning: Failed to initialize logger: %v\n", err)
	}
	logger.Default().SetMinLevel(logger.Level(cfg.Log.Level))
	logger.Startup("logger_init", "Logger initialized", map[string]interface{}{"dir": cfg.Log.Dir})

	container := di.NewContainer(cfg)

	if err := container.Initialize(); err != nil {
		logger.StartupError("container_init_failed", "Failed to initialize container", err, nil)
		os.Exit(1)
	}

	setupGracefulShutdown(container)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
	})

	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware())

	h := handlers.NewHandlers(container.GetHandlerServices(), cfg)
	routes.SetupRoutes(app, h, container.DirectoryService, cfg)

	port := cfg.App.Port
	logger.Startup("server_starting", "Server starting", map[string]interface{}{
		"port":         port,
		"environment":  cfg.App.Env,
		"store_driver": cfg.Store.Driver,
		"health":       fmt.Sprintf("http://localhost:%s/health", port),
		"api":          fmt.Sprintf("http://localhost:%s/api/v1", port),
		"metrics":      fmt.Sprintf("http://localhost:%s/metrics", port),
		"websocket":    fmt.Sprintf("ws://localhost:%s/ws", port),
		"logs_api":     fmt.Sprintf("http://localhost:%s/api/v1/admin/logs", port),
	})

	if err := app.Listen(":" + port); err != nil {
		logger.StartupError("server_failed", "Server failed to start", err, nil)
		os.Exit(1)
	}
}

func setupGracefulShutdown(container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Startup("shutdown_started", "Gracefully shutting down", nil)

		if err := container.Cleanup(); err != nil {
			logger.StartupError("cleanup_failed", "Error during cleanup", err, nil)
		}

		logger.Startup("shutdown_complete", "Shutdown complete", nil)
		os.Exit(0)
	}()
}
