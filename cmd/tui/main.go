package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"people-directory/application/serviceimpl"
	"people-directory/domain/repositories"
	"people-directory/infrastructure/dataset"
	"people-directory/infrastructure/kvstore"
	"people-directory/interfaces/tui"
	"people-directory/pkg/config"
	"people-directory/pkg/di"
	"people-directory/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// the terminal belongs to the UI, logs go to files only
	if err := logger.Init(cfg.Log.Dir, false); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := di.OpenStore(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer store.Close()

	var source repositories.DatasetSource
	if src, err := dataset.NewSource(cfg.Dataset.URL, cfg.Minio); err != nil {
		logger.StartupWarn("dataset_not_configured", "Dataset source unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		source = src
	}

	svc := serviceimpl.NewDirectoryService(kvstore.NewPersonRepository(store, cfg.Store.Key), source, time.Now)
	if err := svc.Bootstrap(context.Background()); err != nil {
		logger.StartupWarn("bootstrap_failed", "Bootstrap failed, starting with an empty collection", map[string]interface{}{"error": err.Error()})
	}

	model := tui.NewModel(svc)
	defer model.Close()

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
