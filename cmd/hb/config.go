package main

import (
	"fmt"
	"os"
	"time"

	"habit-bot/internal/api"
	"habit-bot/internal/cellstore"
	"habit-bot/internal/checklist"
	"habit-bot/internal/cli"
	"habit-bot/internal/config"
	"habit-bot/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		// Local database file in the working directory
		repo, err := sqlite.New(cfg.Database.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(cfg)
	}
}

// CreateStore creates the cell store; the testing environment never reaches the network
func (rf *RepositoryFactory) CreateStore(cfg *config.Config) (cellstore.Store, error) {
	if rf.env == Testing {
		return cellstore.NewMemory(nil), nil
	}
	return config.CreateStore(cfg)
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("HB_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}

// buildApp wires the application from the loaded configuration
func buildApp(cfg *config.Config) (*cli.App, func(), error) {
	factory := NewRepositoryFactory(getEnvironment())

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	repo, err := factory.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := factory.CreateStore(cfg)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}

	lists := checklist.New(store, checklist.WithClock(func() time.Time {
		return time.Now().In(loc)
	}))
	registry := api.New(repo)
	businessAPI := api.NewBusinessAPI(registry, lists)

	cleanup := func() {
		repo.Close()
	}
	return cli.NewApp(registry, businessAPI, lists, cfg), cleanup, nil
}
