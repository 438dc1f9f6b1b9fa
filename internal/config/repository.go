package config

import (
	"fmt"
	"os"

	"habit-bot/internal/repository/sqlite"
)

// CreateRepository creates the subscriber registry using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	dbPath := config.GetDatabasePath()

	repo, err := sqlite.NewWithOptions(dbPath, sqlite.Options{
		QueryTimeout:   config.Database.QueryTimeout,
		DirPermissions: os.FileMode(config.Database.DirPermissions),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
