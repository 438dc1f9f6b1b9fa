package config

import (
	"fmt"

	"habit-bot/internal/cellstore"
)

// CreateStore creates the cell store the checklists read from. Offline mode
// uses an empty in-memory sheet.
func CreateStore(config *Config) (cellstore.Store, error) {
	if config.Store.Offline {
		return cellstore.NewMemory(nil), nil
	}

	client, err := cellstore.NewClient(config.Store.URL, cellstore.WithTimeout(config.Store.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cell store: %w", err)
	}
	return client, nil
}
