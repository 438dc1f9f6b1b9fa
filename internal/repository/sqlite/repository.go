package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"habit-bot/internal/errors"
	"habit-bot/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for the subscriber registry.
// The registry is append-only: there is no removal operation.
type Repository interface {
	// AddSubscriber registers a user; it reports false if the user was already known
	AddSubscriber(ctx context.Context, sub *Subscriber) (bool, error)

	GetSubscriber(ctx context.Context, userID int64) (*Subscriber, error)
	ListSubscribers(ctx context.Context) ([]*Subscriber, error)

	// Utility
	Close() error
}

// Options tunes the connection; zero values mean no limit
type Options struct {
	QueryTimeout   time.Duration
	DirPermissions os.FileMode
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a repository, creating the parent directory of dbPath if needed
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		perm := opts.DirPermissions
		if perm == 0 {
			perm = 0o755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perm); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// a single connection keeps :memory: databases alive across calls
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

// AddSubscriber inserts the subscriber unless it already exists
func (r *SQLiteRepository) AddSubscriber(ctx context.Context, sub *Subscriber) (bool, error) {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT OR IGNORE INTO subscribers (user_id, created_at)
	VALUES (?, ?)`

	rows, err := ExecuteCountingRows(ctx, r.db, query, sub.UserID, FormatTimeForDB(sub.CreatedAt.UTC()))
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// GetSubscriber retrieves a subscriber by user ID
func (r *SQLiteRepository) GetSubscriber(ctx context.Context, userID int64) (*Subscriber, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT user_id, created_at FROM subscribers WHERE user_id = ?`
	return QuerySingle(ctx, r.db, query, ScanSubscriber, "subscriber", idString(userID), userID)
}

// ListSubscribers retrieves all subscribers in registration order
func (r *SQLiteRepository) ListSubscribers(ctx context.Context) ([]*Subscriber, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT user_id, created_at
	FROM subscribers
	ORDER BY created_at ASC, user_id ASC`

	return QueryMultiple(ctx, r.db, query, ScanSubscribers, "subscribers")
}
