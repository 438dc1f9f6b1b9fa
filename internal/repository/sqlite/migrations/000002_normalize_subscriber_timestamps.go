package migrations

import (
	"database/sql"
	"fmt"
	"time"

	"habit-bot/internal/logging"
)

func init() {
	RegisterGoMigration(2, Up_000002_normalize_subscriber_timestamps, Down_000002_normalize_subscriber_timestamps)
}

// Up_000002_normalize_subscriber_timestamps rewrites created_at values to RFC3339.
// Rows inserted by hand or by the column default use SQLite's
// "YYYY-MM-DD HH:MM:SS" form, which the repository cannot scan.
func Up_000002_normalize_subscriber_timestamps(tx *sql.Tx) error {
	type row struct {
		userID    int64
		createdAt string
	}
	var pending []row

	rows, err := tx.Query("SELECT user_id, created_at FROM subscribers")
	if err != nil {
		return fmt.Errorf("failed to query subscribers: %w", err)
	}
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.userID, &r.createdAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan subscriber: %w", err)
		}
		pending = append(pending, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating subscribers: %w", err)
	}
	rows.Close()

	stmt, err := tx.Prepare("UPDATE subscribers SET created_at = ? WHERE user_id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	updates := 0
	for _, r := range pending {
		normalized, err := toRFC3339(r.createdAt)
		if err != nil {
			logging.Errorf("could not parse created_at for subscriber %d: %v", r.userID, err)
			continue
		}
		if normalized == r.createdAt {
			continue
		}
		if _, err := stmt.Exec(normalized, r.userID); err != nil {
			return fmt.Errorf("failed to update subscriber %d: %w", r.userID, err)
		}
		updates++
	}

	logging.Debugf("normalized %d of %d subscriber timestamps\n", updates, len(pending))
	return nil
}

// Down_000002_normalize_subscriber_timestamps converts RFC3339 back to SQLite's basic format.
func Down_000002_normalize_subscriber_timestamps(tx *sql.Tx) error {
	_, err := tx.Exec(`
		UPDATE subscribers
		SET created_at = substr(created_at, 1, 10) || ' ' || substr(created_at, 12, 8)
		WHERE created_at GLOB '????-??-??T??:??:??*'
	`)
	if err != nil {
		return fmt.Errorf("failed to revert created_at: %w", err)
	}
	return nil
}

func toRFC3339(s string) (string, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("could not parse time format: %s", s)
}
