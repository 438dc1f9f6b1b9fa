package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanSubscriber scans a single subscriber from a database row
func ScanSubscriber(scanner Scanner) (*Subscriber, error) {
	sub := &Subscriber{}
	var createdAt string

	if err := scanner.Scan(&sub.UserID, &createdAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}
	sub.CreatedAt = t

	return sub, nil
}

// ScanSubscribers scans multiple subscribers from database rows
func ScanSubscribers(rows Rows) ([]*Subscriber, error) {
	var subs []*Subscriber
	for rows.Next() {
		sub, err := ScanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}
