package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akhelifi/bibliosort/internal/db"
)

// Store persists classification events.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new event. If event.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	scores, err := json.Marshal(event.Scores)
	if err != nil {
		return fmt.Errorf("marshalling scores: %w", err)
	}

	overridden := 0
	if event.Overridden {
		overridden = 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO classification_events (
			id, document_name, automatic_code, final_code, overridden, scores
		) VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.DocumentName,
		event.AutomaticCode,
		event.FinalCode,
		overridden,
		string(scores),
	)
	if err != nil {
		return fmt.Errorf("inserting classification event: %w", err)
	}
	return nil
}

// GetByID retrieves a single event.
func (s *Store) GetByID(ctx context.Context, id string) (*Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, document_name, automatic_code, final_code, overridden, scores
		FROM classification_events WHERE id = ?`, id)
	return scanEvent(row)
}

// QueryFilter controls which events are returned by Query.
type QueryFilter struct {
	FinalCode      string
	OverriddenOnly bool
	Since          *time.Time
	Until          *time.Time
	Limit          int
	Offset         int
}

// Query returns events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.FinalCode != "" {
		clauses = append(clauses, "final_code = ?")
		args = append(args, filter.FinalCode)
	}
	if filter.OverriddenOnly {
		clauses = append(clauses, "overridden = 1")
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(time.DateTime))
	}

	query := "SELECT id, timestamp, document_name, automatic_code, final_code, overridden, scores FROM classification_events"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying classification events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(sc scanner) (*Event, error) {
	var (
		e          Event
		ts         string
		overridden int
		scoresJSON string
	)

	err := sc.Scan(&e.ID, &ts, &e.DocumentName, &e.AutomaticCode, &e.FinalCode, &overridden, &scoresJSON)
	if err != nil {
		return nil, err
	}

	e.Overridden = overridden != 0

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		e.Timestamp = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		e.Timestamp = t
	}

	var scores []Score
	if jsonErr := json.Unmarshal([]byte(scoresJSON), &scores); jsonErr == nil {
		e.Scores = scores
	}

	return &e, nil
}
