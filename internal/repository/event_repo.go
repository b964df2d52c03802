package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartroom/internal/models"
)

const insertEventSQL = `
		INSERT INTO room_events (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`

// sqliteTimestamp is the layout stored in occurred_at.
const sqliteTimestamp = "2006-01-02 15:04:05"

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite {
	return &EventSQLite{db: db}
}

var _ EventRepo = (*EventSQLite)(nil)

// Append inserts one event. A missing ID or timestamp is filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.RoomEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for event %q: %w", e.EventID, err)
		}
		s := string(b)
		metaPtr = &s
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(sqliteTimestamp),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert event %q: %w", e.EventID, err)
	}
	return nil
}
