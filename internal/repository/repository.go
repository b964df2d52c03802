package repository

import (
	"context"
	"database/sql"

	"smartroom/internal/models"
)

// EventRepo is the append-only event journal.
type EventRepo interface {
	Append(ctx context.Context, e models.RoomEvent) error
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
