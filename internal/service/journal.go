package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartroom/internal/logger"
	"smartroom/internal/models"
	"smartroom/internal/repository"
)

const journalWriteTimeout = 2 * time.Second

// JournalService appends node events to the event repository.
type JournalService struct {
	eventRepo repository.EventRepo
	log       *logger.Logger
	now       func() time.Time
}

func NewJournalService(eventRepo repository.EventRepo, log *logger.Logger) *JournalService {
	if log == nil {
		log = logger.Nop()
	}
	return &JournalService{eventRepo: eventRepo, log: log, now: time.Now}
}

// Record stamps and stores one event. Failures are logged and dropped.
func (s *JournalService) Record(eventType, description string, metadata map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
	defer cancel()

	ev := models.RoomEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.now().UTC(),
		Type:        strings.ToUpper(strings.TrimSpace(eventType)),
		Description: description,
	}
	if len(metadata) > 0 {
		ev.Metadata = metadata
	}
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		s.log.Errorw("journal_append_failed", "err", err, "type", ev.Type)
	}
}
