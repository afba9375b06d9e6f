package repositories

import (
	"context"
	"fmt"
	"time"

	"sceneboard/internal/models/domain"
	"sceneboard/internal/models/repositories"

	"github.com/google/uuid"
)

// CreateEvent сохраняет новое событие. Строки событий создаются один
// раз и этим конвейером больше не изменяются.
func (r *Repository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	op := "repositories.CreateEvent()"

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	repoEvent := mapEventToRepo(event)

	insertQuery := `INSERT INTO events (
		id, name, starts_at, venue_id, artists, status, source, notes, link,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

	_, err := r.DB.ExecContext(ctx, insertQuery,
		repoEvent.ID,
		repoEvent.Name,
		repoEvent.StartsAt,
		repoEvent.VenueID,
		repoEvent.Artists,
		repoEvent.Status,
		repoEvent.Source,
		repoEvent.Notes,
		repoEvent.Link,
	)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

// EventNamesOn возвращает названия событий площадки, начинающихся в
// указанные календарные сутки UTC. Это набор сравнения дедупликации:
// он ограничен площадкой и датой, а не глобальным индексом.
func (r *Repository) EventNamesOn(ctx context.Context, venueID int64, day time.Time) ([]string, error) {
	op := "repositories.EventNamesOn()"

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var names []string
	query := `SELECT name FROM events WHERE venue_id = $1 AND starts_at >= $2 AND starts_at < $3`
	if err := r.DB.SelectContext(ctx, &names, query, venueID, dayStart, dayEnd); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return names, nil
}

func mapEventToRepo(e domain.Event) repositories.Event {
	return repositories.Event{
		BaseModel: repositories.BaseModel{
			ID: e.ID,
		},
		Name:     e.Name,
		StartsAt: e.StartsAt.UTC(),
		VenueID:  e.VenueID,
		Artists:  e.Artists,
		Status:   string(e.Status),
		Source:   e.Source,
		Notes:    e.Notes,
		Link:     e.Link,
	}
}
