package repositories

import (
	"context"
	"fmt"
	"time"

	"sceneboard/internal/models/domain"
	"sceneboard/internal/models/repositories"
)

// ListVenuesWithFeed возвращает площадки с непустым iCal-фидом.
// venueID != 0 ограничивает выборку одной площадкой.
func (r *Repository) ListVenuesWithFeed(ctx context.Context, venueID int64) ([]domain.Venue, error) {
	op := "repositories.ListVenuesWithFeed()"

	query := `SELECT id, name, address, ical_feed_url, timezone, last_polled, created_at
	          FROM venues WHERE ical_feed_url <> ''`
	args := []interface{}{}
	if venueID != 0 {
		query += ` AND id = $1`
		args = append(args, venueID)
	}
	query += ` ORDER BY name ASC`

	var repoVenues []repositories.Venue
	if err := r.DB.SelectContext(ctx, &repoVenues, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.Venue, len(repoVenues))
	for i, v := range repoVenues {
		result[i] = mapVenueToDomain(v)
	}

	return result, nil
}

// MarkVenuePolled записывает отметку успешного опроса фида площадки.
func (r *Repository) MarkVenuePolled(ctx context.Context, venueID int64, at time.Time) error {
	op := "repositories.MarkVenuePolled()"

	result, err := r.DB.ExecContext(ctx,
		`UPDATE venues SET last_polled = $1 WHERE id = $2`,
		at.UTC(), venueID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: error checking rows affected: %w", op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: venue with id %d not found", op, venueID)
	}

	return nil
}

func mapVenueToDomain(v repositories.Venue) domain.Venue {
	out := domain.Venue{
		ID:      v.ID,
		Name:    v.Name,
		Address: v.Address,
		FeedURL: v.IcalFeedURL,
	}
	if v.Timezone.Valid {
		out.Timezone = v.Timezone.String
	}
	if v.LastPolled.Valid {
		t := v.LastPolled.Time.UTC()
		out.LastPolled = &t
	}

	return out
}
