package poller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"sceneboard/internal/feed"
	"sceneboard/internal/models/domain"
)

// VenueStore — доступ к площадкам (внешнее хранилище).
type VenueStore interface {
	ListVenuesWithFeed(ctx context.Context, venueID int64) ([]domain.Venue, error)
	MarkVenuePolled(ctx context.Context, venueID int64, at time.Time) error
}

// EventStore — доступ к событиям (внешнее хранилище).
type EventStore interface {
	EventNamesOn(ctx context.Context, venueID int64, day time.Time) ([]string, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
}

// Fetcher скачивает фид по URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ParseFunc разбирает сырой фид в кандидатов. Узкий контракт:
// оркестратору всё равно, какая библиотека разбора за ним стоит.
type ParseFunc func(raw []byte) ([]domain.FeedEntry, error)

// Options — параметры одного запуска.
type Options struct {
	// VenueID ограничивает опрос одной площадкой; 0 = все с фидами.
	VenueID int64
	// DryRun выполняет все чтения и проверки, но подавляет любые записи.
	DryRun bool
}

// Summary — итог одного запуска.
type Summary struct {
	Created int // создано событий
	Skipped int // дубликаты, прошедшие и записи без пригодной даты
	Errors  int // ошибок уровня площадки
}

// DefaultPastGrace — льготное окно отсечки: событие, начавшееся менее
// часа назад, на момент опроса ещё считается актуальным.
const DefaultPastGrace = time.Hour

// Poller опрашивает iCal-фиды площадок и импортирует будущие события.
// Площадки обрабатываются строго последовательно; сбой фида одной
// площадки никогда не прерывает обработку остальных.
type Poller struct {
	logger    *slog.Logger
	venues    VenueStore
	events    EventStore
	fetcher   Fetcher
	parse     ParseFunc
	now       func() time.Time
	pastGrace time.Duration
	out       io.Writer
	errOut    io.Writer
}

// New создаёт Poller. Часы (now) и льготное окно передаются явно ради
// детерминированных тестов политики отсечки и bookkeeping-записи.
func New(
	logger *slog.Logger,
	venues VenueStore,
	events EventStore,
	fetcher Fetcher,
	parse ParseFunc,
	now func() time.Time,
	pastGrace time.Duration,
	out io.Writer,
	errOut io.Writer,
) *Poller {
	if now == nil {
		now = time.Now
	}
	if pastGrace <= 0 {
		pastGrace = DefaultPastGrace
	}

	return &Poller{
		logger:    logger,
		venues:    venues,
		events:    events,
		fetcher:   fetcher,
		parse:     parse,
		now:       now,
		pastGrace: pastGrace,
		out:       out,
		errOut:    errOut,
	}
}

// Run выполняет один проход опроса: выбирает площадки с фидами,
// обрабатывает их по очереди и печатает сводку. Ошибки уровня площадки
// учитываются в сводке и не прерывают проход; ошибкой Run является
// только невозможность получить список площадок.
func (p *Poller) Run(ctx context.Context, opts Options) (Summary, error) {
	op := "poller.Poller.Run()"
	log := p.logger.With(slog.String("op", op))

	var sum Summary

	if opts.DryRun {
		fmt.Fprintln(p.out, "Dry run — no database writes")
	}

	venues, err := p.venues.ListVenuesWithFeed(ctx, opts.VenueID)
	if err != nil {
		return sum, fmt.Errorf("%s: %w", op, err)
	}

	if len(venues) == 0 {
		fmt.Fprintln(p.out, "No venues with iCal feeds found.")
		return sum, nil
	}

	for _, venue := range venues {
		fmt.Fprintf(p.out, "Polling: %s\n", venue.Name)

		created, skipped, verr := p.pollVenue(ctx, venue, opts.DryRun)
		if verr != nil {
			sum.Errors++
			log.Error("feed error",
				slog.String("venue", venue.Name),
				slog.String("url", venue.FeedURL),
				slog.String("error", verr.Error()),
			)
			fmt.Fprintf(p.errOut, "  Feed error for %s: %v\n", venue.Name, verr)

			continue
		}

		sum.Created += created
		sum.Skipped += skipped
		fmt.Fprintf(p.out, "  %d created, %d skipped\n", created, skipped)
	}

	fmt.Fprintf(p.out, "Poll complete — %d created, %d duplicates/past, %d feed errors\n",
		sum.Created, sum.Skipped, sum.Errors)

	return sum, nil
}

// pollVenue скачивает, разбирает и импортирует события одного фида.
// Возвращаемая ошибка — уровня площадки; уже созданные к этому моменту
// события не откатываются.
func (p *Poller) pollVenue(ctx context.Context, venue domain.Venue, dryRun bool) (created, skipped int, err error) {
	op := "poller.Poller.pollVenue()"
	log := p.logger.With(
		slog.String("op", op),
		slog.String("venue", venue.Name),
	)

	raw, err := p.fetcher.Fetch(ctx, venue.FeedURL)
	if err != nil {
		return 0, 0, err
	}

	entries, err := p.parse(raw)
	if err != nil {
		return 0, 0, err
	}

	now := p.now().UTC()
	cutoff := now.Add(-p.pastGrace)
	fallback := venueLocation(log, venue)

	for _, entry := range entries {
		startsAt, nerr := feed.NormalizeStart(entry.Start, fallback)
		if nerr != nil {
			// Ошибка уровня записи: пропускаем только её.
			log.Warn("start time normalization failed",
				slog.String("summary", entry.Summary),
				slog.String("error", nerr.Error()),
			)
			skipped++

			continue
		}

		if startsAt.Before(cutoff) {
			skipped++
			continue
		}

		day := startsAt.Truncate(24 * time.Hour)
		existing, derr := p.events.EventNamesOn(ctx, venue.ID, day)
		if derr != nil {
			return created, skipped, derr
		}
		if containsNormalized(existing, entry.Summary) {
			log.Debug("event already exists", slog.String("name", entry.Summary))
			skipped++

			continue
		}

		if dryRun {
			fmt.Fprintf(p.out, "  [dry-run] %s on %s\n", entry.Summary, startsAt.Format("2006-01-02"))
			created++

			continue
		}

		event := domain.Event{
			Name:     entry.Summary,
			StartsAt: startsAt,
			VenueID:  venue.ID,
			// В iCal нет структурированного поля исполнителей;
			// название — лучшее доступное приближение.
			Artists: entry.Summary,
			Status:  domain.EventStatusApproved,
			Source:  "iCal: " + venue.Name,
			Notes:   entry.Description,
			Link:    sanitizeLink(entry.URL),
		}

		saved, cerr := p.events.CreateEvent(ctx, event)
		if cerr != nil {
			return created, skipped, cerr
		}
		created++

		log.Debug("event created",
			slog.String("name", saved.Name),
			slog.String("startsAt", saved.StartsAt.Format(time.RFC3339)),
		)
	}

	if !dryRun {
		if berr := p.venues.MarkVenuePolled(ctx, venue.ID, now); berr != nil {
			return created, skipped, berr
		}
	}

	return created, skipped, nil
}

// venueLocation возвращает зону площадки для «наивных» дат фида.
// Неизвестная зона не валит площадку: остаётся политика UTC.
func venueLocation(log *slog.Logger, venue domain.Venue) *time.Location {
	if venue.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(venue.Timezone)
	if err != nil {
		log.Warn("invalid venue timezone, assuming UTC",
			slog.String("timezone", venue.Timezone),
		)
		return time.UTC
	}

	return loc
}

// sanitizeLink оставляет только абсолютные http(s)-ссылки;
// всё остальное сбрасывается в пустую строку.
func sanitizeLink(link string) string {
	link = strings.TrimSpace(link)
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}

	return ""
}
