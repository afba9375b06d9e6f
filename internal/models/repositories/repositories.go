package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type BaseModel struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Venue struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Address     string         `db:"address"`
	IcalFeedURL string         `db:"ical_feed_url"`
	Timezone    sql.NullString `db:"timezone"`
	LastPolled  sql.NullTime   `db:"last_polled"`
	CreatedAt   time.Time      `db:"created_at"`
}

type Event struct {
	BaseModel
	Name     string    `db:"name"`
	StartsAt time.Time `db:"starts_at"`
	VenueID  int64     `db:"venue_id"`
	Artists  string    `db:"artists"`
	Status   string    `db:"status"`
	Source   string    `db:"source"`
	Notes    string    `db:"notes"`
	Link     string    `db:"link"`
}
