package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus представляет статус события в модерационном цикле
type EventStatus string

const (
	// EventStatusPending — событие подано анонимно и ждёт модерации
	EventStatusPending EventStatus = "pending"
	// EventStatusApproved — событие одобрено и показывается в афише
	EventStatusApproved EventStatus = "approved"
	// EventStatusRejected — событие отклонено модератором
	EventStatusRejected EventStatus = "rejected"
)

// Venue - доменная модель площадки с опциональным iCal-фидом
type Venue struct {
	ID         int64
	Name       string
	Address    string
	FeedURL    string
	Timezone   string // IANA-имя зоны для «наивных» дат фида; пусто = UTC
	LastPolled *time.Time
}

// HasFeed сообщает, настроен ли у площадки iCal-фид.
func (v Venue) HasFeed() bool {
	return v.FeedURL != ""
}

// Event - доменная модель мероприятия
type Event struct {
	ID       uuid.UUID
	Name     string
	StartsAt time.Time // всегда в UTC
	VenueID  int64
	Artists  string
	Status   EventStatus
	Source   string
	Notes    string
	Link     string
}

// FeedEntry — кандидат события, извлечённый из одного VEVENT фида.
// Живёт только внутри обработки одной площадки и не сохраняется.
type FeedEntry struct {
	Summary     string
	Start       StartValue
	Description string
	URL         string
}

// StartValue — сырое представление DTSTART до нормализации.
type StartValue struct {
	Raw      string // значение свойства как в фиде
	TZID     string // параметр TZID, если задан
	DateOnly bool   // VALUE=DATE либо значение без компонента времени
}
