package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sceneboard/internal/models/domain"
)

// ErrNoStart — у записи нет DTSTART; запись пропускается.
var ErrNoStart = errors.New("entry has no start time")

const (
	layoutDate      = "20060102"
	layoutDateTime  = "20060102T150405"
	layoutDateTimeZ = "20060102T150405Z"
)

// NormalizeStart приводит сырое значение DTSTART к моменту в UTC.
//
//   - только дата → полночь UTC этой даты;
//   - значение с суффиксом Z либо с TZID → перевод в UTC;
//   - дата-время без зоны → считается UTC (политика: фиды без зоны
//     публикуют UTC), либо интерпретируется в fallback, если площадка
//     задала собственную зону.
//
// Отсутствующее или неразбираемое значение — ошибка уровня записи,
// не уровня площадки.
func NormalizeStart(sv domain.StartValue, fallback *time.Location) (time.Time, error) {
	raw := strings.TrimSpace(sv.Raw)
	if raw == "" {
		return time.Time{}, ErrNoStart
	}
	if fallback == nil {
		fallback = time.UTC
	}

	if sv.DateOnly {
		t, err := time.ParseInLocation(layoutDate, raw, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("date-only start %q: %w", raw, err)
		}
		return t, nil
	}

	if strings.HasSuffix(raw, "Z") {
		t, err := time.Parse(layoutDateTimeZ, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("utc start %q: %w", raw, err)
		}
		return t.UTC(), nil
	}

	loc := fallback
	if sv.TZID != "" {
		l, err := time.LoadLocation(sv.TZID)
		if err != nil {
			return time.Time{}, fmt.Errorf("tzid %q: %w", sv.TZID, err)
		}
		loc = l
	}

	t, err := time.ParseInLocation(layoutDateTime, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("start %q: %w", raw, err)
	}

	return t.UTC(), nil
}
