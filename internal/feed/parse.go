package feed

import (
	"bytes"
	"fmt"
	"strings"

	ical "github.com/arran4/golang-ical"

	"sceneboard/internal/models/domain"
)

// ParseError — фид не является корректным iCalendar-документом.
// Ошибка уровня площадки, её ловит оркестратор.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse разбирает iCal-документ в упорядоченный список кандидатов.
// Учитываются только VEVENT-компоненты, порядок фида сохраняется.
// VEVENT без SUMMARY пропускается молча: без названия запись бесполезна
// и для афиши, и для дедупликации. Отсутствующие DESCRIPTION/URL
// считаются пустыми, а не ошибкой записи.
func Parse(raw []byte) ([]domain.FeedEntry, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	entries := make([]domain.FeedEntry, 0)

	for _, ve := range cal.Events() {
		var entry domain.FeedEntry

		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			entry.Summary = strings.TrimSpace(p.Value)
		}
		if entry.Summary == "" {
			continue
		}

		if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
			entry.Description = strings.TrimSpace(p.Value)
		}
		if p := ve.GetProperty(ical.ComponentPropertyUrl); p != nil {
			entry.URL = strings.TrimSpace(p.Value)
		}

		entry.Start = parseStart(ve)

		entries = append(entries, entry)
	}

	return entries, nil
}

// parseStart снимает сырое значение DTSTART вместе с параметрами.
// Признак «только дата»: VALUE=DATE либо значение без 'T'.
func parseStart(ve *ical.VEvent) domain.StartValue {
	var sv domain.StartValue

	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return sv
	}

	sv.Raw = strings.TrimSpace(prop.Value)

	if params := prop.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			sv.DateOnly = true
		}
		if tzs, ok := params["TZID"]; ok && len(tzs) > 0 {
			sv.TZID = tzs[0]
		}
	}
	if sv.Raw != "" && !strings.Contains(sv.Raw, "T") {
		sv.DateOnly = true
	}

	return sv
}
