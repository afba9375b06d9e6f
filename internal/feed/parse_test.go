package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ics(lines ...string) []byte {
	all := append([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//sceneboard//test//EN",
	}, lines...)
	all = append(all, "END:VCALENDAR", "")

	return []byte(strings.Join(all, "\r\n"))
}

func TestParse_KeepsFeedOrder(t *testing.T) {
	raw := ics(
		"BEGIN:VEVENT",
		"UID:1@test",
		"SUMMARY:First Show",
		"DTSTART:20260325T200000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2@test",
		"SUMMARY:Second Show",
		"DTSTART:20260326T200000Z",
		"END:VEVENT",
	)

	entries, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "First Show", entries[0].Summary)
	assert.Equal(t, "Second Show", entries[1].Summary)
}

func TestParse_DropsEntriesWithoutSummary(t *testing.T) {
	raw := ics(
		"BEGIN:VEVENT",
		"UID:1@test",
		"DTSTART:20260325T200000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2@test",
		"SUMMARY:Named Show",
		"DTSTART:20260326T200000Z",
		"END:VEVENT",
	)

	entries, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Named Show", entries[0].Summary)
}

func TestParse_OptionalFields(t *testing.T) {
	raw := ics(
		"BEGIN:VEVENT",
		"UID:1@test",
		"SUMMARY:Night Owls",
		"DTSTART:20260325T200000Z",
		"DESCRIPTION:Late night jazz",
		"URL:https://example.com/night-owls",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2@test",
		"SUMMARY:Bare Minimum",
		"DTSTART:20260326T200000Z",
		"END:VEVENT",
	)

	entries, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Late night jazz", entries[0].Description)
	assert.Equal(t, "https://example.com/night-owls", entries[0].URL)

	assert.Empty(t, entries[1].Description)
	assert.Empty(t, entries[1].URL)
}

func TestParse_StartValueVariants(t *testing.T) {
	raw := ics(
		"BEGIN:VEVENT",
		"UID:1@test",
		"SUMMARY:Timed UTC",
		"DTSTART:20260325T200000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2@test",
		"SUMMARY:Date Only",
		"DTSTART;VALUE=DATE:20260327",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:3@test",
		"SUMMARY:Zoned",
		"DTSTART;TZID=Europe/Madrid:20260710T210000",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:4@test",
		"SUMMARY:No Start",
		"END:VEVENT",
	)

	entries, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "20260325T200000Z", entries[0].Start.Raw)
	assert.False(t, entries[0].Start.DateOnly)

	assert.Equal(t, "20260327", entries[1].Start.Raw)
	assert.True(t, entries[1].Start.DateOnly)

	assert.Equal(t, "Europe/Madrid", entries[2].Start.TZID)
	assert.False(t, entries[2].Start.DateOnly)

	assert.Empty(t, entries[3].Start.Raw)
}

func TestParse_IgnoresNonEventComponents(t *testing.T) {
	raw := ics(
		"BEGIN:VTODO",
		"UID:todo@test",
		"SUMMARY:Fix the stage lights",
		"END:VTODO",
		"BEGIN:VEVENT",
		"UID:1@test",
		"SUMMARY:Actual Show",
		"DTSTART:20260325T200000Z",
		"END:VEVENT",
	)

	entries, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Actual Show", entries[0].Summary)
}

func TestParse_InvalidDocument(t *testing.T) {
	_, err := Parse([]byte("this is not a calendar"))
	require.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
