package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/tickle/internal/service"
)

func TestEntry_Line(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	entry := Entry{Timestamp: ts, Command: "tickle", Target: "nginx", Status: service.StatusSuccess}

	assert.Equal(t, "2025-03-14 09:26:53 | tickle | nginx | SUCCESS\n", entry.Line())
}

func TestNewEntry(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	outcome := service.Outcome{
		Target:    service.ComposeTarget("/srv/app/docker-compose.yml"),
		Operation: service.OpStop,
	}

	entry := NewEntry(ts, outcome)
	assert.Equal(t, "stop", entry.Command)
	assert.Equal(t, "compose:docker-compose.yml", entry.Target)
	assert.Equal(t, service.StatusFailed, entry.Status)
}

func TestParseLine(t *testing.T) {
	entry, err := ParseLine("2025-03-14 09:26:53 | start | compose:compose.yml | FAILED\n")
	require.NoError(t, err)
	assert.Equal(t, "start", entry.Command)
	assert.Equal(t, "compose:compose.yml", entry.Target)
	assert.Equal(t, service.StatusFailed, entry.Status)
	assert.Equal(t, 2025, entry.Timestamp.Year())
	assert.Equal(t, 53, entry.Timestamp.Second())

	entry, err = ParseLine("2025-03-14 09:26:53 | tickle | odd | name | SUCCESS")
	require.NoError(t, err)
	assert.Equal(t, "odd | name", entry.Target)
}

func TestParseLine_Malformed(t *testing.T) {
	lines := []string{
		"",
		"garbage",
		"2025-03-14 09:26:53 | tickle | SUCCESS",
		"yesterday | tickle | nginx | SUCCESS",
		"2025-03-14 09:26:53 | tickle | nginx | DONE",
		"2025-03-14 09:26:53 |  | nginx | SUCCESS",
	}
	for _, line := range lines {
		_, err := ParseLine(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestEntry_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local)
	entry := Entry{Timestamp: ts, Command: "tickle", Target: "getty@tty1.service", Status: service.StatusSuccess}

	parsed, err := ParseLine(entry.Line())
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed.Timestamp))
	assert.Equal(t, entry.Target, parsed.Target)
}
