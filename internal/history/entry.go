// Package history keeps the append-only audit log of operations.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/trly/tickle/internal/service"
)

// TimeFormat is the layout of the timestamp column, in local time.
const TimeFormat = "2006-01-02 15:04:05"

const separator = " | "

// Entry is one line of the audit log.
type Entry struct {
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Command   string         `json:"command" yaml:"command"`
	Target    string         `json:"target" yaml:"target"`
	Status    service.Status `json:"status" yaml:"status"`
}

// NewEntry builds the entry recording outcome at the given time.
func NewEntry(now time.Time, outcome service.Outcome) Entry {
	return Entry{
		Timestamp: now,
		Command:   outcome.Operation.String(),
		Target:    outcome.Target.Label(),
		Status:    outcome.Status(),
	}
}

// Line renders the entry as a newline-terminated log line.
func (e Entry) Line() string {
	return strings.Join([]string{
		e.Timestamp.Format(TimeFormat),
		e.Command,
		e.Target,
		e.Status.String(),
	}, separator) + "\n"
}

// ParseLine parses a log line written by Line. The timestamp is the first
// column, the status the last and the command the second; anything between
// belongs to the target label.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, separator)
	if len(fields) < 4 {
		return Entry{}, fmt.Errorf("expected 4 columns, got %d", len(fields))
	}

	ts, err := time.ParseInLocation(TimeFormat, fields[0], time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	status, ok := service.ParseStatus(fields[len(fields)-1])
	if !ok {
		return Entry{}, fmt.Errorf("invalid status %q", fields[len(fields)-1])
	}

	command := fields[1]
	target := strings.Join(fields[2:len(fields)-1], separator)
	if command == "" || target == "" {
		return Entry{}, fmt.Errorf("empty command or target")
	}

	return Entry{
		Timestamp: ts,
		Command:   command,
		Target:    target,
		Status:    status,
	}, nil
}
