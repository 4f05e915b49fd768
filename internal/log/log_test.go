package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
	}{
		{
			name:    "default logging level",
			verbose: false,
		},
		{
			name:    "verbose logging level",
			verbose: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.verbose)
			assert.NotNil(t, GetLogger())
		})
	}
}

func TestGetLogger(t *testing.T) {
	Init(false)
	logger := GetLogger()

	assert.NotNil(t, logger)
	assert.Same(t, defaultLogger, logger)
}

func TestNewLoggerTo_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, false)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown", "unit", "nginx")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "unit=nginx")

	buf.Reset()
	verbose := NewLoggerTo(&buf, true)
	verbose.Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("discarded")
}
