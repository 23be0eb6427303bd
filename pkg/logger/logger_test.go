package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithConfigLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		log := NewWithConfig(tt.level, false, false)
		assert.Equal(t, tt.want, log.GetLevel(), tt.level)
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, New().GetLevel())
}
