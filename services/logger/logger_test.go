package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Str("room", "101").Msg("shown")
	assert.Contains(t, buf.String(), `"room":"101"`)
	assert.Contains(t, buf.String(), `"service":"hotelsite"`)
}

func TestNewWithWriterUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud", false)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}
