package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.Info().Str("source", "dotenv").Msg("credentials loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "credentials loaded", line["message"])
	assert.Equal(t, "dotenv", line["source"])
	assert.Equal(t, "info", line["level"])
}

func TestNilWriterStyles(t *testing.T) {
	assert.NotNil(t, New(nil, "info"))
	assert.NotNil(t, NewWithStyle(nil, "debug", StyleJSON))
	assert.NotNil(t, NewWithStyle(nil, "debug", StylePretty))
}

func TestSubTagsSubsystem(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug").Sub("kaggle").Sub("secrets")

	log.Debug().Msg("fetching secret")
	out := buf.String()
	assert.Contains(t, out, "fetching secret")
	assert.Contains(t, out, `"subsystem":"secrets"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("debug")
	log.Info().Msg("info")
	assert.Empty(t, buf.String())

	log.Warn().Msg("warn")
	assert.Contains(t, buf.String(), "warn")
	buf.Reset()
	log.Error().Msg("boom")
	assert.Contains(t, buf.String(), "boom")
}

func TestSilentAndNop(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "silent")
	log.Error().Msg("hidden")
	assert.Empty(t, buf.String())

	Nop().Error().Msg("also hidden")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"silent", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestStyleAppliesToAnyWriter(t *testing.T) {
	var buf bytes.Buffer
	NewWithStyle(&buf, "info", StylePretty).Sub("agent").Info().Str("model", "m").Msg("running query")
	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "running query")
	assert.Contains(t, out, "model=m")
	assert.False(t, strings.HasPrefix(out, "{"), out)
	assert.NotContains(t, out, "\x1b[", "no color codes off a terminal")

	buf.Reset()
	NewWithStyle(&buf, "info", StyleJSON).Info().Msg("json line")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "json line", line["message"])
}
