package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStatus(t *testing.T) {
	tests := []struct {
		name string
		run  Run
		want string
	}{
		{"ok", Run{Response: "Sunny."}, StatusOK},
		{"empty", Run{Response: "  \n"}, StatusEmpty},
		{"failed wins over response", Run{Response: "x", Error: "boom"}, StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.run.Status())
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "hello world", Preview("hello\n  world", 40))
	assert.Equal(t, "abcdefg...", Preview("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Preview("abcdef", 2))
	assert.Equal(t, "héllo", Preview("héllo", 5))
	assert.Equal(t, "unbounded", Preview("unbounded", 0))
}

func TestRunJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(Run{ID: "r1", Query: "q", Model: "m", Agent: "a", CreatedAt: time.Unix(0, 0).UTC()})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)
	assert.NotContains(t, string(data), `"response"`)
	assert.Contains(t, string(data), `"query":"q"`)
}
