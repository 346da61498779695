// Package domain holds the records shared between the runner, the CLI and
// the history store.
package domain

import (
	"strings"
	"time"
)

// Run is one recorded debug invocation.
type Run struct {
	ID        string        `json:"id"`
	Query     string        `json:"query"`
	Response  string        `json:"response,omitempty"`
	Model     string        `json:"model"`
	Agent     string        `json:"agent"`
	SessionID string        `json:"sessionId,omitempty"`
	Events    int           `json:"events"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Status values reported by Run.Status.
const (
	StatusOK     = "ok"
	StatusEmpty  = "empty"
	StatusFailed = "failed"
)

// Status summarizes the outcome: failed when an error was recorded, empty
// when the agent produced no text.
func (r Run) Status() string {
	switch {
	case r.Error != "":
		return StatusFailed
	case strings.TrimSpace(r.Response) == "":
		return StatusEmpty
	default:
		return StatusOK
	}
}

// Preview shortens s to at most n runes on a single line.
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
