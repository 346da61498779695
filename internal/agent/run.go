package agent

import (
	"context"
	"fmt"
	"time"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

// RunResult is the outcome of a debug run.
type RunResult struct {
	SessionID string
	Events    []*session.Event
	Text      string
	Duration  time.Duration
}

// RunDebug sends query to the agent in the debug session and collects
// every event the runner yields. The session is created on first use and
// reused afterwards.
func (c *Client) RunDebug(ctx context.Context, query string) (*RunResult, error) {
	start := time.Now()

	sessionID, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("sessionId", sessionID).
		Str("model", c.model.Name()).
		Msg("running query")

	msg := genai.NewContentFromText(query, genai.RoleUser)
	var events []*session.Event
	for ev, err := range c.runner.Run(ctx, c.cfg.UserID, sessionID, msg, adkagent.RunConfig{
		StreamingMode: adkagent.StreamingModeNone,
	}) {
		if err != nil {
			return nil, fmt.Errorf("run query: %w", err)
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &RunResult{
		SessionID: sessionID,
		Events:    events,
		Text:      ExtractText(events),
		Duration:  time.Since(start),
	}
	c.log.Info().
		Str("sessionId", sessionID).
		Int("events", len(events)).
		Dur("duration", res.Duration).
		Msg("response generated")
	return res, nil
}

func (c *Client) ensureSession(ctx context.Context) (string, error) {
	got, err := c.sessions.Get(ctx, &session.GetRequest{
		AppName:   c.cfg.AppName,
		UserID:    c.cfg.UserID,
		SessionID: c.cfg.SessionID,
	})
	if err == nil && got != nil && got.Session != nil {
		return got.Session.ID(), nil
	}
	created, err := c.sessions.Create(ctx, &session.CreateRequest{
		AppName:   c.cfg.AppName,
		UserID:    c.cfg.UserID,
		SessionID: c.cfg.SessionID,
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return created.Session.ID(), nil
}

// ExtractText returns the text of the last event that carries any, or ""
// when no event does.
func ExtractText(events []*session.Event) string {
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev == nil || ev.Content == nil {
			continue
		}
		for _, p := range ev.Content.Parts {
			if p != nil && p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}
