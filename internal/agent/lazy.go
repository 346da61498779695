package agent

import (
	"context"
	"sync"

	"github.com/soyeahso/adkit/internal/logging"
)

// Lazy builds a Client on first use and hands out the same one afterwards.
// A failed build is not remembered, so the next Get tries again.
type Lazy struct {
	cfg   Config
	log   *logging.Logger
	build func(context.Context, Config, *logging.Logger) (*Client, error)

	mu     sync.Mutex
	client *Client
}

// NewLazy returns a holder that builds with New.
func NewLazy(cfg Config, log *logging.Logger) *Lazy {
	return &Lazy{cfg: cfg, log: log, build: New}
}

// Config returns the configuration the client is built from, with defaults
// applied.
func (l *Lazy) Config() Config {
	return l.cfg.withDefaults()
}

// Get returns the memoized client, building it if needed.
func (l *Lazy) Get(ctx context.Context) (*Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client != nil {
		return l.client, nil
	}
	c, err := l.build(ctx, l.cfg, l.log)
	if err != nil {
		return nil, err
	}
	l.client = c
	return c, nil
}

// Built reports whether a client has been constructed.
func (l *Lazy) Built() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.client != nil
}
