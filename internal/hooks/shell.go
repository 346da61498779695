package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/soyeahso/adkit/internal/config"
)

// Environment passed to shell hooks.
const (
	EnvEvent     = "ADKIT_EVENT"
	EnvEventData = "ADKIT_EVENT_DATA"
)

// DefaultShellTimeout applies when a hook entry sets no timeout.
const DefaultShellTimeout = 10 * time.Second

// ShellHandler runs command through the platform shell with the event name
// and JSON payload data in its environment.
func ShellHandler(command string, timeout time.Duration) Handler {
	if timeout <= 0 {
		timeout = DefaultShellTimeout
	}
	return func(ctx context.Context, p Payload) error {
		data, err := json.Marshal(p.Data)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cmd := shellCommand(ctx, command)
		cmd.Env = append(os.Environ(),
			EnvEvent+"="+p.Event,
			EnvEventData+"="+string(data),
		)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		// Children that inherit stderr must not hold Run open past the deadline.
		cmd.WaitDelay = time.Second

		if err := cmd.Run(); err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("hook %q timed out after %s", command, timeout)
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return fmt.Errorf("hook %q exited %d: %s", command, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
			}
			return fmt.Errorf("hook %q: %w", command, err)
		}
		return nil
	}
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "/bin/sh", "-c", command)
}

// RegisterConfig registers a shell handler for every configured hook entry
// and returns how many were added.
func RegisterConfig(m *Manager, cfg config.HooksConfig) int {
	byEvent := map[string][]config.HookEntry{
		EventCredentialsResolved: cfg.CredentialsResolved,
		EventBeforeRun:           cfg.BeforeRun,
		EventAfterRun:            cfg.AfterRun,
	}
	n := 0
	for _, event := range AllEvents {
		for i, e := range byEvent[event] {
			if strings.TrimSpace(e.Command) == "" {
				continue
			}
			timeout := time.Duration(e.Timeout) * time.Millisecond
			m.On(event, fmt.Sprintf("config:%s[%d]", event, i), ShellHandler(e.Command, timeout))
			n++
		}
	}
	return n
}
