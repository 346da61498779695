package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/soyeahso/adkit/internal/logging"
)

// KnownTools lists the tool names accepted in agent.tools.
var KnownTools = []string{"google_search"}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks cfg and returns every issue found.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue
	add := func(path, format string, args ...any) {
		issues = append(issues, ValidationIssue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.Agent.Name != "" && !identPattern.MatchString(cfg.Agent.Name) {
		add("agent.name", "must be a valid identifier, got %q", cfg.Agent.Name)
	}
	for i, t := range cfg.Agent.Tools {
		if !slices.Contains(KnownTools, t) {
			add(fmt.Sprintf("agent.tools[%d]", i), "must be one of %v, got %q", KnownTools, t)
		}
	}

	if cfg.Proxy.Port < 0 || cfg.Proxy.Port > 65535 {
		add("proxy.port", "port must be 0-65535, got %d", cfg.Proxy.Port)
	}

	if cfg.Logging.Level != "" && !slices.Contains(logging.ValidLevels, cfg.Logging.Level) {
		add("logging.level", "must be one of %v, got %q", logging.ValidLevels, cfg.Logging.Level)
	}
	styles := []string{logging.StylePretty, logging.StyleJSON}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(styles, cfg.Logging.ConsoleStyle) {
		add("logging.consoleStyle", "must be one of %v, got %q", styles, cfg.Logging.ConsoleStyle)
	}

	for event, entries := range map[string][]HookEntry{
		"hooks.credentialsResolved": cfg.Hooks.CredentialsResolved,
		"hooks.beforeRun":           cfg.Hooks.BeforeRun,
		"hooks.afterRun":            cfg.Hooks.AfterRun,
	} {
		for i, h := range entries {
			if h.Command == "" {
				add(fmt.Sprintf("%s[%d].command", event, i), "command is required")
			}
			if h.Timeout < 0 {
				add(fmt.Sprintf("%s[%d].timeout", event, i), "timeout must be >= 0, got %d", h.Timeout)
			}
		}
	}

	// map iteration above is unordered
	slices.SortStableFunc(issues, func(a, b ValidationIssue) int {
		return strings.Compare(a.Path, b.Path)
	})
	return issues
}
