package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuePaths(issues []ValidationIssue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Path)
	}
	return out
}

func TestValidateDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, Validate(&cfg))
}

func TestValidateAgentName(t *testing.T) {
	for name, valid := range map[string]bool{
		"helpful_assistant": true,
		"_agent2":           true,
		"weather-agent":     false,
		"2fast":             false,
		"with space":        false,
	} {
		cfg := Defaults()
		cfg.Agent.Name = name
		issues := Validate(&cfg)
		if valid {
			assert.Empty(t, issues, name)
		} else {
			assert.Equal(t, []string{"agent.name"}, issuePaths(issues), name)
		}
	}
}

func TestValidateTools(t *testing.T) {
	cfg := Defaults()
	cfg.Agent.Tools = []string{"google_search", "code_exec"}
	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "agent.tools[1]", issues[0].Path)
	assert.Contains(t, issues[0].Message, "code_exec")
}

func TestValidateProxyPort(t *testing.T) {
	for _, port := range []int{-1, 65536} {
		cfg := Defaults()
		cfg.Proxy.Port = port
		assert.Equal(t, []string{"proxy.port"}, issuePaths(Validate(&cfg)))
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "loud"
	cfg.Logging.ConsoleStyle = "compact"
	assert.Equal(t, []string{"logging.consoleStyle", "logging.level"}, issuePaths(Validate(&cfg)))
}

func TestValidateHooks(t *testing.T) {
	cfg := Defaults()
	cfg.Hooks.BeforeRun = []HookEntry{{Command: ""}}
	cfg.Hooks.AfterRun = []HookEntry{{Command: "true", Timeout: -5}}

	assert.Equal(t,
		[]string{"hooks.afterRun[0].timeout", "hooks.beforeRun[0].command"},
		issuePaths(Validate(&cfg)))
}

func TestValidationIssueString(t *testing.T) {
	i := ValidationIssue{Path: "proxy.port", Message: "bad"}
	assert.Equal(t, "proxy.port: bad", i.String())
}
