// Package config loads and validates adkit's YAML configuration.
package config

import "fmt"

// Defaults mirrored by the credentials, agent and notebook packages.
const (
	DefaultSecretName  = "GOOGLE_API_KEY"
	DefaultAppName     = "adkit"
	DefaultUserID      = "debug_user_id"
	DefaultAgentName   = "helpful_assistant"
	DefaultModel       = "gemini-2.5-flash-lite"
	DefaultDescription = "A simple agent that can answer general questions."
	DefaultInstruction = "You are a helpful assistant. Use Google Search for current info or if unsure."
	DefaultQuery       = "What's the weather in Bengaluru?"
	DefaultProxyHost   = "https://kkb-production.jupyter-proxy.kaggle.net"
	DefaultProxyPort   = 8000
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with every optional field filled in.
func Defaults() Config {
	return Config{
		Credentials: CredentialsConfig{
			SecretName: DefaultSecretName,
		},
		Agent: AgentConfig{
			AppName:     DefaultAppName,
			UserID:      DefaultUserID,
			Name:        DefaultAgentName,
			Model:       DefaultModel,
			Description: DefaultDescription,
			Instruction: DefaultInstruction,
			Query:       DefaultQuery,
		},
		Proxy: ProxyConfig{
			Host: DefaultProxyHost,
			Port: DefaultProxyPort,
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
