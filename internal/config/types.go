package config

// Config is the root of ~/.adkit/config.yaml.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials,omitempty"`
	Agent       AgentConfig       `yaml:"agent,omitempty"`
	Proxy       ProxyConfig       `yaml:"proxy,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	History     HistoryConfig     `yaml:"history,omitempty"`
	Hooks       HooksConfig       `yaml:"hooks,omitempty"`
}

// CredentialsConfig controls where GOOGLE_API_KEY is resolved from.
type CredentialsConfig struct {
	UseDotenv  *bool  `yaml:"useDotenv,omitempty"`  // nil means true
	DotenvPath string `yaml:"dotenvPath,omitempty"` // "" means ./.env
	SecretName string `yaml:"secretName,omitempty"` // Kaggle secret label
	Vertex     bool   `yaml:"vertex,omitempty"`
}

// DotenvEnabled reports whether dotenv loading is on.
func (c CredentialsConfig) DotenvEnabled() bool {
	return c.UseDotenv == nil || *c.UseDotenv
}

// AgentConfig describes the ADK agent built for `adkit run`.
type AgentConfig struct {
	AppName     string   `yaml:"appName,omitempty"`
	UserID      string   `yaml:"userId,omitempty"`
	Name        string   `yaml:"name,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Instruction string   `yaml:"instruction,omitempty"`
	Tools       []string `yaml:"tools,omitempty"` // nil selects the default tool set; [] means none
	Query       string   `yaml:"query,omitempty"` // default debug query
}

// ProxyConfig locates the Kaggle notebook proxy.
type ProxyConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"` // local port the ADK web UI listens on
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
}

// HistoryConfig controls the SQLite run history.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // nil means true
	Path    string `yaml:"path,omitempty"`    // "" means <data>/history.db
}

// IsEnabled reports whether runs are recorded.
func (h HistoryConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// HooksConfig maps lifecycle events to shell commands.
type HooksConfig struct {
	CredentialsResolved []HookEntry `yaml:"credentialsResolved,omitempty"`
	BeforeRun           []HookEntry `yaml:"beforeRun,omitempty"`
	AfterRun            []HookEntry `yaml:"afterRun,omitempty"`
}

// HookEntry is a single shell hook.
type HookEntry struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // milliseconds
}
