package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} with its value. Unset variables are kept
// verbatim so the failure surfaces at the point of use.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := os.LookupEnv(match[2 : len(match)-1]); ok {
			return val
		}
		return match
	})
}

func expandPathFields(cfg *Config) {
	cfg.Credentials.DotenvPath = expandEnvVars(cfg.Credentials.DotenvPath)
	cfg.History.Path = expandEnvVars(cfg.History.Path)
}

// Load reads the config file at path, fills defaults and applies ADKIT_*
// environment overrides. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
		applyEnvOverrides(&cfg)
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandPathFields(&cfg)
	return cfg, nil
}

// LoadRaw reads the config file into a generic map for path-based access.
func LoadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}
	return raw, nil
}

// SaveRaw writes a generic map back to path as YAML.
func SaveRaw(path string, raw map[string]any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyDefaults fills fields a partial YAML file left empty.
func applyDefaults(cfg *Config) {
	d := Defaults()
	setIfEmpty(&cfg.Credentials.SecretName, d.Credentials.SecretName)
	setIfEmpty(&cfg.Agent.AppName, d.Agent.AppName)
	setIfEmpty(&cfg.Agent.UserID, d.Agent.UserID)
	setIfEmpty(&cfg.Agent.Name, d.Agent.Name)
	setIfEmpty(&cfg.Agent.Model, d.Agent.Model)
	setIfEmpty(&cfg.Agent.Description, d.Agent.Description)
	setIfEmpty(&cfg.Agent.Instruction, d.Agent.Instruction)
	setIfEmpty(&cfg.Agent.Query, d.Agent.Query)
	setIfEmpty(&cfg.Proxy.Host, d.Proxy.Host)
	if cfg.Proxy.Port == 0 {
		cfg.Proxy.Port = d.Proxy.Port
	}
	setIfEmpty(&cfg.Logging.Level, d.Logging.Level)
	setIfEmpty(&cfg.Logging.ConsoleStyle, d.Logging.ConsoleStyle)
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// applyEnvOverrides reads ADKIT_* variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ADKIT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("ADKIT_MODEL"); v != "" {
		cfg.Agent.Model = v
	}
	if v := os.Getenv("ADKIT_SECRET_NAME"); v != "" {
		cfg.Credentials.SecretName = v
	}
	if v := os.Getenv("ADKIT_DOTENV_PATH"); v != "" {
		cfg.Credentials.DotenvPath = v
	}
	if v := os.Getenv("ADKIT_PROXY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Proxy.Port = port
		}
	}
}
