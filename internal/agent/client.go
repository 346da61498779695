package agent

import (
	"context"
	"fmt"
	"os"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/soyeahso/adkit/internal/config"
	"github.com/soyeahso/adkit/internal/credentials"
	"github.com/soyeahso/adkit/internal/logging"
)

// Config describes the agent and runner to build.
type Config struct {
	AppName     string
	UserID      string
	SessionID   string
	Name        string
	Model       string
	Description string
	Instruction string
	// Tools lists built-in tool names. Nil selects DefaultTools; an empty
	// non-nil slice builds an agent without tools.
	Tools []string

	// APIKey overrides GOOGLE_API_KEY from the environment.
	APIKey string
	// Vertex routes requests through Vertex AI instead of the Gemini API.
	Vertex bool

	// LLM, when set, is used instead of constructing a Gemini model.
	LLM model.LLM
}

// DefaultSessionID is the session the debug runner talks to.
const DefaultSessionID = "debug_session_id"

// ConfigFromSettings maps the file-level agent settings onto a Config and
// reads credentials from the environment.
func ConfigFromSettings(s config.AgentConfig) Config {
	return Config{
		AppName:     s.AppName,
		UserID:      s.UserID,
		SessionID:   DefaultSessionID,
		Name:        s.Name,
		Model:       s.Model,
		Description: s.Description,
		Instruction: s.Instruction,
		Tools:       s.Tools,
		APIKey:      os.Getenv(credentials.EnvAPIKey),
		Vertex:      credentials.VertexEnabled(),
	}
}

func (c Config) withDefaults() Config {
	setIfEmpty(&c.AppName, config.DefaultAppName)
	setIfEmpty(&c.UserID, config.DefaultUserID)
	setIfEmpty(&c.SessionID, DefaultSessionID)
	setIfEmpty(&c.Name, config.DefaultAgentName)
	setIfEmpty(&c.Model, config.DefaultModel)
	setIfEmpty(&c.Description, config.DefaultDescription)
	setIfEmpty(&c.Instruction, config.DefaultInstruction)
	if c.Tools == nil {
		c.Tools = DefaultTools
	}
	return c
}

func setIfEmpty(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// Client owns one agent, its in-memory session service and the runner
// bound to both.
type Client struct {
	cfg      Config
	model    model.LLM
	agent    adkagent.Agent
	sessions session.Service
	runner   *runner.Runner
	log      *logging.Logger
}

// New builds the model, agent and runner. Each step's failure is wrapped
// with the step that failed.
func New(ctx context.Context, cfg Config, log *logging.Logger) (*Client, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logging.Nop()
	}
	log = log.Sub("agent")

	llm := cfg.LLM
	if llm == nil {
		cc := &genai.ClientConfig{APIKey: cfg.APIKey}
		if cfg.Vertex {
			cc.Backend = genai.BackendVertexAI
		} else {
			cc.Backend = genai.BackendGeminiAPI
		}
		m, err := gemini.NewModel(ctx, cfg.Model, cc)
		if err != nil {
			return nil, fmt.Errorf("create model: %w", err)
		}
		llm = m
	}

	tools, err := BuildTools(cfg.Tools)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	a, err := llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Model:       llm,
		Description: cfg.Description,
		Instruction: cfg.Instruction,
		Tools:       tools,
	})
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        cfg.AppName,
		Agent:          a,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("create runner: %w", err)
	}

	log.Debug().
		Str("name", cfg.Name).
		Str("model", llm.Name()).
		Strs("tools", cfg.Tools).
		Bool("vertex", cfg.Vertex).
		Msg("runner created")

	return &Client{
		cfg:      cfg,
		model:    llm,
		agent:    a,
		sessions: sessions,
		runner:   r,
		log:      log,
	}, nil
}

// Config returns the effective configuration, defaults applied.
func (c *Client) Config() Config { return c.cfg }

// ModelName reports the name of the underlying model.
func (c *Client) ModelName() string { return c.model.Name() }

// Agent returns the constructed ADK agent.
func (c *Client) Agent() adkagent.Agent { return c.agent }
