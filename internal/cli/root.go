package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"google.golang.org/adk/model"

	"github.com/soyeahso/adkit/internal/capability"
	"github.com/soyeahso/adkit/internal/config"
	"github.com/soyeahso/adkit/internal/hooks"
	"github.com/soyeahso/adkit/internal/logging"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfgFile  string
	logLevel string

	paths config.Paths
	cfg   config.Config
	log   *logging.Logger
	hooks *hooks.Manager
	caps  capability.Capabilities

	// Test seams.
	prober capability.Prober
	llm    model.LLM
	logOut io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adkit",
		Short: "adkit: ADK agent bootstrap for Kaggle and local notebooks",
		Long: "adkit resolves Gemini credentials from a .env file or Kaggle secrets, " +
			"builds a Google Search backed ADK agent and runs one-shot debug queries against it.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context(), cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ~/.adkit/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSetupCmd(a))
	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newProxyURLCmd(a))
	cmd.AddCommand(newStatusCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newHistoryCmd(a))

	return cmd
}

func (a *app) init(ctx context.Context, stderr io.Writer) error {
	var err error
	a.paths, err = config.ResolvePaths()
	if err != nil {
		return err
	}
	if a.cfgFile != "" {
		a.paths.Config = a.cfgFile
	}

	cfg, loadErr := config.Load(a.paths.Config)
	a.cfg = cfg
	if loadErr != nil {
		a.cfg = config.Defaults()
	}

	level := a.logLevel
	if level == "" {
		level = a.cfg.Logging.Level
	}
	if a.logOut == nil {
		a.logOut = stderr
	}
	a.log = logging.NewWithStyle(a.logOut, level, a.cfg.Logging.ConsoleStyle)
	if loadErr != nil {
		a.log.Warn().Err(loadErr).Str("path", a.paths.Config).Msg("config not loaded, using defaults")
	}

	a.hooks = hooks.NewManager(a.log)
	if n := hooks.RegisterConfig(a.hooks, a.cfg.Hooks); n > 0 {
		a.log.Debug().Int("hooks", n).Msg("shell hooks registered")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	a.caps = a.prober.Probe(ctx)
	a.log.Debug().
		Bool("kaggleSecrets", a.caps.KaggleSecrets).
		Bool("notebook", a.caps.Notebook).
		Bool("apiKey", a.caps.APIKey).
		Bool("vertex", a.caps.VertexEnabled).
		Msg("capabilities probed")
	return nil
}

// historyPath is where runs are recorded.
func (a *app) historyPath() string {
	if a.cfg.History.Path != "" {
		return a.cfg.History.Path
	}
	return a.paths.History
}

// Execute runs the root command. Failures that must map to a specific
// process exit status are returned as *ExitError.
func Execute() error {
	return newRootCmd(&app{}).Execute()
}
