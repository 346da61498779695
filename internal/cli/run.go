package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soyeahso/adkit/internal/agent"
	"github.com/soyeahso/adkit/internal/domain"
	"github.com/soyeahso/adkit/internal/hooks"
	"github.com/soyeahso/adkit/internal/store"
)

const noTextMessage = "No textual output available from the response."

func newRunCmd(a *app) *cobra.Command {
	var (
		model     string
		noSetup   bool
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "run [query]",
		Short: "Send one debug query to the agent and print the response",
		Long: "Resolves credentials, lazily builds the agent and runner, sends the query " +
			"(default: the configured debug query) and prints the response text.\n\n" +
			"Exit status is 2 when the runner cannot be built or the query fails, 1 on interrupt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				query = a.cfg.Agent.Query
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !noSetup {
				res := a.resolveCredentials(ctx, a.credentialOptions())
				for _, at := range res.Attempts {
					a.log.Info().Str("source", string(at.Source)).Bool("ok", at.OK).Msg(at.Message)
				}
			}

			cfg := agent.ConfigFromSettings(a.cfg.Agent)
			if model != "" {
				cfg.Model = model
			}
			if a.llm != nil {
				cfg.LLM = a.llm
			}

			var history *store.HistoryStore
			if a.cfg.History.IsEnabled() && !noHistory {
				db, err := store.Open(a.historyPath(), a.log)
				if err != nil {
					a.log.Warn().Err(err).Msg("run history disabled")
				} else {
					defer db.Close()
					history = store.NewHistoryStore(db)
				}
			}

			return a.runQuery(ctx, cmd, agent.NewLazy(cfg, a.log), query, history)
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "model to use (overrides agent.model)")
	cmd.Flags().BoolVar(&noSetup, "no-setup", false, "use the current environment without resolving credentials")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run")

	return cmd
}

func (a *app) runQuery(ctx context.Context, cmd *cobra.Command, lazy *agent.Lazy, query string, history *store.HistoryStore) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	start := time.Now()

	cfg := lazy.Config()
	run := domain.Run{Query: query, Model: cfg.Model, Agent: cfg.Name}
	finish := func(err error) error {
		run.Duration = time.Since(start)
		if err != nil {
			run.Error = err.Error()
		}
		if history != nil {
			// The run context may already be cancelled.
			stored, rerr := history.Record(context.WithoutCancel(ctx), run)
			if rerr != nil {
				a.log.Warn().Err(rerr).Msg("could not record run")
			} else {
				run = stored
			}
		}
		a.hooks.EmitAsync(context.WithoutCancel(ctx), hooks.EventAfterRun, map[string]any{
			"id":         run.ID,
			"query":      run.Query,
			"status":     run.Status(),
			"error":      run.Error,
			"durationMs": run.Duration.Milliseconds(),
		})
		a.hooks.Wait()
		return err
	}

	client, err := lazy.Get(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "Runner initialization failed: %v\n", err)
		finish(err)
		return &ExitError{Code: ExitFailure}
	}
	run.Model = client.ModelName()
	run.Agent = client.Config().Name

	a.hooks.Emit(ctx, hooks.EventBeforeRun, map[string]any{
		"query": query,
		"model": run.Model,
		"agent": run.Agent,
	})

	res, err := client.RunDebug(ctx, query)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			fmt.Fprintln(errOut, "Interrupted.")
			finish(errors.New("interrupted"))
			return &ExitError{Code: ExitInterrupted}
		}
		fmt.Fprintf(errOut, "Query failed: %v\n", err)
		finish(err)
		return &ExitError{Code: ExitFailure}
	}
	run.Response = res.Text
	run.SessionID = res.SessionID
	run.Events = len(res.Events)
	finish(nil)

	fmt.Fprintln(out, "--- Response ---")
	if res.Text == "" {
		fmt.Fprintln(out, noTextMessage)
	} else {
		fmt.Fprintln(out, res.Text)
	}
	return nil
}
