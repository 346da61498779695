package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soyeahso/adkit/internal/agent"
	"github.com/soyeahso/adkit/internal/config"
	"github.com/soyeahso/adkit/internal/store"
	"github.com/soyeahso/adkit/internal/version"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show detected capabilities and configuration summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "adkit %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Fprintf(w, "Config:  %s", a.paths.Config)
			if _, err := os.Stat(a.paths.Config); os.IsNotExist(err) {
				fmt.Fprint(w, " (not found, using defaults)")
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Data:    %s\n", a.paths.Data)
			fmt.Fprintln(w)

			fmt.Fprintln(w, "Capabilities:")
			for _, l := range a.caps.Report() {
				mark := "no "
				if l.Enabled {
					mark = "yes"
				}
				line := fmt.Sprintf("  %-15s %s", l.Name, mark)
				if l.Detail != "" {
					line += "  (" + l.Detail + ")"
				}
				fmt.Fprintln(w, line)
			}
			fmt.Fprintln(w)

			ag := a.cfg.Agent
			tools := "google_search (default)"
			if ag.Tools != nil {
				tools = strings.Join(ag.Tools, ",")
				if tools == "" {
					tools = "(none)"
				}
			}
			fmt.Fprintf(w, "Agent:   name=%s model=%s tools=%s\n", ag.Name, ag.Model, tools)
			fmt.Fprintf(w, "Proxy:   host=%s port=%d\n", a.cfg.Proxy.Host, a.cfg.Proxy.Port)

			if a.cfg.History.IsEnabled() {
				fmt.Fprintf(w, "History: %s%s\n", a.historyPath(), historyCount(cmd.Context(), a))
			} else {
				fmt.Fprintln(w, "History: disabled")
			}

			fmt.Fprintf(w, "Tools:   %s\n", strings.Join(agent.ToolNames(), ", "))

			if events := a.hooks.Events(); len(events) > 0 {
				counted := make([]string, len(events))
				for i, e := range events {
					counted[i] = fmt.Sprintf("%s(%d)", e, a.hooks.Count(e))
				}
				fmt.Fprintf(w, "Hooks:   %s\n", strings.Join(counted, ", "))
			}

			if issues := config.Validate(&a.cfg); len(issues) > 0 {
				fmt.Fprintf(w, "\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(w, "  - %s\n", issue)
				}
			}
			return nil
		},
	}
}

// historyCount reports the number of recorded runs without creating the
// database as a side effect.
func historyCount(ctx context.Context, a *app) string {
	path := a.historyPath()
	if _, err := os.Stat(path); err != nil {
		return " (empty)"
	}
	db, err := store.Open(path, a.log)
	if err != nil {
		return fmt.Sprintf(" (error: %v)", err)
	}
	defer db.Close()
	runs, err := store.NewHistoryStore(db).List(ctx, store.DefaultListLimit)
	if err != nil {
		return fmt.Sprintf(" (error: %v)", err)
	}
	if len(runs) == store.DefaultListLimit {
		return fmt.Sprintf(" (%d+ runs)", len(runs))
	}
	return fmt.Sprintf(" (%d runs)", len(runs))
}
