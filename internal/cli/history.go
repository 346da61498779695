package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/soyeahso/adkit/internal/domain"
	"github.com/soyeahso/adkit/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded debug runs",
	}

	cmd.AddCommand(newHistoryListCmd(a))
	cmd.AddCommand(newHistoryShowCmd(a))
	cmd.AddCommand(newHistoryClearCmd(a))

	return cmd
}

func (a *app) openHistory() (*store.DB, *store.HistoryStore, error) {
	db, err := store.Open(a.historyPath(), a.log)
	if err != nil {
		return nil, nil, err
	}
	return db, store.NewHistoryStore(db), nil
}

func newHistoryListCmd(a *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, hs, err := a.openHistory()
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := hs.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if runs == nil {
					runs = []domain.Run{}
				}
				return enc.Encode(runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(w, "No runs recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tSTATUS\tDURATION\tQUERY")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					shortID(r.ID),
					r.CreatedAt.Local().Format(time.DateTime),
					r.Status(),
					r.Duration.Round(time.Millisecond),
					domain.Preview(r.Query, 50),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run; the id may be a unique prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, hs, err := a.openHistory()
			if err != nil {
				return err
			}
			defer db.Close()

			r, err := hs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}

			fmt.Fprintf(w, "ID:       %s\n", r.ID)
			fmt.Fprintf(w, "When:     %s\n", r.CreatedAt.Local().Format(time.RFC3339))
			fmt.Fprintf(w, "Status:   %s\n", r.Status())
			fmt.Fprintf(w, "Agent:    %s\n", r.Agent)
			fmt.Fprintf(w, "Model:    %s\n", r.Model)
			fmt.Fprintf(w, "Duration: %s\n", r.Duration.Round(time.Millisecond))
			if r.SessionID != "" {
				fmt.Fprintf(w, "Session:  %s (%d events)\n", r.SessionID, r.Events)
			}
			fmt.Fprintf(w, "Query:    %s\n", r.Query)
			if r.Error != "" {
				fmt.Fprintf(w, "Error:    %s\n", r.Error)
			}
			fmt.Fprintln(w, "--- Response ---")
			if r.Response == "" {
				fmt.Fprintln(w, noTextMessage)
			} else {
				fmt.Fprintln(w, r.Response)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newHistoryClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, hs, err := a.openHistory()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := hs.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs.\n", n)
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
