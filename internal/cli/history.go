package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/edu-ai/internal/storage"
)

// NewHistoryCmd creates the 'history' command group for the topic history.
func NewHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the topic search history",
		Long: `The history keeps the 50 most recent topics, newest first.
Adding a topic that is already present moves it to the top.`,
	}

	cmd.AddCommand(
		newHistoryAddCmd(app),
		newHistoryListCmd(app),
		newHistorySearchCmd(app),
		newHistoryRemoveCmd(app),
		newHistoryClearCmd(app),
	)
	return cmd
}

func newHistoryAddCmd(app *App) *cobra.Command {
	var opts storage.HistoryOptions

	cmd := &cobra.Command{
		Use:   "add <topic>",
		Short: "Record a topic as the most recent entry",
		Example: `  edu-ai history add "organic chemistry"
  edu-ai history add web3 --type roadmap --context "blockchain basics"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			entry, err := svc.AddToHistory(args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to add to history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added '%s' (id %s)\n", entry.Topic, entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", storage.DefaultHistoryType, "Entry type")
	cmd.Flags().StringVar(&opts.Context, "context", "", "Free-text context, searchable")
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List history entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			history, err := svc.GetHistory()
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), history, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newHistorySearchCmd(app *App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find entries whose topic or context contains the query (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			matches, err := svc.SearchHistory(args[0])
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), matches, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newHistoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove the entry with the given id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			if err := svc.RemoveFromHistory(args[0]); err != nil {
				return fmt.Errorf("failed to remove history entry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed '%s'\n", args[0])
			return nil
		},
	}
}

func newHistoryClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			if err := svc.ClearHistory(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
			return nil
		},
	}
}

func printHistory(w io.Writer, entries []storage.HistoryEntry, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history entries.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(w, "  %s  %s\n", colorGreen(w, e.Topic), displayTime(e.Timestamp, time.DateTime))
		fmt.Fprintf(w, "    Type: %s  ID: %s\n", e.Type, e.ID)
		if e.Context != "" {
			fmt.Fprintf(w, "    Context: %s\n", e.Context)
		}
	}
	return nil
}
