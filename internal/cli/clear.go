package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewClearCmd creates the 'clear' command, which deletes every learner record.
func NewClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the profile, progress and history",
		Long: `Delete all learner records. Afterwards the profile is absent, progress
is back to level 1 and the history is empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "Delete profile, progress and history? [y/N]: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.TrimSpace(strings.ToLower(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			svc, err := app.Service()
			if err != nil {
				return err
			}
			if err := svc.ClearAll(); err != nil {
				return fmt.Errorf("failed to clear records: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ All records cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
