package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/edu-ai/internal/storage"
)

// NewResultCmd creates the 'result' command group for test results.
func NewResultCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "result",
		Aliases: []string{"results"},
		Short:   "Record and list test results",
	}

	cmd.AddCommand(newResultAddCmd(app), newResultListCmd(app))
	return cmd
}

func newResultAddCmd(app *App) *cobra.Command {
	var (
		topic, exam, date string
		score             float64
		rank              int
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Append a test result",
		Example: `  edu-ai result add --topic Kinematics --exam JEE --score 72.5 --rank 1200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			examType := storage.ExamType(strings.ToUpper(exam))
			if !examType.Valid() {
				return fmt.Errorf("unknown exam %q (want JEE or NEET)", exam)
			}

			when := storage.FormatTime(time.Now())
			if date != "" {
				if _, err := storage.ParseTime(date); err != nil {
					return fmt.Errorf("invalid --date (want ISO-8601, e.g. 2026-10-15 or 2026-10-15T09:00:00Z): %w", err)
				}
				when = date
			}

			svc, err := app.Service()
			if err != nil {
				return err
			}
			result := storage.TestResult{
				Topic:         topic,
				ExamType:      examType,
				Score:         score,
				PredictedRank: rank,
				Date:          when,
			}
			if err := svc.AddTestResult(result); err != nil {
				return fmt.Errorf("failed to add test result: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s result for '%s'\n", examType, topic)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Test topic")
	cmd.Flags().StringVarP(&exam, "exam", "e", "", "Exam type: JEE or NEET")
	cmd.Flags().Float64VarP(&score, "score", "s", 0, "Score")
	cmd.Flags().IntVarP(&rank, "rank", "r", 0, "Predicted rank")
	cmd.Flags().StringVar(&date, "date", "", "Test date in ISO-8601 (default now)")
	cmd.MarkFlagRequired("topic")
	cmd.MarkFlagRequired("exam")

	return cmd
}

func newResultListCmd(app *App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List test results in the order they were recorded",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			results, err := svc.GetTestResults()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, results)
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "No test results recorded.")
				return nil
			}

			fmt.Fprintf(out, "Test results (%d):\n\n", len(results))
			for _, r := range results {
				fmt.Fprintf(out, "  %s  %-4s  %-30s score %-6g rank %d\n",
					displayTime(r.Date, time.DateOnly), r.ExamType, r.Topic, r.Score, r.PredictedRank)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
