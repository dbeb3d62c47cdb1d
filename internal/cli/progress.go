package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/edu-ai/internal/storage"
)

// NewProgressCmd creates the 'progress' command group.
func NewProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show or update learning progress",
	}

	cmd.AddCommand(newProgressShowCmd(app), newProgressUpdateCmd(app))
	return cmd
}

func newProgressShowCmd(app *App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show level, streaks and answer counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			progress, err := svc.GetProgress()
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), progress)
			}
			printProgress(cmd.OutOrStdout(), progress)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newProgressUpdateCmd(app *App) *cobra.Command {
	var (
		level, streak, bestStreak      int
		totalQuestions, correctAnswers int
		touch                          bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change individual progress fields",
		Long: `Update only the fields given as flags; all other fields keep their value.
Test results are added with 'edu-ai result add'.`,
		Example: `  edu-ai progress update --streak 4 --best-streak 9
  edu-ai progress update --total-questions 120 --correct-answers 97 --touch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			var update storage.ProgressUpdate
			if flags.Changed("level") {
				update.Level = &level
			}
			if flags.Changed("streak") {
				update.Streak = &streak
			}
			if flags.Changed("best-streak") {
				update.BestStreak = &bestStreak
			}
			if flags.Changed("total-questions") {
				update.TotalQuestions = &totalQuestions
			}
			if flags.Changed("correct-answers") {
				update.CorrectAnswers = &correctAnswers
			}
			if touch {
				now := storage.FormatTime(time.Now())
				update.LastActive = &now
			}

			if update == (storage.ProgressUpdate{}) {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			svc, err := app.Service()
			if err != nil {
				return err
			}
			progress, err := svc.UpdateProgress(update)
			if err != nil {
				return fmt.Errorf("failed to update progress: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Progress updated")
			printProgress(cmd.OutOrStdout(), progress)
			return nil
		},
	}

	cmd.Flags().IntVar(&level, "level", 0, "Current level")
	cmd.Flags().IntVar(&streak, "streak", 0, "Current streak in days")
	cmd.Flags().IntVar(&bestStreak, "best-streak", 0, "Best streak in days")
	cmd.Flags().IntVar(&totalQuestions, "total-questions", 0, "Questions attempted")
	cmd.Flags().IntVar(&correctAnswers, "correct-answers", 0, "Questions answered correctly")
	cmd.Flags().BoolVar(&touch, "touch", false, "Set last active time to now")

	return cmd
}

// displayTime renders a stored ISO-8601 value in local time, or the stored
// text as is when it does not parse.
func displayTime(iso, layout string) string {
	t, err := storage.ParseTime(iso)
	if err != nil {
		return iso
	}
	return t.Local().Format(layout)
}

func printProgress(w io.Writer, p storage.UserProgress) {
	fmt.Fprintf(w, "Level:           %d\n", p.Level)
	fmt.Fprintf(w, "Streak:          %d (best %d)\n", p.Streak, p.BestStreak)
	fmt.Fprintf(w, "Questions:       %d answered, %d correct\n", p.TotalQuestions, p.CorrectAnswers)
	if p.TotalQuestions > 0 {
		fmt.Fprintf(w, "Accuracy:        %.1f%%\n", float64(p.CorrectAnswers)*100/float64(p.TotalQuestions))
	}
	fmt.Fprintf(w, "Test results:    %d\n", len(p.TestResults))
	fmt.Fprintf(w, "Last active:     %s\n", displayTime(p.LastActive, time.DateTime))
}
