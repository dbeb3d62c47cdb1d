package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/edu-ai/internal/storage"
)

// NewUserCmd creates the 'user' command group for the learner profile.
func NewUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show or set the learner profile",
	}

	cmd.AddCommand(newUserSetCmd(app), newUserShowCmd(app))
	return cmd
}

func newUserSetCmd(app *App) *cobra.Command {
	var info storage.UserInfo

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the learner profile (replaces the existing one)",
		Example: `  edu-ai user set --age 17 --location Kota --studying-for JEE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			if err := svc.SaveUserInfo(info); err != nil {
				return fmt.Errorf("failed to save profile: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Profile saved")
			return nil
		},
	}

	cmd.Flags().IntVar(&info.Age, "age", 0, "Learner age")
	cmd.Flags().StringVar(&info.Location, "location", "", "City or region")
	cmd.Flags().StringVar(&info.StudyingFor, "studying-for", "", "Target exam or subject")
	cmd.MarkFlagRequired("age")

	return cmd
}

func newUserShowCmd(app *App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the learner profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service()
			if err != nil {
				return err
			}
			info, err := svc.GetUserInfo()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, info)
			}
			if info == nil {
				fmt.Fprintln(out, "No profile saved.")
				fmt.Fprintln(out, "Run 'edu-ai user set --age <n>' to create one.")
				return nil
			}
			fmt.Fprintf(out, "Age:          %d\n", info.Age)
			fmt.Fprintf(out, "Location:     %s\n", info.Location)
			fmt.Fprintf(out, "Studying for: %s\n", info.StudyingFor)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
