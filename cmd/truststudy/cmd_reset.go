package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newResetCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the persisted session and start fresh",
		Long: `Discard the persisted session and start fresh.

This is irreversible: the participant's recorded answers are deleted.
Export the session first if the data might still be needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl, err := loadStudy()
			if err != nil {
				return err
			}

			rec := ctrl.Record()
			if !force {
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete session %s?", rec.ParticipantID)).
						Description("All recorded answers will be lost.").
						Affirmative("Delete").
						Negative("Keep").
						Value(&confirmed),
				)).
					WithInput(cmd.InOrStdin()).
					WithOutput(cmd.OutOrStdout())
				if f, ok := cmd.InOrStdin().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
					form = form.WithAccessible(true)
				}
				if err := form.Run(); err != nil {
					return fmt.Errorf("reset confirmation: %w", err)
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "session kept")
					return nil
				}
			}

			if err := ctrl.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session reset; new participant %s\n",
				ctrl.Record().ParticipantID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reset without confirmation")

	return cmd
}
