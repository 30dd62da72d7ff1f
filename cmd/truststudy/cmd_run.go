package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/export"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/stages"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/wizard"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a participant session in the terminal",
		Long: `Run a participant session in the terminal.

The session walks through consent, the randomized assignments, both
tasks with their questionnaires, and the background form. Progress is
saved after every answer; re-running the command resumes an interrupted
session at the first incomplete step.

When the session completes, the JSON and CSV export files are written
to the configured results directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ctrl, err := loadStudy()
			if err != nil {
				return err
			}

			flow := wizard.NewFlow(ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := flow.Run(); err != nil {
				return err
			}

			if ctrl.Stage() != stages.StageComplete {
				return nil
			}
			return writeExports(cmd, ctrl, cfg.Paths.Results)
		},
	}
	return cmd
}

// writeExports writes both export artifacts for a completed session.
func writeExports(cmd *cobra.Command, ctrl *stages.Controller, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating results directory %s: %w", dir, err)
	}

	rec := ctrl.Record()

	jsonPath := filepath.Join(dir, export.JSONFilename(rec))
	jf, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", jsonPath, err)
	}
	if err := export.WriteJSON(jf, rec); err != nil {
		jf.Close() //nolint:errcheck
		return err
	}
	if err := jf.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", jsonPath, err)
	}

	csvPath := filepath.Join(dir, export.CSVFilename(rec))
	cf, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", csvPath, err)
	}
	if err := export.WriteCSV(cf, rec); err != nil {
		cf.Close() //nolint:errcheck
		return err
	}
	if err := cf.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", csvPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nExported:\n  %s\n  %s\n", jsonPath, csvPath)
	return nil
}
