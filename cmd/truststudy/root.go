package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "truststudy",
		Short: "truststudy - survey instrument for a study on trust in AI assistants",
		Long: `truststudy administers a two-task experiment session on trust in AI
assistants, either in the terminal or in the browser.

Each participant is randomly assigned an assistant and a task order,
completes both tasks with questionnaires in between, and hands the
exported data files to the researcher. Session state is persisted after
every answer, so an interrupted session resumes where it left off.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newResetCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
