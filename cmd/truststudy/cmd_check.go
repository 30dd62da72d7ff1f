package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/studyconfig"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/validation"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [catalog.yaml]",
		Short: "Validate a catalog file against the schema",
		Long: `Validate a catalog file against the schema.

Without an argument, the catalog configured in .truststudy.yaml is
checked; if none is configured, the embedded default catalog is
verified structurally.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := studyconfig.Load(".")
				if err != nil {
					return err
				}
				path = cfg.Catalog.Path
			}

			if path == "" {
				if err := catalog.Default().Validate(); err != nil {
					return fmt.Errorf("embedded catalog: %w", err)
				}
				fmt.Fprintln(out, "embedded default catalog: OK")
				return nil
			}

			errs, err := validation.ValidateCatalogFile(path)
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				fmt.Fprintf(out, "%s: %d schema error(s)\n", path, len(errs))
				for _, e := range errs {
					fmt.Fprintf(out, "  %s\n", e)
				}
				return fmt.Errorf("catalog validation failed")
			}

			if _, err := catalog.LoadFile(path); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: OK\n", path)
			return nil
		},
	}
	return cmd
}
