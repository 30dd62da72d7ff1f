package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/export"
)

func newExportCommand() *cobra.Command {
	var format string
	var gzipJSON bool
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the export files for the persisted session",
		Long: `Write the export files for the persisted session.

The JSON file is the lossless archive including screenshots; the CSV is
a single analysis-ready row under a fixed column schema. An incomplete
session exports whatever has been recorded so far, with empty fields
for unanswered items.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" && format != "all" {
				return fmt.Errorf("unknown format %q (expected json, csv, or all)", format)
			}

			cfg, ctrl, err := loadStudy()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Paths.Results
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory %s: %w", outDir, err)
			}

			rec := ctrl.Record()
			out := cmd.OutOrStdout()

			if format == "json" || format == "all" {
				name := export.JSONFilename(rec)
				write := export.WriteJSON
				if gzipJSON {
					name += ".gz"
					write = export.WriteJSONGz
				}
				path := filepath.Join(outDir, name)
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
				if err := write(f, rec); err != nil {
					f.Close() //nolint:errcheck
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("closing %s: %w", path, err)
				}
				fmt.Fprintf(out, "wrote %s\n", path)
			}

			if format == "csv" || format == "all" {
				path := filepath.Join(outDir, export.CSVFilename(rec))
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
				if err := export.WriteCSV(f, rec); err != nil {
					f.Close() //nolint:errcheck
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("closing %s: %w", path, err)
				}
				fmt.Fprintf(out, "wrote %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "all", "Export format: json, csv, or all")
	cmd.Flags().BoolVar(&gzipJSON, "gzip", false, "Compress the JSON export")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: configured results dir)")

	return cmd
}
