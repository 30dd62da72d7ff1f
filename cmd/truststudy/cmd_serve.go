package main

import (
	"github.com/spf13/cobra"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var port int
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser-based participant session",
		Long: `Serve the browser-based participant session.

The server binds to loopback only and opens the participant frontend in
the default browser. All session data stays on this machine; the
participant downloads the export files at the end and hands them to the
researcher.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ctrl, err := loadStudy()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			if !cmd.Flags().Changed("no-browser") && cfg.Server.NoBrowser != nil {
				noBrowser = *cfg.Server.NoBrowser
			}

			srv, err := webserver.New(webserver.Config{
				Port:       port,
				Controller: ctrl,
				NoBrowser:  noBrowser,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 4680, "Port to listen on")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the browser automatically")

	return cmd
}
