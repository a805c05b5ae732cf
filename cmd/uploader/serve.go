package main

import (
	"github.com/spf13/cobra"

	"report-uploader/internal/shared/server"
	"report-uploader/internal/shared/telemetry"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web upload form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}
		port := app.Config.Port
		if servePort != "" {
			port = servePort
		}

		addr := server.Addr(port)
		telemetry.Info("server.start", map[string]any{"addr": addr, "endpoint": app.Config.EndpointBase()})
		return app.Router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (default PORT or 8080)")
}
