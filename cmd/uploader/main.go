package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"report-uploader/internal/bootstrap"
	"report-uploader/internal/shared/config"
	"report-uploader/internal/shared/telemetry"
)

var (
	// Global flags
	cfgPath  string
	verbose  bool
	noReport bool
	useLocal bool

	// logOut receives structured logs; the terminal form redirects it.
	logOut io.Writer = os.Stderr

	// buildApp is swapped in tests.
	buildApp = bootstrap.Build
)

var rootCmd = &cobra.Command{
	Use:   "uploader",
	Short: "Upload report files through signed URLs",
	Long: `uploader stages up to 10 files, uploads each one through a signed URL
issued by the report backend and, unless --no-report is set, asks the backend
to generate the monthly report for the uploaded batch.

It runs as a one-shot command, a web form or a terminal form.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "TOML config file (or set UPLOADER_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noReport, "no-report", false, "Upload only, without requesting a report")
	rootCmd.PersistentFlags().BoolVar(&useLocal, "local", false, "Use the local development backend")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then applies global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if noReport {
		cfg.Reporting = false
	}
	if useLocal {
		cfg.UseLocal = true
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// setup loads configuration, configures logging and builds the app.
func setup() (*bootstrap.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	telemetry.Configure(logOut, cfg.LogLevel)

	app, err := buildApp(cfg)
	if err != nil {
		return nil, err
	}
	telemetry.Debug("app.ready", map[string]any{
		"endpoint":  cfg.EndpointBase(),
		"reporting": cfg.Reporting,
		"env":       cfg.Env,
	})
	return app, nil
}
