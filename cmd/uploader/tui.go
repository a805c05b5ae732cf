package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"report-uploader/internal/localfiles"
	"report-uploader/internal/tui"
)

var (
	tuiLogFile string
	tuiDir     string
)

var tuiCmd = &cobra.Command{
	Use:   "tui [FILE...]",
	Short: "Run the terminal upload form",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Write logs to this file (default: discard)")
	tuiCmd.Flags().StringVar(&tuiDir, "dir", "", "Starting directory for the file picker")
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Logs would corrupt the alt screen.
	logOut = io.Discard
	if tuiLogFile != "" {
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	app, err := setup()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		raw, err := localfiles.Load(args)
		if err != nil {
			return err
		}
		if _, err := app.Session.AddFiles(raw); err != nil {
			return err
		}
	}

	p := tea.NewProgram(tui.New(app.Session, tuiDir), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
