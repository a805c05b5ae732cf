package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"report-uploader/internal/localfiles"
)

var submitMonth string

var submitCmd = &cobra.Command{
	Use:   "submit FILE...",
	Short: "Upload files and optionally generate the monthly report",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitMonth, "month", "m", "", "Report month, 1-12 (required unless --no-report)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}
	sess := app.Session

	raw, err := localfiles.Load(args)
	if err != nil {
		return err
	}
	staged, err := sess.AddFiles(raw)
	if err != nil {
		return err
	}
	if sess.Reporting() && submitMonth != "" {
		if _, err := sess.SelectMonth(submitMonth); err != nil {
			return err
		}
	}

	st, err := sess.Submit(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if st.ReportURL != "" {
		fmt.Fprintln(out, st.ReportURL)
		return nil
	}
	fmt.Fprintf(out, "Files uploaded successfully! (%d)\n", len(staged.Files))
	return nil
}
