package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"report-uploader/internal/form"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.picking {
		return titleStyle.Render("Select a file") + "\n\n" + m.picker.View() + "\n" + dimStyle.Render("enter: add  esc: back")
	}

	st := m.sess.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Report uploader"))
	b.WriteString("\n\n")

	if len(st.Files) == 0 {
		b.WriteString(dimStyle.Render("No files selected."))
		b.WriteString("\n")
	}
	for i, f := range st.Files {
		line := fmt.Sprintf("%s %s", f.File.Name, dimStyle.Render("("+f.File.ContentType+")"))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Select up to %d files (%d/%d)", form.MaxFiles, len(st.Files), form.MaxFiles)))
	b.WriteString("\n")

	if m.sess.Reporting() {
		month := st.Month
		if month == "" {
			month = "--"
		}
		b.WriteString(fmt.Sprintf("\nMonth: %s\n", month))
	}

	b.WriteString("\n")
	switch {
	case m.submitting || st.Loading():
		b.WriteString(m.spinner.View() + " Uploading...")
	case st.Status == form.StatusError:
		b.WriteString(errorStyle.Render(st.Err))
	case st.Status == form.StatusSucceeded && st.ReportURL != "":
		b.WriteString(okStyle.Render("Report ready: ") + st.ReportURL)
	case st.Status == form.StatusSucceeded:
		b.WriteString(okStyle.Render("Files uploaded successfully!"))
	}
	if m.localErr != "" {
		b.WriteString(errorStyle.Render(m.localErr))
	}
	b.WriteString("\n\n")

	help := "a: add  d: delete  enter: upload  r: reset  q: quit"
	if m.sess.Reporting() {
		help = "a: add  d: delete  m/M: month  enter: upload  r: reset  q: quit"
	}
	b.WriteString(dimStyle.Render(help))
	return b.String()
}
