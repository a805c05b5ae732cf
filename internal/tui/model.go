package tui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"report-uploader/internal/form"
	"report-uploader/internal/localfiles"
	"report-uploader/internal/session"
)

// submitDoneMsg carries the result of an asynchronous submission.
type submitDoneMsg struct {
	state form.State
	err   error
}

// Model is the terminal upload form.
type Model struct {
	sess       *session.Session
	picker     filepicker.Model
	picking    bool
	startDir   string
	spinner    spinner.Model
	submitting bool
	cursor     int
	// localErr holds errors that never reach the form state, such as an
	// unreadable picked file.
	localErr string
	height   int
	load     func([]string) ([]form.RawFile, error)
}

// New builds a Model over sess. startDir seeds the file picker; empty means
// the working directory.
func New(sess *session.Session, startDir string) Model {
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		}
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Model{
		sess:     sess,
		startDir: startDir,
		spinner:  sp,
		load:     localfiles.Load,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if m.picking {
			m.picker.Height = pickerHeight(msg.Height)
		}
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		m.clampCursor(len(msg.state.Files))
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.picking {
		return m.updatePicker(msg)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.submitting {
		// loading disables every form action
		return m, nil
	}

	m.localErr = ""
	st := m.sess.Snapshot()

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(st.Files)-1 {
			m.cursor++
		}
	case "a":
		return m.openPicker()
	case "d", "delete", "backspace":
		if m.cursor < len(st.Files) {
			next, _ := m.sess.DeleteFile(st.Files[m.cursor].ID)
			m.clampCursor(len(next.Files))
		}
	case "m":
		if m.sess.Reporting() {
			_, _ = m.sess.SelectMonth(stepMonth(st.Month, 1))
		}
	case "M":
		if m.sess.Reporting() {
			_, _ = m.sess.SelectMonth(stepMonth(st.Month, -1))
		}
	case "r":
		_, _ = m.sess.Reset()
		m.cursor = 0
	case "enter", "s":
		m.submitting = true
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}
	return m, nil
}

func (m Model) submit() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		st, err := sess.Submit(context.Background())
		return submitDoneMsg{state: st, err: err}
	}
}

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.CurrentDirectory = m.startDir
	fp.ShowHidden = false
	if m.height > 0 {
		fp.Height = pickerHeight(m.height)
	}
	m.picker = fp
	m.picking = true
	return m, m.picker.Init()
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.picking = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.picking = false
		m.startDir = m.picker.CurrentDirectory
		m.addPaths([]string{path})
		return m, cmd
	}
	return m, cmd
}

func (m *Model) addPaths(paths []string) {
	raw, err := m.load(paths)
	if err != nil {
		m.localErr = err.Error()
		return
	}
	_, _ = m.sess.AddFiles(raw)
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// stepMonth cycles through the selectable months; an unset month starts at
// January going forwards and December going backwards.
func stepMonth(current string, delta int) string {
	months := form.Months()
	idx := -1
	for i, mo := range months {
		if mo == current {
			idx = i
		}
	}
	if idx < 0 {
		if delta > 0 {
			return months[0]
		}
		return months[len(months)-1]
	}
	n := len(months)
	return months[((idx+delta)%n+n)%n]
}

func pickerHeight(total int) int {
	if h := total - 8; h > 3 {
		return h
	}
	return 3
}
