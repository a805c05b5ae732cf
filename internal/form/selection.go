package form

import (
	"strconv"
	"strings"
)

// AddFiles stages a picker batch. An addition that would push the batch past
// MaxFiles is rejected whole and the batch is left as it was. Otherwise files
// whose name is already staged are dropped silently and the rest are appended
// in arrival order.
func AddFiles(s State, raw []RawFile, newID func() string) (State, error) {
	if len(s.Files)+len(raw) > MaxFiles {
		return s.withError(ErrTooManyFiles), ErrTooManyFiles
	}

	existing := make(map[string]struct{}, len(s.Files))
	for _, f := range s.Files {
		existing[f.File.Name] = struct{}{}
	}

	files := make([]SelectedFile, len(s.Files), len(s.Files)+len(raw))
	copy(files, s.Files)
	for _, r := range raw {
		if _, dup := existing[r.Name]; dup {
			continue
		}
		existing[r.Name] = struct{}{}
		files = append(files, SelectedFile{ID: newID(), File: r})
	}

	s.Files = files
	return s.cleared(), nil
}

// DeleteFile removes the entry with the given id. Unknown ids are ignored.
func DeleteFile(s State, id string) State {
	files := make([]SelectedFile, 0, len(s.Files))
	for _, f := range s.Files {
		if f.ID != id {
			files = append(files, f)
		}
	}
	s.Files = files
	return s.cleared()
}

// SelectMonth sets the report month. An empty month clears the selection.
func SelectMonth(s State, month string) (State, error) {
	normalized, err := NormalizeMonth(month)
	if err != nil {
		return s, err
	}
	s.Month = normalized
	return s.cleared(), nil
}

// NormalizeMonth turns "3" or "03" into "03".
func NormalizeMonth(month string) (string, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return "", nil
	}
	if len(month) > 2 || strings.TrimLeft(month, "0123456789") != "" {
		return "", ErrInvalidMonth
	}
	n, err := strconv.Atoi(month)
	if err != nil || n < 1 || n > 12 {
		return "", ErrInvalidMonth
	}
	return twoDigits(n), nil
}

// Months lists the selectable report months.
func Months() []string {
	out := make([]string, 12)
	for i := range out {
		out[i] = twoDigits(i + 1)
	}
	return out
}

// Reset is a full form reset.
func Reset(State) State {
	return State{Status: StatusIdle}
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
