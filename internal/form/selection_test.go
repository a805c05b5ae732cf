package form

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFilesAppendsInArrivalOrder(t *testing.T) {
	s, err := AddFiles(New(), []RawFile{rawFile("a.txt", "text/plain", "a"), rawFile("b.png", "image/png", "b")}, seqIDs())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.png"}, s.Names())
	assert.Equal(t, "id-1", s.Files[0].ID)
	assert.Equal(t, "id-2", s.Files[1].ID)
	assert.Equal(t, StatusIdle, s.Status)
}

func TestAddFilesRejectsElevenAtOnce(t *testing.T) {
	s, err := AddFiles(New(), rawFiles(11), seqIDs())

	require.ErrorIs(t, err, ErrTooManyFiles)
	assert.Empty(t, s.Files)
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, "cannot upload more than 10 files", s.Err)
}

func TestAddFilesRejectsWholeAdditionOverLimit(t *testing.T) {
	ids := seqIDs()
	s, err := AddFiles(New(), rawFiles(8), ids)
	require.NoError(t, err)
	before := s.Files

	extra := []RawFile{rawFile("new-1.txt", "text/plain", ""), rawFile("new-2.txt", "text/plain", ""), rawFile("new-3.txt", "text/plain", "")}
	s, err = AddFiles(s, extra, ids)

	require.ErrorIs(t, err, ErrTooManyFiles)
	assert.Len(t, s.Files, 8)
	assert.Equal(t, before, s.Files)
}

func TestAddFilesCountsDuplicatesTowardsLimit(t *testing.T) {
	ids := seqIDs()
	s, err := AddFiles(New(), rawFiles(9), ids)
	require.NoError(t, err)

	// Both names are already staged but the limit check happens first.
	s, err = AddFiles(s, rawFiles(2), ids)
	require.ErrorIs(t, err, ErrTooManyFiles)
	assert.Len(t, s.Files, 9)
}

func TestAddFilesDropsDuplicateNames(t *testing.T) {
	ids := seqIDs()
	s, err := AddFiles(New(), []RawFile{rawFile("a.txt", "text/plain", "one")}, ids)
	require.NoError(t, err)

	s, _ = AddFiles(s, rawFiles(11), ids) // leaves an error behind
	require.Equal(t, StatusError, s.Status)

	s, err = AddFiles(s, []RawFile{rawFile("a.txt", "text/plain", "different content")}, ids)
	require.NoError(t, err)

	require.Len(t, s.Files, 1)
	assert.Equal(t, "id-1", s.Files[0].ID)
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.Err)
}

func TestAddFilesDoesNotMutateInputState(t *testing.T) {
	ids := seqIDs()
	base, err := AddFiles(New(), rawFiles(2), ids)
	require.NoError(t, err)
	snapshot := append([]SelectedFile(nil), base.Files...)

	_, err = AddFiles(base, []RawFile{rawFile("c.txt", "text/plain", "")}, ids)
	require.NoError(t, err)
	_ = DeleteFile(base, base.Files[0].ID)

	assert.Equal(t, snapshot, base.Files)
}

func TestDeleteFile(t *testing.T) {
	s, err := AddFiles(New(), rawFiles(3), seqIDs())
	require.NoError(t, err)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		got := DeleteFile(s, "missing")
		assert.Equal(t, s.Names(), got.Names())
	})

	t.Run("removes exactly that entry", func(t *testing.T) {
		got := DeleteFile(s, "id-2")
		assert.Equal(t, []string{"file-00.txt", "file-02.txt"}, got.Names())
		assert.Len(t, got.Files, len(s.Files)-1)
	})

	t.Run("clears error", func(t *testing.T) {
		failed, _ := AddFiles(s, rawFiles(10), seqIDs())
		require.Equal(t, StatusError, failed.Status)
		got := DeleteFile(failed, "missing")
		assert.Equal(t, StatusIdle, got.Status)
		assert.Empty(t, got.Err)
	})
}

func TestSelectionInvariantsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"a.txt", "b.txt", "c.pdf", "d.png", "e.csv", "f.csv", "g", "h", "i", "j", "k", "l", "m"}

	for run := 0; run < 200; run++ {
		ids := seqIDs()
		s := New()
		for step := 0; step < 30; step++ {
			if rng.Intn(4) == 0 && len(s.Files) > 0 {
				s = DeleteFile(s, s.Files[rng.Intn(len(s.Files))].ID)
				continue
			}
			batch := make([]RawFile, rng.Intn(5))
			for i := range batch {
				batch[i] = rawFile(names[rng.Intn(len(names))], "text/plain", "")
			}
			s, _ = AddFiles(s, batch, ids)

			require.LessOrEqual(t, len(s.Files), MaxFiles)
			seen := map[string]bool{}
			for _, f := range s.Files {
				require.False(t, seen[f.File.Name], "duplicate name %q", f.File.Name)
				seen[f.File.Name] = true
			}
		}
	}
}

func TestAddFilesDropsRepeatsWithinOneAddition(t *testing.T) {
	s, err := AddFiles(New(), []RawFile{rawFile("a.txt", "text/plain", "1"), rawFile("a.txt", "text/plain", "2")}, seqIDs())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, s.Names())
}

func TestNoDuplicateNamesAcrossAdditions(t *testing.T) {
	ids := seqIDs()
	s := New()
	for _, name := range []string{"a", "b", "a", "c", "b", "a"} {
		s, _ = AddFiles(s, []RawFile{rawFile(name, "text/plain", "")}, ids)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "3", want: "03"},
		{in: "03", want: "03"},
		{in: " 12 ", want: "12"},
		{in: "", want: ""},
		{in: "0", wantErr: true},
		{in: "13", wantErr: true},
		{in: "003", wantErr: true},
		{in: "march", wantErr: true},
		{in: "+5", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1e", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := State{Month: "07"}
			got, err := SelectMonth(s, tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMonth)
				assert.Equal(t, "07", got.Month)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Month)
		})
	}
}

func TestSelectMonthClearsPreviousOutcome(t *testing.T) {
	failed := State{Status: StatusError, Err: ErrNoMonth.Error()}
	got, err := SelectMonth(failed, "03")
	require.NoError(t, err)
	assert.Equal(t, State{Month: "03", Status: StatusIdle}, got)

	done := State{Month: "03", Status: StatusSucceeded, ReportURL: "https://reports.example/2026-03.xlsx"}
	got, err = SelectMonth(done, "04")
	require.NoError(t, err)
	assert.Equal(t, "04", got.Month)
	assert.Equal(t, StatusIdle, got.Status)
	assert.Empty(t, got.ReportURL)
}

func TestMonths(t *testing.T) {
	months := Months()
	require.Len(t, months, 12)
	assert.Equal(t, "01", months[0])
	assert.Equal(t, "12", months[11])
}
