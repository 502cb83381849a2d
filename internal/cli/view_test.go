package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	errs "github.com/matzehuels/g6conv/pkg/errors"
	"github.com/matzehuels/g6conv/pkg/pipeline"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testEntries(t *testing.T) []viewEntry {
	t.Helper()
	entries, err := loadViewEntries(context.Background(), strings.NewReader("Bw\n!!\n\n&BP_\n"), pipeline.Options{})
	if err != nil {
		t.Fatalf("loadViewEntries() error = %v", err)
	}
	return entries
}

func TestLoadViewEntries(t *testing.T) {
	entries := testEntries(t)
	if len(entries) != 3 {
		t.Fatalf("loadViewEntries() = %d entries, want 3", len(entries))
	}

	if e := entries[0]; e.index != 1 || e.err != nil || e.graph.Order() != 3 || e.graph.EdgeCount() != 3 {
		t.Errorf("entry 1 = %+v", e)
	}
	if e := entries[1]; e.index != 2 || !errs.Is(e.err, errs.ErrCodeInvalidSizeByte) {
		t.Errorf("entry 2 error = %v, want %s", e.err, errs.ErrCodeInvalidSizeByte)
	}
	if e := entries[2]; e.index != 3 || e.graph == nil || !e.graph.Directed() {
		t.Errorf("entry 3 = %+v, want directed graph", e)
	}
}

func TestLoadViewEntriesSkipCount(t *testing.T) {
	entries, err := loadViewEntries(context.Background(), strings.NewReader("Bw\nCr\nCh\nC~\n"), pipeline.Options{Skip: 1, Count: 2})
	if err != nil {
		t.Fatalf("loadViewEntries() error = %v", err)
	}
	if len(entries) != 2 || entries[0].index != 2 || entries[1].index != 3 {
		t.Errorf("loadViewEntries() indexes = %v, want [2 3]", entryIndexes(entries))
	}
}

func entryIndexes(entries []viewEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.index
	}
	return out
}

func update(t *testing.T, m viewModel, msg tea.Msg) (viewModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	vm, ok := next.(viewModel)
	if !ok {
		t.Fatalf("Update() returned %T, want viewModel", next)
	}
	return vm, cmd
}

func TestViewModelNavigation(t *testing.T) {
	m := newViewModel(testEntries(t))

	tests := []struct {
		msg  tea.Msg
		want int
	}{
		{keyRunes("p"), 0},
		{keyRunes("n"), 1},
		{tea.KeyMsg{Type: tea.KeyRight}, 2},
		{keyRunes("n"), 2},
		{tea.KeyMsg{Type: tea.KeyLeft}, 1},
		{keyRunes("g"), 0},
		{keyRunes("G"), 2},
	}

	for i, tt := range tests {
		m, _ = update(t, m, tt.msg)
		if m.cursor != tt.want {
			t.Errorf("step %d: cursor = %d, want %d", i, m.cursor, tt.want)
		}
	}
}

func TestViewModelModes(t *testing.T) {
	m := newViewModel(testEntries(t))

	if !strings.Contains(m.View(), "101") {
		t.Error("adjmat view missing matrix rows")
	}

	m, _ = update(t, m, keyRunes("m"))
	if viewModes[m.mode] != "dot" {
		t.Fatalf("mode = %s, want dot", viewModes[m.mode])
	}
	if !strings.Contains(m.View(), "graph graph_1 {") {
		t.Errorf("dot view = %q, want graph_1 label", m.View())
	}

	for range len(viewModes) - 1 {
		m, _ = update(t, m, keyRunes("m"))
	}
	if m.mode != 0 {
		t.Errorf("mode after a full cycle = %d, want 0", m.mode)
	}
}

func TestViewModelShowsErrors(t *testing.T) {
	m := newViewModel(testEntries(t))
	m, _ = update(t, m, keyRunes("n"))

	view := m.View()
	if !strings.Contains(view, string(errs.ErrCodeInvalidSizeByte)) {
		t.Errorf("view = %q, want %s", view, errs.ErrCodeInvalidSizeByte)
	}
	if !strings.Contains(view, "!!") {
		t.Errorf("view = %q, want the failing line", view)
	}
}

func TestViewModelQuit(t *testing.T) {
	m := newViewModel(testEntries(t))
	for _, key := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := update(t, m, key); cmd == nil {
			t.Errorf("Update(%s) returned no command, want tea.Quit", key)
		}
	}
	if _, cmd := update(t, m, keyRunes("n")); cmd != nil {
		t.Error("Update(n) returned a command, want nil")
	}
}

func TestViewModelClipsToWindow(t *testing.T) {
	entries, err := loadViewEntries(context.Background(), strings.NewReader("~?@S"+strings.Repeat("?", 1000)+"\n"), pipeline.Options{})
	if err != nil {
		t.Fatalf("loadViewEntries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].err != nil {
		t.Fatalf("entries = %+v, want one 84-vertex graph", entries)
	}

	m := newViewModel(entries)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	if lines := strings.Count(m.View(), "\n") + 1; lines > 20+2 {
		t.Errorf("view has %d lines for a 20-line window", lines)
	}
	if !strings.Contains(m.View(), "more lines") {
		t.Error("clipped view should say how many lines were cut")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"abcdef", 0, "abcdef"},
		{"abcdef", 10, "abcdef"},
		{"abcdef", 4, "abc…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
