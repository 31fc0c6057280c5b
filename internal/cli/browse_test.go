package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/tree"
)

func browseFixture(t *testing.T) RingListModel {
	t.Helper()
	tr := tree.Tree{
		CenterName: "Assets",
		Angle:      tree.Span{-90, 90},
		Arcs: []tree.Arc{
			{Angle: tree.Span{-90, 0}, Layers: []tree.Layer{
				{Name: "Policy", Items: []string{"a", "b"}},
				{Name: "Risk", Items: []string{"c"}},
			}},
			{Angle: tree.Span{0, 90}, Layers: []tree.Layer{
				{Name: "Ops", Items: []string{"d", "e", "f"}},
			}},
		},
	}
	g, err := geometry.Normalize(tr)
	if err != nil {
		t.Fatal(err)
	}
	return NewRingListModel(tr.CenterName, g)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m RingListModel, keys ...string) RingListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(RingListModel)
	}
	return m
}

func TestRingListNavigation(t *testing.T) {
	m := browseFixture(t)

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first ring: %d", m.Cursor)
	}
	m = press(m, "down", "j", "down", "down", "down")
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want clamp at last ring 3", m.Cursor)
	}
	m = press(m, "k")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d after k, want 2", m.Cursor)
	}
}

func TestRingListScrolls(t *testing.T) {
	m := browseFixture(t)
	m.Height = 2

	m = press(m, "down", "down")
	if m.Offset != 1 {
		t.Errorf("offset = %d, want 1", m.Offset)
	}
	m = press(m, "up", "up")
	if m.Offset != 0 {
		t.Errorf("offset = %d, want 0", m.Offset)
	}
}

func TestRingListExpand(t *testing.T) {
	m := browseFixture(t)
	m = press(m, "down")

	if strings.Contains(m.View(), "      a ") {
		t.Error("items shown before expanding")
	}
	expanded := press(m, "enter")
	if !expanded.Expanded[1] {
		t.Fatal("enter should expand ring 1")
	}
	if m.Expanded[1] {
		t.Error("expanding must not mutate the previous model")
	}
	view := expanded.View()
	for _, want := range []string{"Policy", "2 items", "      a ", "      b "} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	collapsed := press(expanded, "enter")
	if collapsed.Expanded[1] {
		t.Error("second enter should collapse")
	}
}

func TestRingListQuit(t *testing.T) {
	m := browseFixture(t)
	for _, k := range []string{"q", "esc"} {
		var msg tea.KeyMsg
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = key(k)
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%s should return a quit command", k)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: got %T, want tea.QuitMsg", k, cmd())
		}
	}
}

func TestRingListWindowSize(t *testing.T) {
	m := browseFixture(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	if got := next.(RingListModel).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}
