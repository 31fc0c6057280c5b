package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens an interactive ring browser.
func (c *CLI) browseCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore the rings and items of a tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := pipeline.ParseFile(args[0])
			if err != nil {
				return err
			}
			g, err := pipeline.Normalize(t, flags.options(cmd, c.Config.Chart))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewRingListModel(t.CenterName, g), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.addGeometryFlags(cmd)
	return cmd
}

// =============================================================================
// RingListModel - Interactive ring browser
// =============================================================================

// RingListModel is the bubbletea model for browsing rings. Enter toggles
// the item list of the ring under the cursor.
type RingListModel struct {
	Title    string
	Geometry geometry.Geometry
	Cursor   int
	Expanded map[int]bool
	Height   int
	Offset   int
}

// NewRingListModel creates a new ring list model.
func NewRingListModel(title string, g geometry.Geometry) RingListModel {
	return RingListModel{
		Title:    title,
		Geometry: g,
		Expanded: make(map[int]bool),
		Height:   15,
	}
}

func (m RingListModel) Init() tea.Cmd {
	return nil
}

func (m RingListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Geometry.Rings)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			expanded := make(map[int]bool, len(m.Expanded)+1)
			for k, v := range m.Expanded {
				expanded[k] = v
			}
			expanded[m.Cursor] = !expanded[m.Cursor]
			m.Expanded = expanded
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m RingListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ items  q quit"))
	b.WriteString("\n\n")

	rings := m.Geometry.Rings
	end := min(m.Offset+m.Height, len(rings))
	for i := m.Offset; i < end; i++ {
		r := rings[i]
		items := m.Geometry.ItemsOf(i)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-32s %s  %s",
			cursor, r.Name,
			listDimStyle.Render(formatSpan(r.Angle, "°")),
			listDimStyle.Render(fmt.Sprintf("%d items", len(items))))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case len(items) == 0:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")

		if m.Expanded[i] {
			for _, it := range items {
				b.WriteString(fmt.Sprintf("      %s %s\n", it.Name, listDimStyle.Render(formatSpan(it.Angle, "°"))))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(rings))))
	return b.String()
}
