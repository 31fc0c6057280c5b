package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/core/label"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// inspectCommand prints the normalized rings of a tree as a table.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags     chartFlags
		showItems bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the rings of a tree as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := pipeline.ParseFile(args[0])
			if err != nil {
				return err
			}
			opts := flags.options(cmd, c.Config.Chart)
			if err := opts.ValidateForNormalize(); err != nil {
				return err
			}
			opts.SetRenderDefaults()
			g, err := pipeline.Normalize(t, opts)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(t.CenterName))
			printKeyValue("Arcs", strconv.Itoa(len(t.Arcs)))
			printKeyValue("Rings", strconv.Itoa(len(g.Rings)))
			printKeyValue("Items", strconv.Itoa(len(g.Items)))
			printNewline()
			fmt.Println(ringTable(g, opts.Threshold))

			if showItems {
				for ring := range g.Rings {
					items := g.ItemsOf(ring)
					if len(items) == 0 {
						continue
					}
					printNewline()
					fmt.Println(StyleHighlight.Render(g.Rings[ring].Name))
					fmt.Println(itemTable(items, opts.Threshold))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showItems, "items", false, "also list the items of every ring")
	flags.addGeometryFlags(cmd)
	cmd.Flags().Float64Var(&flags.threshold, "threshold", pipeline.DefaultThreshold, "angle in degrees past which labels rotate")
	return cmd
}

// ringTable renders one row per ring.
func ringTable(g geometry.Geometry, threshold float64) string {
	rows := make([][]string, 0, len(g.Rings))
	for i, r := range g.Rings {
		arc, layer := "—", "—"
		if !r.Center {
			arc, layer = strconv.Itoa(r.Arc), strconv.Itoa(r.Layer)
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			r.Name,
			arc,
			layer,
			formatSpan(r.Angle, "°"),
			formatSpan(r.Radius, ""),
			strconv.Itoa(len(g.ItemsOf(i))),
			formatRotation(label.Rotation(r.Angle[0], r.Angle[1], threshold)),
		})
	}
	return newTable("#", "Ring", "Arc", "Layer", "Angle", "Radius", "Items", "Rotate").Rows(rows...).Render()
}

// itemTable renders one row per item.
func itemTable(items []geometry.ItemSegment, threshold float64) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.Index),
			it.Name,
			formatSpan(it.Angle, "°"),
			strconv.FormatFloat(it.LinearScale, 'f', 3, 64),
			formatRotation(label.Rotation(it.Angle[0], it.Angle[1], threshold)),
		})
	}
	return newTable("#", "Item", "Angle", "Scale", "Rotate").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})
}

func formatSpan(s [2]float64, unit string) string {
	return fmt.Sprintf("%s%s … %s%s", trimFloat(s[0]), unit, trimFloat(s[1]), unit)
}

func formatRotation(deg float64) string {
	if deg == 0 {
		return "—"
	}
	return trimFloat(deg) + "°"
}

// trimFloat formats v with at most three decimals.
func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
