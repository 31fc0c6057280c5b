package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/render/sink"
)

// chartFlags holds the flags shared by commands that normalize or render.
// Only flags set on the command line override the config file.
type chartFlags struct {
	centerRadius float64
	padding      float64
	strict       bool
	verify       bool

	width          int
	height         int
	debug          bool
	threshold      float64
	labelFontScale float64
	itemFontScale  float64
	title          string
	detailed       bool
	hideItems      bool

	noCache bool
	refresh bool
}

// addGeometryFlags registers normalization flags.
func (f *chartFlags) addGeometryFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.centerRadius, "center-radius", geometry.DefaultCenterRadius, "center disc radius as a fraction of the chart radius")
	cmd.Flags().Float64Var(&f.padding, "padding", geometry.DefaultPadding, "gap between rings as a fraction of the chart radius")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject malformed trees instead of skipping empty parts")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check the computed geometry before using it")
}

// addRenderFlags registers render flags.
func (f *chartFlags) addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", pipeline.DefaultWidth, "canvas width in pixels")
	cmd.Flags().IntVar(&f.height, "height", pipeline.DefaultHeight, "canvas height in pixels")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "outline every item sector in red")
	cmd.Flags().Float64Var(&f.threshold, "threshold", pipeline.DefaultThreshold, "angle in degrees past which labels rotate")
	cmd.Flags().Float64Var(&f.labelFontScale, "label-font", sink.DefaultLabelFontScale, "ring label font size as a fraction of the chart radius")
	cmd.Flags().Float64Var(&f.itemFontScale, "item-font", sink.DefaultItemFontScale, "item label font size as a fraction of the chart radius")
	cmd.Flags().StringVar(&f.title, "title", "", "document title")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show spans and item counts (nodelink)")
	cmd.Flags().BoolVar(&f.hideItems, "hide-items", false, "omit item nodes (nodelink)")
}

// addCacheFlags registers cache control flags.
func (f *chartFlags) addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and recompute")
}

// options overlays the flags that were set on base.
func (f *chartFlags) options(cmd *cobra.Command, base pipeline.Options) pipeline.Options {
	opts := base
	changed := cmd.Flags().Changed

	if changed("center-radius") {
		v := f.centerRadius
		opts.CenterRadius = &v
	}
	if changed("padding") {
		v := f.padding
		opts.Padding = &v
	}
	if changed("strict") {
		opts.Strict = f.strict
	}
	if changed("verify") {
		opts.Verify = f.verify
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("debug") {
		opts.Debug = f.debug
	}
	if changed("threshold") {
		opts.Threshold = f.threshold
	}
	if changed("label-font") {
		opts.LabelFontScale = f.labelFontScale
	}
	if changed("item-font") {
		opts.ItemFontScale = f.itemFontScale
	}
	if changed("title") {
		opts.Title = f.title
	}
	if changed("detailed") {
		opts.Detailed = f.detailed
	}
	if changed("hide-items") {
		opts.HideItems = f.hideItems
	}
	opts.Refresh = f.refresh
	return opts
}
