// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// renderConfig is shared by all renderers.
type renderConfig struct {
	colormap      string
	width, height vg.Length
	dpi           int
	vmin, vmax    float64 // NaN means auto-scale
	annotate      bool
	logTransform  bool
}

func (cfg *renderConfig) valueLabel() string {
	if cfg.logTransform {
		return "log2(Ka/Ks)"
	}
	return "Ka/Ks"
}

// parseFigsize parses a "WxH" (or "W,H") figure size in inches.
func parseFigsize(s string) (w, h vg.Length, err error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == 'x' || r == ',' })
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("invalid figsize %q (want WxH, e.g. 12x10)", s)
	}
	wf, err1 := strconv.ParseFloat(fields[0], 64)
	hf, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil || wf <= 0 || hf <= 0 {
		return 0, 0, fmt.Errorf("invalid figsize %q (want WxH, e.g. 12x10)", s)
	}
	return vg.Length(wf) * vg.Inch, vg.Length(hf) * vg.Inch, nil
}

// paletteByName resolves a colormap name to a palette. Recognized
// names are the moreland color maps plus any ColorBrewer palette name;
// "viridis" maps to the closest perceptually-uniform map available.
func paletteByName(name string, colors int) (palette.Palette, error) {
	var cm palette.ColorMap
	switch strings.ToLower(name) {
	case "kindlmann":
		cm = moreland.Kindlmann()
	case "extendedkindlmann", "viridis":
		cm = moreland.ExtendedKindlmann()
	case "smoothbluered":
		cm = moreland.SmoothBlueRed()
	case "blackbody":
		cm = moreland.BlackBody()
	case "extendedblackbody":
		cm = moreland.ExtendedBlackBody()
	default:
		for _, typ := range []brewer.PaletteType{brewer.TypeSequential, brewer.TypeDiverging, brewer.TypeQualitative} {
			if pal, err := brewer.GetPalette(typ, name, 9); err == nil {
				return pal, nil
			}
		}
		return nil, fmt.Errorf("unknown colormap %q", name)
	}
	cm.SetMin(0)
	cm.SetMax(1)
	return cm.Palette(colors), nil
}

// pairGrid adapts a Matrix to the plotter.GridXYZ interface. Row 0
// renders at the bottom of the grid.
type pairGrid struct {
	m *Matrix
}

func (g pairGrid) Dims() (int, int) {
	r, c := g.m.Data.Dims()
	return c, r
}
func (g pairGrid) Z(c, r int) float64 { return g.m.Data.At(r, c) }
func (g pairGrid) X(c int) float64    { return float64(c) }
func (g pairGrid) Y(r int) float64    { return float64(r) }

// renderHeatmap draws the pivoted matrix as a color grid. Missing
// cells are left blank.
func renderHeatmap(m *Matrix, cfg *renderConfig, path string) error {
	if !m.hasFinite() {
		return fmt.Errorf("no finite values to plot")
	}
	pal, err := paletteByName(cfg.colormap, 255)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = cfg.valueLabel() + " by sequence pair"
	p.X.Label.Text = "Sequence2"
	p.Y.Label.Text = "Sequence1"
	h := plotter.NewHeatMap(pairGrid{m}, pal)
	if !math.IsNaN(cfg.vmin) {
		h.Min = cfg.vmin
	}
	if !math.IsNaN(cfg.vmax) {
		h.Max = cfg.vmax
	}
	p.Add(h)
	p.X.Tick.Marker = plot.ConstantTicks(nameTicks(m.Cols))
	p.Y.Tick.Marker = plot.ConstantTicks(nameTicks(m.Rows))
	if cfg.annotate {
		labels, err := cellLabels(m)
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	return savePNG(p, cfg, path)
}

// renderClusteredHeatmap reorders rows and columns by hierarchical
// clustering, then renders the same color grid. A degenerate matrix is
// an error; the caller downgrades it to a warning and skips the plot.
func renderClusteredHeatmap(m *Matrix, method string, cfg *renderConfig, path string) error {
	nr, nc := m.Data.Dims()
	if nr < 2 || nc < 2 {
		return fmt.Errorf("matrix is %dx%d, need at least 2x2 to cluster", nr, nc)
	}
	roworder, err := leafOrder(m.Data, method)
	if err != nil {
		return err
	}
	colorder, err := leafOrder(mat.DenseCopyOf(m.Data.T()), method)
	if err != nil {
		return err
	}
	return renderHeatmap(m.reorder(roworder, colorder), cfg, path)
}

// renderDotPlot draws one point per record (not per pivoted cell):
// x = species pair, y = ratio, one color per gene. Records with a
// missing ratio are skipped.
func renderDotPlot(t *Table, cfg *renderConfig, path string) error {
	pairs := []string{}
	pairidx := map[string]int{}
	genes := []string{}
	geneidx := map[string]int{}
	points := 0
	for i := range t.Rows {
		pair := pairLabel(t.SequenceA(i), t.SequenceB(i))
		if _, ok := pairidx[pair]; !ok {
			pairidx[pair] = len(pairs)
			pairs = append(pairs, pair)
		}
		if g := t.Gene(i); geneidx[g] == 0 {
			genes = append(genes, g)
			geneidx[g] = len(genes) // 1-based, 0 = unseen
		}
		if !math.IsNaN(t.Ratio[i]) {
			points++
		}
	}
	if points == 0 {
		return fmt.Errorf("no finite values to plot")
	}

	p := plot.New()
	p.Title.Text = cfg.valueLabel() + " by gene"
	p.Y.Label.Text = cfg.valueLabel()
	rnd := rand.New(rand.NewSource(1)) // fixed seed, deterministic jitter
	for gi, gene := range genes {
		var xys plotter.XYs
		for i := range t.Rows {
			if t.Gene(i) != gene || math.IsNaN(t.Ratio[i]) {
				continue
			}
			x := float64(pairidx[pairLabel(t.SequenceA(i), t.SequenceB(i))])
			xys = append(xys, plotter.XY{X: x + (rnd.Float64()-0.5)*0.4, Y: t.Ratio[i]})
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = plotutil.Color(gi)
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(gene, s)
	}
	p.NominalX(pairs...)
	p.Legend.Top = true
	return savePNG(p, cfg, path)
}

func nameTicks(names []string) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	return ticks
}

func cellLabels(m *Matrix) (*plotter.Labels, error) {
	var xyl plotter.XYLabels
	nr, nc := m.Data.Dims()
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			v := m.Data.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf("%.2f", v))
		}
	}
	return plotter.NewLabels(xyl)
}

func savePNG(p *plot.Plot, cfg *renderConfig, path string) error {
	c := vgimg.NewWith(vgimg.UseWH(cfg.width, cfg.height), vgimg.UseDPI(cfg.dpi))
	p.Draw(draw.New(c))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
