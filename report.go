// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// renderHTMLReport writes an interactive heatmap of the pivoted matrix
// as a standalone HTML page.
func renderHTMLReport(m *Matrix, cfg *renderConfig, path string) error {
	if !m.hasFinite() {
		return fmt.Errorf("no finite values to report")
	}
	nr, nc := m.Data.Dims()
	min, max := math.Inf(1), math.Inf(-1)
	var data []opts.HeatMapData
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			v := m.Data.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, v}})
		}
	}
	if !math.IsNaN(cfg.vmin) {
		min = cfg.vmin
	}
	if !math.IsNaN(cfg.vmax) {
		max = cfg.vmax
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: cfg.valueLabel() + " by sequence pair"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: m.Rows}),
		charts.WithVisualMapOpts(opts.VisualMap{Min: float32(min), Max: float32(max)}),
	)
	hm.SetXAxis(m.Cols).AddSeries(cfg.valueLabel(), data)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	page := components.NewPage()
	page.AddCharts(hm)
	if err = page.Render(f); err != nil {
		return err
	}
	return f.Close()
}
