// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

func Main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		log.StandardLogger().Formatter = &log.TextFormatter{DisableTimestamp: true}
	}
	os.Exit((&visualize{}).RunCommand(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// visualize is the whole pipeline: load, clean, pivot, render.
type visualize struct{}

func (cmd *visualize) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s input.csv[.gz] [options]\n", prog)
		flags.PrintDefaults()
	}
	outputDir := flags.String("output_dir", "results", "output `directory` (created if absent)")
	cluster := flags.Bool("cluster", false, "also render a hierarchically clustered heatmap")
	logTransform := flags.Bool("log_transform", false, "plot log2 of the ratio values")
	annotate := flags.Bool("annotate", false, "overlay numeric values on heatmap cells")
	clusterMethod := flags.String("cluster_method", "average", "linkage `method`: average, complete, single, or ward")
	colormap := flags.String("colormap", "kindlmann", "heatmap colormap `name`")
	figsize := flags.String("figsize", "12x10", "figure size `WxH` in inches")
	dpi := flags.Int("dpi", 300, "output resolution in dots per inch")
	vmin := flags.Float64("vmin", math.NaN(), "fixed color scale minimum (default: auto)")
	vmax := flags.Float64("vmax", math.NaN(), "fixed color scale maximum (default: auto)")
	htmlReport := flags.Bool("html", false, "also write an interactive HTML heatmap report")
	npyExport := flags.Bool("npy", false, "also export the pivoted matrix as a .npy file")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		err = fmt.Errorf("missing input file argument")
		return 2
	}
	inputFilename := flags.Arg(0)
	if flags.NArg() > 1 {
		// options may follow the input path
		err = flags.Parse(flags.Args()[1:])
		if err != nil {
			return 2
		}
		if flags.NArg() > 0 {
			err = fmt.Errorf("errant command line arguments after parsed flags: %v", flags.Args())
			return 2
		}
	}

	cfg := &renderConfig{
		colormap:     *colormap,
		dpi:          *dpi,
		vmin:         *vmin,
		vmax:         *vmax,
		annotate:     *annotate,
		logTransform: *logTransform,
	}
	// fail on configuration errors before writing any output
	cfg.width, cfg.height, err = parseFigsize(*figsize)
	if err != nil {
		return 1
	}
	if _, err = paletteByName(cfg.colormap, 255); err != nil {
		return 1
	}
	if !clusterMethods[*clusterMethod] {
		err = fmt.Errorf("unsupported cluster method %q (want average, complete, single, or ward)", *clusterMethod)
		return 1
	}
	table, err := OpenTable(inputFilename)
	if err != nil {
		return 1
	}
	if err = os.MkdirAll(*outputDir, 0777); err != nil {
		return 1
	}

	Clean(table, *logTransform)
	if err = table.WriteFile(filepath.Join(*outputDir, "processed_data.csv")); err != nil {
		return 1
	}
	matrix := Pivot(table)

	// one plot failing (e.g. degenerate clustering input) must not
	// stop the others
	if err := renderHeatmap(matrix, cfg, filepath.Join(*outputDir, "heatmap.png")); err != nil {
		log.Warnf("skipping heatmap: %s", err)
	}
	if *cluster {
		if err := renderClusteredHeatmap(matrix, *clusterMethod, cfg, filepath.Join(*outputDir, "clustered_heatmap.png")); err != nil {
			log.Warnf("skipping clustered heatmap: %s", err)
		}
	}
	if err := renderDotPlot(table, cfg, filepath.Join(*outputDir, "dot_plot.png")); err != nil {
		log.Warnf("skipping dot plot: %s", err)
	}
	if *npyExport {
		if err := exportNumpy(matrix, filepath.Join(*outputDir, "kaks_matrix.npy")); err != nil {
			log.Warnf("skipping numpy export: %s", err)
		}
	}
	if *htmlReport {
		if err := renderHTMLReport(matrix, cfg, filepath.Join(*outputDir, "report.html")); err != nil {
			log.Warnf("skipping html report: %s", err)
		}
	}

	fmt.Fprintln(stdout, *outputDir)
	return 0
}
