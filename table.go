// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"
)

// RatioColumn is the canonical name of the divergence ratio column
// after alias resolution.
const RatioColumn = "Ka_Ks"

// ratioAliases are the accepted input spellings of the divergence
// ratio column, in priority order.
var ratioAliases = []string{"Ka/Ks", "Ka_Ks", "KaKs", "dN/dS", "dn_ds"}

// identityColumns must all be present in the input header.
var identityColumns = []string{"Gene", "Sequence1", "Sequence2"}

// Table is a delimited table held in memory. Cell values stay as
// strings except for the canonical ratio column, which is parsed into
// Ratio (NaN marks a missing or unparseable value). Rows and Ratio
// always have the same length.
type Table struct {
	Columns []string
	Rows    [][]string
	Ratio   []float64

	gene, seqA, seqB, ratio int // column indexes
}

// OpenTable reads a CSV file into a Table, transparently decompressing
// files with a .gz suffix.
func OpenTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var in io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".gz") {
		gzr, err := pgzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer gzr.Close()
		in = gzr
	}
	t, err := ReadTable(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses a CSV stream, resolves the ratio column alias, and
// checks that the identity columns are present.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input")
	} else if err != nil {
		return nil, err
	}
	t := &Table{Columns: make([]string, len(header))}
	for i, name := range header {
		t.Columns[i] = strings.TrimSpace(name)
	}
	if err := t.resolveRatioColumn(); err != nil {
		return nil, err
	}
	if err := t.checkIdentityColumns(); err != nil {
		return nil, err
	}
	badvalues := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		for i, cell := range rec {
			rec[i] = strings.TrimSpace(cell)
		}
		v := math.NaN()
		if cell := rec[t.ratio]; cell != "" {
			v, err = strconv.ParseFloat(cell, 64)
			if err != nil {
				badvalues++
				v = math.NaN()
			}
		}
		t.Rows = append(t.Rows, rec)
		t.Ratio = append(t.Ratio, v)
	}
	if badvalues > 0 {
		log.Warnf("coerced %d non-numeric %s values to missing", badvalues, RatioColumn)
	}
	return t, nil
}

func (t *Table) resolveRatioColumn() error {
	found := -1
	var conflict []string
	for _, alias := range ratioAliases {
		if i := t.Col(alias); i >= 0 {
			if found < 0 {
				found = i
			}
			conflict = append(conflict, alias)
		}
	}
	if found < 0 {
		return fmt.Errorf("no divergence ratio column found (tried %s; available columns: %s)",
			strings.Join(ratioAliases, ", "), strings.Join(t.Columns, ", "))
	}
	if len(conflict) > 1 {
		return fmt.Errorf("ambiguous divergence ratio columns: %s", strings.Join(conflict, ", "))
	}
	t.Columns[found] = RatioColumn
	t.ratio = found
	return nil
}

func (t *Table) checkIdentityColumns() error {
	var missing []string
	for _, name := range identityColumns {
		if t.Col(name) < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s (available columns: %s)",
			strings.Join(missing, ", "), strings.Join(t.Columns, ", "))
	}
	t.gene = t.Col("Gene")
	t.seqA = t.Col("Sequence1")
	t.seqB = t.Col("Sequence2")
	return nil
}

// Col returns the index of the named column, or -1.
func (t *Table) Col(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) Gene(row int) string      { return t.Rows[row][t.gene] }
func (t *Table) SequenceA(row int) string { return t.Rows[row][t.seqA] }
func (t *Table) SequenceB(row int) string { return t.Rows[row][t.seqB] }

// AddColumn appends a column. values must have one entry per row.
func (t *Table) AddColumn(name string, values []string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
}

// WriteCSV writes the table, substituting the parsed ratio values back
// into the canonical column. Missing ratios become empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	rec := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		copy(rec, row)
		if v := t.Ratio[i]; math.IsNaN(v) {
			rec[t.ratio] = ""
		} else {
			rec[t.ratio] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path as CSV.
func (t *Table) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer f.Close()
	bufw := bufio.NewWriter(f)
	if err = t.WriteCSV(bufw); err != nil {
		return err
	}
	if err = bufw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
