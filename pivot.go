// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is the wide-format reshaping of the pairwise records: one row
// per distinct Sequence1 value, one column per distinct Sequence2
// value, in first-observed order. Cells for pairs never observed (or
// observed only with missing ratios) are NaN, so the renderers can
// distinguish "no data" from a ratio of zero.
type Matrix struct {
	Rows []string
	Cols []string
	Data *mat.Dense
}

// Pivot reshapes the cleaned table into a Matrix. Duplicate
// (Sequence1, Sequence2) pairs are aggregated by arithmetic mean over
// their non-missing ratio values.
func Pivot(t *Table) *Matrix {
	rowidx := map[string]int{}
	colidx := map[string]int{}
	m := &Matrix{}
	for i := range t.Rows {
		if a := t.SequenceA(i); rowidx[a] == 0 {
			m.Rows = append(m.Rows, a)
			rowidx[a] = len(m.Rows)
		}
		if b := t.SequenceB(i); colidx[b] == 0 {
			m.Cols = append(m.Cols, b)
			colidx[b] = len(m.Cols)
		}
	}
	nr, nc := len(m.Rows), len(m.Cols)
	sum := make([]float64, nr*nc)
	count := make([]int, nr*nc)
	for i, v := range t.Ratio {
		if math.IsNaN(v) {
			continue
		}
		// the index maps are 1-based so that 0 means "not seen yet"
		cell := (rowidx[t.SequenceA(i)]-1)*nc + colidx[t.SequenceB(i)] - 1
		sum[cell] += v
		count[cell]++
	}
	for cell := range sum {
		if count[cell] > 0 {
			sum[cell] /= float64(count[cell])
		} else {
			sum[cell] = math.NaN()
		}
	}
	m.Data = mat.NewDense(nr, nc, sum)
	return m
}

// hasFinite reports whether any cell holds a finite value.
func (m *Matrix) hasFinite() bool {
	nr, nc := m.Data.Dims()
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			if !math.IsNaN(m.Data.At(r, c)) {
				return true
			}
		}
	}
	return false
}

// reorder returns a copy of m with rows and columns permuted.
func (m *Matrix) reorder(roworder, colorder []int) *Matrix {
	nr, nc := m.Data.Dims()
	out := &Matrix{
		Rows: make([]string, nr),
		Cols: make([]string, nc),
		Data: mat.NewDense(nr, nc, nil),
	}
	for r, ro := range roworder {
		out.Rows[r] = m.Rows[ro]
		for c, co := range colorder {
			out.Data.Set(r, c, m.Data.At(ro, co))
		}
	}
	for c, co := range colorder {
		out.Cols[c] = m.Cols[co]
	}
	return out
}
