// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"bufio"
	"io"
	"os"

	"github.com/kshedden/gonpy"
)

// exportNumpy writes the pivoted matrix as a float64 .npy file, shape
// rows x cols, row-major, NaN for missing cells. Row/column labels are
// not stored; they are recoverable from processed_data.csv.
func exportNumpy(m *Matrix, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer f.Close()
	bufw := bufio.NewWriter(f)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return err
	}
	nr, nc := m.Data.Dims()
	npw.Shape = []int{nr, nc}
	data := make([]float64, 0, nr*nc)
	for r := 0; r < nr; r++ {
		data = append(data, m.Data.RawRowView(r)...)
	}
	if err = npw.WriteFloat64(data); err != nil {
		return err
	}
	if err = bufw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
