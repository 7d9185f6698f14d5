// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"fmt"
	"math"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// PairColumn is the derived species-pair label column.
const PairColumn = "Species_Pair"

// Clean replaces infinite ratio values with missing, optionally
// applies a base-2 log transform (zero and negative ratios become
// missing, not errors), derives the species-pair label column, and
// derives a Significant column from p_value when present. Missing
// values propagate; they are never dropped here.
func Clean(t *Table, logTransform bool) *Table {
	infinities := 0
	undefined := 0
	for i, v := range t.Ratio {
		if math.IsInf(v, 0) {
			infinities++
			v = math.NaN()
		}
		if logTransform && !math.IsNaN(v) {
			if v > 0 {
				v = math.Log2(v)
			} else {
				undefined++
				v = math.NaN()
			}
		}
		t.Ratio[i] = v
	}
	if infinities > 0 {
		log.Warnf("replaced %d infinite %s values with missing", infinities, RatioColumn)
	}
	if undefined > 0 {
		log.Warnf("log2 undefined for %d non-positive %s values, now missing", undefined, RatioColumn)
	}
	if t.Col(PairColumn) < 0 {
		pairs := make([]string, len(t.Rows))
		for i := range t.Rows {
			pairs[i] = pairLabel(t.SequenceA(i), t.SequenceB(i))
		}
		t.AddColumn(PairColumn, pairs)
	}
	if p := t.Col("p_value"); p >= 0 && t.Col("Significant") < 0 {
		sig := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			pv, err := strconv.ParseFloat(row[p], 64)
			if err != nil {
				continue
			}
			sig[i] = strconv.FormatBool(pv < 0.05)
		}
		t.AddColumn("Significant", sig)
	}
	return t
}

// pairLabel names a sequence pair independent of orientation, so A-B
// and B-A records land in the same dot plot group.
func pairLabel(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s vs %s", a, b)
}
