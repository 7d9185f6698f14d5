// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"math"
	"strings"

	"gopkg.in/check.v1"
)

type cleanSuite struct{}

var _ = check.Suite(&cleanSuite{})

func (s *cleanSuite) table(c *check.C, csv string) *Table {
	t, err := ReadTable(strings.NewReader(csv))
	c.Assert(err, check.IsNil)
	return t
}

func (s *cleanSuite) TestInfinitiesBecomeMissing(c *check.C) {
	t := s.table(c, "Gene,Sequence1,Sequence2,Ka/Ks\ng1,A,B,inf\ng2,A,C,-inf\ng3,B,C,0.5\n")
	Clean(t, false)
	c.Check(math.IsNaN(t.Ratio[0]), check.Equals, true)
	c.Check(math.IsNaN(t.Ratio[1]), check.Equals, true)
	c.Check(t.Ratio[2], check.Equals, 0.5)
	for _, v := range t.Ratio {
		c.Check(math.IsInf(v, 0), check.Equals, false)
	}
}

func (s *cleanSuite) TestLog2(c *check.C) {
	t := s.table(c, "Gene,Sequence1,Sequence2,Ka/Ks\ng1,A,B,4\ng2,A,C,0.25\ng3,B,C,0\ng4,B,A,-1\ng5,C,A,1\n")
	Clean(t, true)
	c.Check(t.Ratio[0], check.Equals, 2.0)
	c.Check(t.Ratio[1], check.Equals, -2.0)
	c.Check(math.IsNaN(t.Ratio[2]), check.Equals, true, check.Commentf("log2(0) must be missing, not an error"))
	c.Check(math.IsNaN(t.Ratio[3]), check.Equals, true)
	c.Check(t.Ratio[4], check.Equals, 0.0)
}

func (s *cleanSuite) TestIdempotent(c *check.C) {
	t := s.table(c, "Gene,Sequence1,Sequence2,Ka/Ks\ng1,A,B,inf\ng2,B,A,0.5\ng3,A,C,2\n")
	Clean(t, false)
	columns := append([]string(nil), t.Columns...)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}
	ratio := append([]float64(nil), t.Ratio...)

	Clean(t, false)
	c.Check(t.Columns, check.DeepEquals, columns)
	c.Check(t.Rows, check.DeepEquals, rows)
	for i := range ratio {
		if math.IsNaN(ratio[i]) {
			c.Check(math.IsNaN(t.Ratio[i]), check.Equals, true)
		} else {
			c.Check(t.Ratio[i], check.Equals, ratio[i])
		}
	}
}

func (s *cleanSuite) TestSpeciesPairLabel(c *check.C) {
	t := s.table(c, "Gene,Sequence1,Sequence2,Ka/Ks\ng1,B,A,0.5\ng1,A,B,0.6\n")
	Clean(t, false)
	pair := t.Col(PairColumn)
	c.Assert(pair >= 0, check.Equals, true)
	// both orientations get the same label
	c.Check(t.Rows[0][pair], check.Equals, "A vs B")
	c.Check(t.Rows[1][pair], check.Equals, "A vs B")
}

func (s *cleanSuite) TestSignificance(c *check.C) {
	t := s.table(c, "Gene,Sequence1,Sequence2,Ka/Ks,p_value\ng1,A,B,0.5,0.01\ng2,A,C,0.6,0.9\ng3,B,C,0.7,bogus\n")
	Clean(t, false)
	sig := t.Col("Significant")
	c.Assert(sig >= 0, check.Equals, true)
	c.Check(t.Rows[0][sig], check.Equals, "true")
	c.Check(t.Rows[1][sig], check.Equals, "false")
	c.Check(t.Rows[2][sig], check.Equals, "")
}
