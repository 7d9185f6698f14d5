// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"math"
	"os"

	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/check.v1"
)

type exportSuite struct{}

var _ = check.Suite(&exportSuite{})

func (s *exportSuite) TestNumpyRoundTrip(c *check.C) {
	tmpdir := c.MkDir()
	m := &Matrix{
		Rows: []string{"A", "B"},
		Cols: []string{"X", "Y", "Z"},
		Data: mat.NewDense(2, 3, []float64{0.5, 1.6, math.NaN(), 0.85, 2.25, 0}),
	}
	err := exportNumpy(m, tmpdir+"/kaks_matrix.npy")
	c.Assert(err, check.IsNil)

	f, err := os.Open(tmpdir + "/kaks_matrix.npy")
	c.Assert(err, check.IsNil)
	defer f.Close()
	npr, err := gonpy.NewReader(f)
	c.Assert(err, check.IsNil)
	data, err := npr.GetFloat64()
	c.Assert(err, check.IsNil)
	c.Check(npr.Shape, check.DeepEquals, []int{2, 3})
	c.Assert(data, check.HasLen, 6)
	c.Check(data[0], check.Equals, 0.5)
	c.Check(data[1], check.Equals, 1.6)
	c.Check(math.IsNaN(data[2]), check.Equals, true)
	c.Check(data[3], check.Equals, 0.85)
	c.Check(data[4], check.Equals, 2.25)
	c.Check(data[5], check.Equals, 0.0)
}
