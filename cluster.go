// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package kaksplot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// clusterMethods are the supported linkage methods.
var clusterMethods = map[string]bool{
	"average":  true,
	"complete": true,
	"single":   true,
	"ward":     true,
}

// leafOrder runs agglomerative hierarchical clustering on the rows of
// m (euclidean distance, NaN cells read as 0) and returns the
// dendrogram leaf order. Merge distances are updated with the
// Lance-Williams recurrence for the given linkage method. Degenerate
// input (fewer than 2 rows, or all rows identical) is an error so the
// caller can skip the plot instead of crashing.
func leafOrder(m *mat.Dense, method string) ([]int, error) {
	if !clusterMethods[method] {
		return nil, fmt.Errorf("unsupported cluster method %q", method)
	}
	nr, nc := m.Dims()
	if nr < 2 {
		return nil, fmt.Errorf("cannot cluster %d row(s)", nr)
	}

	dist := make([][]float64, nr)
	maxdist := 0.0
	for i := range dist {
		dist[i] = make([]float64, nr)
	}
	for i := 0; i < nr; i++ {
		for j := i + 1; j < nr; j++ {
			var sum float64
			for k := 0; k < nc; k++ {
				d := finiteOrZero(m.At(i, k)) - finiteOrZero(m.At(j, k))
				sum += d * d
			}
			dist[i][j] = math.Sqrt(sum)
			dist[j][i] = dist[i][j]
			maxdist = math.Max(maxdist, dist[i][j])
		}
	}
	if maxdist == 0 {
		return nil, fmt.Errorf("no variance across rows")
	}

	// nodes 0..nr-1 are leaves; each merge appends an internal node.
	type node struct {
		left, right int
		size        int
	}
	nodes := make([]node, nr, 2*nr-1)
	for i := range nodes {
		nodes[i] = node{left: -1, right: -1, size: 1}
	}
	active := make([]int, nr) // active[i] = node id for dist row i
	for i := range active {
		active[i] = i
	}
	alive := make([]bool, nr)
	for i := range alive {
		alive[i] = true
	}

	for merges := 0; merges < nr-1; merges++ {
		bi, bj, best := -1, -1, math.Inf(1)
		for i := 0; i < nr; i++ {
			if !alive[i] {
				continue
			}
			for j := i + 1; j < nr; j++ {
				if alive[j] && dist[i][j] < best {
					bi, bj, best = i, j, dist[i][j]
				}
			}
		}
		ni := float64(nodes[active[bi]].size)
		nj := float64(nodes[active[bj]].size)
		for k := 0; k < nr; k++ {
			if !alive[k] || k == bi || k == bj {
				continue
			}
			dik, djk := dist[bi][k], dist[bj][k]
			var d float64
			switch method {
			case "single":
				d = math.Min(dik, djk)
			case "complete":
				d = math.Max(dik, djk)
			case "average":
				d = (ni*dik + nj*djk) / (ni + nj)
			case "ward":
				nk := float64(nodes[active[k]].size)
				d = math.Sqrt(((ni+nk)*dik*dik + (nj+nk)*djk*djk - nk*best*best) / (ni + nj + nk))
			}
			dist[bi][k] = d
			dist[k][bi] = d
		}
		nodes = append(nodes, node{
			left:  active[bi],
			right: active[bj],
			size:  nodes[active[bi]].size + nodes[active[bj]].size,
		})
		active[bi] = len(nodes) - 1
		alive[bj] = false
	}

	order := make([]int, 0, nr)
	var walk func(id int)
	walk = func(id int) {
		if nodes[id].left < 0 {
			order = append(order, id)
			return
		}
		walk(nodes[id].left)
		walk(nodes[id].right)
	}
	walk(len(nodes) - 1)
	return order, nil
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
