// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package kinematics

import (
	"github.com/relabs-tech/trip_kinematics/internal/table"
)

// Integrate computes the running time integral of each axis of t using the
// left-Riemann rule: the increment at sample i is rate_i × Δt_i, accumulated
// per axis.
//
// The first interval is measured from time zero, not from a preceding sample:
// Δt_0 = t_0 − 0, so output_0 = rate_0 × t_0. This is a deliberate
// convention — the recording clock starts at zero and the first sample is
// taken to have held since then.
//
// Rows must already be sorted by non-decreasing time; that invariant is not
// re-checked here. The result is a fresh table sharing the time column with
// its input.
func Integrate(t *table.Table) *table.Table {
	out := t.Derive()

	var sum [3]float64
	prev := 0.0
	for i, r := range t.Rows {
		dt := t.Time[i] - prev
		prev = t.Time[i]
		for a := 0; a < 3; a++ {
			sum[a] += r[a] * dt
			out.Rows[i][a] = sum[a]
		}
	}
	return out
}
