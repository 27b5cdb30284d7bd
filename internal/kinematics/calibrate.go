// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package kinematics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/relabs-tech/trip_kinematics/internal/table"
)

// Window is a time span during which the platform is known a priori to be
// stationary (e.g. a station stop). Start and End are in the same units as
// the table's time column.
type Window struct {
	Start float64
	End   float64
}

// Contains reports whether ts falls strictly inside the window. Samples
// exactly on a boundary are excluded.
func (w Window) Contains(ts float64) bool {
	return w.Start < ts && ts < w.End
}

// Calibrate estimates the constant per-axis bias as the mean acceleration
// over all samples inside any of the static windows, then subtracts it from
// every row, including rows outside the windows. The table is mutated in
// place and returned together with the bias that was removed.
//
// If no sample falls inside any window the mean is NaN and contaminates every
// output row. That is accepted behavior: a trip whose static windows miss the
// data is garbage either way, and the plots make it obvious.
//
// Calibrate is stateless and may be applied again to a derived velocity
// series to remove integration drift accumulated over the static periods.
func Calibrate(t *table.Table, windows []Window) (*table.Table, [3]float64) {
	var static [3][]float64
	for i, ts := range t.Time {
		if !anyContains(windows, ts) {
			continue
		}
		for a := 0; a < 3; a++ {
			static[a] = append(static[a], t.Rows[i][a])
		}
	}

	var bias [3]float64
	for a := 0; a < 3; a++ {
		bias[a] = stat.Mean(static[a], nil)
	}

	for i := range t.Rows {
		for a := 0; a < 3; a++ {
			t.Rows[i][a] -= bias[a]
		}
	}
	return t, bias
}

// anyContains is the logical OR of the window membership tests.
func anyContains(windows []Window, ts float64) bool {
	for _, w := range windows {
		if w.Contains(ts) {
			return true
		}
	}
	return false
}
