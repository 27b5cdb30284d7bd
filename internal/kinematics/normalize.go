// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package kinematics turns a raw accelerometer trip into velocity and
// position series: unit/frame normalization, static-window bias calibration,
// and left-Riemann integration. All stages are plain batch transforms over a
// table.Table; none of them performs I/O.
package kinematics

import (
	"github.com/relabs-tech/trip_kinematics/internal/table"
)

// StandardGravity is the conventional value used to convert g units to m/s².
const StandardGravity = 9.80665

// NormalizeOptions configures the raw-to-SI conversion.
type NormalizeOptions struct {
	// Gravity is the unit-scale factor applied to all three acceleration
	// axes (g units to m/s²).
	Gravity float64

	// CancelGravity subtracts the constant 1 g reading from the native
	// vertical axis, assuming the sensor sat level at rest. It must act on
	// native units and the native axis layout, so it runs before the axis
	// flip and before the unit scale. Alternative to static-window
	// calibration, not a complement to it.
	CancelGravity bool
}

// Normalize converts t from sensor-native units (fractions of g, native axis
// directions) to m/s² in the (forward, right, up) body frame. The sensor's y
// and z axes point opposite the body frame, so both are sign-flipped; x and
// the time column pass through untouched.
//
// The table is mutated in place and returned: after the call the input no
// longer holds native units. NaN values propagate unchanged.
func Normalize(t *table.Table, opts NormalizeOptions) *table.Table {
	for i := range t.Rows {
		r := &t.Rows[i]
		if opts.CancelGravity {
			r[2] -= 1
		}
		r[1] = -r[1]
		r[2] = -r[2]
		r[0] *= opts.Gravity
		r[1] *= opts.Gravity
		r[2] *= opts.Gravity
	}
	return t
}
