package kinematics

import (
	"github.com/relabs-tech/trip_kinematics/internal/table"
)

// PipelineOptions selects how one trip is conditioned before integration.
type PipelineOptions struct {
	Normalize NormalizeOptions

	// Windows is the static calibration set, in recording-clock seconds.
	Windows []Window

	// StaticCalibration subtracts the static-window mean bias from the
	// acceleration series. Mutually exclusive with
	// Normalize.CancelGravity; the config layer enforces that.
	StaticCalibration bool

	// CalibrateVelocity repeats the static calibration on the velocity
	// series to strip drift accumulated over the static periods.
	CalibrateVelocity bool
}

// Result holds the three series derived from one trip. Acceleration is the
// conditioned input; velocity and position are its successive integrals.
type Result struct {
	Accel    *table.Table
	Velocity *table.Table
	Position *table.Table

	// Bias is the per-axis offset removed by static calibration, zero when
	// static calibration is off.
	Bias [3]float64
}

// Run pushes one trip through the whole pipeline. It takes ownership of t:
// the caller must not use t afterwards, since normalization and calibration
// rewrite it in place (it comes back as Result.Accel).
func Run(t *table.Table, opts PipelineOptions) *Result {
	res := &Result{}

	t = Normalize(t, opts.Normalize)
	if opts.StaticCalibration {
		t, res.Bias = Calibrate(t, opts.Windows)
	}
	res.Accel = t

	vel := Integrate(t)
	if opts.StaticCalibration && opts.CalibrateVelocity {
		vel, _ = Calibrate(vel, opts.Windows)
	}
	res.Velocity = vel

	res.Position = Integrate(vel)
	return res
}
