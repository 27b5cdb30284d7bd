package store

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/relabs-tech/trip_kinematics/internal/table"
)

var axisNames = [3]string{"x", "y", "z"}

// Summarize computes the per-axis statistics of one derived series.
func Summarize(runID, stage string, t *table.Table) []StageSummary {
	if t.Len() == 0 {
		return nil
	}

	out := make([]StageSummary, 0, 3)
	for axis := 0; axis < 3; axis++ {
		col := t.Column(axis)
		out = append(out, StageSummary{
			RunID:  runID,
			Stage:  stage,
			Axis:   axisNames[axis],
			Mean:   stat.Mean(col, nil),
			StdDev: stat.StdDev(col, nil),
			Min:    floats.Min(col),
			Max:    floats.Max(col),
			Final:  col[len(col)-1],
		})
	}
	return out
}
