// Package render draws the derived time series as PNG files, one plot per
// integration stage with the three body-frame axes as labeled lines.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/relabs-tech/trip_kinematics/internal/table"
)

// Stage pairs one derived series with its display metadata.
type Stage struct {
	Name  string // "acceleration", "velocity", "position"
	Unit  string // "m/s^2", "m/s", "m"
	Table *table.Table
}

var axisLabels = [3]string{"x (forward)", "y (right)", "z (up)"}

// StagePNG renders one stage into dir as <name>.png and returns the file
// path.
func StagePNG(dir string, s Stage) (string, error) {
	p := plot.New()
	p.Title.Text = s.Name
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = fmt.Sprintf("%s (%s)", s.Name, s.Unit)
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLines(p,
		axisLabels[0], axisPoints(s.Table, 0),
		axisLabels[1], axisPoints(s.Table, 1),
		axisLabels[2], axisPoints(s.Table, 2),
	); err != nil {
		return "", fmt.Errorf("render %s: %w", s.Name, err)
	}
	p.Legend.Top = true

	path := filepath.Join(dir, s.Name+".png")
	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("render %s: %w", s.Name, err)
	}
	return path, nil
}

// TripPNGs renders all stages into dir, creating it if needed.
func TripPNGs(dir string, stages []Stage) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("output dir %s: %w", dir, err)
	}

	paths := make([]string, 0, len(stages))
	for _, s := range stages {
		path, err := StagePNG(dir, s)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func axisPoints(t *table.Table, axis int) plotter.XYs {
	pts := make(plotter.XYs, t.Len())
	for i := range pts {
		pts[i].X = t.Time[i]
		pts[i].Y = t.Rows[i][axis]
	}
	return pts
}
