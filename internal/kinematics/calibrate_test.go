package kinematics

import (
	"math"
	"testing"
)

func TestCalibrateExactBias(t *testing.T) {
	// Static samples read exactly (1,2,3); moving samples carry an extra
	// delta that must not leak into the bias estimate.
	times := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rows := make([][3]float64, len(times))
	for i := range rows {
		rows[i] = [3]float64{1, 2, 3}
		if times[i] >= 4.5 {
			rows[i][0] += 0.5
			rows[i][1] += 0.5
			rows[i][2] += 0.5
		}
	}
	tbl := testTable(times, rows)

	out, bias := Calibrate(tbl, []Window{{Start: -1, End: 4.5}})

	if out != tbl {
		t.Fatal("Calibrate must return the same table it was given")
	}
	if bias != [3]float64{1, 2, 3} {
		t.Fatalf("bias = %v, want (1,2,3) exactly", bias)
	}
	for i := 0; i < 5; i++ {
		if out.Rows[i] != [3]float64{0, 0, 0} {
			t.Errorf("static row %d = %v, want all zero", i, out.Rows[i])
		}
	}
	// Moving rows are rebiased too (broadcast subtraction).
	for i := 5; i < 10; i++ {
		if out.Rows[i] != [3]float64{0.5, 0.5, 0.5} {
			t.Errorf("moving row %d = %v, want (0.5,0.5,0.5)", i, out.Rows[i])
		}
	}
}

func TestCalibrateBoundariesExcluded(t *testing.T) {
	// Interval membership uses strict inequalities: samples exactly at a
	// window boundary do not count as static.
	times := []float64{1, 2, 3}
	tbl := testTable(times, [][3]float64{
		{10, 10, 10},
		{4, 5, 6},
		{10, 10, 10},
	})

	_, bias := Calibrate(tbl, []Window{{Start: 1, End: 3}})

	if bias != [3]float64{4, 5, 6} {
		t.Fatalf("bias = %v, want (4,5,6): only t=2 is strictly inside (1,3)", bias)
	}
}

func TestCalibrateEmptyMaskYieldsNaN(t *testing.T) {
	for _, windows := range [][]Window{
		nil,
		{{Start: 100, End: 200}}, // matches no sample
	} {
		tbl := testTable([]float64{0, 1, 2}, [][3]float64{
			{1, 1, 1}, {2, 2, 2}, {3, 3, 3},
		})

		out, bias := Calibrate(tbl, windows)

		for a := 0; a < 3; a++ {
			if !math.IsNaN(bias[a]) {
				t.Fatalf("windows %v: bias[%d] = %v, want NaN", windows, a, bias[a])
			}
		}
		for i, r := range out.Rows {
			for a := 0; a < 3; a++ {
				if !math.IsNaN(r[a]) {
					t.Errorf("windows %v: row %d axis %d = %v, want NaN in every output row", windows, i, a, r[a])
				}
			}
		}
	}
}

func TestCalibrateMultipleWindowsORed(t *testing.T) {
	times := []float64{0, 10, 20, 30}
	tbl := testTable(times, [][3]float64{
		{2, 0, 0},  // in first window
		{8, 0, 0},  // moving
		{4, 0, 0},  // in second window
		{12, 0, 0}, // moving
	})

	_, bias := Calibrate(tbl, []Window{
		{Start: -1, End: 5},
		{Start: 15, End: 25},
	})

	if bias[0] != 3 {
		t.Fatalf("bias x = %v, want 3 (mean of samples from both windows)", bias[0])
	}
}

func TestCalibrateIsReentrant(t *testing.T) {
	// A second pass over an already calibrated series must measure zero
	// residual bias and leave the data untouched.
	windows := []Window{{Start: -1, End: 2.5}}
	tbl := testTable([]float64{0, 1, 2, 3}, [][3]float64{
		{1, 2, 3}, {1, 2, 3}, {1, 2, 3}, {5, 5, 5},
	})

	Calibrate(tbl, windows)
	snapshot := make([][3]float64, len(tbl.Rows))
	copy(snapshot, tbl.Rows)

	_, bias := Calibrate(tbl, windows)

	if bias != [3]float64{0, 0, 0} {
		t.Fatalf("second-pass bias = %v, want zero", bias)
	}
	for i := range tbl.Rows {
		if tbl.Rows[i] != snapshot[i] {
			t.Errorf("row %d changed on second pass: %v -> %v", i, snapshot[i], tbl.Rows[i])
		}
	}
}
