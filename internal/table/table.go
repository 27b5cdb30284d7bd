package table

// Table holds one trip's worth of samples: a shared time column plus one
// [x y z] acceleration (or velocity, or position) row per sample.
//
// The time column is the single clock for the whole analysis. Pipeline stages
// that derive a new series keep pointing at the same Time slice so that
// masking and integration always use the clock the samples were recorded
// against.
type Table struct {
	Time []float64    // seconds, non-decreasing
	Rows [][3]float64 // one [x y z] triple per sample
}

// Len returns the number of samples.
func (t *Table) Len() int {
	return len(t.Time)
}

// Column copies out one axis (0=x, 1=y, 2=z) as a flat slice.
func (t *Table) Column(axis int) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[axis]
	}
	return out
}

// Derive returns a fresh table with the same time column and zeroed rows.
// The Time slice is shared, the Rows storage is new.
func (t *Table) Derive() *Table {
	return &Table{
		Time: t.Time,
		Rows: make([][3]float64, len(t.Rows)),
	}
}
