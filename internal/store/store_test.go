package store

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/relabs-tech/trip_kinematics/internal/table"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunRoundTrip(t *testing.T) {
	s := openTestStore(t)

	run := &Run{
		ID:          "run-1",
		CreatedAt:   time.Unix(1700000000, 0),
		SourceFile:  "data/accel.csv",
		SampleCount: 18500,
		Duration:    1850.5,
		BiasMode:    "static",
		BiasX:       0.12,
		BiasY:       -0.03,
		BiasZ:       9.79,
	}
	if err := s.InsertRun(run); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	got, err := s.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.SourceFile != run.SourceFile || got.SampleCount != run.SampleCount {
		t.Errorf("got %+v, want %+v", got, run)
	}
	if got.BiasZ != 9.79 {
		t.Errorf("BiasZ = %v, want 9.79", got.BiasZ)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestDuplicateRunRejected(t *testing.T) {
	s := openTestStore(t)

	run := &Run{ID: "dup", CreatedAt: time.Now(), SourceFile: "a.csv"}
	if err := s.InsertRun(run); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	if err := s.InsertRun(run); err == nil {
		t.Fatal("duplicate run id must be rejected")
	}
}

func TestSummariesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.InsertRun(&Run{ID: "run-2", CreatedAt: time.Now(), SourceFile: "a.csv"}); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	tbl := &table.Table{
		Time: []float64{0, 1, 2, 3},
		Rows: [][3]float64{{1, -4, 0}, {3, -2, 0}, {5, 0, 0}, {7, 2, 0}},
	}
	sums := Summarize("run-2", "velocity", tbl)
	if len(sums) != 3 {
		t.Fatalf("Summarize returned %d rows, want 3", len(sums))
	}
	if err := s.InsertSummaries(sums); err != nil {
		t.Fatalf("InsertSummaries: %v", err)
	}

	got, err := s.Summaries("run-2")
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d summaries, want 3", len(got))
	}

	// Rows come back ordered by axis: x, y, z after stage.
	var x StageSummary
	for _, sum := range got {
		if sum.Axis == "x" {
			x = sum
		}
	}
	if x.Mean != 4 || x.Min != 1 || x.Max != 7 || x.Final != 7 {
		t.Errorf("x summary = %+v, want mean 4, min 1, max 7, final 7", x)
	}
	// Sample standard deviation of {1,3,5,7}.
	if math.Abs(x.StdDev-2.581988897471611) > 1e-12 {
		t.Errorf("x stddev = %v", x.StdDev)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	for i, id := range []string{"old", "new"} {
		run := &Run{ID: id, CreatedAt: time.Unix(int64(1000+i), 0), SourceFile: "a.csv"}
		if err := s.InsertRun(run); err != nil {
			t.Fatalf("InsertRun %s: %v", id, err)
		}
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "new" {
		t.Errorf("runs = %v, want newest first", runs)
	}
}

func TestSummarizeEmptyTable(t *testing.T) {
	if got := Summarize("r", "velocity", &table.Table{}); got != nil {
		t.Errorf("Summarize of empty table = %v, want nil", got)
	}
}
