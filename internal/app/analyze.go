package app

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/relabs-tech/trip_kinematics/internal/config"
	"github.com/relabs-tech/trip_kinematics/internal/kinematics"
	"github.com/relabs-tech/trip_kinematics/internal/render"
	"github.com/relabs-tech/trip_kinematics/internal/store"
	"github.com/relabs-tech/trip_kinematics/internal/table"
)

// pipelineOptions maps the loaded configuration onto pipeline options.
func pipelineOptions(cfg *config.Config) kinematics.PipelineOptions {
	return kinematics.PipelineOptions{
		Normalize: kinematics.NormalizeOptions{
			Gravity:       cfg.Gravity,
			CancelGravity: cfg.BiasMode == config.BiasModeGravity,
		},
		Windows:           cfg.StaticWindows,
		StaticCalibration: cfg.BiasMode == config.BiasModeStatic,
		CalibrateVelocity: cfg.CalibrateVelocity,
	}
}

// analyzeTrip loads the configured trip CSV and derives the three series.
func analyzeTrip(cfg *config.Config) (*kinematics.Result, error) {
	if cfg.TripCSV == "" {
		return nil, fmt.Errorf("analyze: TRIP_CSV is required")
	}

	tbl, err := table.Load(cfg.TripCSV)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	log.Printf("analyze: loaded %d samples from %s", tbl.Len(), cfg.TripCSV)

	res := kinematics.Run(tbl, pipelineOptions(cfg))
	if cfg.BiasMode == config.BiasModeStatic {
		log.Printf("analyze: static bias removed: x=%.5f y=%.5f z=%.5f m/s²",
			res.Bias[0], res.Bias[1], res.Bias[2])
	}
	return res, nil
}

// resultStages pairs the derived series with their plot metadata.
func resultStages(res *kinematics.Result) []render.Stage {
	return []render.Stage{
		{Name: "acceleration", Unit: "m/s^2", Table: res.Accel},
		{Name: "velocity", Unit: "m/s", Table: res.Velocity},
		{Name: "position", Unit: "m", Table: res.Position},
	}
}

// RunAnalyze executes the whole offline pipeline: load, normalize,
// calibrate, integrate twice, render, and optionally persist the run.
func RunAnalyze() error {
	cfg := config.Get()

	res, err := analyzeTrip(cfg)
	if err != nil {
		return err
	}

	paths, err := render.TripPNGs(cfg.OutputDir, resultStages(res))
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	for _, p := range paths {
		log.Printf("analyze: wrote %s", p)
	}

	if cfg.DBPath != "" {
		if err := saveRun(cfg, res); err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
	}
	return nil
}

// saveRun persists the run and its per-stage summaries to the run store.
func saveRun(cfg *config.Config, res *kinematics.Result) error {
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	var duration float64
	if n := res.Accel.Len(); n > 0 {
		duration = res.Accel.Time[n-1] - res.Accel.Time[0]
	}

	run := &store.Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		SourceFile:  cfg.TripCSV,
		SampleCount: res.Accel.Len(),
		Duration:    duration,
		BiasMode:    cfg.BiasMode,
		BiasX:       res.Bias[0],
		BiasY:       res.Bias[1],
		BiasZ:       res.Bias[2],
	}
	if err := s.InsertRun(run); err != nil {
		return err
	}

	var summaries []store.StageSummary
	for _, stage := range resultStages(res) {
		summaries = append(summaries, store.Summarize(run.ID, stage.Name, stage.Table)...)
	}
	if err := s.InsertSummaries(summaries); err != nil {
		return err
	}

	log.Printf("analyze: saved run %s to %s", run.ID, cfg.DBPath)
	return nil
}
