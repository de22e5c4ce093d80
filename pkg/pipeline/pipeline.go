package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/limaJavier/coursegrid/pkg/logger"
	"github.com/limaJavier/coursegrid/pkg/model"
)

type Request struct {
	Input      model.ModelInput
	Parameters model.Parameters
	Engines    []model.Engine
	// Replace elective demand with simulated student preferences when the input carries none
	SimulateDemand bool
}

type Result struct {
	Engine    model.Engine
	Timetable model.Timetable
	Verified  bool
	Duration  time.Duration
}

// Complete reports whether every elastic occurrence and elective section was placed
func (result Result) Complete() bool {
	return result.Timetable.Stats.Failed == 0 && result.Timetable.Stats.SectionsFailed == 0
}

type Run struct {
	ID        string
	CreatedAt time.Time
	Input     model.ModelInput
	Demand    []model.DemandAnalysis // Set when demand was simulated
	Results   []Result               // In requested engine order
}

func (run Run) Result(engine model.Engine) (Result, bool) {
	index := slices.IndexFunc(run.Results, func(result Result) bool { return result.Engine == engine })
	if index < 0 {
		return Result{}, false
	}
	return run.Results[index], true
}

var timetablers = map[model.Engine]func(model.Parameters, *zap.Logger) model.Timetabler{
	model.CoreEngine:     model.NewCoreTimetabler,
	model.ElectiveEngine: model.NewElectiveTimetabler,
}

// Execute builds and verifies a timetable per requested engine. Engines run concurrently, each on its own state
func Execute(ctx context.Context, request Request, log *zap.Logger) (Run, error) {
	if log == nil {
		log = zap.NewNop()
	}
	request.Engines = lo.Uniq(request.Engines)
	if len(request.Engines) == 0 {
		return Run{}, fmt.Errorf("no engine requested")
	}
	for _, engine := range request.Engines {
		if _, ok := timetablers[engine]; !ok {
			return Run{}, fmt.Errorf("unknown engine %v", engine)
		}
	}
	if err := request.Parameters.Validate(); err != nil {
		return Run{}, err
	}

	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Input:     request.Input,
	}
	runLog := logger.ForRun(log, run.ID, "")

	if request.SimulateDemand && len(run.Input.Demand) == 0 && slices.Contains(request.Engines, model.ElectiveEngine) {
		preferences := model.SimulatePreferences(run.Input.Electives, model.DemandDepartments, model.DemandSemesters, request.Parameters.Seed)
		run.Demand = model.AnalyzeDemand(preferences)
		run.Input.Demand = model.DemandTotals(run.Demand)
		runLog.Info("demand simulated", zap.Int("students", len(preferences)), zap.Int("electives", len(run.Demand)))
	}

	type outcome struct {
		result Result
		err    error
	}
	outcomes := make(chan outcome, len(request.Engines))
	for _, engine := range request.Engines {
		go func() {
			start := time.Now()
			timetabler := timetablers[engine](request.Parameters, logger.ForRun(log, run.ID, engine))
			timetable, err := timetabler.Build(run.Input)
			if err != nil {
				outcomes <- outcome{err: fmt.Errorf("%v engine: %w", engine, err)}
				return
			}
			outcomes <- outcome{result: Result{
				Engine:    engine,
				Timetable: timetable,
				Verified:  timetabler.Verify(timetable, run.Input),
				Duration:  time.Since(start),
			}}
		}()
	}

	results := make([]Result, 0, len(request.Engines))
	for range request.Engines {
		select {
		case <-ctx.Done():
			return Run{}, ctx.Err()
		case outcome := <-outcomes:
			if outcome.err != nil {
				return Run{}, outcome.err
			}
			if !outcome.result.Verified {
				runLog.Warn("timetable failed verification", zap.String("engine", string(outcome.result.Engine)))
			}
			results = append(results, outcome.result)
		}
	}

	for _, engine := range request.Engines {
		index := slices.IndexFunc(results, func(result Result) bool { return result.Engine == engine })
		run.Results = append(run.Results, results[index])
	}
	return run, nil
}
