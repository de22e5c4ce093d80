package model

import (
	"go.uber.org/zap"
)

type coreTimetabler struct {
	params Parameters
	logger *zap.Logger
}

func NewCoreTimetabler(params Parameters, logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &coreTimetabler{
		params: params,
		logger: logger,
	}
}

func (timetabler *coreTimetabler) Build(modelInput ModelInput) (Timetable, error) {
	if err := timetabler.params.Validate(); err != nil {
		return Timetable{}, err
	}

	//** Initialize state
	state := newPlacementState(timetabler.params.Seed, timetabler.logger)
	keys := make(map[string]SectionKey)
	for _, batch := range modelInput.Batches {
		for _, section := range batch.Sections {
			keys[section.String()] = section
			state.grid(section.String())
		}
	}
	for _, entry := range modelInput.Cohort {
		keys[entry.Section.String()] = entry.Section
	}

	//** Seed cohort entries
	seedCohort(state, modelInput.Cohort)

	//** Place elastic occurrences
	placer := newCorePlacer(timetabler.params, state, modelInput.Rooms)
	placer.placeCourses(modelInput)

	timetable := Timetable{
		Engine:     CoreEngine,
		Sections:   make([]SectionTimetable, 0, len(state.sections)),
		Stats:      state.stats,
		Ledger:     state.ledger,
		Parameters: timetabler.params,
	}
	for _, id := range state.sections {
		timetable.Sections = append(timetable.Sections, SectionTimetable{
			ID:        id,
			Section:   keys[id],
			Grid:      state.grids[id],
			Scheduled: state.failures[id] == 0,
		})
	}

	timetabler.logger.Info("core timetable built",
		zap.Int("sections", len(timetable.Sections)),
		zap.Uint64("placed", state.stats.Placed),
		zap.Uint64("failed", state.stats.Failed),
		zap.Uint64("overbooked", state.stats.Overbooked),
		zap.Uint64("cohort", state.stats.Cohort),
		zap.Uint64("cohortConflicts", state.stats.CohortConflicts),
	)
	return timetable, nil
}

func (timetabler *coreTimetabler) Verify(timetable Timetable, modelInput ModelInput) bool {
	return verify(timetable, modelInput)
}
