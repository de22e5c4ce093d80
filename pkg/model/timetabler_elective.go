package model

import (
	"go.uber.org/zap"
)

type electiveTimetabler struct {
	params Parameters
	logger *zap.Logger
}

func NewElectiveTimetabler(params Parameters, logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &electiveTimetabler{
		params: params,
		logger: logger,
	}
}

func (timetabler *electiveTimetabler) Build(modelInput ModelInput) (Timetable, error) {
	if err := timetabler.params.Validate(); err != nil {
		return Timetable{}, err
	}

	//** Create sections from demand
	sections, dropped := CreateElectiveSections(modelInput.Electives, modelInput.Demand, timetabler.params)

	//** Initialize dependencies
	state := newPlacementState(timetabler.params.Seed, timetabler.logger)
	state.stats.DroppedElectives = dropped
	state.stats.SectionsCreated = uint64(len(sections))

	placer := newElectivePlacer(timetabler.params, state, modelInput.Rooms)

	//** Schedule sections
	timetable := Timetable{
		Engine:     ElectiveEngine,
		Sections:   make([]SectionTimetable, 0, len(sections)),
		Ledger:     state.ledger,
		Parameters: timetabler.params,
	}
	for i := range sections {
		section := &sections[i]
		scheduled := placer.placeSection(*section)
		if scheduled {
			state.stats.SectionsScheduled++
		} else {
			state.stats.SectionsFailed++
			timetabler.logger.Debug("elective section not fully scheduled", zap.String("section", section.Key.String()))
		}

		timetable.Sections = append(timetable.Sections, SectionTimetable{
			ID:        section.Key.String(),
			Elective:  section,
			Grid:      state.grid(section.Key.String()),
			Scheduled: scheduled,
		})
	}
	timetable.Stats = state.stats

	timetabler.logger.Info("elective timetable built",
		zap.Uint64("sectionsCreated", state.stats.SectionsCreated),
		zap.Uint64("sectionsScheduled", state.stats.SectionsScheduled),
		zap.Uint64("sectionsFailed", state.stats.SectionsFailed),
		zap.Uint64("droppedElectives", state.stats.DroppedElectives),
		zap.Uint64("placed", state.stats.Placed),
		zap.Uint64("failed", state.stats.Failed),
	)
	return timetable, nil
}

func (timetabler *electiveTimetabler) Verify(timetable Timetable, modelInput ModelInput) bool {
	return verify(timetable, modelInput)
}
