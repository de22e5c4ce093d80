package model

import (
	"fmt"

	"go.uber.org/zap"
)

func cohortText(entry CohortEntry) string {
	return fmt.Sprintf("%v\n%v\n(Fixed)\nCap: %v", entry.CourseCode, entry.CourseName, entry.Capacity)
}

// seedCohort writes the fixed entries before any elastic placement. The first entry to claim a cell keeps it
func seedCohort(state *placementState, entries []CohortEntry) {
	for _, entry := range entries {
		section := entry.Section.String()
		grid := state.grid(section)

		if existing := grid.At(entry.Day, entry.TimeSlot); existing != nil {
			state.stats.CohortConflicts++
			state.logger.Warn("cohort conflict",
				zap.String("section", section),
				zap.Stringer("day", entry.Day),
				zap.Stringer("timeSlot", entry.TimeSlot),
				zap.String("course", entry.CourseCode),
				zap.String("kept", existing.CourseCode),
			)
			continue
		}

		state.commit(section, entry.Day, &Occupant{
			CourseCode: entry.CourseCode,
			CourseName: entry.CourseName,
			Text:       cohortText(entry),
			Fixed:      true,
			Slots:      []TimeSlot{entry.TimeSlot},
		})
		state.stats.Cohort++
	}
}
