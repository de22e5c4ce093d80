package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSeedCohort(t *testing.T) {
	//** Arrange
	core, logs := observer.New(zap.WarnLevel)
	state := newPlacementState(1, zap.New(core))
	key := SectionKey{Department: "AI", Semester: 2, Section: "A"}
	entries := []CohortEntry{
		{Section: key, Day: Monday, TimeSlot: 0, CourseCode: "SS1012", CourseName: "Functional English", Capacity: 45},
		{Section: key, Day: Monday, TimeSlot: 0, CourseCode: "SS1013", CourseName: "Ideology", Capacity: 50},
		{Section: key, Day: Monday, TimeSlot: 1, CourseCode: "SS1013", CourseName: "Ideology", Capacity: 50},
	}

	//** Act
	seedCohort(state, entries)

	//** Assert
	assert.Equal(t, uint64(2), state.stats.Cohort)
	assert.Equal(t, uint64(1), state.stats.CohortConflicts)
	assert.Equal(t, 1, logs.FilterMessage("cohort conflict").Len())

	grid := state.grid(key.String())
	first := grid.At(Monday, 0)
	require.NotNil(t, first)
	assert.Equal(t, "SS1012", first.CourseCode)
	assert.Equal(t, "SS1012\nFunctional English\n(Fixed)\nCap: 45", first.Text)
	assert.True(t, first.Fixed)
	assert.Equal(t, "", first.Room)

	assert.Equal(t, 2, state.counters.Daily(key.String(), Monday))
	assert.Equal(t, uint64(0), state.counters.Lectures(key.String(), "SS1012"))
}
