package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/coursegrid/pkg/model"
)

func cohortTimetable(t *testing.T) model.Timetable {
	t.Helper()

	input, err := model.ProcessRawInput(model.RawModelInput{
		Capacities: []model.RawCapacity{{Department: "CS", Semester: 4, Students: 40}},
		Cohort: []model.RawCohortEntry{
			{Department: "CS", Semester: 4, Section: "A", Day: "Wednesday", TimeSlot: "09:30-10:45", CourseCode: "MT1003", CourseName: "Calculus", Capacity: 45},
		},
	}, 50)
	require.NoError(t, err)

	timetable, err := model.NewCoreTimetabler(model.DefaultParameters(), nil).Build(input)
	require.NoError(t, err)
	return timetable
}

func TestGridRows(t *testing.T) {
	rows := GridRows(cohortTimetable(t))

	require.Len(t, rows, model.TimeSlotCount)
	assert.Equal(t, "CS_S4_SecA", rows[1].Section)
	assert.Equal(t, "09:30-10:45", rows[1].TimeSlot)
	assert.Equal(t, "MT1003\nCalculus\n(Fixed)\nCap: 45", rows[1].Wednesday)
	assert.Empty(t, rows[1].Monday)
	assert.Empty(t, rows[0].Wednesday)
}

func TestExportTimetable(t *testing.T) {
	//** Arrange
	path := filepath.Join(t.TempDir(), "timetable.csv")

	//** Act
	err := ExportTimetable(cohortTimetable(t), path)

	//** Assert
	require.NoError(t, err)
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var rows []*GridRow
	require.NoError(t, gocsv.UnmarshalFile(file, &rows))
	require.Len(t, rows, model.TimeSlotCount)
	assert.Equal(t, "MT1003\nCalculus\n(Fixed)\nCap: 45", rows[1].Wednesday)
}

func TestTimetableBytesHeader(t *testing.T) {
	content, err := TimetableBytes(cohortTimetable(t))

	require.NoError(t, err)
	assert.True(t, len(content) > 0)
	assert.Contains(t, string(content), "section,time_slot,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday\n")
}
