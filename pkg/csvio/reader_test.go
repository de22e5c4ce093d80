package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/coursegrid/pkg/model"
)

func TestReadCohort(t *testing.T) {
	//** Arrange
	sheet := strings.Join([]string{
		"CohortSemester,C-CODE,CourseTitle,SEC,Cap,Mon,tuesday,Wednesday,Thu,Friday",
		"4,CS2001,Data Structures,A,45,08:00-09:15,,nan,09:30-10:45,",
		"4,CS2002,,,,,11:00-12:15,,,Sunday",
	}, "\n")

	//** Act
	entries, err := ReadCohort(strings.NewReader(sheet), "CS")

	//** Assert
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, model.RawCohortEntry{
		Department: "CS",
		Semester:   4,
		Section:    "A",
		Day:        "Monday",
		TimeSlot:   "08:00-09:15",
		CourseCode: "CS2001",
		CourseName: "Data Structures",
		Capacity:   45,
	}, entries[0])
	assert.Equal(t, "Thursday", entries[1].Day)
	assert.Equal(t, "09:30-10:45", entries[1].TimeSlot)

	// Unparseable slot labels are kept for the input processor to count
	assert.Equal(t, "Tuesday", entries[2].Day)
	assert.Equal(t, "", entries[2].Section)
	assert.Equal(t, uint64(0), entries[2].Capacity)
	assert.Equal(t, "Friday", entries[3].Day)
	assert.Equal(t, "Sunday", entries[3].TimeSlot)
}

func TestReadCohortPrefersDepartmentColumn(t *testing.T) {
	sheet := "Department,Semester,CourseCode,Monday\nSE,2,SE1001,12:30-01:45\n"

	entries, err := ReadCohort(strings.NewReader(sheet), "CS")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "SE", entries[0].Department)
}

func TestReadCourses(t *testing.T) {
	//** Arrange
	sheet := strings.Join([]string{
		"semester,course_code,course_name,is_lab,times_needed",
		"3.0,CS2005,Operating Systems,no,2",
		"3,CS2005L,Operating Systems Lab,yes,",
		",,,,",
	}, "\n")

	//** Act
	courses, err := ReadCourses(strings.NewReader(sheet), "CS")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, []model.RawCourse{
		{Department: "CS", Semester: 3, Code: "CS2005", Name: "Operating Systems", LecturesNeeded: 2},
		{Department: "CS", Semester: 3, Code: "CS2005L", Name: "Operating Systems Lab", IsLab: true},
	}, courses)
}

func TestReadCapacities(t *testing.T) {
	sheet := "semester,student_count\n1,100\n2,nil\n"

	capacities, err := ReadCapacities(strings.NewReader(sheet), "AI")

	require.NoError(t, err)
	assert.Equal(t, []model.RawCapacity{
		{Department: "AI", Semester: 1, Students: 100},
		{Department: "AI", Semester: 2},
	}, capacities)
}

func TestReadElectives(t *testing.T) {
	sheet := "elective_code,elective_name,type,credit_hours,can_use_theory,can_use_lab,department\nSS2001,Psychology,General,3,yes,,\n"

	electives, err := ReadElectives(strings.NewReader(sheet))

	require.NoError(t, err)
	assert.Equal(t, []model.RawElective{
		{Code: "SS2001", Name: "Psychology", Type: "General", CreditHours: 3, CanUseTheory: true},
	}, electives)
}

func TestReadRooms(t *testing.T) {
	sheet := "room_name,room_type\nA-101,Theory Room\nLab-1,Computer Lab\nAud,Auditorium\n,Lab\n"

	rooms, err := ReadRooms(strings.NewReader(sheet))

	require.NoError(t, err)
	assert.Equal(t, []string{"A-101", "Aud"}, rooms.Theory)
	assert.Equal(t, []string{"Lab-1"}, rooms.Lab)
}

func TestReadSpecialLabs(t *testing.T) {
	sheet := "course_code,lab_rooms\nEE1005,\"DLD Lab 1, DLD Lab 2\"\nCS1002,\nEE1005,DLD Lab 3\n"

	special, err := ReadSpecialLabs(strings.NewReader(sheet))

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"EE1005": {"DLD Lab 1", "DLD Lab 2", "DLD Lab 3"}}, special)
}

func TestReadDemand(t *testing.T) {
	sheet := "elective_code,students\nCS4051,40\nCS4051,5.0\nSS2001,none\n"

	demand, err := ReadDemand(strings.NewReader(sheet))

	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"CS4051": 45, "SS2001": 0}, demand)
}
