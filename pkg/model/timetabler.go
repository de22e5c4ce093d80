package model

type Timetabler interface {
	Build(
		modelInput ModelInput,
	) (timetable Timetable, err error)

	Verify(
		timetable Timetable,
		modelInput ModelInput,
	) bool
}

type Engine string

const (
	CoreEngine     Engine = "core"
	ElectiveEngine Engine = "elective"
)

type Stats struct {
	Placed          uint64
	Failed          uint64
	Overbooked      uint64
	Cohort          uint64
	CohortConflicts uint64
	SkippedCourses  uint64 // Courses whose department and semester have no batch

	DroppedElectives  uint64 // Electives below their type's minimum demand
	SectionsCreated   uint64
	SectionsScheduled uint64
	SectionsFailed    uint64
}

// SuccessRate returns the percentage of elastic occurrences that were placed
func (stats Stats) SuccessRate() float64 {
	if stats.Placed+stats.Failed == 0 {
		return 0
	}
	return float64(stats.Placed) / float64(stats.Placed+stats.Failed) * 100
}

type SectionTimetable struct {
	ID        string
	Section   SectionKey       // Zero for elective sections
	Elective  *ElectiveSection // Nil for core sections
	Grid      *Grid
	Scheduled bool // Every elastic occurrence of the section was placed
}

type Timetable struct {
	Engine     Engine
	Sections   []SectionTimetable
	Stats      Stats
	Ledger     *RoomLedger
	Parameters Parameters
}

func (timetable Timetable) Section(id string) (SectionTimetable, bool) {
	for _, section := range timetable.Sections {
		if section.ID == id {
			return section, true
		}
	}
	return SectionTimetable{}, false
}

// Equal compares two timetables by their grids and statistics
func (timetable Timetable) Equal(other Timetable) bool {
	if timetable.Engine != other.Engine || timetable.Stats != other.Stats || len(timetable.Sections) != len(other.Sections) {
		return false
	}
	for i, section := range timetable.Sections {
		otherSection := other.Sections[i]
		if section.ID != otherSection.ID || section.Scheduled != otherSection.Scheduled || !section.Grid.Equal(otherSection.Grid) {
			return false
		}
	}
	return true
}
