package export

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/limaJavier/coursegrid/pkg/model"
)

// Summary is the run report of one engine
type Summary struct {
	Engine     model.Engine
	Parameters model.Parameters
	Stats      model.Stats

	Sections          int
	ScheduledSections int
	TheoryRooms       int
	LabRooms          int
	SpecialLabCourses int
	BookedCells       int

	// Occurrences per section and day, over every section grid
	DailyLoadMean   float64
	DailyLoadStdDev float64
	PeakDailyLoad   int

	ElectivesByType map[string]int
}

func Summarize(timetable model.Timetable, input model.ModelInput) Summary {
	summary := Summary{
		Engine:            timetable.Engine,
		Parameters:        timetable.Parameters,
		Stats:             timetable.Stats,
		Sections:          len(timetable.Sections),
		ScheduledSections: lo.CountBy(timetable.Sections, func(section model.SectionTimetable) bool { return section.Scheduled }),
		TheoryRooms:       len(input.Rooms.Theory),
		LabRooms:          len(input.Rooms.Lab),
		SpecialLabCourses: len(input.Rooms.Special),
		ElectivesByType:   make(map[string]int),
	}
	if timetable.Ledger != nil {
		summary.BookedCells = timetable.Ledger.Bookings()
	}

	loads := make([]float64, 0, len(timetable.Sections)*model.DayCount)
	for _, section := range timetable.Sections {
		for _, day := range model.Days() {
			load := section.Grid.Load(day)
			loads = append(loads, float64(load))
			summary.PeakDailyLoad = max(summary.PeakDailyLoad, load)
		}
	}
	switch {
	case len(loads) > 1:
		summary.DailyLoadMean, summary.DailyLoadStdDev = stat.MeanStdDev(loads, nil)
	case len(loads) == 1:
		summary.DailyLoadMean = loads[0]
	}

	if timetable.Engine == model.ElectiveEngine {
		for _, elective := range input.Electives {
			summary.ElectivesByType[elective.Type]++
		}
	}
	return summary
}

// Dataset lays the summary out as metric/value rows
func (summary Summary) Dataset() Dataset {
	rows := []map[string]string{}
	add := func(metric string, value any) {
		rows = append(rows, map[string]string{"Metric": metric, "Value": fmt.Sprint(value)})
	}

	//** Configuration
	add("Engine", summary.Engine)
	add("Strategy", summary.Parameters.Strategy)
	add("Seed", summary.Parameters.Seed)
	add("Time Slots", model.TimeSlotCount)
	add("Daily Classes Range", fmt.Sprintf("%v-%v", summary.Parameters.MinClassesPerDay, summary.Parameters.MaxClassesPerDay))
	add("Students per Section", summary.Parameters.StudentsPerSection)

	//** Results
	if summary.Engine == model.ElectiveEngine {
		add("Sections Created", summary.Stats.SectionsCreated)
		add("Sections Scheduled", summary.Stats.SectionsScheduled)
		add("Sections Failed", summary.Stats.SectionsFailed)
		add("Dropped Electives", summary.Stats.DroppedElectives)
		for _, electiveType := range slices.Sorted(maps.Keys(summary.ElectivesByType)) {
			add("Electives ("+electiveType+")", summary.ElectivesByType[electiveType])
		}
	} else {
		add("Cohort Courses Placed", summary.Stats.Cohort)
		add("Cohort Conflicts", summary.Stats.CohortConflicts)
		add("Skipped Courses", summary.Stats.SkippedCourses)
	}
	add("Occurrences Placed", summary.Stats.Placed)
	add("Failed Placements", summary.Stats.Failed)
	add("Overbooked Placements", summary.Stats.Overbooked)
	add("Success Rate", fmt.Sprintf("%.1f%%", summary.Stats.SuccessRate()))
	add("Sections", fmt.Sprintf("%v (%v fully scheduled)", summary.Sections, summary.ScheduledSections))
	add("Daily Load", fmt.Sprintf("mean %.2f, std dev %.2f, peak %v", summary.DailyLoadMean, summary.DailyLoadStdDev, summary.PeakDailyLoad))

	//** Resources
	add("Theory Rooms", summary.TheoryRooms)
	add("Lab Rooms", summary.LabRooms)
	add("Special Lab Courses", summary.SpecialLabCourses)
	add("Booked Room Cells", summary.BookedCells)

	return Dataset{Headers: []string{"Metric", "Value"}, Rows: rows}
}

// WriteText writes the summary as aligned "metric: value" lines
func (summary Summary) WriteText(out io.Writer) error {
	for _, row := range summary.Dataset().Rows {
		if _, err := fmt.Fprintf(out, "%-24v %v\n", row["Metric"]+":", row["Value"]); err != nil {
			return err
		}
	}
	return nil
}
