package export

import (
	"strings"

	"github.com/samber/lo"

	"github.com/limaJavier/coursegrid/pkg/model"
)

// Overlap is a cell shared by sections of different electives; a student enrolled in both cannot attend
type Overlap struct {
	Day      model.Day
	TimeSlot model.TimeSlot
	Sections []string
}

// ElectiveOverlaps lists the cells where sections of two or more distinct electives meet, by day and then by slot
func ElectiveOverlaps(timetable model.Timetable) []Overlap {
	overlaps := make([]Overlap, 0)
	for _, day := range model.Days() {
		for _, slot := range model.TimeSlots() {
			sections := make([]string, 0)
			electives := make([]string, 0)
			for _, section := range timetable.Sections {
				occupant := section.Grid.At(day, slot)
				if occupant == nil {
					continue
				}
				sections = append(sections, section.ID)
				electives = append(electives, occupant.CourseCode)
			}

			if len(lo.Uniq(electives)) > 1 {
				overlaps = append(overlaps, Overlap{Day: day, TimeSlot: slot, Sections: sections})
			}
		}
	}
	return overlaps
}

func OverlapDataset(overlaps []Overlap) Dataset {
	rows := lo.Map(overlaps, func(overlap Overlap, _ int) map[string]string {
		return map[string]string{
			"Day":      overlap.Day.String(),
			"Time":     overlap.TimeSlot.String(),
			"Sections": strings.Join(overlap.Sections, ", "),
		}
	})
	return Dataset{Headers: []string{"Day", "Time", "Sections"}, Rows: rows}
}
