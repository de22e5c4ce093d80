package export

import (
	"github.com/limaJavier/coursegrid/pkg/model"
)

// Dataset is a table of rows keyed by header
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

const timeHeader = "Time"

// GridDataset lays a section grid out as one row per time slot and one column per day
func GridDataset(section model.SectionTimetable) Dataset {
	headers := []string{timeHeader}
	for _, day := range model.Days() {
		headers = append(headers, day.String())
	}

	rows := make([]map[string]string, 0, model.TimeSlotCount)
	for _, slot := range model.TimeSlots() {
		row := map[string]string{timeHeader: slot.String()}
		for _, day := range model.Days() {
			row[day.String()] = section.Grid.Text(day, slot)
		}
		rows = append(rows, row)
	}
	return Dataset{Headers: headers, Rows: rows}
}
