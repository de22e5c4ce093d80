package csvio

import (
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/limaJavier/coursegrid/pkg/model"
)

// GridRow is one time slot of a section grid, every day column carrying the cell text
type GridRow struct {
	Section   string `csv:"section"`
	TimeSlot  string `csv:"time_slot"`
	Monday    string `csv:"Monday"`
	Tuesday   string `csv:"Tuesday"`
	Wednesday string `csv:"Wednesday"`
	Thursday  string `csv:"Thursday"`
	Friday    string `csv:"Friday"`
	Saturday  string `csv:"Saturday"`
}

// GridRows flattens the section grids of a timetable, sections in timetable order and slots in daily order
func GridRows(timetable model.Timetable) []*GridRow {
	rows := make([]*GridRow, 0, len(timetable.Sections)*model.TimeSlotCount)
	for _, section := range timetable.Sections {
		for _, slot := range model.TimeSlots() {
			grid := section.Grid
			rows = append(rows, &GridRow{
				Section:   section.ID,
				TimeSlot:  slot.String(),
				Monday:    grid.Text(model.Monday, slot),
				Tuesday:   grid.Text(model.Tuesday, slot),
				Wednesday: grid.Text(model.Wednesday, slot),
				Thursday:  grid.Text(model.Thursday, slot),
				Friday:    grid.Text(model.Friday, slot),
				Saturday:  grid.Text(model.Saturday, slot),
			})
		}
	}
	return rows
}

func WriteTimetable(timetable model.Timetable, out io.Writer) error {
	rows := GridRows(timetable)
	return gocsv.Marshal(&rows, out)
}

// ExportTimetable writes the timetable grids to path, replacing any existing file
func ExportTimetable(timetable model.Timetable, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	rows := GridRows(timetable)
	return gocsv.MarshalFile(&rows, out)
}

func TimetableBytes(timetable model.Timetable) ([]byte, error) {
	rows := GridRows(timetable)
	return gocsv.MarshalBytes(&rows)
}
