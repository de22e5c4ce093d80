package csvio

import (
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/limaJavier/coursegrid/pkg/model"
)

type roomRow struct {
	Name string `csv:"room_name"`
	Type string `csv:"room_type"`
}

type specialLabRow struct {
	CourseCode string `csv:"course_code"`
	LabRooms   string `csv:"lab_rooms"`
}

type demandRow struct {
	ElectiveCode string `csv:"elective_code"`
	Students     string `csv:"students"`
}

// ReadCapacities reads a StudentCapacity export. Rows without a department column belong to department
func ReadCapacities(in io.Reader, department string) ([]model.RawCapacity, error) {
	return readRecords[model.RawCapacity](in, capacityFields, department)
}

// ReadCourses reads a roadmap export. Rows without a department column belong to department
func ReadCourses(in io.Reader, department string) ([]model.RawCourse, error) {
	return readRecords[model.RawCourse](in, courseFields, department)
}

func ReadElectives(in io.Reader) ([]model.RawElective, error) {
	return readRecords[model.RawElective](in, electiveFields, "")
}

// ReadCohort reads a fixed-cohort sheet where every day column holds the time-slot label the course occupies on that day.
// One entry is produced per non-blank day cell
func ReadCohort(in io.Reader, department string) ([]model.RawCohortEntry, error) {
	records, err := gocsv.CSVToMaps(in)
	if err != nil {
		return nil, fmt.Errorf("cannot read cohort records: %w", err)
	}

	entries := make([]model.RawCohortEntry, 0, len(records))
	for _, record := range records {
		row := rowReader(record)
		base := row.decodable(cohortFields)
		if _, ok := base[departmentField.key]; !ok && department != "" {
			base[departmentField.key] = department
		}

		for _, day := range model.Days() {
			label, ok := row.lookup(dayField(day))
			if !ok {
				continue
			}

			cell := maps.Clone(base)
			cell["day"] = day.String()
			cell["timeSlot"] = label

			var entry model.RawCohortEntry
			if err := model.Decode(cell, &entry); err != nil {
				return nil, fmt.Errorf("cannot decode cohort record: %w", err)
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func dayField(day model.Day) field {
	name := day.String()
	return field{"day", []string{name, strings.ToLower(name), name[:3], strings.ToLower(name[:3])}}
}

// ReadRooms reads a room sheet. Rooms whose type mentions neither "theory" nor "lab" are theory rooms
func ReadRooms(in io.Reader) (model.RawRooms, error) {
	var rows []*roomRow
	if err := gocsv.Unmarshal(in, &rows); err != nil {
		return model.RawRooms{}, fmt.Errorf("cannot read rooms: %w", err)
	}

	rooms := model.RawRooms{}
	for _, row := range rows {
		if blankValue(row.Name) {
			continue
		}
		name := strings.TrimSpace(row.Name)
		roomType := strings.ToLower(row.Type)
		if strings.Contains(roomType, "lab") && !strings.Contains(roomType, "theory") {
			rooms.Lab = append(rooms.Lab, name)
		} else {
			rooms.Theory = append(rooms.Theory, name)
		}
	}
	return rooms, nil
}

// ReadSpecialLabs reads the course-specific lab pools, lab_rooms being a comma-separated list
func ReadSpecialLabs(in io.Reader) (map[string][]string, error) {
	var rows []*specialLabRow
	if err := gocsv.Unmarshal(in, &rows); err != nil {
		return nil, fmt.Errorf("cannot read special labs: %w", err)
	}

	special := make(map[string][]string, len(rows))
	for _, row := range rows {
		if blankValue(row.CourseCode) || blankValue(row.LabRooms) {
			continue
		}
		rooms := lo.Map(strings.Split(row.LabRooms, ","), func(room string, _ int) string { return strings.TrimSpace(room) })
		code := strings.TrimSpace(row.CourseCode)
		special[code] = append(special[code], lo.Compact(rooms)...)
	}
	return special, nil
}

// ReadDemand reads per-elective student counts. Repeated codes are summed
func ReadDemand(in io.Reader) (map[string]uint64, error) {
	var rows []*demandRow
	if err := gocsv.Unmarshal(in, &rows); err != nil {
		return nil, fmt.Errorf("cannot read demand: %w", err)
	}

	demand := make(map[string]uint64, len(rows))
	for _, row := range rows {
		if blankValue(row.ElectiveCode) {
			continue
		}
		var count struct {
			Students uint64 `mapstructure:"students"`
		}
		if err := model.Decode(map[string]any{"students": row.Students}, &count); err != nil {
			return nil, fmt.Errorf("cannot decode demand of %v: %w", row.ElectiveCode, err)
		}
		// Totals saturate just past the bound so the row is skipped when the input is processed
		code := strings.TrimSpace(row.ElectiveCode)
		demand[code] = min(demand[code]+min(count.Students, model.MaxDemand+1), model.MaxDemand+1)
	}
	return demand, nil
}

func readRecords[T any](in io.Reader, fields []field, department string) ([]T, error) {
	records, err := gocsv.CSVToMaps(in)
	if err != nil {
		return nil, fmt.Errorf("cannot read records: %w", err)
	}

	result := make([]T, 0, len(records))
	for _, record := range records {
		row := rowReader(record).decodable(fields)
		if len(row) == 0 {
			continue
		}
		if _, ok := row[departmentField.key]; !ok && department != "" && hasField(fields, departmentField.key) {
			row[departmentField.key] = department
		}

		var item T
		if err := model.Decode(row, &item); err != nil {
			return nil, fmt.Errorf("cannot decode record: %w", err)
		}
		result = append(result, item)
	}
	return result, nil
}

func hasField(fields []field, key string) bool {
	return lo.ContainsBy(fields, func(f field) bool { return f.key == key })
}
