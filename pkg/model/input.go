package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

var ErrNoUsableInput = errors.New("no usable input data")

type RawCapacity struct {
	Department string `mapstructure:"department" validate:"required"`
	Semester   uint64 `mapstructure:"semester" validate:"gt=0"`
	Students   uint64 `mapstructure:"students" validate:"gt=0,lte=10000"`
}

type RawCourse struct {
	Department     string `mapstructure:"department" validate:"required"`
	Semester       uint64 `mapstructure:"semester" validate:"gt=0"`
	Code           string `mapstructure:"code" validate:"required"`
	Name           string `mapstructure:"name"`
	IsLab          bool   `mapstructure:"isLab"`
	LecturesNeeded uint64 `mapstructure:"lecturesNeeded" validate:"lte=42"`
}

type RawCohortEntry struct {
	Department string `mapstructure:"department" validate:"required"`
	Semester   uint64 `mapstructure:"semester" validate:"gt=0"`
	Section    string `mapstructure:"section"`
	Day        string `mapstructure:"day"`
	TimeSlot   string `mapstructure:"timeSlot"`
	CourseCode string `mapstructure:"courseCode" validate:"required"`
	CourseName string `mapstructure:"courseName"`
	Capacity   uint64 `mapstructure:"capacity"`
}

type RawRooms struct {
	Theory  []string            `mapstructure:"theory"`
	Lab     []string            `mapstructure:"lab"`
	Special map[string][]string `mapstructure:"special"`
}

type RawElective struct {
	Code         string `mapstructure:"code" validate:"required"`
	Name         string `mapstructure:"name"`
	Type         string `mapstructure:"type"`
	CreditHours  uint64 `mapstructure:"creditHours" validate:"lte=42"`
	CanUseTheory bool   `mapstructure:"canUseTheory"`
	CanUseLab    bool   `mapstructure:"canUseLab"`
	Department   string `mapstructure:"department"`
}

type RawModelInput struct {
	Capacities []RawCapacity     `mapstructure:"capacities"`
	Courses    []RawCourse       `mapstructure:"courses"`
	Cohort     []RawCohortEntry  `mapstructure:"cohort"`
	Rooms      RawRooms          `mapstructure:"rooms"`
	Electives  []RawElective     `mapstructure:"electives"`
	Demand     map[string]uint64 `mapstructure:"demand"`
}

// Batch is a department+semester cohort expanded into sections
type Batch struct {
	Department string
	Semester   uint64
	Students   uint64
	Sections   []SectionKey
}

func (batch Batch) Key() string {
	return fmt.Sprintf("%v_Sem%v", batch.Department, batch.Semester)
}

type Course struct {
	Department     string
	Semester       uint64
	Code           string
	Name           string
	IsLab          bool
	LecturesNeeded uint64
}

type CohortEntry struct {
	Section    SectionKey
	Day        Day
	TimeSlot   TimeSlot
	CourseCode string
	CourseName string
	Capacity   uint64
}

type RoomPools struct {
	Theory  []string
	Lab     []string
	Special map[string][]string // Course code -> explicit lab rooms
}

type Elective struct {
	Code                string
	Name                string
	Type                string
	CreditHours         uint64
	CanUseTheory        bool
	CanUseLab           bool
	Department          string
	EligibleDepartments []string
}

// Counts of input rows dropped before scheduling, none of them is a placement failure
type InputSkips struct {
	Capacities       uint64
	Courses          uint64
	Cohort           uint64
	InvalidCohortDay uint64
	Electives        uint64
	Demand           uint64
}

type ModelInput struct {
	Batches   []Batch
	Courses   []Course
	Cohort    []CohortEntry
	Rooms     RoomPools
	Electives []Elective
	Demand    map[string]uint64
	Skipped   InputSkips
}

// Batch returns the batch of a department and semester
func (input ModelInput) Batch(department string, semester uint64) (Batch, bool) {
	return lo.Find(input.Batches, func(batch Batch) bool {
		return batch.Department == department && batch.Semester == semester
	})
}

const (
	defaultCohortCapacity = 50
	defaultCreditHours    = 3
	defaultElectiveType   = "Technical"
	AllDepartments        = "ALL"

	// MaxDemand bounds the students aggregated for one elective, matching the enrollment bound of a batch
	MaxDemand = 10000
)

var relatedDepartments = map[string][]string{
	"CS":   {"CS", "SE", "AI", "DS"},
	"SE":   {"CS", "SE", "AI"},
	"AI":   {"CS", "AI", "DS"},
	"DS":   {"CS", "AI", "DS"},
	"INFS": {"INFS", "CS"},
	"CB":   {"CB"},
}

func InputFromJson(file string, studentsPerSection uint64) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, fmt.Errorf("cannot read input file: %w", err)
	}
	return InputFromJsonBytes(bytes, studentsPerSection)
}

func InputFromJsonBytes(bytes []byte, studentsPerSection uint64) (ModelInput, error) {
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	var rawInput RawModelInput
	if err := Decode(inputJson, &rawInput); err != nil {
		return ModelInput{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return ProcessRawInput(rawInput, studentsPerSection)
}

// Decode maps loosely typed records (JSON objects, spreadsheet rows) into typed raw-input structs.
// Numeric cells such as "3.0", "nil" or "" are read as numbers (blank ones as zero) and boolean cells accept "yes", "x" and "1"
func Decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			lenientCellHook,
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func lenientCellHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		if integerKind(to.Kind()) {
			return cellCount(reflect.ValueOf(data).Float(), to.Kind()), nil
		}
		return data, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if integerKind(to.Kind()) {
			return cellCount(float64(reflect.ValueOf(data).Int()), to.Kind()), nil
		}
		return data, nil
	case reflect.String:
	default:
		return data, nil
	}
	cell := strings.TrimSpace(data.(string))

	switch {
	case integerKind(to.Kind()):
		if blankCell(cell) {
			return cellCount(0, to.Kind()), nil
		}
		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return cellCount(0, to.Kind()), nil
		}
		return cellCount(value, to.Kind()), nil
	case to.Kind() == reflect.Bool:
		switch strings.ToLower(cell) {
		case "true", "yes", "y", "1", "x":
			return true, nil
		default:
			return false, nil
		}
	case to.Kind() == reflect.String:
		if blankCell(cell) {
			return "", nil
		}
		return cell, nil
	}
	return data, nil
}

func integerKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// cellCount reads a cell as a whole count: negative and NaN cells are zero, oversized ones saturate
func cellCount(value float64, kind reflect.Kind) any {
	if math.IsNaN(value) || value < 0 {
		value = 0
	}
	value = math.Trunc(value)

	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if value >= math.MaxUint64 {
			return uint64(math.MaxUint64)
		}
		return uint64(value)
	}
	if value >= math.MaxInt64 {
		return int64(math.MaxInt64)
	}
	return int64(value)
}

func blankCell(cell string) bool {
	return slices.Contains([]string{"", "nil", "null", "nan", "none"}, strings.ToLower(cell))
}

func ProcessRawInput(rawInput RawModelInput, studentsPerSection uint64) (ModelInput, error) {
	if studentsPerSection == 0 {
		return ModelInput{}, fmt.Errorf("%w: students-per-section must be positive", ErrInvalidParameters)
	}
	validate := validator.New()
	input := ModelInput{Demand: make(map[string]uint64)}

	//** Manage batches
	for _, capacity := range rawInput.Capacities {
		capacity.Department = strings.TrimSpace(capacity.Department)
		if validate.Struct(capacity) != nil {
			input.Skipped.Capacities++
			continue
		}

		sections := uint64(math.Ceil(float64(capacity.Students) / float64(studentsPerSection)))
		batch := Batch{
			Department: capacity.Department,
			Semester:   capacity.Semester,
			Students:   capacity.Students,
			Sections: lo.Map(sectionLetters(sections), func(letter string, _ int) SectionKey {
				return SectionKey{Department: capacity.Department, Semester: capacity.Semester, Section: letter}
			}),
		}

		// A later row for the same department and semester replaces the earlier one
		if index := slices.IndexFunc(input.Batches, func(existing Batch) bool {
			return existing.Department == batch.Department && existing.Semester == batch.Semester
		}); index >= 0 {
			input.Batches[index] = batch
		} else {
			input.Batches = append(input.Batches, batch)
		}
	}

	//** Manage courses
	for _, rawCourse := range rawInput.Courses {
		rawCourse.Code = strings.TrimSpace(rawCourse.Code)
		rawCourse.Department = strings.TrimSpace(rawCourse.Department)
		if validate.Struct(rawCourse) != nil {
			input.Skipped.Courses++
			continue
		}
		if rawCourse.LecturesNeeded == 0 {
			rawCourse.LecturesNeeded = 1
		}
		input.Courses = append(input.Courses, Course{
			Department:     rawCourse.Department,
			Semester:       rawCourse.Semester,
			Code:           rawCourse.Code,
			Name:           strings.TrimSpace(rawCourse.Name),
			IsLab:          rawCourse.IsLab,
			LecturesNeeded: rawCourse.LecturesNeeded,
		})
	}

	//** Manage cohort entries
	for i, rawEntry := range rawInput.Cohort {
		rawEntry.CourseCode = strings.TrimSpace(rawEntry.CourseCode)
		rawEntry.Department = strings.TrimSpace(rawEntry.Department)
		if validate.Struct(rawEntry) != nil {
			input.Skipped.Cohort++
			continue
		}

		// Invalid labels are dropped here so the engine only ever sees the canonical vocabulary
		day, dayOk := ParseDay(rawEntry.Day)
		slot, slotOk := ParseTimeSlot(rawEntry.TimeSlot)
		if !dayOk || !slotOk {
			input.Skipped.InvalidCohortDay++
			continue
		}

		section := strings.TrimSpace(rawEntry.Section)
		if section == "" {
			section = fmt.Sprintf("Default_%v", i)
		}
		name := strings.TrimSpace(rawEntry.CourseName)
		if name == "" {
			name = rawEntry.CourseCode
		}
		capacity := rawEntry.Capacity
		if capacity == 0 {
			capacity = defaultCohortCapacity
		}

		input.Cohort = append(input.Cohort, CohortEntry{
			Section:    SectionKey{Department: rawEntry.Department, Semester: rawEntry.Semester, Section: section},
			Day:        day,
			TimeSlot:   slot,
			CourseCode: rawEntry.CourseCode,
			CourseName: name,
			Capacity:   capacity,
		})
	}

	//** Manage rooms
	input.Rooms = processRooms(rawInput.Rooms)

	//** Manage electives
	for _, rawElective := range rawInput.Electives {
		rawElective.Code = strings.TrimSpace(rawElective.Code)
		if validate.Struct(rawElective) != nil {
			input.Skipped.Electives++
			continue
		}
		elective := Elective{
			Code:         rawElective.Code,
			Name:         strings.TrimSpace(rawElective.Name),
			Type:         lo.Ternary(strings.TrimSpace(rawElective.Type) == "", defaultElectiveType, strings.TrimSpace(rawElective.Type)),
			CreditHours:  lo.Ternary(rawElective.CreditHours == 0, uint64(defaultCreditHours), rawElective.CreditHours),
			CanUseTheory: rawElective.CanUseTheory,
			CanUseLab:    rawElective.CanUseLab,
			Department:   strings.TrimSpace(rawElective.Department),
		}
		elective.EligibleDepartments = eligibleDepartments(elective.Type, elective.Department)

		// Elective codes are unique, the last definition wins
		if index := slices.IndexFunc(input.Electives, func(existing Elective) bool { return existing.Code == elective.Code }); index >= 0 {
			input.Electives[index] = elective
		} else {
			input.Electives = append(input.Electives, elective)
		}
	}

	for code, demand := range rawInput.Demand {
		code = strings.TrimSpace(code)
		if code == "" || demand > MaxDemand || input.Demand[code]+demand > MaxDemand {
			input.Skipped.Demand++
			continue
		}
		input.Demand[code] += demand
	}

	if len(input.Batches) == 0 && len(input.Courses) == 0 && len(input.Cohort) == 0 && len(input.Electives) == 0 {
		return ModelInput{}, ErrNoUsableInput
	}
	return input, nil
}

func processRooms(rawRooms RawRooms) RoomPools {
	clean := func(rooms []string) []string {
		return lo.Uniq(lo.Compact(lo.Map(rooms, func(room string, _ int) string { return strings.TrimSpace(room) })))
	}

	pools := RoomPools{
		Theory:  clean(rawRooms.Theory),
		Lab:     clean(rawRooms.Lab),
		Special: make(map[string][]string),
	}
	if len(pools.Theory) == 0 {
		pools.Theory = defaultRooms("T", 20)
	}
	if len(pools.Lab) == 0 {
		pools.Lab = defaultRooms("L", 15)
	}
	for course, rooms := range rawRooms.Special {
		// A single cell may hold a comma separated list
		rooms = clean(lo.FlatMap(rooms, func(room string, _ int) []string { return strings.Split(room, ",") }))
		if course = strings.TrimSpace(course); course != "" && len(rooms) > 0 {
			pools.Special[course] = rooms
		}
	}
	return pools
}

func defaultRooms(prefix string, count int) []string {
	return lo.Times(count, func(i int) string { return fmt.Sprintf("%v%02d", prefix, i+1) })
}

// eligibleDepartments restricts technical electives to the departments related to their own, any other type is open to all
func eligibleDepartments(electiveType, department string) []string {
	if electiveType != "Technical" {
		return []string{AllDepartments}
	}
	if related, ok := relatedDepartments[department]; ok {
		return slices.Clone(related)
	}
	return []string{department}
}
