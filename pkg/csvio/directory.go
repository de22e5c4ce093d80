package csvio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/limaJavier/coursegrid/pkg/model"
)

type fileKind int

const (
	coursesFile fileKind = iota
	cohortFile
	capacityFile
	roomsFile
	specialLabsFile
	electivesFile
	demandFile
)

// Program codes used in export filenames and the department they stand for
var programDepartments = map[string]string{
	"BSCS":   "CS",
	"BSSE":   "SE",
	"BSAI":   "AI",
	"BSDS":   "DS",
	"BSINFS": "INFS",
	"BSCB":   "CB",
}

// Filename words that name the sheet rather than the department
var sheetWords = []string{"COHORT", "FIXED", "SCHEDULE", "ROADMAP", "COURSES", "CAPACITY", "STUDENTCAPACITY", "TIMETABLE"}

var versionToken = regexp.MustCompile(`^[0-9.]+$`)

// DepartmentFromFilename derives the department of a per-department export, e.g. "cohort_CS_4.2.csv" and "BSCS_roadmap.csv" both give "CS"
func DepartmentFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tokens := strings.FieldsFunc(strings.ToUpper(stem), func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	tokens = lo.Reject(tokens, func(token string, _ int) bool {
		return lo.Contains(sheetWords, token) || versionToken.MatchString(token)
	})
	if len(tokens) == 0 {
		return ""
	}
	if department, ok := programDepartments[tokens[0]]; ok {
		return department
	}
	return tokens[0]
}

func classify(path string) fileKind {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "demand"):
		return demandFile
	case strings.Contains(name, "elective"):
		return electivesFile
	case strings.Contains(name, "special"):
		return specialLabsFile
	case strings.Contains(name, "room"):
		return roomsFile
	case strings.Contains(name, "capacity"):
		return capacityFile
	case strings.Contains(name, "cohort") || strings.Contains(name, "fixed"):
		return cohortFile
	default:
		return coursesFile
	}
}

// LoadDirectory reads every CSV export of a directory into a raw model input. Files are recognised by name:
// *demand*, *elective*, *special*, *room*, *capacity*, *cohort* or *fixed*, every other CSV being a course roadmap
func LoadDirectory(dir string) (model.RawModelInput, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return model.RawModelInput{}, err
	}
	if len(paths) == 0 {
		return model.RawModelInput{}, fmt.Errorf("no csv files in %v", dir)
	}

	rawInput := model.RawModelInput{
		Rooms:  model.RawRooms{Special: map[string][]string{}},
		Demand: map[string]uint64{},
	}
	for _, path := range paths {
		if err := loadFile(path, &rawInput); err != nil {
			return model.RawModelInput{}, fmt.Errorf("%v: %w", filepath.Base(path), err)
		}
	}
	return rawInput, nil
}

func loadFile(path string, rawInput *model.RawModelInput) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return loadReader(file, classify(path), DepartmentFromFilename(path), rawInput)
}

func loadReader(in io.Reader, kind fileKind, department string, rawInput *model.RawModelInput) error {
	switch kind {
	case cohortFile:
		entries, err := ReadCohort(in, department)
		if err != nil {
			return err
		}
		rawInput.Cohort = append(rawInput.Cohort, entries...)
	case capacityFile:
		capacities, err := ReadCapacities(in, department)
		if err != nil {
			return err
		}
		rawInput.Capacities = append(rawInput.Capacities, capacities...)
	case roomsFile:
		rooms, err := ReadRooms(in)
		if err != nil {
			return err
		}
		rawInput.Rooms.Theory = append(rawInput.Rooms.Theory, rooms.Theory...)
		rawInput.Rooms.Lab = append(rawInput.Rooms.Lab, rooms.Lab...)
	case specialLabsFile:
		special, err := ReadSpecialLabs(in)
		if err != nil {
			return err
		}
		for code, rooms := range special {
			rawInput.Rooms.Special[code] = append(rawInput.Rooms.Special[code], rooms...)
		}
	case electivesFile:
		electives, err := ReadElectives(in)
		if err != nil {
			return err
		}
		rawInput.Electives = append(rawInput.Electives, electives...)
	case demandFile:
		demand, err := ReadDemand(in)
		if err != nil {
			return err
		}
		for code, students := range demand {
			rawInput.Demand[code] += students
		}
	default:
		courses, err := ReadCourses(in, department)
		if err != nil {
			return err
		}
		rawInput.Courses = append(rawInput.Courses, courses...)
	}
	return nil
}

// InputFromDirectory loads and processes a directory of CSV exports
func InputFromDirectory(dir string, studentsPerSection uint64) (model.ModelInput, error) {
	rawInput, err := LoadDirectory(dir)
	if err != nil {
		return model.ModelInput{}, err
	}
	return model.ProcessRawInput(rawInput, studentsPerSection)
}
