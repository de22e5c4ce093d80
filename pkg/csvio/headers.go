package csvio

import (
	"strings"

	"github.com/samber/lo"
)

// field is a logical column and the closed set of header spellings it is exported under
type field struct {
	key      string // mapstructure key of the raw model struct
	variants []string
}

var (
	departmentField = field{"department", []string{"Department", "department", "Dept", "DEPT"}}
	semesterField   = field{"semester", []string{"CohortSemester", "Semester", "semester", "Sem"}}

	capacityFields = []field{
		departmentField,
		semesterField,
		{"students", []string{"student_count", "StudentCount", "Students", "students"}},
	}

	courseFields = []field{
		departmentField,
		semesterField,
		{"code", []string{"course_code", "CourseCode", "Course Code", "C-CODE"}},
		{"name", []string{"course_name", "CourseName", "Course Name", "CourseTitle"}},
		{"isLab", []string{"is_lab", "IsLab", "Lab"}},
		{"lecturesNeeded", []string{"times_needed", "TimesNeeded", "Lectures"}},
	}

	cohortFields = []field{
		departmentField,
		semesterField,
		{"courseCode", []string{"CourseCode", "Course Code", "C-CODE", "course_code"}},
		{"courseName", []string{"CourseName", "Course Name", "course_name", "CourseTitle"}},
		{"section", []string{"Section", "section", "Sec", "SEC"}},
		{"capacity", []string{"Capacity", "capacity", "Cap", "Students"}},
	}

	electiveFields = []field{
		{"code", []string{"elective_code", "code", "Code", "CourseCode"}},
		{"name", []string{"elective_name", "name", "Name", "CourseName"}},
		{"type", []string{"type", "Type", "elective_type"}},
		{"creditHours", []string{"credit_hours", "CreditHours", "Credits"}},
		{"canUseTheory", []string{"can_use_theory", "CanUseTheory"}},
		{"canUseLab", []string{"can_use_lab", "CanUseLab"}},
		departmentField,
	}
)

// rowReader looks a logical field up in a CSV record. Missing and blank cells are both "not found"
type rowReader map[string]string

func (row rowReader) lookup(f field) (string, bool) {
	for _, variant := range f.variants {
		value, ok := row[variant]
		if ok && !blankValue(value) {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// decodable maps the fields present in the record to their mapstructure keys
func (row rowReader) decodable(fields []field) map[string]any {
	result := make(map[string]any, len(fields))
	for _, f := range fields {
		if value, ok := row.lookup(f); ok {
			result[f.key] = value
		}
	}
	return result
}

func blankValue(value string) bool {
	return lo.Contains([]string{"", "nan", "none", "null", "nil"}, strings.ToLower(strings.TrimSpace(value)))
}
