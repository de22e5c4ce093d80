package model

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
)

var (
	DemandDepartments = []string{"CS", "SE", "AI", "DS", "INFS", "CB"}
	DemandSemesters   = []uint64{5, 6, 7, 8}
)

const (
	minSimulatedStudents = 30
	maxSimulatedStudents = 50
	maxChoices           = 3
)

type StudentPreference struct {
	Student    string
	Department string
	Semester   uint64
	Choices    []string // Elective codes, first choice first
}

// SimulatePreferences generates 30-50 students per department and semester, each choosing up to three eligible electives
func SimulatePreferences(electives []Elective, departments []string, semesters []uint64, seed uint64) []StudentPreference {
	rng := rand.New(rand.NewPCG(seed, seed))
	preferences := make([]StudentPreference, 0)

	student := 1000
	for _, department := range departments {
		available := lo.FilterMap(electives, func(elective Elective, _ int) (string, bool) {
			return elective.Code, eligible(elective, department)
		})

		for _, semester := range semesters {
			students := minSimulatedStudents + rng.IntN(maxSimulatedStudents-minSimulatedStudents+1)
			for range students {
				choices := min(maxChoices, len(available))
				if choices > 0 {
					preferences = append(preferences, StudentPreference{
						Student:    fmt.Sprintf("%v_S%v_ST%v", department, semester, student),
						Department: department,
						Semester:   semester,
						Choices: lo.Map(rng.Perm(len(available))[:choices], func(index int, _ int) string {
							return available[index]
						}),
					})
				}
				student++
			}
		}
	}
	return preferences
}

func eligible(elective Elective, department string) bool {
	return slices.Contains(elective.EligibleDepartments, AllDepartments) || slices.Contains(elective.EligibleDepartments, department)
}

type DemandAnalysis struct {
	Elective     string
	Total        uint64
	ByChoice     [maxChoices]uint64
	ByDepartment map[string]uint64
}

// AnalyzeDemand aggregates preferences per elective, most demanded first
func AnalyzeDemand(preferences []StudentPreference) []DemandAnalysis {
	byElective := make(map[string]*DemandAnalysis)
	for _, preference := range preferences {
		for choice, code := range preference.Choices {
			analysis, ok := byElective[code]
			if !ok {
				analysis = &DemandAnalysis{Elective: code, ByDepartment: make(map[string]uint64)}
				byElective[code] = analysis
			}
			analysis.Total++
			if choice < maxChoices {
				analysis.ByChoice[choice]++
			}
			analysis.ByDepartment[preference.Department]++
		}
	}

	analyses := lo.Map(lo.Values(byElective), func(analysis *DemandAnalysis, _ int) DemandAnalysis { return *analysis })
	slices.SortFunc(analyses, func(a, b DemandAnalysis) int {
		if a.Total != b.Total {
			return cmp.Compare(b.Total, a.Total)
		}
		return cmp.Compare(a.Elective, b.Elective)
	})
	return analyses
}

// DemandTotals returns the aggregated demand per elective code
func DemandTotals(analyses []DemandAnalysis) map[string]uint64 {
	return lo.SliceToMap(analyses, func(analysis DemandAnalysis) (string, uint64) {
		return analysis.Elective, analysis.Total
	})
}
