package server

import (
	"time"

	"github.com/samber/lo"

	"github.com/limaJavier/coursegrid/pkg/model"
	"github.com/limaJavier/coursegrid/pkg/pipeline"
)

type runResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Engines   []engineResponse  `json:"engines"`
	Demand    []demandResponse  `json:"demand,omitempty"`
	Skipped   skipsResponse     `json:"skipped"`
	Downloads map[string]string `json:"downloads"`
}

type skipsResponse struct {
	Capacities       uint64 `json:"capacities"`
	Courses          uint64 `json:"courses"`
	Cohort           uint64 `json:"cohort"`
	InvalidCohortDay uint64 `json:"invalidCohortDay"`
	Electives        uint64 `json:"electives"`
	Demand           uint64 `json:"demand"`
}

type engineResponse struct {
	Engine      model.Engine      `json:"engine"`
	Verified    bool              `json:"verified"`
	Complete    bool              `json:"complete"`
	DurationMs  int64             `json:"durationMs"`
	SuccessRate float64           `json:"successRate"`
	Stats       statsResponse     `json:"stats"`
	Sections    []sectionResponse `json:"sections,omitempty"`
}

type statsResponse struct {
	Placed            uint64 `json:"placed"`
	Failed            uint64 `json:"failed"`
	Overbooked        uint64 `json:"overbooked"`
	Cohort            uint64 `json:"cohort"`
	CohortConflicts   uint64 `json:"cohortConflicts"`
	SkippedCourses    uint64 `json:"skippedCourses"`
	DroppedElectives  uint64 `json:"droppedElectives"`
	SectionsCreated   uint64 `json:"sectionsCreated"`
	SectionsScheduled uint64 `json:"sectionsScheduled"`
	SectionsFailed    uint64 `json:"sectionsFailed"`
}

type sectionResponse struct {
	ID          string               `json:"id"`
	Scheduled   bool                 `json:"scheduled"`
	Occurrences []occurrenceResponse `json:"occurrences"`
}

type occurrenceResponse struct {
	Day        string `json:"day"`
	Time       string `json:"time"`
	Course     string `json:"course"`
	Text       string `json:"text"`
	Room       string `json:"room,omitempty"`
	Overbooked bool   `json:"overbooked,omitempty"`
	Fixed      bool   `json:"fixed,omitempty"`
}

type demandResponse struct {
	Elective     string            `json:"elective"`
	Total        uint64            `json:"total"`
	ByChoice     [3]uint64         `json:"byChoice"`
	ByDepartment map[string]uint64 `json:"byDepartment"`
}

// newRunResponse describes a run; sections are listed only when withSections is set
func newRunResponse(run pipeline.Run, withSections bool) runResponse {
	response := runResponse{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Skipped:   skipsResponse(run.Input.Skipped),
		Downloads: map[string]string{
			"csv": "/timetables/" + run.ID + "/download?format=csv",
			"pdf": "/timetables/" + run.ID + "/download?format=pdf",
		},
		Demand: lo.Map(run.Demand, func(analysis model.DemandAnalysis, _ int) demandResponse {
			return demandResponse{
				Elective:     analysis.Elective,
				Total:        analysis.Total,
				ByChoice:     analysis.ByChoice,
				ByDepartment: analysis.ByDepartment,
			}
		}),
	}

	for _, result := range run.Results {
		stats := result.Timetable.Stats
		engine := engineResponse{
			Engine:      result.Engine,
			Verified:    result.Verified,
			Complete:    result.Complete(),
			DurationMs:  result.Duration.Milliseconds(),
			SuccessRate: stats.SuccessRate(),
			Stats: statsResponse{
				Placed:            stats.Placed,
				Failed:            stats.Failed,
				Overbooked:        stats.Overbooked,
				Cohort:            stats.Cohort,
				CohortConflicts:   stats.CohortConflicts,
				SkippedCourses:    stats.SkippedCourses,
				DroppedElectives:  stats.DroppedElectives,
				SectionsCreated:   stats.SectionsCreated,
				SectionsScheduled: stats.SectionsScheduled,
				SectionsFailed:    stats.SectionsFailed,
			},
		}
		if withSections {
			engine.Sections = lo.Map(result.Timetable.Sections, func(section model.SectionTimetable, _ int) sectionResponse {
				return newSectionResponse(section)
			})
		}
		response.Engines = append(response.Engines, engine)
	}
	return response
}

func newSectionResponse(section model.SectionTimetable) sectionResponse {
	return sectionResponse{
		ID:        section.ID,
		Scheduled: section.Scheduled,
		Occurrences: lo.Map(section.Grid.Occurrences(), func(occurrence model.Occurrence, _ int) occurrenceResponse {
			occupant := occurrence.Occupant
			return occurrenceResponse{
				Day:        occurrence.Day.String(),
				Time:       model.SpanLabel(occupant.Slots),
				Course:     occupant.CourseCode,
				Text:       occupant.Text,
				Room:       occupant.Room,
				Overbooked: occupant.Overbooked,
				Fixed:      occupant.Fixed,
			}
		}),
	}
}
