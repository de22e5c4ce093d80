package model

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

func coreText(course Course, lecture uint64, room string, slots []TimeSlot) string {
	var builder strings.Builder
	builder.WriteString(course.Code)
	if course.LecturesNeeded > 1 {
		fmt.Fprintf(&builder, " (L%v/%v)", lecture, course.LecturesNeeded)
	}
	fmt.Fprintf(&builder, "\n%v\nRoom: %v", course.Name, room)
	if len(slots) > 1 {
		fmt.Fprintf(&builder, "\n(Lab: %v)", SpanLabel(slots))
	}
	return builder.String()
}

// corePlacer places the elastic occurrences of every course into each section of its batch
type corePlacer struct {
	state     *placementState
	evaluator predicateEvaluator
	prober    prober
	allocator roomAllocator
	rooms     RoomPools
}

func newCorePlacer(params Parameters, state *placementState, rooms RoomPools) *corePlacer {
	return &corePlacer{
		state:     state,
		evaluator: newPredicateEvaluator(state, params.MaxClassesPerDay),
		prober:    newProber(params.Strategy, state.rng, params.CoreAttempts),
		allocator: newLedgerRoomAllocator(state.ledger, state.rng, params.OverbookMarker),
		rooms:     rooms,
	}
}

func (placer *corePlacer) placeCourses(input ModelInput) {
	for _, course := range input.Courses {
		batch, ok := input.Batch(course.Department, course.Semester)
		if !ok {
			placer.state.stats.SkippedCourses++
			placer.state.logger.Debug("course without batch skipped",
				zap.String("course", course.Code),
				zap.String("department", course.Department),
				zap.Uint64("semester", course.Semester),
			)
			continue
		}

		for _, section := range batch.Sections {
			placer.placeLectures(section.String(), course)
		}
	}
}

// placeLectures attempts every lecture index independently, a failed occurrence does not stop the next one
func (placer *corePlacer) placeLectures(section string, course Course) {
	candidates := singleSlotCandidates(TimeSlots())
	if course.IsLab {
		candidates = labPairCandidates()
	}

	for lecture := uint64(1); lecture <= course.LecturesNeeded; lecture++ {
		day, slots, found := placer.prober.Probe(candidates, func(day Day, slots []TimeSlot) bool {
			return placer.evaluator.WithinTarget(section, course.Code, course.LecturesNeeded) &&
				placer.evaluator.UnderDailyLimit(section, day) &&
				placer.evaluator.Free(section, day, slots)
		})
		if !found {
			placer.state.fail(section)
			placer.state.logger.Debug("occurrence not placed",
				zap.String("section", section),
				zap.String("course", course.Code),
				zap.Uint64("lecture", lecture),
			)
			continue
		}

		// A lab pair is allocated once, against the ledger of its first slot
		room, overbooked := placer.allocator.Allocate(corePool(course.Code, course.IsLab, placer.rooms), day, slots[0])
		if overbooked {
			placer.state.stats.Overbooked++
		}

		placer.state.commit(section, day, &Occupant{
			CourseCode: course.Code,
			CourseName: course.Name,
			Text:       coreText(course, lecture, room, slots),
			Room:       room,
			Overbooked: overbooked,
			Lecture:    lecture,
			Lectures:   course.LecturesNeeded,
			Slots:      slots,
		})
		placer.state.stats.Placed++
	}
}
