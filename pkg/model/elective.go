package model

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// ElectiveSection is an independent scheduling target synthesized from elective demand
type ElectiveSection struct {
	Key      ElectiveSectionKey
	Elective Elective
	Type     ElectiveType
	Demand   uint64 // Aggregated demand of the whole elective
	Capacity uint64
}

// CreateElectiveSections partitions the demand of every elective into sections of the type's maximum size.
// Electives below the type's minimum demand are dropped and counted, they are not failures
func CreateElectiveSections(electives []Elective, demand map[string]uint64, params Parameters) (sections []ElectiveSection, dropped uint64) {
	sections = make([]ElectiveSection, 0)
	for _, elective := range electives {
		electiveType := params.electiveType(elective.Type)
		total, ok := demand[elective.Code]
		if !ok {
			continue
		}
		if total < electiveType.MinStudents || total == 0 {
			dropped++
			continue
		}

		count := uint64(math.Ceil(float64(total) / float64(electiveType.MaxStudents)))
		for number := uint64(1); number <= count; number++ {
			sections = append(sections, ElectiveSection{
				Key:      ElectiveSectionKey{Elective: elective.Code, Number: number},
				Elective: elective,
				Type:     electiveType,
				Demand:   total,
				Capacity: electiveType.MaxStudents,
			})
		}
	}

	// High priority types are scheduled first, ties keep input order
	slices.SortStableFunc(sections, func(a, b ElectiveSection) int {
		return cmp.Compare(a.Type.Priority, b.Type.Priority)
	})
	return sections, dropped
}

func electiveText(elective Elective, lecture, lectures uint64, room string) string {
	var builder strings.Builder
	builder.WriteString(elective.Code)
	if lectures > 1 {
		fmt.Fprintf(&builder, " (L%v/%v)", lecture, lectures)
	}
	fmt.Fprintf(&builder, "\n%v\n(Elective - %v)\nRoom: %v", elective.Name, elective.Type, room)
	return builder.String()
}

type electivePlacer struct {
	state     *placementState
	evaluator predicateEvaluator
	prober    prober
	allocator roomAllocator
	rooms     RoomPools
}

// newElectivePlacer allocates from the pools alone unless the elective ledger is enabled
func newElectivePlacer(params Parameters, state *placementState, rooms RoomPools) *electivePlacer {
	var allocator roomAllocator
	if params.ElectiveRoomLedger {
		allocator = newLedgerRoomAllocator(state.ledger, state.rng, params.OverbookMarker)
	} else {
		allocator = newPoolRoomAllocator(state.rng)
	}
	return &electivePlacer{
		state:     state,
		evaluator: newPredicateEvaluator(state, params.MaxClassesPerDay),
		prober:    newProber(params.Strategy, state.rng, params.ElectiveAttempts),
		allocator: allocator,
		rooms:     rooms,
	}
}

// placeSection places one occurrence per credit hour, each in a single preferred slot. It reports whether every occurrence was placed
func (placer *electivePlacer) placeSection(section ElectiveSection) bool {
	id := section.Key.String()
	placer.state.grid(id)

	preferred := section.Type.PreferredSlots
	if len(preferred) == 0 {
		preferred = TimeSlots()
	}
	candidates := singleSlotCandidates(preferred)
	lectures := section.Elective.CreditHours

	complete := true
	for lecture := uint64(1); lecture <= lectures; lecture++ {
		day, slots, found := placer.prober.Probe(candidates, func(day Day, slots []TimeSlot) bool {
			return placer.evaluator.WithinTarget(id, section.Elective.Code, lectures) &&
				placer.evaluator.UnderDailyLimit(id, day) &&
				placer.evaluator.Free(id, day, slots)
		})
		if !found {
			complete = false
			placer.state.fail(id)
			placer.state.logger.Debug("elective occurrence not placed",
				zap.String("section", id),
				zap.Uint64("lecture", lecture),
			)
			continue
		}

		room, overbooked := placer.allocator.Allocate(electivePool(section.Elective, placer.rooms), day, slots[0])
		if overbooked {
			placer.state.stats.Overbooked++
		}

		placer.state.commit(id, day, &Occupant{
			CourseCode: section.Elective.Code,
			CourseName: section.Elective.Name,
			Text:       electiveText(section.Elective, lecture, lectures, room),
			Room:       room,
			Overbooked: overbooked,
			Lecture:    lecture,
			Lectures:   lectures,
			Slots:      slots,
		})
		placer.state.stats.Placed++
	}
	return complete
}
