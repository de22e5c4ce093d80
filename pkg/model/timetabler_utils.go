package model

import (
	"slices"
	"strings"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type bookingKey struct {
	day  Day
	slot TimeSlot
	room string
}

func verify(timetable Timetable, modelInput ModelInput) bool {
	params := timetable.Parameters
	ledgerBacked := timetable.Engine == CoreEngine || params.ElectiveRoomLedger
	if ledgerBacked && timetable.Ledger == nil {
		return false
	}

	placed, cohort := uint64(0), uint64(0)
	bookings := make(map[bookingKey]bool)

	for _, section := range timetable.Sections {
		if section.Grid == nil || !consistentGrid(section.Grid) {
			return false
		}

		daily, elastic := [DayCount]int{}, [DayCount]int{}
		lectures := make(map[string][]uint64)

		for _, occurrence := range section.Grid.Occurrences() {
			day, occupant := occurrence.Day, occurrence.Occupant
			daily[day]++
			if occupant.Fixed {
				cohort++
				continue
			}
			placed++
			elastic[day]++
			lectures[occupant.CourseCode] = append(lectures[occupant.CourseCode], occupant.Lecture)

			// Check that:
			// - Elective occurrences use a single preferred slot
			// - Ledger-backed rooms are booked and not shared by two occurrences in the same cell
			if section.Elective != nil && !electiveSlotAllowed(*section.Elective, occupant.Slots) {
				return false
			}
			if ledgerBacked && !occupant.Overbooked && occupant.Room != "" {
				key := bookingKey{day: day, slot: occupant.Slots[0], room: occupant.Room}
				if bookings[key] || !timetable.Ledger.Booked(day, occupant.Slots[0], occupant.Room) {
					return false
				}
				bookings[key] = true
			}
		}

		// A day receiving elastic occurrences never exceeds the daily ceiling, cohort entries alone may
		for day := range DayCount {
			if elastic[day] > 0 && daily[day] > params.MaxClassesPerDay {
				return false
			}
		}

		// Check whether the number of occurrences of each course stays within its lecture target
		for course, indices := range lectures {
			if uint64(len(indices)) > lectureTarget(section, course, modelInput) || len(lo.Uniq(indices)) != len(indices) {
				return false
			}
		}
	}

	if placed != timetable.Stats.Placed || cohort != timetable.Stats.Cohort {
		return false
	}

	// Every cohort entry keeps a fixed occupant in its cell
	if timetable.Engine == CoreEngine {
		for _, entry := range modelInput.Cohort {
			section, ok := timetable.Section(entry.Section.String())
			if !ok {
				return false
			}
			if occupant := section.Grid.At(entry.Day, entry.TimeSlot); occupant == nil || !occupant.Fixed {
				return false
			}
		}
	}

	if ledgerBacked {
		for _, day := range Days() {
			for _, slot := range TimeSlots() {
				rooms := timetable.Ledger.Rooms(day, slot)
				if len(lo.Uniq(rooms)) != len(rooms) {
					return false
				}
			}
		}
	}
	return true
}

// Checks whether every cell points to an occupant covering it, and every occupant covers one slot or an adjacent pair
func consistentGrid(grid *Grid) bool {
	for _, day := range Days() {
		for _, slot := range TimeSlots() {
			occupant := grid.At(day, slot)
			if occupant == nil {
				continue
			}
			if !slices.Contains(occupant.Slots, slot) || len(occupant.Slots) == 0 || len(occupant.Slots) > 2 {
				return false
			}
			if len(occupant.Slots) == 2 && occupant.Slots[1] != occupant.Slots[0]+1 {
				return false
			}
			for _, covered := range occupant.Slots {
				if grid.At(day, covered) != occupant {
					return false
				}
			}
		}
	}
	return true
}

func electiveSlotAllowed(section ElectiveSection, slots []TimeSlot) bool {
	if len(slots) != 1 {
		return false
	}
	return len(section.Type.PreferredSlots) == 0 || slices.Contains(section.Type.PreferredSlots, slots[0])
}

func lectureTarget(section SectionTimetable, course string, modelInput ModelInput) uint64 {
	if section.Elective != nil {
		return section.Elective.Elective.CreditHours
	}
	found, ok := lo.Find(modelInput.Courses, func(candidate Course) bool {
		return candidate.Code == course && candidate.Department == section.Section.Department && candidate.Semester == section.Section.Semester
	})
	if !ok {
		return 0
	}
	return found.LecturesNeeded
}

// Contention describes a (day, slot) cell where at least one occurrence was overbooked or shares its room with another one
type Contention struct {
	Day         Day
	TimeSlot    TimeSlot
	Occurrences int // Elastic occurrences starting in the cell
	Clashes     int
	Rooms       int // Distinct rooms the occurrences could use
	Resolvable  bool
}

type contendingOccurrence struct {
	section string
	room    string
	pool    []string
	clash   bool
}

// AnalyzeContention classifies each contended cell as resolvable, when a conflict-free room assignment
// exists for all its occurrences, or saturated otherwise
func AnalyzeContention(timetable Timetable, modelInput ModelInput) ([]Contention, error) {
	marker := timetable.Parameters.OverbookMarker
	contentions := make([]Contention, 0)

	for _, day := range Days() {
		for _, slot := range TimeSlots() {
			occurrences := cellOccurrences(timetable, modelInput, day, slot, marker)
			clashes := lo.CountBy(occurrences, func(occurrence contendingOccurrence) bool { return occurrence.clash })
			if clashes == 0 {
				continue
			}

			rooms := lo.Uniq(lo.Flatten(lo.Map(occurrences, func(occurrence contendingOccurrence, _ int) []string { return occurrence.pool })))
			resolvable, err := assignable(occurrences, rooms)
			if err != nil {
				return nil, err
			}

			contentions = append(contentions, Contention{
				Day:         day,
				TimeSlot:    slot,
				Occurrences: len(occurrences),
				Clashes:     clashes,
				Rooms:       len(rooms),
				Resolvable:  resolvable,
			})
		}
	}
	return contentions, nil
}

func cellOccurrences(timetable Timetable, modelInput ModelInput, day Day, slot TimeSlot, marker string) []contendingOccurrence {
	occurrences := make([]contendingOccurrence, 0)
	seen := make(map[string]bool)

	for _, section := range timetable.Sections {
		occupant := section.Grid.At(day, slot)
		if occupant == nil || occupant.Fixed || occupant.Slots[0] != slot {
			continue
		}

		var pool []string
		if section.Elective != nil {
			pool = electivePool(section.Elective.Elective, modelInput.Rooms)
		} else {
			pool = corePool(occupant.CourseCode, len(occupant.Slots) == 2, modelInput.Rooms)
		}

		room := occupant.Room
		if occupant.Overbooked && marker != "" {
			room = strings.TrimSuffix(room, marker)
		}
		clash := occupant.Overbooked || (room != "" && seen[room])
		seen[room] = true

		occurrences = append(occurrences, contendingOccurrence{
			section: section.ID,
			room:    room,
			pool:    pool,
			clash:   clash,
		})
	}
	return occurrences
}

func assignable(occurrences []contendingOccurrence, rooms []string) (bool, error) {
	// Build neighbors predicate based on each occurrence's pool
	neighbors := func(occurrenceAny any, roomAny any) (bool, error) {
		occurrence := occurrenceAny.(int)
		room := roomAny.(string)

		return slices.Contains(occurrences[occurrence].pool, room), nil
	}

	// Transform occurrences and rooms to slices of any
	occurrencesAny := lo.Times(len(occurrences), func(i int) any { return i })
	roomsAny := lo.Map(rooms, func(room string, _ int) any { return room })

	graph, err := bipartitegraph.NewBipartiteGraph(occurrencesAny, roomsAny, neighbors)
	if err != nil {
		return false, err
	}

	// Check the matching is a maximum one
	return len(graph.LargestMatching()) == len(occurrences), nil
}
