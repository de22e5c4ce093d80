package model

import (
	"math"
	"math/rand/v2"
)

type prober interface {
	// Searches a (day, candidate) pair accepted by feasible. Returns false when none is found
	Probe(candidates [][]TimeSlot, feasible func(day Day, slots []TimeSlot) bool) (Day, []TimeSlot, bool)
}

func newProber(strategy Strategy, rng *rand.Rand, attempts int) prober {
	if strategy == ExhaustiveStrategy {
		return &exhaustiveProber{rng: rng}
	}
	return &randomProber{rng: rng, attempts: attempts}
}

// randomProber draws a day and then a candidate, up to a fixed number of attempts. A free cell may be missed
type randomProber struct {
	rng      *rand.Rand
	attempts int
}

func (prober *randomProber) Probe(candidates [][]TimeSlot, feasible func(day Day, slots []TimeSlot) bool) (Day, []TimeSlot, bool) {
	if len(candidates) == 0 {
		return 0, nil, false
	}
	for range prober.attempts {
		day := Day(prober.rng.IntN(DayCount))
		slots := candidates[prober.rng.IntN(len(candidates))]
		if feasible(day, slots) {
			return day, slots, true
		}
	}
	return 0, nil, false
}

// exhaustiveProber enumerates the whole (day, candidate) space and picks uniformly among the feasible pairs
type exhaustiveProber struct {
	rng *rand.Rand
}

func (prober *exhaustiveProber) Probe(candidates [][]TimeSlot, feasible func(day Day, slots []TimeSlot) bool) (Day, []TimeSlot, bool) {
	generator := newPermutationGenerator(DayCount, uint64(len(candidates)))
	permutations := generator.ConstrainedPermutations([]func(permutation []uint64) bool{
		func(permutation []uint64) bool {
			return permutation[1] == math.MaxUint64 || feasible(Day(permutation[0]), candidates[permutation[1]])
		},
	})
	if len(permutations) == 0 {
		return 0, nil, false
	}

	permutation := permutations[prober.rng.IntN(len(permutations))]
	return Day(permutation[0]), candidates[permutation[1]], true
}

func singleSlotCandidates(slots []TimeSlot) [][]TimeSlot {
	candidates := make([][]TimeSlot, 0, len(slots))
	for _, slot := range slots {
		candidates = append(candidates, []TimeSlot{slot})
	}
	return candidates
}

func labPairCandidates() [][]TimeSlot {
	candidates := make([][]TimeSlot, 0, TimeSlotCount-1)
	for _, pair := range LabSlotPairs() {
		candidates = append(candidates, []TimeSlot{pair[0], pair[1]})
	}
	return candidates
}
