package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomDrawAttemptBound(t *testing.T) {
	for _, attempts := range []int{100, 50} {
		//** Arrange
		prober := newProber(RandomStrategy, rand.New(rand.NewPCG(1, 1)), attempts)
		calls := 0

		//** Act
		_, slots, found := prober.Probe(singleSlotCandidates(TimeSlots()), func(Day, []TimeSlot) bool {
			calls++
			return false
		})

		//** Assert
		assert.False(t, found)
		assert.Nil(t, slots)
		assert.Equal(t, attempts, calls)
	}
}

func TestRandomDrawStopsAtFirstFeasibleCandidate(t *testing.T) {
	prober := newProber(RandomStrategy, rand.New(rand.NewPCG(1, 1)), 100)
	calls := 0

	day, slots, found := prober.Probe(labPairCandidates(), func(day Day, slots []TimeSlot) bool {
		calls++
		return calls == 3
	})

	require.True(t, found)
	assert.Equal(t, 3, calls)
	assert.Less(t, int(day), DayCount)
	assert.Len(t, slots, 2)
}

func TestSearchWithoutCandidates(t *testing.T) {
	for _, strategy := range Strategies {
		t.Run(string(strategy), func(t *testing.T) {
			prober := newProber(strategy, rand.New(rand.NewPCG(1, 1)), 100)
			calls := 0

			_, _, found := prober.Probe(nil, func(Day, []TimeSlot) bool {
				calls++
				return true
			})

			assert.False(t, found)
			assert.Zero(t, calls)
		})
	}
}

func TestExhaustiveSearchFindsTheOnlyFeasiblePair(t *testing.T) {
	prober := newProber(ExhaustiveStrategy, rand.New(rand.NewPCG(1, 1)), 1)
	target := TimeSlots()[5]

	day, slots, found := prober.Probe(singleSlotCandidates(TimeSlots()), func(day Day, slots []TimeSlot) bool {
		return day == Saturday && slots[0] == target
	})

	require.True(t, found)
	assert.Equal(t, Saturday, day)
	assert.Equal(t, []TimeSlot{target}, slots)
}

func TestPlacersUseTheirEngineAttempts(t *testing.T) {
	//** Arrange
	params := DefaultParameters()
	state := newPlacementState(params.Seed, nil)

	//** Act
	core := newCorePlacer(params, state, RoomPools{})
	elective := newElectivePlacer(params, state, RoomPools{})

	//** Assert
	coreProber, ok := core.prober.(*randomProber)
	require.True(t, ok)
	assert.Equal(t, 100, coreProber.attempts)

	electiveProber, ok := elective.prober.(*randomProber)
	require.True(t, ok)
	assert.Equal(t, 50, electiveProber.attempts)

	t.Run("Configured bounds", func(t *testing.T) {
		params.CoreAttempts, params.ElectiveAttempts = 7, 3

		assert.Equal(t, 7, newCorePlacer(params, state, RoomPools{}).prober.(*randomProber).attempts)
		assert.Equal(t, 3, newElectivePlacer(params, state, RoomPools{}).prober.(*randomProber).attempts)
	})
}
