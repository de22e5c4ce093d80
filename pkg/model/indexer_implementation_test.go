package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexAndAttributesDeterministic(t *testing.T) {
	//** Arrange
	scenarios := [][]uint64{
		{6, 7},
		{1, 1},
		{5, 12},
		{7, 3},
	}

	for _, scenario := range scenarios {
		var Days uint64 = scenario[0]
		var Slots uint64 = scenario[1]

		//** Act
		indexer := newIndexer(Days, Slots)

		indices := make([]uint64, 0, Days*Slots)
		for day := range Days {
			for slot := range Slots {
				indices = append(indices, indexer.Index(Day(day), TimeSlot(slot)))
			}
		}

		//** Assert
		assert.Equal(t, Days*Slots, indexer.Len())
		seen := make(map[uint64]bool)
		for _, index := range indices {
			assert.Less(t, index, indexer.Len())
			assert.False(t, seen[index])
			seen[index] = true

			day, slot := indexer.Attributes(index)
			assert.Equal(t, index, indexer.Index(day, slot))
		}
	}
}

func TestIndexAndAttributesNonDeterministic(t *testing.T) {
	for range 10 {
		//** Arrange
		var Days uint64 = uint64(rand.IntN(10) + 1)
		var Slots uint64 = uint64(rand.IntN(10) + 1)
		indexer := newIndexer(Days, Slots)

		//** Act
		day, slot := Day(rand.Uint64N(Days)), TimeSlot(rand.Uint64N(Slots))
		index := indexer.Index(day, slot)

		//** Assert
		actualDay, actualSlot := indexer.Attributes(index)
		assert.Equal(t, day, actualDay)
		assert.Equal(t, slot, actualSlot)
	}
}
