package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstrainedPermutations(t *testing.T) {
	t.Run("Unconstrained", func(t *testing.T) {
		//** Arrange
		generator := newPermutationGenerator(DayCount, TimeSlotCount)

		//** Act
		permutations := generator.ConstrainedPermutations(nil)

		//** Assert
		assert.Len(t, permutations, DayCount*TimeSlotCount)
		assert.Equal(t, []uint64{0, 0}, permutations[0])
		assert.Equal(t, []uint64{DayCount - 1, TimeSlotCount - 1}, permutations[len(permutations)-1])
	})

	t.Run("Constrained", func(t *testing.T) {
		//** Arrange
		generator := newPermutationGenerator(3, 4, 2)

		//** Act
		permutations := generator.ConstrainedPermutations([]func(permutation []uint64) bool{
			func(permutation []uint64) bool {
				return permutation[0] == math.MaxUint64 || permutation[0] != 1
			},
			func(permutation []uint64) bool {
				return permutation[1] == math.MaxUint64 || permutation[2] == math.MaxUint64 || permutation[1] > permutation[2]
			},
		})

		//** Assert
		// First value in {0, 2}, five (second, third) pairs with second > third
		assert.Len(t, permutations, 2*5)
		for _, permutation := range permutations {
			assert.NotEqual(t, uint64(1), permutation[0])
			assert.Greater(t, permutation[1], permutation[2])
		}
	})

	t.Run("Empty domain", func(t *testing.T) {
		generator := newPermutationGenerator(DayCount, 0)
		assert.Empty(t, generator.ConstrainedPermutations(nil))
	})
}
