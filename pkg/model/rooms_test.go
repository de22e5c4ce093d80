package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerRoomAllocator(t *testing.T) {
	t.Run("Free rooms first, then overbook", func(t *testing.T) {
		//** Arrange
		ledger := NewRoomLedger()
		allocator := newLedgerRoomAllocator(ledger, rand.New(rand.NewPCG(7, 7)), "*")
		pool := []string{"T01", "T02"}

		//** Act
		first, firstOverbooked := allocator.Allocate(pool, Friday, 4)
		second, secondOverbooked := allocator.Allocate(pool, Friday, 4)
		third, thirdOverbooked := allocator.Allocate(pool, Friday, 4)

		//** Assert
		assert.False(t, firstOverbooked)
		assert.False(t, secondOverbooked)
		assert.ElementsMatch(t, pool, []string{first, second})
		assert.True(t, thirdOverbooked)
		assert.Contains(t, []string{"T01*", "T02*"}, third)
		assert.ElementsMatch(t, pool, ledger.Rooms(Friday, 4))
		assert.Equal(t, 2, ledger.Bookings())
	})

	t.Run("Cells are independent", func(t *testing.T) {
		ledger := NewRoomLedger()
		allocator := newLedgerRoomAllocator(ledger, rand.New(rand.NewPCG(1, 1)), "*")

		room, overbooked := allocator.Allocate([]string{"L01"}, Monday, 0)
		assert.Equal(t, "L01", room)
		assert.False(t, overbooked)

		room, overbooked = allocator.Allocate([]string{"L01"}, Monday, 1)
		assert.Equal(t, "L01", room)
		assert.False(t, overbooked)
	})

	t.Run("Empty pool", func(t *testing.T) {
		allocator := newLedgerRoomAllocator(NewRoomLedger(), rand.New(rand.NewPCG(1, 1)), "*")

		room, overbooked := allocator.Allocate(nil, Monday, 0)
		assert.Equal(t, "", room)
		assert.False(t, overbooked)
	})
}

func TestPoolRoomAllocator(t *testing.T) {
	//** Arrange
	allocator := newPoolRoomAllocator(rand.New(rand.NewPCG(3, 3)))
	pool := []string{"T01"}

	//** Act & Assert
	for range 5 {
		room, overbooked := allocator.Allocate(pool, Saturday, 6)
		assert.Equal(t, "T01", room)
		assert.False(t, overbooked)
	}
	room, _ := allocator.Allocate(nil, Saturday, 6)
	assert.Equal(t, "", room)
}

func TestRoomPools(t *testing.T) {
	rooms := RoomPools{
		Theory:  []string{"T01", "T02"},
		Lab:     []string{"L01", "T02"},
		Special: map[string][]string{"EE1005": {"DLD Lab"}},
	}

	assert.Equal(t, []string{"DLD Lab"}, corePool("EE1005", true, rooms))
	assert.Equal(t, []string{"T01", "T02"}, corePool("EE1005", false, rooms))
	assert.Equal(t, []string{"L01", "T02"}, corePool("CL1002", true, rooms))
	assert.Equal(t, []string{"T01", "T02"}, corePool("CS1002", false, rooms))

	assert.Equal(t, []string{"T01", "T02", "L01"}, electivePool(Elective{CanUseLab: true}, rooms))
	assert.Equal(t, []string{"T01", "T02"}, electivePool(Elective{}, rooms))
}

func TestRoomLedger(t *testing.T) {
	ledger := NewRoomLedger()

	assert.True(t, ledger.Book(Thursday, 5, "T03"))
	assert.False(t, ledger.Book(Thursday, 5, "T03"))
	assert.True(t, ledger.Booked(Thursday, 5, "T03"))
	assert.False(t, ledger.Booked(Thursday, 6, "T03"))
	assert.Equal(t, []string{"T03"}, ledger.Rooms(Thursday, 5))
	assert.Equal(t, 1, ledger.Bookings())
}
