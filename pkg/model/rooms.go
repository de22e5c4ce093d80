package model

import (
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
)

type roomAllocator interface {
	// Allocates a room of the pool for the (day, slot) cell. An empty pool yields no room
	Allocate(pool []string, day Day, slot TimeSlot) (room string, overbooked bool)
}

// ledgerRoomAllocator avoids double-booking through the ledger and overbooks (flagging the room) once the pool is exhausted
type ledgerRoomAllocator struct {
	ledger *RoomLedger
	rng    *rand.Rand
	marker string
}

func newLedgerRoomAllocator(ledger *RoomLedger, rng *rand.Rand, marker string) roomAllocator {
	return &ledgerRoomAllocator{
		ledger: ledger,
		rng:    rng,
		marker: marker,
	}
}

func (allocator *ledgerRoomAllocator) Allocate(pool []string, day Day, slot TimeSlot) (string, bool) {
	if len(pool) == 0 {
		return "", false
	}

	available := lo.Filter(pool, func(room string, _ int) bool {
		return !allocator.ledger.Booked(day, slot, room)
	})
	if len(available) > 0 {
		room := available[allocator.rng.IntN(len(available))]
		allocator.ledger.Book(day, slot, room)
		return room, false
	}

	// Pool exhausted: the room is not added to the ledger
	room := pool[allocator.rng.IntN(len(pool))]
	return room + allocator.marker, true
}

// poolRoomAllocator draws rooms independently per occurrence, without any booking check
type poolRoomAllocator struct {
	rng *rand.Rand
}

func newPoolRoomAllocator(rng *rand.Rand) roomAllocator {
	return &poolRoomAllocator{rng: rng}
}

func (allocator *poolRoomAllocator) Allocate(pool []string, _ Day, _ TimeSlot) (string, bool) {
	if len(pool) == 0 {
		return "", false
	}
	return pool[allocator.rng.IntN(len(pool))], false
}

// Special labs take precedence for lab courses, then the lab pool; everything else uses the theory pool
func corePool(code string, isLab bool, rooms RoomPools) []string {
	if special, ok := rooms.Special[code]; isLab && ok && len(special) > 0 {
		return special
	} else if isLab {
		return rooms.Lab
	}
	return rooms.Theory
}

func electivePool(elective Elective, rooms RoomPools) []string {
	if elective.CanUseLab {
		return lo.Uniq(append(slices.Clone(rooms.Theory), rooms.Lab...))
	}
	return rooms.Theory
}
