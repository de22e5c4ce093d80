package model

import (
	"slices"
	"sync"
)

// RoomLedger records which rooms are booked per (day, time slot).
// It is guarded by a mutex since it is the only structure sections would contend for if placed in parallel
type RoomLedger struct {
	mutex   sync.Mutex
	indexer indexer
	booked  [][]string
}

func NewRoomLedger() *RoomLedger {
	indexer := newIndexer(DayCount, TimeSlotCount)
	return &RoomLedger{
		indexer: indexer,
		booked:  make([][]string, indexer.Len()),
	}
}

// Book adds the room to the cell, it returns false if the room was already booked there
func (ledger *RoomLedger) Book(day Day, slot TimeSlot, room string) bool {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	index := ledger.indexer.Index(day, slot)
	if slices.Contains(ledger.booked[index], room) {
		return false
	}
	ledger.booked[index] = append(ledger.booked[index], room)
	return true
}

func (ledger *RoomLedger) Booked(day Day, slot TimeSlot, room string) bool {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	return slices.Contains(ledger.booked[ledger.indexer.Index(day, slot)], room)
}

// Rooms returns the rooms booked in the cell in booking order
func (ledger *RoomLedger) Rooms(day Day, slot TimeSlot) []string {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	return slices.Clone(ledger.booked[ledger.indexer.Index(day, slot)])
}

// Bookings returns the total number of bookings across all cells
func (ledger *RoomLedger) Bookings() int {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	total := 0
	for _, rooms := range ledger.booked {
		total += len(rooms)
	}
	return total
}
