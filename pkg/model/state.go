package model

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// placementState owns every mutable structure of one engine run
type placementState struct {
	sections []string
	grids    map[string]*Grid
	counters *Counters
	ledger   *RoomLedger
	stats    Stats
	failures map[string]uint64
	rng      *rand.Rand
	logger   *zap.Logger
}

func newPlacementState(seed uint64, logger *zap.Logger) *placementState {
	return &placementState{
		sections: make([]string, 0),
		grids:    make(map[string]*Grid),
		counters: newCounters(),
		ledger:   NewRoomLedger(),
		failures: make(map[string]uint64),
		rng:      rand.New(rand.NewPCG(seed, seed)),
		logger:   logger,
	}
}

// grid returns the grid of a section, creating it on first use
func (state *placementState) grid(section string) *Grid {
	if grid, ok := state.grids[section]; ok {
		return grid
	}
	grid := NewGrid()
	state.grids[section] = grid
	state.sections = append(state.sections, section)
	return grid
}

// fail records an abandoned occurrence, no counter changes
func (state *placementState) fail(section string) {
	state.stats.Failed++
	state.failures[section]++
}

// commit writes the occupant into every slot it covers and updates the counters
func (state *placementState) commit(section string, day Day, occupant *Occupant) {
	state.grid(section).place(day, occupant)
	state.counters.addDaily(section, day)
	if !occupant.Fixed {
		state.counters.addLecture(section, occupant.CourseCode)
	}
}
