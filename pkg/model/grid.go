package model

import "slices"

// Occupant is the record written into every grid cell an occurrence covers
type Occupant struct {
	CourseCode string
	CourseName string
	Text       string
	Room       string
	Overbooked bool
	Fixed      bool   // Written by the cohort seeder
	Lecture    uint64 // 1-based lecture index, zero for cohort entries
	Lectures   uint64
	Slots      []TimeSlot
}

// Grid is the weekly TimeSlot x Day occupancy table of one section
type Grid struct {
	cells [TimeSlotCount][DayCount]*Occupant
}

func NewGrid() *Grid {
	return &Grid{}
}

// At returns the occupant of a cell, nil when the cell is empty
func (grid *Grid) At(day Day, slot TimeSlot) *Occupant {
	return grid.cells[slot][day]
}

func (grid *Grid) Free(day Day, slots ...TimeSlot) bool {
	for _, slot := range slots {
		if grid.cells[slot][day] != nil {
			return false
		}
	}
	return true
}

func (grid *Grid) place(day Day, occupant *Occupant) {
	for _, slot := range occupant.Slots {
		grid.cells[slot][day] = occupant
	}
}

// Text returns the display text of a cell, empty when the cell is free
func (grid *Grid) Text(day Day, slot TimeSlot) string {
	if occupant := grid.At(day, slot); occupant != nil {
		return occupant.Text
	}
	return ""
}

type Occurrence struct {
	Day      Day
	Occupant *Occupant
}

// Occurrences returns every distinct occupant of the grid, by day and then by first slot
func (grid *Grid) Occurrences() []Occurrence {
	occurrences := make([]Occurrence, 0)
	for _, day := range Days() {
		for _, slot := range TimeSlots() {
			occupant := grid.cells[slot][day]
			if occupant == nil || slot != occupant.Slots[0] {
				continue
			}
			occurrences = append(occurrences, Occurrence{Day: day, Occupant: occupant})
		}
	}
	return occurrences
}

// Load returns the number of occurrences held on a day
func (grid *Grid) Load(day Day) int {
	load := 0
	for _, occurrence := range grid.Occurrences() {
		if occurrence.Day == day {
			load++
		}
	}
	return load
}

func (grid *Grid) Equal(other *Grid) bool {
	for _, day := range Days() {
		for _, slot := range TimeSlots() {
			occupant, otherOccupant := grid.At(day, slot), other.At(day, slot)
			if (occupant == nil) != (otherOccupant == nil) {
				return false
			} else if occupant != nil && (occupant.Text != otherOccupant.Text || !slices.Equal(occupant.Slots, otherOccupant.Slots)) {
				return false
			}
		}
	}
	return true
}
