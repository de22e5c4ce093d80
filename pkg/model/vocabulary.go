package model

import (
	"fmt"
	"strings"
)

type Day uint64

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

const DayCount = 6

var dayNames = [DayCount]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (day Day) String() string {
	if day >= DayCount {
		return fmt.Sprintf("Day(%d)", uint64(day))
	}
	return dayNames[day]
}

// Days returns the teaching days in weekly order
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// ParseDay accepts the full day name, its lower-case form and the three-letter abbreviation (e.g. "Monday", "monday", "Mon", "mon")
func ParseDay(name string) (Day, bool) {
	name = strings.TrimSpace(name)
	for day, dayName := range dayNames {
		if name == dayName || name == strings.ToLower(dayName) || name == dayName[:3] || name == strings.ToLower(dayName[:3]) {
			return Day(day), true
		}
	}
	return 0, false
}

type TimeSlot uint64

const TimeSlotCount = 7

// Time-slot labels are identities, they are never parsed as time ranges
var timeSlotLabels = [TimeSlotCount]string{
	"08:00-09:15",
	"09:30-10:45",
	"11:00-12:15",
	"12:30-01:45",
	"02:00-03:15",
	"03:30-04:45",
	"05:00-06:15",
}

func (slot TimeSlot) String() string {
	if slot >= TimeSlotCount {
		return fmt.Sprintf("TimeSlot(%d)", uint64(slot))
	}
	return timeSlotLabels[slot]
}

// TimeSlots returns the time slots in daily order
func TimeSlots() []TimeSlot {
	slots := make([]TimeSlot, TimeSlotCount)
	for i := range TimeSlotCount {
		slots[i] = TimeSlot(i)
	}
	return slots
}

// ParseTimeSlot matches a label literally against the canonical time-slot labels
func ParseTimeSlot(label string) (TimeSlot, bool) {
	label = strings.TrimSpace(label)
	for slot, slotLabel := range timeSlotLabels {
		if label == slotLabel {
			return TimeSlot(slot), true
		}
	}
	return 0, false
}

type LabSlotPair [2]TimeSlot

// LabSlotPairs returns the six pairs of adjacent time slots a lab session can occupy
func LabSlotPairs() []LabSlotPair {
	pairs := make([]LabSlotPair, 0, TimeSlotCount-1)
	for i := range TimeSlotCount - 1 {
		pairs = append(pairs, LabSlotPair{TimeSlot(i), TimeSlot(i + 1)})
	}
	return pairs
}

// SpanLabel returns the aggregated "start-end" label of consecutive slots (e.g. "08:00-10:45")
func SpanLabel(slots []TimeSlot) string {
	if len(slots) == 0 {
		return ""
	}
	start, _, _ := strings.Cut(slots[0].String(), "-")
	_, end, _ := strings.Cut(slots[len(slots)-1].String(), "-")
	return start + "-" + end
}
