package model

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidParameters = errors.New("invalid parameters")

type Strategy string

const (
	// Bounded random probing; a free cell may be missed
	RandomStrategy Strategy = "random"
	// Every (day, candidate) pair is tried in shuffled order before an occurrence is declared failed
	ExhaustiveStrategy Strategy = "exhaustive"
)

var Strategies = []Strategy{RandomStrategy, ExhaustiveStrategy}

type Priority uint64

const (
	HighPriority Priority = iota + 1
	MediumPriority
	LowPriority
)

type ElectiveType struct {
	Name            string
	Description     string
	CrossDepartment bool
	MinStudents     uint64
	MaxStudents     uint64
	Priority        Priority
	PreferredSlots  []TimeSlot
}

func DefaultElectiveTypes() map[string]ElectiveType {
	return map[string]ElectiveType{
		"General": {
			Name:            "General",
			Description:     "General education electives",
			CrossDepartment: true,
			MinStudents:     30,
			MaxStudents:     60,
			Priority:        HighPriority,
			PreferredSlots:  []TimeSlot{5, 6},
		},
		"Technical": {
			Name:            "Technical",
			Description:     "Technical electives within department",
			CrossDepartment: false,
			MinStudents:     20,
			MaxStudents:     40,
			Priority:        MediumPriority,
			PreferredSlots:  []TimeSlot{4, 5},
		},
		"Free": {
			Name:            "Free",
			Description:     "Free choice electives",
			CrossDepartment: true,
			MinStudents:     15,
			MaxStudents:     35,
			Priority:        LowPriority,
			PreferredSlots:  []TimeSlot{6},
		},
	}
}

type Parameters struct {
	MaxClassesPerDay   int
	MinClassesPerDay   int // Reported only, never enforced
	StudentsPerSection uint64
	CoreAttempts       int
	ElectiveAttempts   int
	OverbookMarker     string
	Strategy           Strategy
	ElectiveRoomLedger bool
	Seed               uint64
	ElectiveTypes      map[string]ElectiveType
}

func DefaultParameters() Parameters {
	return Parameters{
		MaxClassesPerDay:   4,
		MinClassesPerDay:   3,
		StudentsPerSection: 50,
		CoreAttempts:       100,
		ElectiveAttempts:   50,
		OverbookMarker:     "*",
		Strategy:           RandomStrategy,
		ElectiveRoomLedger: false,
		Seed:               1,
		ElectiveTypes:      DefaultElectiveTypes(),
	}
}

func (params Parameters) Validate() error {
	if params.MaxClassesPerDay <= 0 {
		return fmt.Errorf("%w: max-classes-per-day must be positive: %v", ErrInvalidParameters, params.MaxClassesPerDay)
	} else if params.StudentsPerSection == 0 {
		return fmt.Errorf("%w: students-per-section must be positive", ErrInvalidParameters)
	} else if params.CoreAttempts <= 0 || params.ElectiveAttempts <= 0 {
		return fmt.Errorf("%w: attempt bounds must be positive: core %v, elective %v", ErrInvalidParameters, params.CoreAttempts, params.ElectiveAttempts)
	} else if !slices.Contains(Strategies, params.Strategy) {
		return fmt.Errorf("%w: %v is not a valid strategy", ErrInvalidParameters, params.Strategy)
	}

	for name, electiveType := range params.ElectiveTypes {
		if electiveType.MaxStudents == 0 {
			return fmt.Errorf("%w: elective type %v must allow at least one student per section", ErrInvalidParameters, name)
		}
		for _, slot := range electiveType.PreferredSlots {
			if slot >= TimeSlotCount {
				return fmt.Errorf("%w: elective type %v prefers unknown slot %v", ErrInvalidParameters, name, uint64(slot))
			}
		}
	}
	return nil
}

// electiveType resolves the configuration of an elective type, unknown types may use any slot
func (params Parameters) electiveType(name string) ElectiveType {
	if electiveType, ok := params.ElectiveTypes[name]; ok {
		return electiveType
	}
	return ElectiveType{
		Name:           name,
		MinStudents:    20,
		MaxStudents:    40,
		Priority:       MediumPriority,
		PreferredSlots: TimeSlots(),
	}
}
