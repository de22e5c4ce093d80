package model

type predicateEvaluator interface {
	// Checks whether the section has placed fewer than lecturesNeeded occurrences of the course
	WithinTarget(section, course string, lecturesNeeded uint64) bool

	// Checks whether the section may receive one more occurrence on the given day
	UnderDailyLimit(section string, day Day) bool

	// Checks whether every given slot of the section's grid is empty on the given day
	Free(section string, day Day, slots []TimeSlot) bool
}

type predicateEvaluatorImplementation struct {
	state            *placementState
	maxClassesPerDay int
}

func newPredicateEvaluator(state *placementState, maxClassesPerDay int) predicateEvaluator {
	return &predicateEvaluatorImplementation{
		state:            state,
		maxClassesPerDay: maxClassesPerDay,
	}
}

func (evaluator *predicateEvaluatorImplementation) WithinTarget(section, course string, lecturesNeeded uint64) bool {
	return evaluator.state.counters.Lectures(section, course) < lecturesNeeded
}

func (evaluator *predicateEvaluatorImplementation) UnderDailyLimit(section string, day Day) bool {
	return evaluator.state.counters.Daily(section, day) < evaluator.maxClassesPerDay
}

func (evaluator *predicateEvaluatorImplementation) Free(section string, day Day, slots []TimeSlot) bool {
	return evaluator.state.grid(section).Free(day, slots...)
}
