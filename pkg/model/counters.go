package model

// Counters holds the per-run daily and lecture counters keyed by section identifier
type Counters struct {
	daily    map[string]*[DayCount]int
	lectures map[string]map[string]uint64
}

func newCounters() *Counters {
	return &Counters{
		daily:    make(map[string]*[DayCount]int),
		lectures: make(map[string]map[string]uint64),
	}
}

func (counters *Counters) Daily(section string, day Day) int {
	if daily, ok := counters.daily[section]; ok {
		return daily[day]
	}
	return 0
}

func (counters *Counters) addDaily(section string, day Day) {
	if _, ok := counters.daily[section]; !ok {
		counters.daily[section] = &[DayCount]int{}
	}
	counters.daily[section][day]++
}

func (counters *Counters) Lectures(section, course string) uint64 {
	return counters.lectures[section][course]
}

func (counters *Counters) addLecture(section, course string) {
	if _, ok := counters.lectures[section]; !ok {
		counters.lectures[section] = make(map[string]uint64)
	}
	counters.lectures[section][course]++
}
