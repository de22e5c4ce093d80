package model

// indexer interface is design to give a unique index to a (day, time slot) cell and vice versa
type indexer interface {
	// Returns a unique index to a (day, time slot) cell
	Index(day Day, slot TimeSlot) uint64
	// Returns the (day, time slot) cell of a unique index
	Attributes(index uint64) (day Day, slot TimeSlot)
	// Returns the number of distinct indices
	Len() uint64
}

func newIndexer(days, slots uint64) indexer {
	return &indexerImplementation{
		days:  days,
		slots: slots,
	}
}
