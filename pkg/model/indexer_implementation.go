package model

type indexerImplementation struct {
	days  uint64
	slots uint64
}

func (indexer *indexerImplementation) Index(day Day, slot TimeSlot) uint64 {
	return uint64(slot) + indexer.slots*uint64(day)
}

func (indexer *indexerImplementation) Attributes(index uint64) (day Day, slot TimeSlot) {
	slot = TimeSlot(index % indexer.slots)
	index = index / indexer.slots

	day = Day(index % indexer.days)

	return day, slot
}

func (indexer *indexerImplementation) Len() uint64 {
	return indexer.days * indexer.slots
}
