package pipeline

import (
	"errors"
	"sync"
)

var ErrRunNotFound = errors.New("run not found")

// Store keeps the most recent runs in memory, evicting the oldest past its capacity
type Store struct {
	mutex    sync.RWMutex
	capacity int
	order    []string
	runs     map[string]Run
}

func NewStore(capacity int) *Store {
	return &Store{
		capacity: max(capacity, 1),
		runs:     make(map[string]Run),
	}
}

func (store *Store) Save(run Run) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if _, ok := store.runs[run.ID]; !ok {
		store.order = append(store.order, run.ID)
	}
	store.runs[run.ID] = run

	for len(store.order) > store.capacity {
		delete(store.runs, store.order[0])
		store.order = store.order[1:]
	}
}

func (store *Store) Get(id string) (Run, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	run, ok := store.runs[id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return run, nil
}

func (store *Store) Len() int {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	return len(store.runs)
}
