package services

import (
	"sync"

	"github.com/google/uuid"
)

// roomLocks serializes the conflict-check + insert pair per room within
// this process. Cross-process safety comes from the store's range
// exclusion constraint; the mutex just keeps a single instance from racing
// against itself on the common path.
type roomLocks struct {
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{}
}

func (r *roomLocks) Lock(roomID uuid.UUID) func() {
	value, _ := r.locks.LoadOrStore(roomID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
