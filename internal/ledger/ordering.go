package ledger

import (
	"sync"
	"time"
)

// KeyAssigner hands out ordering keys for new transactions. Keys are Unix
// milliseconds at creation time, bumped to last+1 whenever the clock hasn't
// advanced since the previous assignment, so two creations in the same
// millisecond still get distinct, strictly increasing keys.
type KeyAssigner struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewKeyAssigner() *KeyAssigner {
	return &KeyAssigner{now: time.Now}
}

// NewKeyAssignerAt uses the given clock. Tests pin it to fixed instants.
func NewKeyAssignerAt(now func() time.Time) *KeyAssigner {
	return &KeyAssigner{now: now}
}

// Next returns the next ordering key. Keys are strictly increasing for the
// lifetime of the assigner.
func (a *KeyAssigner) Next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := a.now().UnixMilli()
	if key <= a.last {
		key = a.last + 1
	}
	a.last = key
	return key
}
