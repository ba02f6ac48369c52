// Package syncer tracks connectivity and replays the offline queue against
// the remote store when the connection comes back.
package syncer

import "sync"

// Monitor is the process-wide connectivity flag. Transitions are explicit
// (driven by the connectivity endpoints); repeated declarations of the
// current state fire nothing.
type Monitor struct {
	mu          sync.Mutex
	online      bool
	transitions []func(online bool)
}

func NewMonitor(initialOnline bool) *Monitor {
	return &Monitor{online: initialOnline}
}

func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// OnTransition registers a callback invoked on every state change.
func (m *Monitor) OnTransition(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, fn)
}

func (m *Monitor) SetOnline() {
	m.set(true)
}

func (m *Monitor) SetOffline() {
	m.set(false)
}

func (m *Monitor) set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	callbacks := make([]func(bool), len(m.transitions))
	copy(callbacks, m.transitions)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(online)
	}
}
