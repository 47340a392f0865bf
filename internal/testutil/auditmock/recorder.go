package auditmock

import (
	"context"
	"sync"

	"retail-backoffice/internal/domain/audit"
)

var _ audit.Recorder = (*Recorder)(nil)

// Recorder collects audit events so tests can assert on what was emitted.
type Recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (m *Recorder) Record(_ context.Context, ev audit.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

func (m *Recorder) Events() []audit.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]audit.Event, len(m.events))
	copy(out, m.events)
	return out
}

// Actions returns just the action names, in emission order.
func (m *Recorder) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev.Action)
	}
	return out
}
