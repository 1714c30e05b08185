package pipeline

import (
	"sync"
	"time"

	"github.com/ham-zax/distill"
)

// DefaultDiagnosticCapacity bounds the shared diagnostic log.
const DefaultDiagnosticCapacity = 100

// DiagnosticEntry is one recorded pipeline event.
type DiagnosticEntry struct {
	Time    time.Time
	RunID   string
	Stage   distill.Stage
	Message string
}

// DiagnosticLog is an append-only, capacity-bounded event log shared
// by concurrent pipeline runs. When full, the oldest entry is evicted.
type DiagnosticLog struct {
	mu       sync.Mutex
	capacity int
	entries  []DiagnosticEntry
}

// NewDiagnosticLog returns a log holding at most capacity entries.
// Non-positive capacity uses the default.
func NewDiagnosticLog(capacity int) *DiagnosticLog {
	if capacity <= 0 {
		capacity = DefaultDiagnosticCapacity
	}
	return &DiagnosticLog{capacity: capacity}
}

// Append records an entry, evicting the oldest past capacity.
func (l *DiagnosticLog) Append(e DiagnosticEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, e)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Entries returns a copy of the current entries, oldest first.
func (l *DiagnosticLog) Entries() []DiagnosticEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]DiagnosticEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *DiagnosticLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
