package audit

import (
	"sync"
)

// Ensure MemoryLogger implements Logger interface
var _ Logger = (*MemoryLogger)(nil)

// MemoryLogger keeps events in memory. Intended for tests and for
// short-lived interactive runs where a log file is unwanted.
type MemoryLogger struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

// Log implements the Logger interface
func (ml *MemoryLogger) Log(action string, success bool, metadata map[string]interface{}) error {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.events = append(ml.events, newEvent(action, success, metadata))
	return nil
}

// Query implements the Logger interface
func (ml *MemoryLogger) Query(options QueryOptions) (QueryResult, error) {
	ml.mu.RLock()
	defer ml.mu.RUnlock()

	var filtered []Event
	for _, event := range ml.events {
		if matchesFilter(event, options) {
			filtered = append(filtered, event)
		}
	}

	start := options.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := len(filtered)
	if options.Limit > 0 && start+options.Limit < end {
		end = start + options.Limit
	}

	return QueryResult{
		Events:     filtered[start:end],
		TotalCount: len(ml.events),
		Filtered:   len(filtered),
		HasMore:    end < len(filtered),
	}, nil
}

// Events returns a copy of everything logged so far.
func (ml *MemoryLogger) Events() []Event {
	ml.mu.RLock()
	defer ml.mu.RUnlock()
	out := make([]Event, len(ml.events))
	copy(out, ml.events)
	return out
}

// Close implements the Logger interface
func (ml *MemoryLogger) Close() error {
	return nil
}
