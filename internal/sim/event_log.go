package sim

import (
	"fmt"
	"strings"
)

// Event categories recorded by GameState.
const (
	EventSession = "session"
	EventEnemy   = "enemy"
	EventPlayer  = "player"
)

// LogEntry is one recorded simulation event.
type LogEntry struct {
	Frame    int
	Category string  // session, enemy, player
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[F=0031] enemy    replan          waypoints=14
func (e LogEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-8s %-15s %s", e.Frame, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for headless runs and tests. It is
// unbounded and machine-readable, unlike the text log written through logrus.
type EventLog struct {
	entries []LogEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-frame entries
// added with AddVerbose are kept as well.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (l *EventLog) Add(frame int, category, key, value string, numVal float64) {
	l.entries = append(l.entries, LogEntry{
		Frame:    frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (l *EventLog) AddVerbose(frame int, category, key, value string, numVal float64) {
	if !l.verbose {
		return
	}
	l.Add(frame, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (l *EventLog) Entries() []LogEntry {
	return l.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (l *EventLog) LastOf(category, key string) (LogEntry, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Dump renders all entries, one per line.
func (l *EventLog) Dump() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
