package encounter

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded encounter event.
type LogEntry struct {
	Tick     uint64
	Entity   string // "boss#3", "fist#4", or "--" for room events
	Category string // signal, attack, spawn, damage, reaction, fist, child, room
	Key      string
	Value    string
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] boss#3    attack    started          shoot_blasts
func (e LogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-9s %-9s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// Log collects structured events for the headless report and the viewer's
// copy action. It is unbounded.
type Log struct {
	entries []LogEntry
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Add(tick uint64, entity, category, key, value string, numVal float64) {
	l.entries = append(l.entries, LogEntry{
		Tick:     tick,
		Entity:   entity,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

func (l *Log) Entries() []LogEntry {
	return l.entries
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Filter returns entries matching category and key. An empty string matches
// anything.
func (l *Log) Filter(category, key string) []LogEntry {
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

func (l *Log) CountCategory(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent entry matching category and key.
func (l *Log) LastOf(category, key string) (LogEntry, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Format returns the full log, one entry per line.
func (l *Log) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Tail returns the last n entries formatted.
func (l *Log) Tail(n int) string {
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	var sb strings.Builder
	for _, e := range l.entries[start:] {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
