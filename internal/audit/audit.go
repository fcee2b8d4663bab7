// Package audit records resource health transitions as JSON Lines (JSONL)
// files, one per resource.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// EventType classifies a health event.
type EventType string

const (
	EventHealth  EventType = "health"
	EventTimeout EventType = "timeout"
)

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Resource  string    `json:"resource"`
	Details   string    `json:"details,omitempty"`
}

// Logger writes and reads audit events for resources.
// Events are stored in {dir}/{resource}.events.jsonl.
type Logger struct {
	dir string
}

// NewLogger creates a new audit logger rooted at dir.
func NewLogger(dir string) *Logger {
	return &Logger{dir: dir}
}

// eventPath returns the path to the JSONL event log for a resource.
// Resource names come from tilt, so the join is confined to the log directory.
func (l *Logger) eventPath(resource string) (string, error) {
	path, err := securejoin.SecureJoin(l.dir, resource+".events.jsonl")
	if err != nil {
		return "", fmt.Errorf("invalid audit log path for %q: %w", resource, err)
	}
	return path, nil
}

// Log appends an event to the resource's audit log.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	path, err := l.eventPath(event.Resource)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, resource, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Resource:  resource,
		Details:   details,
	})
}

// Events reads all events for a resource in chronological order.
func (l *Logger) Events(resource string) ([]Event, error) {
	path, err := l.eventPath(resource)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}
