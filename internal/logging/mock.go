package logging

import "sync"

// LogEntry is a single entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// Field returns the value of the named field and whether it was set.
func (e LogEntry) Field(key string) (interface{}, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

type recorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

// MockLogger records entries instead of writing them. Loggers derived through
// WithError/WithField/WithFields share the parent's recording, so a test can hold
// the root mock and see everything its component logged. Safe for concurrent use.
type MockLogger struct {
	rec    *recorder
	err    error
	fields []Field
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{rec: &recorder{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	if m.rec == nil {
		m.rec = &recorder{}
	}
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)

	m.rec.mu.Lock()
	m.rec.entries = append(m.rec.entries, LogEntry{Level: level, Message: msg, Fields: all, Error: m.err})
	m.rec.mu.Unlock()
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal records a FATAL entry. It does not exit.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{rec: m.shared(), err: err, fields: m.fields}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(m.fields)+len(fields))
	merged = append(merged, m.fields...)
	merged = append(merged, fields...)
	return &MockLogger{rec: m.shared(), err: m.err, fields: merged}
}

func (m *MockLogger) shared() *recorder {
	if m.rec == nil {
		m.rec = &recorder{}
	}
	return m.rec
}

// Entries returns a copy of everything recorded so far.
func (m *MockLogger) Entries() []LogEntry {
	rec := m.shared()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]LogEntry, len(rec.entries))
	copy(out, rec.entries)
	return out
}

// EntriesByLevel filters Entries by level ("DEBUG", "INFO", "WARN", "ERROR", "FATAL").
func (m *MockLogger) EntriesByLevel(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasEntry reports whether an entry with the given level and message was recorded.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, e := range m.Entries() {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}

// Clear drops all recorded entries.
func (m *MockLogger) Clear() {
	rec := m.shared()
	rec.mu.Lock()
	rec.entries = nil
	rec.mu.Unlock()
}
