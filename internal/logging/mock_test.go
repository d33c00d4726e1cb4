package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareRecording(t *testing.T) {
	root := NewMockLogger()

	child := root.WithField(FieldProvider, "claude").WithError(errors.New("timeout"))
	child.Warn("provider failed", Field{Key: FieldDuration, Value: 3500})
	root.Info("done")

	entries := root.Entries()
	require.Len(t, entries, 2)

	warn := entries[0]
	assert.Equal(t, "WARN", warn.Level)
	assert.EqualError(t, warn.Error, "timeout")
	v, ok := warn.Field(FieldProvider)
	assert.True(t, ok)
	assert.Equal(t, "claude", v)

	_, ok = entries[1].Field(FieldProvider)
	assert.False(t, ok, "parent must not inherit child fields")
}

func TestMockLogger_Queries(t *testing.T) {
	m := &MockLogger{}
	m.Debug("a")
	m.Error("b")
	m.Fatal("c")

	assert.True(t, m.HasEntry("ERROR", "b"))
	assert.False(t, m.HasEntry("INFO", "b"))
	assert.Len(t, m.EntriesByLevel("FATAL"), 1)

	m.Clear()
	assert.Empty(t, m.Entries())
}

func TestMockLogger_ConcurrentUse(t *testing.T) {
	m := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.WithField(FieldCount, i).Info("tick")
		}(i)
	}
	wg.Wait()
	assert.Len(t, m.Entries(), 20)
}
