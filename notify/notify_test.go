package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := Log{L: zap.New(core)}

	n.Notify(Notification{Kind: Success, Title: "Trade Closed"})
	n.Notify(Notification{Kind: Warning, Title: "Trade Too Small"})
	n.Notify(Notification{Kind: Error, Title: "Error"})

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "Trade Too Small", entries[1].ContextMap()["title"])

	// A nil logger is ignored.
	Log{}.Notify(Notification{Kind: Info})
}

func TestMultiAndRecorder(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, nil, b}

	_, ok := a.Last()
	assert.False(t, ok)

	m.Notify(Notification{Title: "one"})
	m.Notify(Notification{Title: "two"})

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "two", last.Title)
	assert.Equal(t, "one", a.All()[0].Title)

	Discard.Notify(Notification{})
}

func TestHub(t *testing.T) {
	h := NewHub(1)
	ch1, cancel1 := h.Subscribe()
	ch2, cancel2 := h.Subscribe()
	assert.Equal(t, 2, h.Subscribers())

	h.Notify(Notification{Title: "first"})
	// Buffer is full; this one is dropped rather than blocking.
	h.Notify(Notification{Title: "second"})

	assert.Equal(t, "first", (<-ch1).Title)
	assert.Equal(t, "first", (<-ch2).Title)

	cancel1()
	cancel1()
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, h.Subscribers())

	cancel2()
	assert.Equal(t, 0, h.Subscribers())
	h.Notify(Notification{Title: "nobody"})
}
