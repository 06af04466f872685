package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a.html", Status: StatusDone})

	require.Len(t, ch, 1)
	assert.Equal(t, "a.html", (<-ch).File)

	// nil channel is ignored
	ChannelSink{}.OnEvent(Event{})
}

func TestMultiSinkOrder(t *testing.T) {
	var got []string
	record := func(tag string) ProgressSink {
		return SinkFunc(func(evt Event) { got = append(got, tag+":"+evt.File) })
	}

	Emit(MultiSink{record("a"), nil, record("b")}, Event{File: "x.jsx"})
	assert.Equal(t, []string{"a:x.jsx", "b:x.jsx"}, got)

	Emit(nil, Event{File: "ignored"})
	assert.Len(t, got, 2)
}

func TestStatusFinished(t *testing.T) {
	for _, s := range []Status{StatusDone, StatusUnchanged, StatusSkipped, StatusError} {
		assert.True(t, s.Finished(), s)
	}
	assert.False(t, StatusQueued.Finished())
	assert.False(t, StatusWorking.Finished())
}
