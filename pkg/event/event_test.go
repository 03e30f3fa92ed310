package event

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireRunsListenersInOrder(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var got []string
	Listen("order.completed", func(any) { got = append(got, "first") })
	Listen("order.completed", func(any) { got = append(got, "second") })

	Fire("order.completed", nil)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestFireDeliversPayload(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var got any
	Listen("order.completed", func(p any) { got = p })

	Fire("order.completed", 42)
	assert.Equal(t, 42, got)
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.NotPanics(t, func() { Fire("nobody.listens", nil) })
}

func TestFireAsyncFlush(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var count atomic.Int32
	Listen("order.completed", func(any) { count.Add(1) })

	for i := 0; i < 10; i++ {
		FireAsync("order.completed", nil)
	}
	Flush()
	assert.Equal(t, int32(10), count.Load())
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ran := false
	Listen("order.completed", func(any) { panic("boom") })
	Listen("order.completed", func(any) { ran = true })

	assert.NotPanics(t, func() { Fire("order.completed", nil) })
	assert.True(t, ran)
}
