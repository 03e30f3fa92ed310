package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handled = make(chan string, 16)

type echoJob struct {
	Value string `json:"value"`
}

func (j *echoJob) Name() string { return "test.Echo" }
func (j *echoJob) Handle() error {
	handled <- j.Value
	return nil
}

type failingJob struct{}

func (j *failingJob) Name() string  { return "test.Fail" }
func (j *failingJob) Handle() error { return errors.New("always fails") }

func TestDispatchAndProcess(t *testing.T) {
	Register("test.Echo", func() Job { return &echoJob{} })
	SetDriver(NewMemoryDriver())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartWorkers(ctx, 1)

	require.NoError(t, Dispatch(&echoJob{Value: "hello"}))

	select {
	case got := <-handled:
		assert.Equal(t, "hello", got)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed in time")
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	Register("test.Echo", func() Job { return &echoJob{} })

	d := NewMemoryDriver()
	SetDriver(d)
	require.NoError(t, Dispatch(&echoJob{Value: "roundtrip"}))

	raw, err := d.Pop(context.Background())
	require.NoError(t, err)

	defaultManager.process(raw)
	select {
	case got := <-handled:
		assert.Equal(t, "roundtrip", got)
	default:
		t.Fatal("payload did not survive the envelope")
	}
}

func TestUnregisteredJobIsDropped(t *testing.T) {
	d := NewMemoryDriver()
	SetDriver(d)

	assert.NotPanics(t, func() {
		defaultManager.process([]byte(`{"type":"test.Nobody","payload":{}}`))
	})
}

func TestFailedJobIsRecorded(t *testing.T) {
	Register("test.Fail", func() Job { return &failingJob{} })
	SetMaxRetry(1)
	t.Cleanup(func() { SetMaxRetry(3) })

	before := len(FailedJobs())
	defaultManager.runWithRetry(&failingJob{}, "{}", 1)

	failed := FailedJobs()
	require.Len(t, failed, before+1)
	last := failed[len(failed)-1]
	assert.Equal(t, "test.Fail", last.JobName)
	assert.Equal(t, 1, last.Attempts)
	assert.EqualError(t, last.Err, "always fails")
}

func TestMemoryDriverFullBuffer(t *testing.T) {
	d := &MemoryDriver{jobs: make(chan []byte, 1)}
	require.NoError(t, d.Push([]byte("a")))
	assert.ErrorIs(t, d.Push([]byte("b")), ErrQueueFull)
}
