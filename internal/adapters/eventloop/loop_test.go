package eventloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunExecutesInOrder(t *testing.T) {
	l := New(8)
	var got []int

	for i := range 3 {
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.True(t, l.Post(l.Close))

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestLoop_AfterFuncRunsOnLoop(t *testing.T) {
	l := New(0)
	fired := make(chan struct{})

	l.AfterFunc(10*time.Millisecond, func() {
		close(fired)
		l.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Run(ctx))

	select {
	case <-fired:
	default:
		t.Fatal("timer callback did not run")
	}
}

func TestLoop_AfterFuncStop(t *testing.T) {
	l := New(1)
	timer := l.AfterFunc(time.Hour, func() {})
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	l.Close()
}

func TestLoop_PostAfterClose(t *testing.T) {
	l := New(1)
	l.Close()
	l.Close()

	assert.False(t, l.Post(func() {}))
	select {
	case <-l.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	l := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}

func TestLoop_Queue(t *testing.T) {
	l := New(1)
	ran := false
	require.True(t, l.Post(func() { ran = true }))

	fn := <-l.Queue()
	fn()
	assert.True(t, ran)
}
