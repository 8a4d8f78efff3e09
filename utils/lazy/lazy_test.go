package lazy

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForceRunsOnce(t *testing.T) {
	require := require.New(t)

	var calls int32
	v := New(func() (*int, error) {
		atomic.AddInt32(&calls, 1)
		x := 42
		return &x, nil
	})
	require.Equal(Unevaluated, v.State())

	first, err := v.Force()
	require.NoError(err)
	require.Equal(Evaluated, v.State())

	second, err := v.Force()
	require.NoError(err)

	require.Same(first, second)
	require.Equal(int32(1), atomic.LoadInt32(&calls))
}

// TestForceConcurrent forces the same value from many goroutines at once and
// expects exactly one evaluation, with every caller seeing the same pointer.
func TestForceConcurrent(t *testing.T) {
	require := require.New(t)

	const callers = 64
	var calls int32
	v := New(func() (*[]byte, error) {
		atomic.AddInt32(&calls, 1)
		b := []byte("genesis")
		return &b, nil
	})

	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]*[]byte, callers)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			res, err := v.Force()
			if err == nil {
				results[i] = res
			}
		}(i)
	}
	close(start)
	wg.Wait()

	require.Equal(int32(1), atomic.LoadInt32(&calls))
	for i := 1; i < callers; i++ {
		require.Same(results[0], results[i])
	}
}

func TestErrorIsCached(t *testing.T) {
	require := require.New(t)

	boom := errors.New("boom")
	var calls int
	v := New(func() (int, error) {
		calls++
		return 0, boom
	})

	_, err := v.Force()
	require.ErrorIs(err, boom)
	_, err = v.Force()
	require.ErrorIs(err, boom)
	require.Equal(1, calls)
	require.Equal(Evaluated, v.State())
}

func TestReady(t *testing.T) {
	require := require.New(t)

	v := Ready("done")
	require.Equal(Evaluated, v.State())

	got, err := v.Force()
	require.NoError(err)
	require.Equal("done", got)
}

func TestNilThunk(t *testing.T) {
	v := New[int](nil)
	_, err := v.Force()
	require.ErrorIs(t, err, ErrNoThunk)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unevaluated", Unevaluated.String())
	require.Equal(t, "evaluated", Evaluated.String())
	require.Equal(t, "unknown", State(9).String())
}
