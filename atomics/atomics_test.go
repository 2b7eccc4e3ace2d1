package atomics

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cpudispatch/status"
)

var orderings = []Ordering{Relaxed, Acquire, Release, Ordered}

func TestSwap(t *testing.T) {
	for _, o := range orderings {
		t.Run(o.String(), func(t *testing.T) {
			v := uint32(7)
			old, err := Swap(&v, 9, o)
			require.NoError(t, err)
			assert.Equal(t, uint32(7), old)
			assert.Equal(t, uint32(9), v)
		})
	}
}

func TestCompareAndSwapTruthTable(t *testing.T) {
	for _, o := range orderings {
		t.Run(o.String(), func(t *testing.T) {
			v := uint32(5)
			require.NoError(t, CompareAndSwap(&v, 6, 5, o))
			assert.Equal(t, uint32(6), v)

			err := CompareAndSwap(&v, 8, 5, o)
			assert.ErrorIs(t, err, ErrValueMismatch)
			assert.ErrorIs(t, err, status.ErrInvalidState)
			assert.Equal(t, uint32(6), v)
		})
	}
}

func TestNamedVariants(t *testing.T) {
	v := uint32(1)

	old, err := SwapRelaxed(&v, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), old)
	old, err = SwapAcquire(&v, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), old)
	old, err = SwapRelease(&v, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), old)
	old, err = SwapOrdered(&v, 5)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), old)

	require.NoError(t, CompareAndSwapRelaxed(&v, 6, 5))
	require.NoError(t, CompareAndSwapAcquire(&v, 7, 6))
	require.NoError(t, CompareAndSwapRelease(&v, 8, 7))
	require.NoError(t, CompareAndSwapOrdered(&v, 9, 8))
	assert.Error(t, CompareAndSwapOrdered(&v, 10, 8))

	got, err := LoadRelaxed(&v)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), got)
	got, err = LoadAcquire(&v)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), got)
}

func TestValidation(t *testing.T) {
	var words [2]uint32
	base := unsafe.Pointer(&words[0])

	t.Run("nil", func(t *testing.T) {
		_, err := Swap(nil, 1, Ordered)
		assert.Equal(t, status.NullArgument, status.Of(err))
		assert.Equal(t, status.NullArgument, status.Of(CompareAndSwap(nil, 1, 0, Ordered)))
		_, err = Load(nil, Relaxed)
		assert.Equal(t, status.NullArgument, status.Of(err))
	})

	t.Run("nil wins over bad ordering", func(t *testing.T) {
		_, err := Swap(nil, 1, Ordering(42))
		assert.Equal(t, status.NullArgument, status.Of(err))
	})

	t.Run("misaligned", func(t *testing.T) {
		for off := uintptr(1); off < 4; off++ {
			p := unsafe.Add(base, off)
			_, err := swap(p, 1, Ordered)
			assert.Equal(t, status.MisalignedArgument, status.Of(err))
			assert.Equal(t, status.MisalignedArgument, status.Of(compareAndSwap(p, 1, 0, Ordered)))
			_, err = load(p, Ordered)
			assert.Equal(t, status.MisalignedArgument, status.Of(err))
		}
		assert.Equal(t, [2]uint32{}, words)
	})

	t.Run("misaligned wins over bad ordering", func(t *testing.T) {
		_, err := swap(unsafe.Add(base, 2), 1, Ordering(9))
		assert.Equal(t, status.MisalignedArgument, status.Of(err))
	})

	t.Run("bad ordering", func(t *testing.T) {
		v := uint32(3)
		_, err := Swap(&v, 4, Ordering(4))
		assert.Equal(t, status.InvalidArgument, status.Of(err))
		assert.Equal(t, status.InvalidArgument, status.Of(CompareAndSwap(&v, 4, 3, Ordering(200))))
		assert.Equal(t, uint32(3), v)
	})
}

func TestCompareAndSwapSingleWinner(t *testing.T) {
	const goroutines = 64

	var (
		state uint32
		wins  [goroutines]bool
		wg    sync.WaitGroup
		start = make(chan struct{})
	)

	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			wins[i] = CompareAndSwapOrdered(&state, uint32(i+1), 0) == nil
		}()
	}
	close(start)
	wg.Wait()

	winners := 0
	for i, w := range wins {
		if w {
			winners++
			assert.Equal(t, uint32(i+1), state)
		}
	}
	assert.Equal(t, 1, winners)
}
