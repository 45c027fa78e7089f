package pool_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/pool"
)

func TestArrayRegistry_ReusesSameLength(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()

	for _, length := range []int{0, 1, 7, 128} {
		b1, err := reg.Acquire(length)
		require.NoError(t, err)
		require.Equal(t, length, b1.Len())
		require.True(t, reg.Release(b1, false))

		b2, err := reg.Acquire(length)
		require.NoError(t, err)
		assert.Same(t, b1, b2, "length %d should reuse the released buffer", length)
		require.True(t, reg.Release(b2, false))
	}

	s := reg.Stats()
	assert.EqualValues(t, 4, s.TotalAlloc)
	assert.EqualValues(t, 8, s.Acquired)
	assert.EqualValues(t, 8, s.Released)
	assert.EqualValues(t, 0, s.InUse)
	assert.EqualValues(t, 4, s.Free)
}

func TestArrayRegistry_DistinctLengthsDoNotShare(t *testing.T) {
	reg := pool.NewArrayRegistry[byte]()
	b1, err := reg.Acquire(16)
	require.NoError(t, err)
	require.True(t, reg.Release(b1, false))

	b2, err := reg.Acquire(32)
	require.NoError(t, err)
	assert.NotSame(t, b1, b2)
	assert.Equal(t, 32, b2.Len())
}

func TestArrayRegistry_LeasedBuffersAreDistinct(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()
	a, err := reg.Acquire(4)
	require.NoError(t, err)
	b, err := reg.Acquire(4)
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	s := reg.Stats()
	assert.Equal(t, api.LengthStats{Free: 0, Leased: 2}, s.ByLength[4])
}

func TestArrayRegistry_ReleaseClears(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()
	b, err := reg.Acquire(3)
	require.NoError(t, err)
	copy(b.Data(), []int{1, 2, 3})
	require.True(t, reg.Release(b, true))
	assert.Equal(t, []int{0, 0, 0}, b.Data())

	b, err = reg.Acquire(3)
	require.NoError(t, err)
	copy(b.Data(), []int{4, 5, 6})
	require.True(t, reg.Release(b, false))
	assert.Equal(t, []int{4, 5, 6}, b.Data())
}

func TestArrayRegistry_RejectsForeignAndDoubleRelease(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()
	other := pool.NewArrayRegistry[int]()

	foreign, err := other.Acquire(2)
	require.NoError(t, err)
	assert.False(t, reg.Release(foreign, true))
	assert.False(t, reg.Release(nil, false))

	b, err := reg.Acquire(2)
	require.NoError(t, err)
	require.True(t, reg.Release(b, false))
	assert.False(t, reg.Release(b, false))

	s := reg.Stats()
	assert.EqualValues(t, 2, s.RejectedReleases)
	assert.Equal(t, api.LengthStats{Free: 1, Leased: 0}, s.ByLength[2])
}

func TestArrayRegistry_NegativeLength(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()
	_, err := reg.Acquire(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestArrayRegistry_PrewarmAndTrim(t *testing.T) {
	reg := pool.NewArrayRegistry[float32]()
	require.NoError(t, reg.Prewarm(64, 3))
	assert.Equal(t, api.LengthStats{Free: 3}, reg.Stats().ByLength[64])

	b, err := reg.Acquire(64)
	require.NoError(t, err)
	assert.EqualValues(t, 3, reg.Stats().TotalAlloc, "prewarmed buffer must be reused")

	assert.Equal(t, 2, reg.Trim(64))
	assert.Equal(t, api.LengthStats{Free: 0, Leased: 1}, reg.Stats().ByLength[64])

	require.True(t, reg.Release(b, false))
	assert.Equal(t, 1, reg.Trim(64))
	_, ok := reg.Stats().ByLength[64]
	assert.False(t, ok)

	assert.Error(t, reg.Prewarm(-1, 1))
}

func TestArrayRegistry_ConcurrentAcquireRelease(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()
	const workers, rounds = 8, 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				b, err := reg.Acquire(8 + w%2)
				if err != nil {
					t.Error(err)
					return
				}
				b.Data()[0] = w
				if !reg.Release(b, true) {
					t.Error("release rejected")
					return
				}
			}
		}(w)
	}
	wg.Wait()

	s := reg.Stats()
	assert.EqualValues(t, 0, s.InUse)
	assert.EqualValues(t, workers*rounds, s.Acquired)
	assert.EqualValues(t, workers*rounds, s.Released)
	assert.LessOrEqual(t, s.TotalAlloc, int64(workers))
	assert.Equal(t, s.TotalAlloc, s.Free, "no buffer may be lost or duplicated")
}
