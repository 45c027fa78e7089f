package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/pool"
)

func TestArray_IndexAndBounds(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()
	a, err := pool.NewArray(reg, 3, true)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Set(0, 10))
	require.NoError(t, a.Set(2, 30))
	p, err := a.Ptr(1)
	require.NoError(t, err)
	*p = 20

	v, err := a.At(1)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	_, err = a.At(3)
	assert.ErrorIs(t, err, api.ErrIndexOutOfRange)
	assert.ErrorIs(t, a.Set(-1, 0), api.ErrIndexOutOfRange)
	assert.Equal(t, api.ErrCodeIndexOutOfRange, api.CodeOf(err))

	var got []int
	for i, v := range a.All() {
		assert.Equal(t, (i+1)*10, v)
		got = append(got, v)
	}
	assert.Equal(t, []int{10, 20, 30}, got)
	assert.Equal(t, "Array[10 20 30]", a.String())
}

func TestArray_AccessAfterCloseFails(t *testing.T) {
	reg := pool.NewArrayRegistry[string]()
	a, err := pool.NewArray(reg, 2, false)
	require.NoError(t, err)
	require.NoError(t, a.Close())
	assert.True(t, a.Disposed())

	_, err = a.At(0)
	assert.ErrorIs(t, err, api.ErrDisposed)
	_, err = a.Len()
	assert.ErrorIs(t, err, api.ErrDisposed)
	_, err = a.Slice()
	assert.ErrorIs(t, err, api.ErrDisposed)
	_, err = a.Clone()
	assert.ErrorIs(t, err, api.ErrDisposed)
	assert.ErrorIs(t, a.Set(0, "x"), api.ErrDisposed)
	assert.Equal(t, "Array(disposed)", a.String())

	for range a.All() {
		t.Fatal("closed array must not yield")
	}
}

func TestArray_DoubleCloseIsIdempotent(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()
	a, err := pool.NewArray(reg, 4, false)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	s := reg.Stats()
	assert.EqualValues(t, 1, s.Released)
	assert.EqualValues(t, 0, s.RejectedReleases)
	assert.Equal(t, api.LengthStats{Free: 1}, s.ByLength[4])

	b, err := pool.NewArray(reg, 4, false)
	require.NoError(t, err)
	c, err := pool.NewArray(reg, 4, false)
	require.NoError(t, err)
	assert.False(t, b.Equal(c), "one released buffer must not be handed out twice")
	assert.EqualValues(t, 2, reg.Stats().TotalAlloc)
}

func TestArray_CloneAndEqual(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()
	a, err := pool.NewArray(reg, 3, true)
	require.NoError(t, err)
	defer a.Close()
	s, err := a.Slice()
	require.NoError(t, err)
	copy(s, []int{1, 2, 3})

	c, err := a.Clone()
	require.NoError(t, err)
	defer c.Close()

	cs, err := c.Slice()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, cs)
	assert.False(t, a.Equal(c))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(nil))

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestArray_ClearOnFree(t *testing.T) {
	reg := pool.NewArrayRegistry[int]()

	a, err := pool.NewArray(reg, 2, true)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 7))
	require.NoError(t, a.Close())

	b, err := pool.NewArray(reg, 2, false)
	require.NoError(t, err)
	v, err := b.At(0)
	require.NoError(t, err)
	assert.Zero(t, v)
	require.NoError(t, b.Set(1, 9))
	require.NoError(t, b.Close())

	c, err := pool.NewArray(reg, 2, false)
	require.NoError(t, err)
	defer c.Close()
	v, err = c.At(1)
	require.NoError(t, err)
	assert.Equal(t, 9, v, "buffer released without clearing keeps its contents")
}

func TestArray_NegativeLength(t *testing.T) {
	_, err := pool.NewArray(pool.NewArrayRegistry[int](), -3, false)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}
