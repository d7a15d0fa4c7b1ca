package tickbitmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetClearIsSet(t *testing.T) {
	b := New()
	require.False(t, b.IsSet(900))
	b.Set(900)
	require.True(t, b.IsSet(900))
	b.Clear(900)
	require.False(t, b.IsSet(900))
	require.True(t, b.IsEmpty())
}

func TestNextActiveWithinWord(t *testing.T) {
	b := New()
	b.Set(10)
	b.Set(50)
	b.Set(200)
	require.Equal(t, int32(10), b.NextActive(0, 300))
	require.Equal(t, int32(50), b.NextActive(11, 300))
	require.Equal(t, int32(200), b.NextActive(51, 300))
	require.Equal(t, NotFound, b.NextActive(201, 300))
}

func TestNextActiveAcrossWords(t *testing.T) {
	b := New()
	b.Set(5)      // word 32768 (tick 0's word after biasing)
	b.Set(1000)   // word 32771
	b.Set(70000)  // word 33041
	require.Equal(t, int32(1000), b.NextActive(6, 100000))
	require.Equal(t, int32(70000), b.NextActive(1001, 100000))
	require.Equal(t, NotFound, b.NextActive(70001, 100000))
}

func TestPrevActiveWithinWord(t *testing.T) {
	b := New()
	b.Set(10)
	b.Set(50)
	b.Set(200)
	require.Equal(t, int32(200), b.PrevActive(300, 0))
	require.Equal(t, int32(50), b.PrevActive(199, 0))
	require.Equal(t, int32(10), b.PrevActive(49, 0))
	require.Equal(t, NotFound, b.PrevActive(9, 0))
}

func TestPrevActiveAcrossWords(t *testing.T) {
	b := New()
	b.Set(5)
	b.Set(1000)
	b.Set(70000)
	require.Equal(t, int32(70000), b.PrevActive(100000, 0))
	require.Equal(t, int32(1000), b.PrevActive(69999, 0))
	require.Equal(t, int32(5), b.PrevActive(999, 0))
	require.Equal(t, NotFound, b.PrevActive(4, 0))
}

func TestNegativeTicks(t *testing.T) {
	b := New()
	b.Set(-8388607)
	b.Set(-1)
	b.Set(0)
	b.Set(8388607)
	require.True(t, b.IsSet(-8388607))
	require.True(t, b.IsSet(-1))
	require.True(t, b.IsSet(0))
	require.True(t, b.IsSet(8388607))
	require.Equal(t, int32(-8388607), b.NextActive(-8388607, 8388607))
	require.Equal(t, int32(8388607), b.PrevActive(8388607, -8388607))
}

func TestClearDeletesEmptyWord(t *testing.T) {
	b := New()
	b.Set(900)
	require.Len(t, b.words, 1)
	b.Clear(900)
	require.Len(t, b.words, 0)
}
