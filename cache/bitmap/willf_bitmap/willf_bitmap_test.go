package willf_bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitmapOf(length uint, idx ...uint) *WillfBitMap {
	m := NewWillfBitMapWithLength(length)
	for _, i := range idx {
		m.Set(i)
	}
	return m
}

func TestSetClearGet(t *testing.T) {
	m := NewWillfBitMap()
	assert.Equal(t, uint(defaultLength), m.Size())

	assert.True(t, m.Set(3))
	assert.False(t, m.Set(3))
	assert.True(t, m.Get(3))
	assert.Equal(t, uint64(1), m.Cardinality())

	assert.True(t, m.Clear(3))
	assert.False(t, m.Clear(3))
	assert.False(t, m.Get(3))

	m.Set(1)
	m.Set(2)
	m.Reset()
	assert.Equal(t, uint64(0), m.Cardinality())
}

func TestFlip(t *testing.T) {
	m := bitmapOf(64, 1)
	m.Flip(1)
	m.Flip(2)
	assert.False(t, m.Get(1))
	assert.True(t, m.Get(2))
}

func TestMinMaxNextSet(t *testing.T) {
	m := bitmapOf(256)
	_, ok := m.Min()
	assert.False(t, ok)
	_, ok = m.Max()
	assert.False(t, ok)

	m = bitmapOf(256, 5, 64, 200)
	i, ok := m.Min()
	require.True(t, ok)
	assert.Equal(t, uint(5), i)
	i, ok = m.Max()
	require.True(t, ok)
	assert.Equal(t, uint(200), i)

	i, ok = m.NextSet(6)
	require.True(t, ok)
	assert.Equal(t, uint(64), i)
	_, ok = m.NextSet(201)
	assert.False(t, ok)
}

func TestFromWords(t *testing.T) {
	m := NewWillfBitMapFromWords([]uint64{0b1010, 1 << 63})
	assert.Equal(t, uint(128), m.Size())
	assert.True(t, m.Get(1))
	assert.True(t, m.Get(3))
	assert.True(t, m.Get(127))
	assert.Equal(t, uint64(3), m.Cardinality())
	assert.Equal(t, []uint64{0b1010, 1 << 63}, m.Words())
}

func TestCloneEqual(t *testing.T) {
	m := bitmapOf(128, 1, 100)
	c := m.Clone()
	assert.True(t, m.Equal(c))
	c.Set(2)
	assert.False(t, m.Equal(c))
	assert.False(t, m.Get(2))
}

func TestSubsetDisjoint(t *testing.T) {
	a := bitmapOf(128, 1, 2)
	b := bitmapOf(128, 1, 2, 90)
	c := bitmapOf(128, 3, 91)

	assert.True(t, a.IsSubset(b))
	assert.False(t, b.IsSubset(a))
	assert.True(t, a.IsDisjoint(c))
	assert.False(t, a.IsDisjoint(b))
}

func TestBitOperations(t *testing.T) {
	tests := []struct {
		name  string
		apply func(m *WillfBitMap)
		want  []uint
	}{
		{"and", func(m *WillfBitMap) { m.And(bitmapOf(128, 2, 3, 4)) }, []uint{2, 3}},
		{"or", func(m *WillfBitMap) { m.Or(bitmapOf(128, 4, 100)) }, []uint{1, 2, 3, 4, 100}},
		{"xor", func(m *WillfBitMap) { m.Xor(bitmapOf(128, 3, 4)) }, []uint{1, 2, 4}},
		{"and_not", func(m *WillfBitMap) { m.AndNot(bitmapOf(128, 1, 3)) }, []uint{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := bitmapOf(128, 1, 2, 3)
			tt.apply(m)
			assert.Equal(t, tt.want, setBits(m))
		})
	}
}

func setBits(m *WillfBitMap) []uint {
	var out []uint
	for i, ok := m.NextSet(0); ok; i, ok = m.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}
