package willf_bitmap

import (
	"math/bits"

	"github.com/hust-tianbo/go_roaring/cache/bitmap/bitmap_interface"

	wf "github.com/bits-and-blooms/bitset"
)

const defaultLength = 64

var _ bitmap_interface.Bitmap = (*WillfBitMap)(nil)

// WillfBitMap 基于bitset的定长位图
type WillfBitMap struct {
	b *wf.BitSet
}

func NewWillfBitMap() bitmap_interface.Bitmap {
	return NewWillfBitMapWithLength(defaultLength)
}

// NewWillfBitMapWithLength 创建长度为length个bit的位图，长度固定不扩容
func NewWillfBitMapWithLength(length uint) *WillfBitMap {
	return &WillfBitMap{
		b: wf.New(length),
	}
}

// NewWillfBitMapFromWords 直接使用words作为底层存储
func NewWillfBitMapFromWords(words []uint64) *WillfBitMap {
	return &WillfBitMap{b: wf.From(words)}
}

func (m *WillfBitMap) Set(i uint) bool {
	if m.b.Test(i) {
		return false
	}
	m.b.Set(i)
	return true
}

func (m *WillfBitMap) Clear(i uint) bool {
	if !m.b.Test(i) {
		return false
	}
	m.b.Clear(i)
	return true
}

// Flip 翻转位置i
func (m *WillfBitMap) Flip(i uint) {
	m.b.Flip(i)
}

func (m *WillfBitMap) Get(i uint) bool {
	return m.b.Test(i)
}

func (m *WillfBitMap) Size() uint {
	return m.b.Len()
}

func (m *WillfBitMap) Reset() {
	m.b.ClearAll()
}

func (m *WillfBitMap) Clone() bitmap_interface.Bitmap {
	return &WillfBitMap{b: m.b.Clone()}
}

func (m *WillfBitMap) Equal(slave bitmap_interface.Bitmap) bool {
	s, ok := slave.(*WillfBitMap)
	if ok {
		return m.b.Equal(s.b)
	}
	return false
}

func (m *WillfBitMap) Cardinality() uint64 {
	return uint64(m.b.Count())
}

func (m *WillfBitMap) Min() (uint, bool) {
	return m.b.NextSet(0)
}

// Max 从尾部开始找第一个非零的字
func (m *WillfBitMap) Max() (uint, bool) {
	words := m.b.Words()
	for i := len(words) - 1; i >= 0; i-- {
		if words[i] != 0 {
			return uint(i)*64 + uint(63-bits.LeadingZeros64(words[i])), true
		}
	}
	return 0, false
}

func (m *WillfBitMap) NextSet(i uint) (uint, bool) {
	return m.b.NextSet(i)
}

func (m *WillfBitMap) Words() []uint64 {
	return m.b.Words()
}

func (m *WillfBitMap) IsSubset(other bitmap_interface.Bitmap) bool {
	w1, w2 := m.Words(), other.Words()
	for i, w := range w1 {
		if i >= len(w2) {
			if w != 0 {
				return false
			}
			continue
		}
		if w&w2[i] != w {
			return false
		}
	}
	return true
}

func (m *WillfBitMap) IsDisjoint(other bitmap_interface.Bitmap) bool {
	w1, w2 := m.Words(), other.Words()
	n := min(len(w1), len(w2))
	for i := 0; i < n; i++ {
		if w1[i]&w2[i] != 0 {
			return false
		}
	}
	return true
}

func (m *WillfBitMap) And(other bitmap_interface.Bitmap) {
	m.b.InPlaceIntersection(bitSetOf(other))
}

func (m *WillfBitMap) Or(other bitmap_interface.Bitmap) {
	m.b.InPlaceUnion(bitSetOf(other))
}

func (m *WillfBitMap) Xor(other bitmap_interface.Bitmap) {
	m.b.InPlaceSymmetricDifference(bitSetOf(other))
}

func (m *WillfBitMap) AndNot(other bitmap_interface.Bitmap) {
	m.b.InPlaceDifference(bitSetOf(other))
}

// 其他实现的位图通过底层字转换
func bitSetOf(other bitmap_interface.Bitmap) *wf.BitSet {
	if o, ok := other.(*WillfBitMap); ok {
		return o.b
	}
	return wf.From(other.Words())
}
