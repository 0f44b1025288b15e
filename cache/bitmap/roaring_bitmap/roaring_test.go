package roaring_bitmap_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hust-tianbo/go_roaring/cache/bitmap/roaring_bitmap"
)

// ranges builds a set from half-open [lo, hi) pairs.
func ranges(r ...[2]uint32) *roaring_bitmap.Bitmap32 {
	rb := roaring_bitmap.New32()
	for _, p := range r {
		for v := p[0]; v < p[1]; v++ {
			rb.Insert(v)
		}
	}
	return rb
}

func TestInsertRemoveContains(t *testing.T) {
	rb := roaring_bitmap.New32()
	assert.True(t, rb.IsEmpty())

	assert.True(t, rb.Insert(1))
	assert.True(t, rb.Insert(1<<20))
	assert.False(t, rb.Insert(1))
	assert.True(t, rb.Contains(1))
	assert.True(t, rb.Contains(1<<20))
	assert.False(t, rb.Contains(2))
	assert.Equal(t, uint64(2), rb.Cardinality())
	assert.Equal(t, 2, rb.Stats().Containers)

	assert.True(t, rb.Remove(1<<20))
	assert.False(t, rb.Remove(1<<20))
	assert.False(t, rb.Remove(12345))
	assert.Equal(t, 1, rb.Stats().Containers, "empty container dropped")

	rb.Clear()
	assert.True(t, rb.IsEmpty())
	assert.Equal(t, uint64(0), rb.Cardinality())
}

func TestOrderingRegardlessOfInsertion(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	values := make([]uint32, 0, 20000)
	for i := 0; i < 20000; i++ {
		values = append(values, r.Uint32N(1<<18))
	}

	rb := roaring_bitmap.Of[uint32, uint16](values...)
	// push some containers over the threshold and back
	for v := uint32(0); v < 6000; v++ {
		rb.Insert(v)
	}
	for v := uint32(0); v < 6000; v += 2 {
		rb.Remove(v)
	}

	got := rb.ToArray()
	require.Len(t, got, int(rb.Cardinality()))
	assert.True(t, slices.IsSorted(got))
	assert.Equal(t, len(got), len(slices.Compact(slices.Clone(got))))

	var fromSeq []uint32
	for v := range rb.All() {
		fromSeq = append(fromSeq, v)
	}
	assert.Equal(t, got, fromSeq)
}

func TestSymmetricDifferenceWith(t *testing.T) {
	tests := []struct {
		name string
		a, b [][2]uint32
		want [][2]uint32
	}{
		{
			name: "array",
			a:    [][2]uint32{{0, 2000}},
			b:    [][2]uint32{{1000, 3000}},
			want: [][2]uint32{{0, 1000}, {2000, 3000}},
		},
		{
			name: "array_and_bitmap",
			a:    [][2]uint32{{0, 2000}},
			b:    [][2]uint32{{1000, 8000}},
			want: [][2]uint32{{0, 1000}, {2000, 8000}},
		},
		{
			name: "bitmap_to_bitmap",
			a:    [][2]uint32{{0, 12000}},
			b:    [][2]uint32{{6000, 18000}},
			want: [][2]uint32{{0, 6000}, {12000, 18000}},
		},
		{
			name: "bitmap_to_array",
			a:    [][2]uint32{{0, 6000}},
			b:    [][2]uint32{{2000, 7000}},
			want: [][2]uint32{{0, 2000}, {6000, 7000}},
		},
		{
			name: "bitmap_and_array_to_bitmap",
			a:    [][2]uint32{{0, 12000}},
			b:    [][2]uint32{{11000, 14000}},
			want: [][2]uint32{{0, 11000}, {12000, 14000}},
		},
		{
			name: "bitmap_and_array_to_array",
			a:    [][2]uint32{{0, 6000}},
			b:    [][2]uint32{{3000, 7000}},
			want: [][2]uint32{{0, 3000}, {6000, 7000}},
		},
		{
			name: "arrays",
			a:    [][2]uint32{{0, 2000}, {1000000, 1002000}, {3000000, 3001000}},
			b:    [][2]uint32{{1000, 3000}, {1001000, 1003000}, {2000000, 2000001}},
			want: [][2]uint32{{0, 1000}, {2000, 3000}, {1000000, 1001000}, {1002000, 1003000}, {2000000, 2000001}, {3000000, 3001000}},
		},
		{
			name: "bitmaps",
			a:    [][2]uint32{{0, 6000}, {1000000, 1012000}, {3000000, 3010000}},
			b:    [][2]uint32{{3000, 7000}, {1006000, 1018000}, {2000000, 2010000}},
			want: [][2]uint32{{0, 3000}, {6000, 7000}, {1000000, 1006000}, {1012000, 1018000}, {2000000, 2010000}, {3000000, 3010000}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, want := ranges(tt.a...), ranges(tt.b...), ranges(tt.want...)
			bBefore := b.Clone()

			a.SymmetricDifferenceWith(b)

			assert.True(t, a.Equal(want), "got %v, want %v", a, want)
			assert.Equal(t, want.Cardinality(), a.Cardinality())
			assert.True(t, b.Equal(bBefore), "operand changed")
		})
	}
}

func TestInPlaceAlgebra(t *testing.T) {
	a := ranges([2]uint32{0, 5000}, [2]uint32{70000, 70010})
	b := ranges([2]uint32{4000, 10000}, [2]uint32{200000, 200005})

	tests := []struct {
		name  string
		apply func(x, y *roaring_bitmap.Bitmap32)
		want  *roaring_bitmap.Bitmap32
	}{
		{"union", (*roaring_bitmap.Bitmap32).UnionWith, ranges([2]uint32{0, 10000}, [2]uint32{70000, 70010}, [2]uint32{200000, 200005})},
		{"intersect", (*roaring_bitmap.Bitmap32).IntersectWith, ranges([2]uint32{4000, 5000})},
		{"difference", (*roaring_bitmap.Bitmap32).DifferenceWith, ranges([2]uint32{0, 4000}, [2]uint32{70000, 70010})},
		{"symmetric_difference", (*roaring_bitmap.Bitmap32).SymmetricDifferenceWith, ranges([2]uint32{0, 4000}, [2]uint32{5000, 10000}, [2]uint32{70000, 70010}, [2]uint32{200000, 200005})},
		{"or", (*roaring_bitmap.Bitmap32).Or, ranges([2]uint32{0, 10000}, [2]uint32{70000, 70010}, [2]uint32{200000, 200005})},
		{"and", (*roaring_bitmap.Bitmap32).And, ranges([2]uint32{4000, 5000})},
		{"and_not", (*roaring_bitmap.Bitmap32).AndNot, ranges([2]uint32{0, 4000}, [2]uint32{70000, 70010})},
		{"xor", (*roaring_bitmap.Bitmap32).Xor, ranges([2]uint32{0, 4000}, [2]uint32{5000, 10000}, [2]uint32{70000, 70010}, [2]uint32{200000, 200005})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := a.Clone()
			tt.apply(x, b)
			assert.True(t, x.Equal(tt.want), "got %v, want %v", x, tt.want)
		})
	}
}

func TestPureAlgebraLeavesOperands(t *testing.T) {
	a := ranges([2]uint32{0, 100})
	b := ranges([2]uint32{50, 150})
	aBefore, bBefore := a.Clone(), b.Clone()

	assert.Equal(t, uint64(150), roaring_bitmap.Union(a, b).Cardinality())
	assert.Equal(t, uint64(50), roaring_bitmap.Intersection(a, b).Cardinality())
	assert.Equal(t, uint64(50), roaring_bitmap.Difference(a, b).Cardinality())
	assert.Equal(t, uint64(100), roaring_bitmap.SymmetricDifference(a, b).Cardinality())

	assert.True(t, a.Equal(aBefore))
	assert.True(t, b.Equal(bBefore))
}

func TestSelfAlgebra(t *testing.T) {
	a := ranges([2]uint32{0, 6000})
	want := a.Clone()

	a.UnionWith(a)
	assert.True(t, a.Equal(want))
	a.IntersectWith(a)
	assert.True(t, a.Equal(want))

	a.SymmetricDifferenceWith(a)
	assert.True(t, a.IsEmpty())

	b := want.Clone()
	b.DifferenceWith(b)
	assert.True(t, b.IsEmpty())
}

func TestAlgebraWithEmpty(t *testing.T) {
	a := ranges([2]uint32{0, 5000})
	empty := roaring_bitmap.New32()

	assert.True(t, roaring_bitmap.Union(a, empty).Equal(a))
	assert.True(t, roaring_bitmap.Intersection(a, empty).IsEmpty())
	assert.True(t, roaring_bitmap.Difference(a, empty).Equal(a))
	assert.True(t, roaring_bitmap.Difference(empty, a).IsEmpty())
	assert.True(t, roaring_bitmap.SymmetricDifference(empty, a).Equal(a))
	assert.True(t, empty.IsSubset(a))
	assert.True(t, empty.IsDisjoint(a))
	assert.False(t, a.IsSubset(empty))
}

func TestSubsetSupersetDisjoint(t *testing.T) {
	big := ranges([2]uint32{0, 10000}, [2]uint32{1 << 20, 1<<20 + 10})
	small := ranges([2]uint32{100, 200}, [2]uint32{1<<20 + 2, 1<<20 + 4})
	other := ranges([2]uint32{20000, 20010}, [2]uint32{1 << 24, 1<<24 + 1})
	missingKey := ranges([2]uint32{100, 200}, [2]uint32{1 << 22, 1<<22 + 1})

	assert.True(t, small.IsSubset(big))
	assert.True(t, big.IsSuperset(small))
	assert.False(t, big.IsSubset(small), "larger cardinality")
	assert.False(t, missingKey.IsSubset(big))
	assert.True(t, big.IsSubset(big.Clone()))

	assert.True(t, big.IsDisjoint(other))
	assert.True(t, other.IsDisjoint(big))
	assert.False(t, big.IsDisjoint(small))
}

func TestAlgebraIdentities(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 20; i++ {
		a, b := randomSet(r), randomSet(r)

		union := roaring_bitmap.Union(a, b)
		inter := roaring_bitmap.Intersection(a, b)
		diff := roaring_bitmap.Difference(a, b)
		xor := roaring_bitmap.SymmetricDifference(a, b)

		assert.True(t, union.Equal(roaring_bitmap.Union(b, a)))
		assert.True(t, inter.Equal(roaring_bitmap.Intersection(b, a)))
		assert.True(t, xor.Equal(roaring_bitmap.SymmetricDifference(b, a)))
		assert.True(t, xor.Equal(roaring_bitmap.Difference(union, inter)))
		assert.True(t, diff.IsDisjoint(b))
		assert.True(t, inter.IsSubset(a) && inter.IsSubset(b))
		assert.True(t, a.IsSubset(union) && b.IsSubset(union))
		assert.Equal(t, union.Cardinality()+inter.Cardinality(), a.Cardinality()+b.Cardinality())
		assert.Equal(t, a.Cardinality(), diff.Cardinality()+inter.Cardinality())
	}
}

// randomSet mixes dense and sparse containers.
func randomSet(r *rand.Rand) *roaring_bitmap.Bitmap32 {
	rb := roaring_bitmap.New32()
	for key := uint32(0); key < 6; key++ {
		n := r.IntN(9000)
		for j := 0; j < n; j++ {
			rb.Insert(key<<16 | r.Uint32N(1<<16))
		}
	}
	return rb
}

func TestAgainstReferenceImplementation(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 10; i++ {
		a, b := randomSet(r), randomSet(r)
		ra, rb := roaring.BitmapOf(a.ToArray()...), roaring.BitmapOf(b.ToArray()...)

		assert.Equal(t, roaring.Or(ra, rb).ToArray(), roaring_bitmap.Union(a, b).ToArray())
		assert.Equal(t, roaring.And(ra, rb).ToArray(), roaring_bitmap.Intersection(a, b).ToArray())
		assert.Equal(t, roaring.AndNot(ra, rb).ToArray(), roaring_bitmap.Difference(a, b).ToArray())
		assert.Equal(t, roaring.Xor(ra, rb).ToArray(), roaring_bitmap.SymmetricDifference(a, b).ToArray())
		assert.Equal(t, ra.GetCardinality(), a.Cardinality())
		assert.Equal(t, ra.Minimum(), mustMin(t, a))
		assert.Equal(t, ra.Maximum(), mustMax(t, a))
	}
}

func mustMin(t *testing.T, rb *roaring_bitmap.Bitmap32) uint32 {
	v, ok := rb.Min()
	require.True(t, ok)
	return v
}

func mustMax(t *testing.T, rb *roaring_bitmap.Bitmap32) uint32 {
	v, ok := rb.Max()
	require.True(t, ok)
	return v
}

func TestMinMax(t *testing.T) {
	rb := roaring_bitmap.New32()
	_, ok := rb.Min()
	assert.False(t, ok)
	_, ok = rb.Max()
	assert.False(t, ok)

	rb = ranges([2]uint32{70000, 80000}, [2]uint32{5, 6})
	assert.Equal(t, uint32(5), mustMin(t, rb))
	assert.Equal(t, uint32(79999), mustMax(t, rb))
}

func TestClone(t *testing.T) {
	a := ranges([2]uint32{0, 6000}, [2]uint32{100000, 100010})
	c := a.Clone()
	require.True(t, a.Equal(c))

	c.Remove(3)
	c.Insert(1 << 30)
	assert.True(t, a.Contains(3))
	assert.False(t, a.Contains(1<<30))
	assert.False(t, a.Equal(c))
}

func TestStats(t *testing.T) {
	rb := ranges([2]uint32{0, 5000}, [2]uint32{65536, 65546})
	assert.Equal(t, roaring_bitmap.Stats{
		Containers:       2,
		ArrayContainers:  1,
		BitmapContainers: 1,
		Cardinality:      5010,
	}, rb.Stats())
}

func TestString(t *testing.T) {
	assert.Equal(t, "RoaringBitmap<[]>", roaring_bitmap.New32().String())
	assert.Equal(t, "RoaringBitmap<[1, 5, 70000]>", roaring_bitmap.Of[uint32, uint16](70000, 5, 1).String())
	assert.Equal(t, "RoaringBitmap<100 values between 10 and 109>", ranges([2]uint32{10, 110}).String())
}

func TestFromSeqAndExtend(t *testing.T) {
	rb := roaring_bitmap.FromSeq[uint32, uint16](slices.Values([]uint32{9, 3, 3, 7}))
	assert.Equal(t, []uint32{3, 7, 9}, rb.ToArray())

	rb.Extend(slices.Values([]uint32{1, 9}))
	assert.Equal(t, []uint32{1, 3, 7, 9}, rb.ToArray())
}

func TestBitmap16(t *testing.T) {
	rb := roaring_bitmap.New16()
	for v := 0; v < 1<<16; v += 3 {
		rb.Insert(uint16(v))
	}
	assert.Equal(t, uint64(21846), rb.Cardinality())
	st := rb.Stats()
	assert.Equal(t, 256, st.Containers)
	assert.Equal(t, 256, st.BitmapContainers, "86 values per container is above 16")

	v, ok := rb.Max()
	require.True(t, ok)
	assert.Equal(t, uint16(65535), v)

	other := roaring_bitmap.New16()
	for v := 0; v < 1<<16; v += 2 {
		other.Insert(uint16(v))
	}
	inter := roaring_bitmap.Intersection(rb, other)
	for v := range inter.All() {
		require.Zero(t, v%6)
	}
	assert.Equal(t, uint64(10923), inter.Cardinality())
}

func TestBitmap64(t *testing.T) {
	rb := roaring_bitmap.New64()
	values := []uint64{0, 1, 1 << 32, 1<<32 + 5, 1 << 63, 1<<64 - 1}
	for _, v := range slices.Backward(values) {
		assert.True(t, rb.Insert(v))
	}
	assert.Equal(t, values, rb.ToArray())
	assert.Equal(t, 4, rb.Stats().Containers)
	assert.True(t, rb.Contains(1<<32+5))
	assert.False(t, rb.Contains(1<<32+6))

	other := roaring_bitmap.Of[uint64, uint32](1, 1<<63, 42)
	assert.Equal(t, []uint64{1, 1 << 63}, roaring_bitmap.Intersection(rb, other).ToArray())
	assert.Equal(t, []uint64{0, 1 << 32, 1<<32 + 5, 1<<64 - 1}, roaring_bitmap.Difference(rb, other).ToArray())
}

func TestEqualIgnoresHistory(t *testing.T) {
	a := ranges([2]uint32{0, 10})
	b := ranges([2]uint32{0, 8000})
	for v := uint32(10); v < 8000; v++ {
		b.Remove(v)
	}
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}
