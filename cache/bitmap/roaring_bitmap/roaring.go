// Package roaring_bitmap implements Roaring bitmaps: compressed sets of unsigned
// integers split into containers keyed by the high half of each value. A
// container keeps its low halves as a sorted array while sparse and switches to a
// dense bitmap once its cardinality passes 2^(lowBits-4).
//
// The same implementation serves 16, 32 and 64-bit values; see Bitmap16,
// Bitmap32 and Bitmap64.
//
// A RoaringBitmap is not safe for concurrent mutation. Iterators borrow the sets
// they were created from and must not outlive a mutation of those sets.
package roaring_bitmap

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/hust-tianbo/go_roaring/cache/bitmap/bitmap_interface"
)

// RoaringBitmap is a compressed set of V values stored as L halves.
type RoaringBitmap[V Value, L Half] struct {
	containers []*container[L]
	layout     *layout
}

type (
	Bitmap16 = RoaringBitmap[uint16, uint8]
	Bitmap32 = RoaringBitmap[uint32, uint16]
	Bitmap64 = RoaringBitmap[uint64, uint32]
)

var _ bitmap_interface.Set[uint32, *Bitmap32] = (*Bitmap32)(nil)

// New creates an empty set. It panics if L is not exactly half the width of V.
func New[V Value, L Half]() *RoaringBitmap[V, L] {
	return &RoaringBitmap[V, L]{layout: newLayout[V, L]()}
}

func New16() *Bitmap16 { return New[uint16, uint8]() }

func New32() *Bitmap32 { return New[uint32, uint16]() }

func New64() *Bitmap64 { return New[uint64, uint32]() }

// Of creates a set holding values.
func Of[V Value, L Half](values ...V) *RoaringBitmap[V, L] {
	rb := New[V, L]()
	for _, v := range values {
		rb.Insert(v)
	}
	return rb
}

// FromSeq creates a set holding every value of seq.
func FromSeq[V Value, L Half](seq iter.Seq[V]) *RoaringBitmap[V, L] {
	rb := New[V, L]()
	rb.Extend(seq)
	return rb
}

// Extend inserts every value of seq.
func (rb *RoaringBitmap[V, L]) Extend(seq iter.Seq[V]) {
	for v := range seq {
		rb.Insert(v)
	}
}

func (rb *RoaringBitmap[V, L]) search(key L) (int, bool) {
	return slices.BinarySearchFunc(rb.containers, key, func(c *container[L], k L) int {
		return cmp.Compare(c.key, k)
	})
}

// Insert adds v to the set and reports whether it was not already present.
func (rb *RoaringBitmap[V, L]) Insert(v V) bool {
	key, low := split[V, L](v, rb.layout.lowBits)
	i, found := rb.search(key)
	if found {
		return rb.containers[i].insert(low)
	}
	c := newContainer(key, rb.layout)
	c.insert(low)
	rb.containers = slices.Insert(rb.containers, i, c)
	return true
}

// Remove deletes v from the set and reports whether it was present.
// A container left empty is dropped.
func (rb *RoaringBitmap[V, L]) Remove(v V) bool {
	key, low := split[V, L](v, rb.layout.lowBits)
	i, found := rb.search(key)
	if !found || !rb.containers[i].remove(low) {
		return false
	}
	if rb.containers[i].cardinality == 0 {
		rb.containers = slices.Delete(rb.containers, i, i+1)
	}
	return true
}

// Contains reports whether v is in the set.
func (rb *RoaringBitmap[V, L]) Contains(v V) bool {
	key, low := split[V, L](v, rb.layout.lowBits)
	i, found := rb.search(key)
	return found && rb.containers[i].contains(low)
}

// Clear removes every value.
func (rb *RoaringBitmap[V, L]) Clear() {
	rb.containers = nil
}

func (rb *RoaringBitmap[V, L]) IsEmpty() bool {
	return len(rb.containers) == 0
}

// Cardinality returns the number of values in the set.
func (rb *RoaringBitmap[V, L]) Cardinality() uint64 {
	var n uint64
	for _, c := range rb.containers {
		n += c.cardinality
	}
	return n
}

// Min returns the smallest value, or false if the set is empty.
func (rb *RoaringBitmap[V, L]) Min() (V, bool) {
	if rb.IsEmpty() {
		return 0, false
	}
	c := rb.containers[0]
	return join[V](c.key, c.min(), rb.layout.lowBits), true
}

// Max returns the largest value, or false if the set is empty.
func (rb *RoaringBitmap[V, L]) Max() (V, bool) {
	if rb.IsEmpty() {
		return 0, false
	}
	c := rb.containers[len(rb.containers)-1]
	return join[V](c.key, c.max(), rb.layout.lowBits), true
}

// Iterator returns a new iterator over the values in ascending order.
func (rb *RoaringBitmap[V, L]) Iterator() Iterator[V] {
	return newSetIterator(rb)
}

// All returns the values in ascending order.
func (rb *RoaringBitmap[V, L]) All() iter.Seq[V] {
	return seqOf(rb.Iterator())
}

// ToArray returns the values in ascending order.
func (rb *RoaringBitmap[V, L]) ToArray() []V {
	out := make([]V, 0, rb.Cardinality())
	for it := rb.Iterator(); it.HasNext(); {
		out = append(out, it.Next())
	}
	return out
}

func seqOf[V Value](it Iterator[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the set.
func (rb *RoaringBitmap[V, L]) Clone() *RoaringBitmap[V, L] {
	out := &RoaringBitmap[V, L]{
		containers: make([]*container[L], len(rb.containers)),
		layout:     rb.layout,
	}
	for i, c := range rb.containers {
		out.containers[i] = c.clone()
	}
	return out
}

// Equal reports whether both sets hold the same values.
func (rb *RoaringBitmap[V, L]) Equal(other *RoaringBitmap[V, L]) bool {
	return slices.EqualFunc(rb.containers, other.containers, (*container[L]).equal)
}

// Stats describes how the containers of a set are represented.
type Stats struct {
	Containers       int
	ArrayContainers  int
	BitmapContainers int
	Cardinality      uint64
}

func (rb *RoaringBitmap[V, L]) Stats() Stats {
	st := Stats{Containers: len(rb.containers)}
	for _, c := range rb.containers {
		if c.store.isBitmap() {
			st.BitmapContainers++
		} else {
			st.ArrayContainers++
		}
		st.Cardinality += c.cardinality
	}
	return st
}

// String lists up to 15 values, and summarises larger sets.
func (rb *RoaringBitmap[V, L]) String() string {
	n := rb.Cardinality()
	if n >= 16 {
		lo, _ := rb.Min()
		hi, _ := rb.Max()
		return fmt.Sprintf("RoaringBitmap<%d values between %d and %d>", n, lo, hi)
	}
	var sb strings.Builder
	sb.WriteString("RoaringBitmap<[")
	for it := rb.Iterator(); it.HasNext(); {
		fmt.Fprint(&sb, it.Next())
		if it.HasNext() {
			sb.WriteString(", ")
		}
	}
	sb.WriteString("]>")
	return sb.String()
}
