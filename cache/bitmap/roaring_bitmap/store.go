package roaring_bitmap

import (
	"math/bits"
	"slices"

	"github.com/hust-tianbo/go_roaring/cache/bitmap/bitmap_interface"
	"github.com/hust-tianbo/go_roaring/cache/bitmap/willf_bitmap"
)

type storeKind uint8

const (
	arrayStore  storeKind = 0
	bitmapStore storeKind = 1
)

func (k storeKind) String() string {
	if k == bitmapStore {
		return "bitmap"
	}
	return "array"
}

// store holds the low values of one container, either as a sorted array or as a
// dense bitmap covering the whole low domain. Exactly one of array/bits is live.
type store[L Half] struct {
	kind  storeKind
	array []L
	bits  bitmap_interface.Bitmap
}

func newArrayStore[L Half](values ...L) store[L] {
	return store[L]{kind: arrayStore, array: values}
}

func (s *store[L]) isBitmap() bool {
	return s.kind == bitmapStore
}

func (s *store[L]) contains(v L) bool {
	if s.isBitmap() {
		return s.bits.Get(uint(v))
	}
	_, found := slices.BinarySearch(s.array, v)
	return found
}

func (s *store[L]) insert(v L) bool {
	if s.isBitmap() {
		return s.bits.Set(uint(v))
	}
	i, found := slices.BinarySearch(s.array, v)
	if found {
		return false
	}
	s.array = slices.Insert(s.array, i, v)
	return true
}

func (s *store[L]) remove(v L) bool {
	if s.isBitmap() {
		return s.bits.Clear(uint(v))
	}
	i, found := slices.BinarySearch(s.array, v)
	if !found {
		return false
	}
	s.array = slices.Delete(s.array, i, i+1)
	return true
}

func (s *store[L]) cardinality() uint64 {
	if s.isBitmap() {
		return s.bits.Cardinality()
	}
	return uint64(len(s.array))
}

func (s *store[L]) min() L {
	if s.isBitmap() {
		i, ok := s.bits.Min()
		if !ok {
			panic("roaring_bitmap: min of an empty store")
		}
		return L(i)
	}
	if len(s.array) == 0 {
		panic("roaring_bitmap: min of an empty store")
	}
	return s.array[0]
}

func (s *store[L]) max() L {
	if s.isBitmap() {
		i, ok := s.bits.Max()
		if !ok {
			panic("roaring_bitmap: max of an empty store")
		}
		return L(i)
	}
	if len(s.array) == 0 {
		panic("roaring_bitmap: max of an empty store")
	}
	return s.array[len(s.array)-1]
}

func (s *store[L]) isDisjoint(other *store[L]) bool {
	switch {
	case !s.isBitmap() && !other.isBitmap():
		i, j := 0, 0
		for i < len(s.array) && j < len(other.array) {
			switch {
			case s.array[i] < other.array[j]:
				i++
			case s.array[i] > other.array[j]:
				j++
			default:
				return false
			}
		}
		return true
	case s.isBitmap() && other.isBitmap():
		return s.bits.IsDisjoint(other.bits)
	case s.isBitmap():
		return other.isDisjoint(s)
	default:
		for _, v := range s.array {
			if other.bits.Get(uint(v)) {
				return false
			}
		}
		return true
	}
}

func (s *store[L]) isSubset(other *store[L]) bool {
	switch {
	case !s.isBitmap() && !other.isBitmap():
		i, j := 0, 0
		for i < len(s.array) {
			if j == len(other.array) || s.array[i] < other.array[j] {
				return false
			}
			if s.array[i] == other.array[j] {
				i++
			}
			j++
		}
		return true
	case s.isBitmap() && other.isBitmap():
		return s.bits.IsSubset(other.bits)
	case s.isBitmap():
		// a denser store is never a subset of a sparser one; the container
		// rejects on cardinality before getting here
		return false
	default:
		for _, v := range s.array {
			if !other.bits.Get(uint(v)) {
				return false
			}
		}
		return true
	}
}

// toArray returns the array form of a bitmap store.
func (s *store[L]) toArray() store[L] {
	if !s.isBitmap() {
		panic("roaring_bitmap: cannot convert array to array")
	}
	array := make([]L, 0, s.bits.Cardinality())
	for k, w := range s.bits.Words() {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			array = append(array, L(k*64+bit))
			w &= w - 1
		}
	}
	return store[L]{kind: arrayStore, array: array}
}

// toBitmap returns the bitmap form of an array store covering domain values.
func (s *store[L]) toBitmap(domain uint) store[L] {
	if s.isBitmap() {
		panic("roaring_bitmap: cannot convert bitmap to bitmap")
	}
	bm := willf_bitmap.NewWillfBitMapWithLength(domain)
	for _, v := range s.array {
		bm.Set(uint(v))
	}
	return store[L]{kind: bitmapStore, bits: bm}
}

func (s *store[L]) unionWith(other *store[L]) {
	switch {
	case !s.isBitmap() && !other.isBitmap():
		s.array = unionArrays(s.array, other.array)
	case s.isBitmap() && other.isBitmap():
		s.bits.Or(other.bits)
	case s.isBitmap():
		for _, v := range other.array {
			s.bits.Set(uint(v))
		}
	default:
		*s = s.toBitmap(other.bits.Size())
		s.bits.Or(other.bits)
	}
}

func (s *store[L]) intersectWith(other *store[L]) {
	switch {
	case !s.isBitmap() && !other.isBitmap():
		s.array = intersectArrays(s.array, other.array)
	case s.isBitmap() && other.isBitmap():
		s.bits.And(other.bits)
	case s.isBitmap():
		kept := other.clone()
		kept.intersectWith(s)
		*s = kept
	default:
		n := 0
		for _, v := range s.array {
			if other.bits.Get(uint(v)) {
				s.array[n] = v
				n++
			}
		}
		s.array = s.array[:n]
	}
}

func (s *store[L]) differenceWith(other *store[L]) {
	switch {
	case !s.isBitmap() && !other.isBitmap():
		s.array = differenceArrays(s.array, other.array)
	case s.isBitmap() && other.isBitmap():
		s.bits.AndNot(other.bits)
	case s.isBitmap():
		for _, v := range other.array {
			s.bits.Clear(uint(v))
		}
	default:
		n := 0
		for _, v := range s.array {
			if !other.bits.Get(uint(v)) {
				s.array[n] = v
				n++
			}
		}
		s.array = s.array[:n]
	}
}

func (s *store[L]) symmetricDifferenceWith(other *store[L]) {
	switch {
	case !s.isBitmap() && !other.isBitmap():
		s.array = symmetricDifferenceArrays(s.array, other.array)
	case s.isBitmap() && other.isBitmap():
		s.bits.Xor(other.bits)
	case s.isBitmap():
		for _, v := range other.array {
			if !s.bits.Set(uint(v)) {
				s.bits.Clear(uint(v))
			}
		}
	default:
		result := other.clone()
		result.symmetricDifferenceWith(s)
		*s = result
	}
}

func (s *store[L]) clone() store[L] {
	if s.isBitmap() {
		return store[L]{kind: bitmapStore, bits: s.bits.Clone()}
	}
	return store[L]{kind: arrayStore, array: slices.Clone(s.array)}
}

func (s *store[L]) equal(other *store[L]) bool {
	if s.kind != other.kind {
		return false
	}
	if s.isBitmap() {
		return s.bits.Equal(other.bits)
	}
	return slices.Equal(s.array, other.array)
}

// iterator returns a fresh ascending iterator over the store.
func (s *store[L]) iterator() *storeIterator[L] {
	it := &storeIterator[L]{s: s}
	it.advance()
	return it
}

// storeIterator walks the array by index or the bitmap by NextSet, keeping one
// value of lookahead.
type storeIterator[L Half] struct {
	s    *store[L]
	pos  uint
	peek L
	ok   bool
}

func (it *storeIterator[L]) advance() {
	if it.s.isBitmap() {
		var i uint
		i, it.ok = it.s.bits.NextSet(it.pos)
		if it.ok {
			it.peek = L(i)
			it.pos = i + 1
		}
		return
	}
	it.ok = it.pos < uint(len(it.s.array))
	if it.ok {
		it.peek = it.s.array[it.pos]
		it.pos++
	}
}

func (it *storeIterator[L]) HasNext() bool {
	return it.ok
}

func (it *storeIterator[L]) Next() L {
	v := it.peek
	it.advance()
	return v
}

func unionArrays[L Half](a, b []L) []L {
	out := make([]L, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// intersectArrays compacts a in place.
func intersectArrays[L Half](a, b []L) []L {
	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			a[n] = a[i]
			n++
			i++
			j++
		}
	}
	return a[:n]
}

// differenceArrays compacts a in place.
func differenceArrays[L Half](a, b []L) []L {
	n, i, j := 0, 0, 0
	for i < len(a) {
		if j == len(b) || a[i] < b[j] {
			a[n] = a[i]
			n++
			i++
			continue
		}
		if a[i] == b[j] {
			i++
		}
		j++
	}
	return a[:n]
}

func symmetricDifferenceArrays[L Half](a, b []L) []L {
	out := make([]L, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
