package roaring_bitmap

// mergeRule says what a single pass over two key-ordered container lists does
// with containers found on one side only, and how equal keys are combined.
type mergeRule[L Half] struct {
	keepLeft  bool
	keepRight bool
	combine   func(left, right *container[L])
}

func unionRule[L Half]() mergeRule[L] {
	return mergeRule[L]{keepLeft: true, keepRight: true, combine: (*container[L]).unionWith}
}

func intersectionRule[L Half]() mergeRule[L] {
	return mergeRule[L]{combine: (*container[L]).intersectWith}
}

func differenceRule[L Half]() mergeRule[L] {
	return mergeRule[L]{keepLeft: true, combine: (*container[L]).differenceWith}
}

func symmetricDifferenceRule[L Half]() mergeRule[L] {
	return mergeRule[L]{keepLeft: true, keepRight: true, combine: (*container[L]).symmetricDifferenceWith}
}

// mergeWith rewrites rb's container list in one pass over both key sequences.
// Right-side containers are cloned before they are kept, so other is only read.
func (rb *RoaringBitmap[V, L]) mergeWith(other *RoaringBitmap[V, L], rule mergeRule[L]) {
	left, right := rb.containers, other.containers
	merged := make([]*container[L], 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch l, r := left[i], right[j]; {
		case l.key < r.key:
			if rule.keepLeft {
				merged = append(merged, l)
			}
			i++
		case l.key > r.key:
			if rule.keepRight {
				merged = append(merged, r.clone())
			}
			j++
		default:
			rule.combine(l, r)
			if l.cardinality > 0 {
				merged = append(merged, l)
			}
			i++
			j++
		}
	}
	if rule.keepLeft {
		merged = append(merged, left[i:]...)
	}
	if rule.keepRight {
		for _, r := range right[j:] {
			merged = append(merged, r.clone())
		}
	}
	rb.containers = merged
}

// UnionWith adds every value of other to rb.
func (rb *RoaringBitmap[V, L]) UnionWith(other *RoaringBitmap[V, L]) {
	if rb == other {
		return
	}
	rb.mergeWith(other, unionRule[L]())
}

// IntersectWith keeps only the values of rb also in other.
func (rb *RoaringBitmap[V, L]) IntersectWith(other *RoaringBitmap[V, L]) {
	if rb == other {
		return
	}
	rb.mergeWith(other, intersectionRule[L]())
}

// DifferenceWith removes every value of other from rb.
func (rb *RoaringBitmap[V, L]) DifferenceWith(other *RoaringBitmap[V, L]) {
	if rb == other {
		rb.Clear()
		return
	}
	rb.mergeWith(other, differenceRule[L]())
}

// SymmetricDifferenceWith replaces rb with the values in exactly one of rb and other.
func (rb *RoaringBitmap[V, L]) SymmetricDifferenceWith(other *RoaringBitmap[V, L]) {
	if rb == other {
		rb.Clear()
		return
	}
	rb.mergeWith(other, symmetricDifferenceRule[L]())
}

func (rb *RoaringBitmap[V, L]) Or(other *RoaringBitmap[V, L])     { rb.UnionWith(other) }
func (rb *RoaringBitmap[V, L]) And(other *RoaringBitmap[V, L])    { rb.IntersectWith(other) }
func (rb *RoaringBitmap[V, L]) AndNot(other *RoaringBitmap[V, L]) { rb.DifferenceWith(other) }
func (rb *RoaringBitmap[V, L]) Xor(other *RoaringBitmap[V, L])    { rb.SymmetricDifferenceWith(other) }

// Union returns a new set holding the values of a or b.
func Union[V Value, L Half](a, b *RoaringBitmap[V, L]) *RoaringBitmap[V, L] {
	out := a.Clone()
	out.UnionWith(b)
	return out
}

// Intersection returns a new set holding the values of both a and b.
func Intersection[V Value, L Half](a, b *RoaringBitmap[V, L]) *RoaringBitmap[V, L] {
	out := a.Clone()
	out.IntersectWith(b)
	return out
}

// Difference returns a new set holding the values of a that are not in b.
func Difference[V Value, L Half](a, b *RoaringBitmap[V, L]) *RoaringBitmap[V, L] {
	out := a.Clone()
	out.DifferenceWith(b)
	return out
}

// SymmetricDifference returns a new set holding the values in exactly one of a and b.
func SymmetricDifference[V Value, L Half](a, b *RoaringBitmap[V, L]) *RoaringBitmap[V, L] {
	out := a.Clone()
	out.SymmetricDifferenceWith(b)
	return out
}

// IsSubset reports whether every value of rb is in other. It returns false
// without scanning when rb holds more values than other.
func (rb *RoaringBitmap[V, L]) IsSubset(other *RoaringBitmap[V, L]) bool {
	if rb.Cardinality() > other.Cardinality() {
		return false
	}
	left, right := rb.containers, other.containers
	i, j := 0, 0
	for i < len(left) {
		if j == len(right) || left[i].key < right[j].key {
			return false
		}
		if left[i].key == right[j].key {
			if !left[i].isSubset(right[j]) {
				return false
			}
			i++
		}
		j++
	}
	return true
}

// IsSuperset reports whether every value of other is in rb.
func (rb *RoaringBitmap[V, L]) IsSuperset(other *RoaringBitmap[V, L]) bool {
	return other.IsSubset(rb)
}

// IsDisjoint reports whether rb and other have no value in common.
func (rb *RoaringBitmap[V, L]) IsDisjoint(other *RoaringBitmap[V, L]) bool {
	left, right := rb.containers, other.containers
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch {
		case left[i].key < right[j].key:
			i++
		case left[i].key > right[j].key:
			j++
		default:
			if !left[i].isDisjoint(right[j]) {
				return false
			}
			i++
			j++
		}
	}
	return true
}

// UnionIterator lazily yields the values of rb or other in ascending order.
func (rb *RoaringBitmap[V, L]) UnionIterator(other *RoaringBitmap[V, L]) Iterator[V] {
	return newMergeIterator(rb.Iterator(), other.Iterator(), mergeUnion)
}

// IntersectionIterator lazily yields the values of both rb and other.
func (rb *RoaringBitmap[V, L]) IntersectionIterator(other *RoaringBitmap[V, L]) Iterator[V] {
	return newMergeIterator(rb.Iterator(), other.Iterator(), mergeIntersection)
}

// DifferenceIterator lazily yields the values of rb that are not in other.
func (rb *RoaringBitmap[V, L]) DifferenceIterator(other *RoaringBitmap[V, L]) Iterator[V] {
	return newMergeIterator(rb.Iterator(), other.Iterator(), mergeDifference)
}

// SymmetricDifferenceIterator lazily yields the values in exactly one of rb and other.
func (rb *RoaringBitmap[V, L]) SymmetricDifferenceIterator(other *RoaringBitmap[V, L]) Iterator[V] {
	return newMergeIterator(rb.Iterator(), other.Iterator(), mergeSymmetricDifference)
}
