package roaring_bitmap

// Iterator allows you to iterate over the values of a set in ascending order.
type Iterator[V Value] interface {
	HasNext() bool
	Next() V
}

type setIterator[V Value, L Half] struct {
	pos     int
	current *storeIterator[L]
	key     L
	rb      *RoaringBitmap[V, L]
}

func newSetIterator[V Value, L Half](rb *RoaringBitmap[V, L]) *setIterator[V, L] {
	it := &setIterator[V, L]{rb: rb}
	it.init()
	return it
}

// init 定位到pos处的容器
func (it *setIterator[V, L]) init() {
	if it.pos < len(it.rb.containers) {
		c := it.rb.containers[it.pos]
		it.key = c.key
		it.current = c.store.iterator()
	}
}

func (it *setIterator[V, L]) HasNext() bool {
	return it.pos < len(it.rb.containers)
}

func (it *setIterator[V, L]) Next() V {
	v := join[V](it.key, it.current.Next(), it.rb.layout.lowBits)
	if !it.current.HasNext() {
		it.pos++
		it.init()
	}
	return v
}

type mergeKind uint8

const (
	mergeUnion mergeKind = iota
	mergeIntersection
	mergeDifference
	mergeSymmetricDifference
)

// mergeIterator produces a set-algebra result of two ascending sequences
// without materializing it. It holds one lookahead value per side and advances
// whichever side lost the comparison.
type mergeIterator[V Value] struct {
	left, right   Iterator[V]
	lv, rv        V
	lok, rok      bool
	keepLeftOnly  bool
	keepRightOnly bool
	keepBoth      bool
	peek          V
	ok            bool
}

func newMergeIterator[V Value](left, right Iterator[V], kind mergeKind) *mergeIterator[V] {
	it := &mergeIterator[V]{left: left, right: right}
	switch kind {
	case mergeUnion:
		it.keepLeftOnly, it.keepRightOnly, it.keepBoth = true, true, true
	case mergeIntersection:
		it.keepBoth = true
	case mergeDifference:
		it.keepLeftOnly = true
	case mergeSymmetricDifference:
		it.keepLeftOnly, it.keepRightOnly = true, true
	}
	it.pullLeft()
	it.pullRight()
	it.advance()
	return it
}

func (it *mergeIterator[V]) pullLeft() {
	it.lok = it.left.HasNext()
	if it.lok {
		it.lv = it.left.Next()
	}
}

func (it *mergeIterator[V]) pullRight() {
	it.rok = it.right.HasNext()
	if it.rok {
		it.rv = it.right.Next()
	}
}

// exhausted reports whether no remaining value can be produced.
func (it *mergeIterator[V]) exhausted() bool {
	switch {
	case !it.lok && !it.rok:
		return true
	case !it.lok:
		return !it.keepRightOnly
	case !it.rok:
		return !it.keepLeftOnly
	}
	return false
}

func (it *mergeIterator[V]) advance() {
	for !it.exhausted() {
		switch {
		case !it.rok || (it.lok && it.lv < it.rv):
			v := it.lv
			it.pullLeft()
			if it.keepLeftOnly {
				it.peek, it.ok = v, true
				return
			}
		case !it.lok || it.rv < it.lv:
			v := it.rv
			it.pullRight()
			if it.keepRightOnly {
				it.peek, it.ok = v, true
				return
			}
		default:
			v := it.lv
			it.pullLeft()
			it.pullRight()
			if it.keepBoth {
				it.peek, it.ok = v, true
				return
			}
		}
	}
	it.ok = false
}

func (it *mergeIterator[V]) HasNext() bool {
	return it.ok
}

func (it *mergeIterator[V]) Next() V {
	v := it.peek
	it.advance()
	return v
}
