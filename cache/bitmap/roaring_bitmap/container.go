package roaring_bitmap

import "fmt"

// container holds every value sharing one key. Its store is an array while
// cardinality <= layout.limit and a bitmap above it.
type container[L Half] struct {
	key         L
	cardinality uint64
	store       store[L]
	layout      *layout
}

func newContainer[L Half](key L, l *layout) *container[L] {
	return &container[L]{
		key:    key,
		store:  newArrayStore[L](),
		layout: l,
	}
}

func (c *container[L]) insert(v L) bool {
	if !c.store.insert(v) {
		return false
	}
	c.cardinality++
	c.ensureCorrectStore()
	return true
}

func (c *container[L]) remove(v L) bool {
	if !c.store.remove(v) {
		return false
	}
	c.cardinality--
	c.ensureCorrectStore()
	return true
}

func (c *container[L]) contains(v L) bool {
	return c.store.contains(v)
}

func (c *container[L]) isDisjoint(other *container[L]) bool {
	return c.store.isDisjoint(&other.store)
}

func (c *container[L]) isSubset(other *container[L]) bool {
	if c.cardinality > other.cardinality {
		return false
	}
	return c.store.isSubset(&other.store)
}

func (c *container[L]) unionWith(other *container[L]) {
	c.store.unionWith(&other.store)
	c.refresh()
}

func (c *container[L]) intersectWith(other *container[L]) {
	c.store.intersectWith(&other.store)
	c.refresh()
}

func (c *container[L]) differenceWith(other *container[L]) {
	c.store.differenceWith(&other.store)
	c.refresh()
}

func (c *container[L]) symmetricDifferenceWith(other *container[L]) {
	c.store.symmetricDifferenceWith(&other.store)
	c.refresh()
}

func (c *container[L]) min() L {
	return c.store.min()
}

func (c *container[L]) max() L {
	return c.store.max()
}

func (c *container[L]) clone() *container[L] {
	return &container[L]{
		key:         c.key,
		cardinality: c.cardinality,
		store:       c.store.clone(),
		layout:      c.layout,
	}
}

func (c *container[L]) equal(other *container[L]) bool {
	return c.key == other.key && c.cardinality == other.cardinality && c.store.equal(&other.store)
}

// refresh recounts the store after a bulk operation.
func (c *container[L]) refresh() {
	c.cardinality = c.store.cardinality()
	c.ensureCorrectStore()
}

func (c *container[L]) ensureCorrectStore() {
	switch {
	case c.store.isBitmap() && c.cardinality <= c.layout.limit:
		c.store = c.store.toArray()
	case !c.store.isBitmap() && c.cardinality > c.layout.limit:
		c.store = c.store.toBitmap(c.layout.domain)
	}
}

// appendRaw64 appends the container record:
// key, cardinality, representation tag, payload length, payload.
func (c *container[L]) appendRaw64(dst []uint64) []uint64 {
	dst = append(dst, uint64(c.key), c.cardinality, uint64(c.store.kind))
	if c.store.isBitmap() {
		words := c.store.bits.Words()
		dst = append(dst, uint64(len(words)))
		return append(dst, words...)
	}
	dst = append(dst, uint64(len(c.store.array)))
	for _, v := range c.store.array {
		dst = append(dst, uint64(v))
	}
	return dst
}

func (c *container[L]) String() string {
	return fmt.Sprintf("Container<%d @ %d, %s>", c.cardinality, c.key, c.store.kind)
}
