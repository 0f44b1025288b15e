package bluele_cache

import (
	"time"

	bl "github.com/bluele/gcache"
)

var defaultCapacity = 4096

// BlueleCache 基于gcache的类型安全LRU缓存，可并发使用
type BlueleCache[K comparable, V any] struct {
	d bl.Cache
}

func NewBlueleCacheLRU[K comparable, V any]() *BlueleCache[K, V] {
	return NewBlueleCacheLRUWithCapacity[K, V](defaultCapacity)
}

func NewBlueleCacheLRUWithCapacity[K comparable, V any](capacity int) *BlueleCache[K, V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &BlueleCache[K, V]{d: bl.New(capacity).LRU().Build()}
}

func (br *BlueleCache[K, V]) Add(key K, v V) error {
	return br.d.Set(key, v)
}

func (br *BlueleCache[K, V]) AddWithExpire(key K, v V, lifeSpan time.Duration) error {
	return br.d.SetWithExpire(key, v, lifeSpan)
}

func (br *BlueleCache[K, V]) Get(key K) (V, bool) {
	var zero V
	v, err := br.d.Get(key)
	if err != nil {
		return zero, false
	}
	tv, ok := v.(V)
	if !ok {
		return zero, false
	}
	return tv, true
}

func (br *BlueleCache[K, V]) Remove(key K) bool {
	return br.d.Remove(key)
}

func (br *BlueleCache[K, V]) Len() int {
	return br.d.Len(false)
}

func (br *BlueleCache[K, V]) Clear() {
	br.d.Purge()
}
