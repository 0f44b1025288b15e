package snapshot

import (
	"context"

	"github.com/hust-tianbo/go_roaring/cache/bitmap/roaring_bitmap"
	"github.com/hust-tianbo/go_roaring/cache/bluele_cache"
	"github.com/hust-tianbo/go_roaring/log"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Capacity    int         // 缓存的最大集合个数
	Compression Compression // Store时使用的压缩方式
	Concurrency int         // LoadAll的最大并发数
}

type Option func(*Options)

func WithCapacity(n int) Option {
	return func(opt *Options) {
		opt.Capacity = n
	}
}

func WithCompression(c Compression) Option {
	return func(opt *Options) {
		opt.Compression = c
	}
}

func WithConcurrency(n int) Option {
	return func(opt *Options) {
		opt.Concurrency = n
	}
}

// Cache memoizes decoded sets by the xxh3 hash of their envelope. Callers get
// clones, so the cached copy is never shared. Safe for concurrent use.
type Cache[V roaring_bitmap.Value, L roaring_bitmap.Half] struct {
	opts *Options
	lru  *bluele_cache.BlueleCache[uint64, *roaring_bitmap.RoaringBitmap[V, L]]
}

func NewCache[V roaring_bitmap.Value, L roaring_bitmap.Half](opt ...Option) *Cache[V, L] {
	opts := &Options{
		Capacity:    1024,
		Compression: CompressionZSTD,
		Concurrency: 4,
	}
	for _, o := range opt {
		o(opts)
	}
	return &Cache[V, L]{
		opts: opts,
		lru:  bluele_cache.NewBlueleCacheLRUWithCapacity[uint64, *roaring_bitmap.RoaringBitmap[V, L]](opts.Capacity),
	}
}

// Store encodes rb and keeps a copy of it under the returned envelope.
func (c *Cache[V, L]) Store(rb *roaring_bitmap.RoaringBitmap[V, L]) ([]byte, error) {
	data, err := Encode(rb, c.opts.Compression)
	if err != nil {
		log.Errorf("[Store]encode fail:%v", err)
		return nil, err
	}
	if err := c.lru.Add(xxh3.Hash(data), rb.Clone()); err != nil {
		log.Warnf("[Store]cache add fail:%v", err)
	}
	return data, nil
}

// Load decodes an envelope, reusing a cached result when the same bytes were seen before.
func (c *Cache[V, L]) Load(data []byte) (*roaring_bitmap.RoaringBitmap[V, L], error) {
	key := xxh3.Hash(data)
	if rb, ok := c.lru.Get(key); ok {
		log.Debugf("[Load]cache hit:%x", key)
		return rb.Clone(), nil
	}

	rb := roaring_bitmap.New[V, L]()
	if err := Decode(data, rb); err != nil {
		log.Warnf("[Load]decode %x fail:%v", key, err)
		return nil, err
	}
	log.Debugf("[Load]cache miss:%x, cardinality:%d", key, rb.Cardinality())
	if err := c.lru.Add(key, rb.Clone()); err != nil {
		log.Warnf("[Load]cache add fail:%v", err)
	}
	return rb, nil
}

// LoadAll decodes blobs concurrently; the result is in input order. The first
// error cancels the remaining work.
func (c *Cache[V, L]) LoadAll(ctx context.Context, blobs [][]byte) ([]*roaring_bitmap.RoaringBitmap[V, L], error) {
	out := make([]*roaring_bitmap.RoaringBitmap[V, L], len(blobs))
	g, ctx := errgroup.WithContext(ctx)
	if c.opts.Concurrency > 0 {
		g.SetLimit(c.opts.Concurrency)
	}
	for i, data := range blobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rb, err := c.Load(data)
			if err != nil {
				return err
			}
			out[i] = rb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Cache[V, L]) Len() int {
	return c.lru.Len()
}

func (c *Cache[V, L]) Purge() {
	c.lru.Clear()
}
