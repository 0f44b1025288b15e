package roaring_bitmap

import (
	"encoding/binary"
	"io"

	"github.com/hust-tianbo/go_roaring/cache/bitmap/willf_bitmap"
)

// 每个容器记录的头部: key, cardinality, tag, payload length
const recordHeaderWords = 4

// ToRaw64 serializes the set as one record per container in ascending key order:
//
//	key, cardinality, tag (0 array, 1 bitmap), payload length, payload...
//
// Array payloads hold one word per value, bitmap payloads the raw bitmap words.
func (rb *RoaringBitmap[V, L]) ToRaw64() []uint64 {
	var out []uint64
	for _, c := range rb.containers {
		out = c.appendRaw64(out)
	}
	return out
}

// FromRaw64 decodes the output of ToRaw64.
//
// The cardinality of an array record is its payload length; the stored
// cardinality word is not consulted. Bitmap cardinality is recounted from the
// payload. Empty records are skipped.
func FromRaw64[V Value, L Half](words []uint64) (*RoaringBitmap[V, L], error) {
	rb := New[V, L]()
	if err := rb.loadRaw64(words); err != nil {
		return nil, err
	}
	return rb, nil
}

func (rb *RoaringBitmap[V, L]) loadRaw64(words []uint64) error {
	l := rb.layout
	var containers []*container[L]
	for next := 0; next < len(words); {
		if len(words)-next < recordHeaderWords {
			return malformed(next, "truncated header: %d words left", len(words)-next)
		}
		key, tag, size := words[next], words[next+2], words[next+3]
		if key > l.maxLow {
			return malformed(next, "key %d out of range", key)
		}
		if n := len(containers); n > 0 && uint64(containers[n-1].key) >= key {
			return malformed(next, "key %d not ascending", key)
		}
		payload := next + recordHeaderWords
		if size > uint64(len(words)-payload) {
			return malformed(next, "payload length %d exceeds %d remaining words", size, len(words)-payload)
		}
		body := words[payload : payload+int(size)]

		c := &container[L]{key: L(key), layout: l}
		switch storeKind(tag) {
		case arrayStore:
			array := make([]L, len(body))
			for i, w := range body {
				if w > l.maxLow || (i > 0 && w <= body[i-1]) {
					return malformed(next, "array value %d out of order or range", w)
				}
				array[i] = L(w)
			}
			c.store = newArrayStore(array...)
			c.cardinality = size
		case bitmapStore:
			if size != uint64(l.words()) {
				return malformed(next, "bitmap payload has %d words, want %d", size, l.words())
			}
			bm := willf_bitmap.NewWillfBitMapFromWords(append([]uint64(nil), body...))
			c.store = store[L]{kind: bitmapStore, bits: bm}
			c.cardinality = bm.Cardinality()
		default:
			return malformed(next, "unknown representation tag %d", tag)
		}
		c.ensureCorrectStore()
		if c.cardinality > 0 {
			containers = append(containers, c)
		}
		next = payload + int(size)
	}
	rb.containers = containers
	return nil
}

// MarshalBinary encodes ToRaw64 as little-endian bytes.
func (rb *RoaringBitmap[V, L]) MarshalBinary() ([]byte, error) {
	words := rb.ToRaw64()
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[8*i:], w)
	}
	return buf, nil
}

// UnmarshalBinary replaces the contents of rb with the set encoded in data.
func (rb *RoaringBitmap[V, L]) UnmarshalBinary(data []byte) error {
	if len(data)%8 != 0 {
		return malformed(len(data)/8, "%d bytes is not a whole number of words", len(data))
	}
	words := make([]uint64, len(data)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(data[8*i:])
	}
	if rb.layout == nil {
		rb.layout = newLayout[V, L]()
	}
	return rb.loadRaw64(words)
}

// WriteTo writes the binary encoding of rb to w.
func (rb *RoaringBitmap[V, L]) WriteTo(w io.Writer) (int64, error) {
	buf, _ := rb.MarshalBinary()
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom replaces the contents of rb with the encoding read from r until EOF.
func (rb *RoaringBitmap[V, L]) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return int64(len(buf)), err
	}
	return int64(len(buf)), rb.UnmarshalBinary(buf)
}
