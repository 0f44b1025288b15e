package roaring_bitmap

import (
	"fmt"
	"math/bits"
)

// Value is the full-width member type of a set.
type Value interface {
	~uint16 | ~uint32 | ~uint64
}

// Half is the half-width type used for container keys and stored low values.
type Half interface {
	~uint8 | ~uint16 | ~uint32
}

// layout 由宽度推导出的常量，每个集合构造时计算一次
type layout struct {
	lowBits uint   // 低半部分的位宽
	limit   uint64 // 数组容器的最大基数，超过则转换为位图
	domain  uint   // 低半部分可表示的值的个数
	maxLow  uint64
}

func newLayout[V Value, L Half]() *layout {
	lowBits := uint(bits.OnesCount64(uint64(^L(0))))
	valueBits := uint(bits.OnesCount64(uint64(^V(0))))
	if valueBits != 2*lowBits {
		panic(fmt.Sprintf("roaring_bitmap: %d-bit values cannot be split into %d-bit halves", valueBits, lowBits))
	}
	return &layout{
		lowBits: lowBits,
		limit:   1 << (lowBits - 4),
		domain:  1 << lowBits,
		maxLow:  uint64(^L(0)),
	}
}

// words 位图容器所需的64位字个数
func (l *layout) words() uint {
	return (l.domain + 63) / 64
}

func split[V Value, L Half](v V, lowBits uint) (key L, low L) {
	return L(uint64(v) >> lowBits), L(v)
}

func join[V Value, L Half](key L, low L, lowBits uint) V {
	return V(uint64(key)<<lowBits | uint64(low))
}
