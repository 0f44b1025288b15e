package bitmap_interface

import "iter"

// Bitmap 定长位图接口，所有位运算均原地修改接收者
type Bitmap interface {
	Set(uint) bool       // 将位置i设置为1，返回是否为新设置
	Clear(uint) bool     // 将位置i设置为0，返回之前是否为1
	Get(uint) bool       // 查询位置i的元素
	Size() uint          // 查询bitmap的长度(bit数)
	Reset()              // 清空bitmap元素
	Clone() Bitmap       // 拷贝该bitmap
	Equal(Bitmap) bool   // 比较和另一个Bitmap是否相等
	Cardinality() uint64 // 已设置值为1的元素个数

	Min() (uint, bool)         // 最小的置位下标
	Max() (uint, bool)         // 最大的置位下标
	NextSet(uint) (uint, bool) // 从i开始的下一个置位下标
	Words() []uint64           // 底层64位字，只读

	IsSubset(Bitmap) bool   // 是否为另一个bitmap的子集
	IsDisjoint(Bitmap) bool // 是否与另一个bitmap没有交集

	// bitmap的位运算
	And(Bitmap)    // 与模式
	Or(Bitmap)     // 或模式
	Xor(Bitmap)    // 异或
	AndNot(Bitmap) // 与非
}

// Set 压缩整数集合的对外接口，V为元素类型，S为集合自身类型
type Set[V any, S any] interface {
	Insert(V) bool
	Remove(V) bool
	Contains(V) bool
	Clear()
	IsEmpty() bool
	Cardinality() uint64
	All() iter.Seq[V]

	IsDisjoint(S) bool
	IsSubset(S) bool
	IsSuperset(S) bool

	UnionWith(S)
	IntersectWith(S)
	DifferenceWith(S)
	SymmetricDifferenceWith(S)
}
