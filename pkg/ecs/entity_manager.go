package ecs

// EntityID 是实体的唯一标识符
//
// 低 32 位为槽位索引，高 32 位为槽位世代。槽位被回收复用后世代递增，
// 因此旧 ID 永远不会解析到新实体。0 保留为无效 ID。
type EntityID uint64

// InvalidID 无效实体 ID
const InvalidID EntityID = 0

func makeID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

// Index 返回槽位索引
func (id EntityID) Index() uint32 {
	return uint32(id)
}

// Generation 返回槽位世代
func (id EntityID) Generation() uint32 {
	return uint32(id >> 32)
}

type slot[T any] struct {
	value      T
	generation uint32 // 从 1 开始，保证有效 ID 非 0
	alive      bool
}

// Pool 以槽位数组存储同类实体
//
// 删除只做墓碑标记并把槽位放回空闲链表，不重建切片，
// 帧与帧之间实体 ID 保持稳定
type Pool[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// NewPool 创建一个预分配容量的实体池
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{
		slots: make([]slot[T], 0, capacity),
		free:  make([]uint32, 0, capacity),
	}
}

// Create 存入新实体并返回其 ID
func (p *Pool[T]) Create(value T) EntityID {
	var index uint32
	if n := len(p.free); n > 0 {
		index = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.slots = append(p.slots, slot[T]{})
		index = uint32(len(p.slots) - 1)
	}

	s := &p.slots[index]
	s.generation++
	s.value = value
	s.alive = true
	p.live++
	return makeID(index, s.generation)
}

// Get 获取实体数据指针；ID 过期或不存在时返回 false
func (p *Pool[T]) Get(id EntityID) (*T, bool) {
	index := id.Index()
	if int(index) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[index]
	if !s.alive || s.generation != id.Generation() {
		return nil, false
	}
	return &s.value, true
}

// Has 判断实体是否存活
func (p *Pool[T]) Has(id EntityID) bool {
	_, ok := p.Get(id)
	return ok
}

// Destroy 删除实体，仅第一次调用返回 true
func (p *Pool[T]) Destroy(id EntityID) bool {
	if !p.Has(id) {
		return false
	}
	index := id.Index()
	s := &p.slots[index]
	var zero T
	s.value = zero
	s.alive = false
	p.free = append(p.free, index)
	p.live--
	return true
}

// Len 返回存活实体数量
func (p *Pool[T]) Len() int {
	return p.live
}

// Each 按槽位顺序遍历存活实体，fn 返回 false 时停止
//
// 遍历过程中删除当前或其他实体是安全的；遍历中新建的实体可能被访问到
func (p *Pool[T]) Each(fn func(id EntityID, value *T) bool) {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.alive {
			continue
		}
		if !fn(makeID(uint32(i), s.generation), &s.value) {
			return
		}
	}
}

// AppendIDs 把所有存活实体 ID 追加到 dst 并返回
func (p *Pool[T]) AppendIDs(dst []EntityID) []EntityID {
	for i := range p.slots {
		if p.slots[i].alive {
			dst = append(dst, makeID(uint32(i), p.slots[i].generation))
		}
	}
	return dst
}

// Clear 删除所有实体，已发出的 ID 全部失效
func (p *Pool[T]) Clear() {
	var zero T
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		s := &p.slots[i]
		if s.alive {
			s.alive = false
			s.value = zero
		}
		p.free = append(p.free, uint32(i))
	}
	p.live = 0
}
