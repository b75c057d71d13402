// Package property 提供基于 schema 的通用属性表
//
// 每种对象（监听器、通道等）用一张静态 schema 描述自己的配置面：
// 每个属性一个 Descriptor{Size, ReadOnly}，Size 为 0 表示变长。
// 实例化时所有定长属性布局在同一块连续缓冲区中，零值初始化。
//
// 使用示例：
//
//	var schema = property.Schema{
//	    {Size: 4},                 // 0: backlog
//	    {Size: 4, ReadOnly: true}, // 1: state
//	    {Size: 0},                 // 2: 变长参数
//	}
//
//	t := property.New(schema)
//	err := t.Set(0, types.EncodeUint32(16))
//
// Table 本身不加锁，由持有者负责同步。
package property

import (
	"fmt"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// DefaultMaxVariableSize 变长属性的默认存储预算（所有变长属性合计）
const DefaultMaxVariableSize = 64 * 1024

// Descriptor 属性描述
type Descriptor struct {
	// Size 定长属性的字节数，0 表示变长
	Size int

	// ReadOnly 初始化后不可通过 Set 修改
	ReadOnly bool
}

// Schema 有序的属性描述列表，下标即属性 ID
type Schema []Descriptor

// backingSize 返回定长属性所需的总字节数
func (s Schema) backingSize() int {
	n := 0
	for _, d := range s {
		n += d.Size
	}
	return n
}

// slot 属性槽
type slot struct {
	value []byte
	size  int
}

// Table 属性表实例
type Table struct {
	schema  Schema
	slots   []slot
	backing []byte

	maxVariable int
	variableUse int
}

// New 按 schema 创建属性表
func New(schema Schema) *Table {
	t := &Table{maxVariable: DefaultMaxVariableSize}
	t.Init(schema)
	return t
}

// Init 按 schema 布局属性槽
//
// 定长属性依次切分同一块 backing 缓冲区，全部置零；变长属性初始为空。
func (t *Table) Init(schema Schema) {
	t.schema = schema
	t.slots = make([]slot, len(schema))
	t.backing = make([]byte, schema.backingSize())
	t.variableUse = 0
	if t.maxVariable == 0 {
		t.maxVariable = DefaultMaxVariableSize
	}

	off := 0
	for i, d := range schema {
		if d.Size == 0 {
			continue
		}
		t.slots[i] = slot{
			value: t.backing[off : off+d.Size : off+d.Size],
			size:  d.Size,
		}
		off += d.Size
	}
}

// SetMaxVariableSize 设置变长属性的存储预算
func (t *Table) SetMaxVariableSize(n int) {
	t.maxVariable = n
}

// Len 返回属性个数
func (t *Table) Len() int {
	return len(t.slots)
}

// Descriptor 返回属性描述
func (t *Table) Descriptor(id types.PropertyID) (Descriptor, error) {
	if !t.valid(id) {
		return Descriptor{}, fmt.Errorf("property %s: id out of range: %w", id, types.ErrInvalidArgument)
	}
	return t.schema[id], nil
}

// Size 返回属性当前存储的字节数
func (t *Table) Size(id types.PropertyID) (int, error) {
	if !t.valid(id) {
		return 0, fmt.Errorf("property %s: id out of range: %w", id, types.ErrInvalidArgument)
	}
	return t.slots[id].size, nil
}

// Set 写入属性
//
// 以下情况返回 ErrInvalidArgument 且不修改任何状态：
//   - id 越界
//   - 属性只读
//   - 定长属性未提供值，或长度与声明大小不一致
//
// 变长属性会复制 value；超出存储预算返回 ErrOutOfMemory。
func (t *Table) Set(id types.PropertyID, value []byte) error {
	if !t.valid(id) {
		return fmt.Errorf("property %s: id out of range: %w", id, types.ErrInvalidArgument)
	}
	if t.schema[id].ReadOnly {
		return fmt.Errorf("property %s: read-only: %w", id, types.ErrInvalidArgument)
	}
	return t.store(id, value)
}

// SetInit 写入属性，忽略只读标志
//
// 仅供属性表持有者在构造阶段填充只读属性。
func (t *Table) SetInit(id types.PropertyID, value []byte) error {
	if !t.valid(id) {
		return fmt.Errorf("property %s: id out of range: %w", id, types.ErrInvalidArgument)
	}
	return t.store(id, value)
}

func (t *Table) store(id types.PropertyID, value []byte) error {
	d := t.schema[id]
	s := &t.slots[id]

	if d.Size != 0 {
		if len(value) == 0 {
			return fmt.Errorf("property %s: missing value: %w", id, types.ErrInvalidArgument)
		}
		if len(value) != d.Size {
			return fmt.Errorf("property %s: size %d, want %d: %w", id, len(value), d.Size, types.ErrInvalidArgument)
		}
		copy(s.value, value)
		return nil
	}

	use := t.variableUse - s.size + len(value)
	if use > t.maxVariable {
		return fmt.Errorf("property %s: %d bytes exceeds budget %d: %w", id, use, t.maxVariable, types.ErrOutOfMemory)
	}
	if len(value) == 0 {
		s.value = nil
	} else {
		s.value = append(make([]byte, 0, len(value)), value...)
	}
	s.size = len(value)
	t.variableUse = use
	return nil
}

// Get 读取属性到 buf
//
// id 越界、buf 为 nil 或 len(buf) 与存储大小不一致时返回 ErrInvalidArgument，buf 保持不变。
// 空的变长属性可以用长度为 0 的非 nil buf 读取。
func (t *Table) Get(id types.PropertyID, buf []byte) error {
	if !t.valid(id) {
		return fmt.Errorf("property %s: id out of range: %w", id, types.ErrInvalidArgument)
	}
	if buf == nil {
		return fmt.Errorf("property %s: nil buffer: %w", id, types.ErrInvalidArgument)
	}
	s := t.slots[id]
	if len(buf) != s.size {
		return fmt.Errorf("property %s: buffer size %d, want %d: %w", id, len(buf), s.size, types.ErrInvalidArgument)
	}
	copy(buf, s.value)
	return nil
}

// Release 释放存储，之后的任何访问都返回 ErrInvalidArgument
func (t *Table) Release() {
	t.schema = nil
	t.slots = nil
	t.backing = nil
	t.variableUse = 0
}

func (t *Table) valid(id types.PropertyID) bool {
	return int(id) < len(t.slots)
}
