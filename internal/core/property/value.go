package property

import (
	"github.com/dep2p/go-chanlistener/pkg/types"
)

// ============================================================================
//                              类型化访问
// ============================================================================

// GetUint32 读取 4 字节属性
func (t *Table) GetUint32(id types.PropertyID) (uint32, error) {
	var buf [types.Size32]byte
	if err := t.Get(id, buf[:]); err != nil {
		return 0, err
	}
	return types.DecodeUint32(buf[:]), nil
}

// SetUint32 写入 4 字节属性
func (t *Table) SetUint32(id types.PropertyID, v uint32) error {
	return t.Set(id, types.EncodeUint32(v))
}

// GetBool 读取 bool 属性
func (t *Table) GetBool(id types.PropertyID) (bool, error) {
	v, err := t.GetUint32(id)
	return v != 0, err
}

// SetBool 写入 bool 属性
func (t *Table) SetBool(id types.PropertyID, v bool) error {
	return t.Set(id, types.EncodeBool(v))
}

// GetUint64 读取 8 字节属性
func (t *Table) GetUint64(id types.PropertyID) (uint64, error) {
	var buf [types.Size64]byte
	if err := t.Get(id, buf[:]); err != nil {
		return 0, err
	}
	return types.DecodeUint64(buf[:]), nil
}

// SetUint64 写入 8 字节属性
func (t *Table) SetUint64(id types.PropertyID, v uint64) error {
	return t.Set(id, types.EncodeUint64(v))
}

// Bytes 返回属性当前值的副本
func (t *Table) Bytes(id types.PropertyID) ([]byte, error) {
	n, err := t.Size(id)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := t.Get(id, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
