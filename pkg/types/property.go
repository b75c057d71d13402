package types

import (
	"encoding/binary"
	"fmt"
)

// ============================================================================
//                              PropertyID - 监听器属性 ID
// ============================================================================

// PropertyID 监听器属性标识
//
// 数值即属性表中的下标，顺序不可调整。
type PropertyID uint32

const (
	// PropListenBacklog 监听队列长度（uint32，默认 0）
	PropListenBacklog PropertyID = iota
	// PropIPVersion 地址解析的 IP 版本偏好（IPVersion）
	PropIPVersion
	// PropState 当前状态（ListenerState，只读）
	PropState
	// PropAsyncCallbackModel 异步回调模型（CallbackModel，仅存储）
	PropAsyncCallbackModel
	// PropChannelType 通道类型（ChannelType，只读）
	PropChannelType
	// PropChannelBinding 通道绑定（ChannelBinding，只读）
	PropChannelBinding
	// PropConnectTimeout 连接超时毫秒数（uint32，供上层通道使用）
	PropConnectTimeout
	// PropIsMulticast 是否多播（bool）
	PropIsMulticast
	// PropMulticastInterfaces 多播接口列表（变长）
	PropMulticastInterfaces
	// PropMulticastLoopback 多播回环（bool）
	PropMulticastLoopback
	// PropCloseTimeout 关闭超时毫秒数（uint32）
	PropCloseTimeout
	// PropToHeaderMatchingOptions To 头匹配选项（uint32）
	PropToHeaderMatchingOptions
	// PropTransportURLMatchingOptions 传输 URL 匹配选项（uint32）
	PropTransportURLMatchingOptions
	// PropCustomListenerCallbacks 自定义监听器回调令牌（uint64）
	PropCustomListenerCallbacks
	// PropCustomListenerParameters 自定义监听器参数（变长）
	PropCustomListenerParameters
	// PropCustomListenerInstance 自定义监听器实例令牌（uint64，只读）
	PropCustomListenerInstance
	// PropDisallowedUserAgent 禁止的 User-Agent 子串，换行分隔（变长）
	PropDisallowedUserAgent

	// PropertyCount 属性总数
	PropertyCount = int(PropDisallowedUserAgent) + 1
)

var propertyNames = [...]string{
	PropListenBacklog:               "listen-backlog",
	PropIPVersion:                   "ip-version",
	PropState:                       "state",
	PropAsyncCallbackModel:          "async-callback-model",
	PropChannelType:                 "channel-type",
	PropChannelBinding:              "channel-binding",
	PropConnectTimeout:              "connect-timeout",
	PropIsMulticast:                 "is-multicast",
	PropMulticastInterfaces:         "multicast-interfaces",
	PropMulticastLoopback:           "multicast-loopback",
	PropCloseTimeout:                "close-timeout",
	PropToHeaderMatchingOptions:     "to-header-matching-options",
	PropTransportURLMatchingOptions: "transport-url-matching-options",
	PropCustomListenerCallbacks:     "custom-listener-callbacks",
	PropCustomListenerParameters:    "custom-listener-parameters",
	PropCustomListenerInstance:      "custom-listener-instance",
	PropDisallowedUserAgent:         "disallowed-user-agent",
}

// String 返回属性名
func (id PropertyID) String() string {
	if int(id) < len(propertyNames) {
		return propertyNames[id]
	}
	return fmt.Sprintf("property(%d)", uint32(id))
}

// ============================================================================
//                              Property - 属性覆盖项
// ============================================================================

// Property 一个属性覆盖项
//
// Value 为原始字节，定长属性的长度必须与 schema 中声明的大小一致。
// 使用 Uint32Property / BoolProperty 等辅助函数构造。
type Property struct {
	ID    PropertyID
	Value []byte
}

// 定长属性的字节大小
const (
	// Size32 32 位标量属性大小
	Size32 = 4
	// Size64 64 位标量属性大小
	Size64 = 8
)

// Uint32Property 构造 uint32 类型的属性
func Uint32Property(id PropertyID, v uint32) Property {
	return Property{ID: id, Value: EncodeUint32(v)}
}

// BoolProperty 构造 bool 类型的属性（4 字节存储）
func BoolProperty(id PropertyID, v bool) Property {
	return Property{ID: id, Value: EncodeBool(v)}
}

// Uint64Property 构造 uint64 类型的属性
func Uint64Property(id PropertyID, v uint64) Property {
	return Property{ID: id, Value: EncodeUint64(v)}
}

// BytesProperty 构造变长属性，值会被复制
func BytesProperty(id PropertyID, v []byte) Property {
	return Property{ID: id, Value: append([]byte(nil), v...)}
}

// ============================================================================
//                              编解码辅助
// ============================================================================

// EncodeUint32 以本机字节序编码 uint32
func EncodeUint32(v uint32) []byte {
	return binary.NativeEndian.AppendUint32(make([]byte, 0, Size32), v)
}

// DecodeUint32 以本机字节序解码 uint32
func DecodeUint32(b []byte) uint32 {
	return binary.NativeEndian.Uint32(b)
}

// EncodeUint64 以本机字节序编码 uint64
func EncodeUint64(v uint64) []byte {
	return binary.NativeEndian.AppendUint64(make([]byte, 0, Size64), v)
}

// DecodeUint64 以本机字节序解码 uint64
func DecodeUint64(b []byte) uint64 {
	return binary.NativeEndian.Uint64(b)
}

// EncodeBool 编码 bool，true 为 1
func EncodeBool(v bool) []byte {
	if v {
		return EncodeUint32(1)
	}
	return EncodeUint32(0)
}

// DecodeBool 解码 bool，非零即 true
func DecodeBool(b []byte) bool {
	return DecodeUint32(b) != 0
}
