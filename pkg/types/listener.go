package types

// ============================================================================
//                              ChannelType - 通道类型
// ============================================================================

// ChannelType 监听器接受的通道类型
//
// 数值是位组合：Input/Output 表示方向，Session 表示会话语义。
type ChannelType uint32

const (
	// ChannelTypeInput 单向输入（数据报风格）
	ChannelTypeInput ChannelType = 0x1
	// ChannelTypeOutput 单向输出
	ChannelTypeOutput ChannelType = 0x2
	// ChannelTypeSession 会话标志位
	ChannelTypeSession ChannelType = 0x4
	// ChannelTypeDuplex 双向无会话
	ChannelTypeDuplex = ChannelTypeInput | ChannelTypeOutput
	// ChannelTypeInputSession 单向输入会话
	ChannelTypeInputSession = ChannelTypeInput | ChannelTypeSession
	// ChannelTypeOutputSession 单向输出会话
	ChannelTypeOutputSession = ChannelTypeOutput | ChannelTypeSession
	// ChannelTypeDuplexSession 双向会话（本实现唯一支持的类型）
	ChannelTypeDuplexSession = ChannelTypeDuplex | ChannelTypeSession
	// ChannelTypeRequest 请求通道
	ChannelTypeRequest ChannelType = 0x8
	// ChannelTypeReply 应答通道
	ChannelTypeReply ChannelType = 0x10
)

// String 返回通道类型的字符串表示
func (t ChannelType) String() string {
	switch t {
	case ChannelTypeInput:
		return "input"
	case ChannelTypeOutput:
		return "output"
	case ChannelTypeDuplex:
		return "duplex"
	case ChannelTypeInputSession:
		return "input-session"
	case ChannelTypeOutputSession:
		return "output-session"
	case ChannelTypeDuplexSession:
		return "duplex-session"
	case ChannelTypeRequest:
		return "request"
	case ChannelTypeReply:
		return "reply"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              ChannelBinding - 通道绑定
// ============================================================================

// ChannelBinding 通道使用的传输绑定
type ChannelBinding uint32

const (
	// BindingHTTP HTTP 绑定
	BindingHTTP ChannelBinding = iota
	// BindingTCP 面向连接的 TCP 绑定（本实现唯一支持的绑定）
	BindingTCP
	// BindingUDP UDP 绑定
	BindingUDP
	// BindingCustom 自定义绑定
	BindingCustom
	// BindingNamedPipe 命名管道绑定
	BindingNamedPipe
)

// String 返回绑定的字符串表示
func (b ChannelBinding) String() string {
	switch b {
	case BindingHTTP:
		return "http"
	case BindingTCP:
		return "tcp"
	case BindingUDP:
		return "udp"
	case BindingCustom:
		return "custom"
	case BindingNamedPipe:
		return "named-pipe"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              ListenerState - 监听器状态
// ============================================================================

// ListenerState 监听器生命周期状态
//
// 状态流转：Created → Open → Closed。
// Opening/Faulted/Closing 保留用于与上层通道状态编号对齐，本实现不会进入这些状态。
type ListenerState uint32

const (
	// StateCreated 已创建，尚未打开
	StateCreated ListenerState = iota
	// StateOpening 打开中（保留）
	StateOpening
	// StateOpen 已打开，套接字处于监听状态
	StateOpen
	// StateFaulted 故障（保留）
	StateFaulted
	// StateClosing 关闭中（保留）
	StateClosing
	// StateClosed 已关闭
	StateClosed
)

// String 返回状态的字符串表示
func (s ListenerState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateFaulted:
		return "faulted"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              IPVersion - IP 版本偏好
// ============================================================================

// IPVersion 地址解析时接受的 IP 版本
//
// 零值表示未设置，与 IPVersionAuto 等价。
type IPVersion uint32

const (
	// IPVersion4 仅 IPv4
	IPVersion4 IPVersion = 1
	// IPVersion6 仅 IPv6
	IPVersion6 IPVersion = 2
	// IPVersionAuto IPv4 与 IPv6 均可，按解析结果顺序选取
	IPVersionAuto IPVersion = 3
)

// String 返回 IP 版本的字符串表示
func (v IPVersion) String() string {
	switch v {
	case IPVersion4:
		return "ipv4"
	case IPVersion6:
		return "ipv6"
	case IPVersionAuto:
		return "auto"
	default:
		return "unset"
	}
}

// Accepts 检查给定地址族是否被该偏好接受
func (v IPVersion) Accepts(is4 bool) bool {
	switch v {
	case IPVersion4:
		return is4
	case IPVersion6:
		return !is4
	default:
		return true
	}
}

// ============================================================================
//                              CallbackModel - 回调模型
// ============================================================================

// CallbackModel 调用方声明的异步回调模型
//
// 本实现只做存储，不解释该值。
type CallbackModel uint32

const (
	// CallbackShort 短回调
	CallbackShort CallbackModel = iota
	// CallbackLong 长回调
	CallbackLong
)

// String 返回回调模型的字符串表示
func (m CallbackModel) String() string {
	switch m {
	case CallbackShort:
		return "short"
	case CallbackLong:
		return "long"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              SecurityDescription - 安全描述
// ============================================================================

// SecurityDescription 安全描述
//
// 创建监听器时可以传入，但当前实现不支持安全绑定，传入的值会被忽略并记录警告日志。
type SecurityDescription struct {
	// Bindings 安全绑定名称列表
	Bindings []string

	// Properties 附加属性
	Properties map[string]string
}
