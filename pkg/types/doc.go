// Package types 定义监听器的公共数据结构
//
// 这是最底层的包，不依赖任何内部包。
//
// # 文件组织
//
//   - listener.go  - ChannelType, ChannelBinding, ListenerState, IPVersion, CallbackModel, SecurityDescription
//   - property.go  - PropertyID, Property 及定长属性的编解码
//   - errors.go    - 错误类别 (Err*) 与 ResolveError, TransportError, URLError
//
// 属性值以本机字节序存储，定长属性为 4 或 8 字节。
package types
