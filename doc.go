// Package chanlistener 提供面向连接的通道监听器
//
// 监听器是通道层的服务端入口：它持有一组可配置属性，
// 在 Open 时把监听 URL 解析为本地地址并创建处于监听状态的 TCP 套接字，
// 上层通道从该套接字接受连接。
//
// # 生命周期
//
//	Create ──► Created ──Open──► Open ──Close──► Closed
//	                                 Free（任意状态）──► 句柄失效
//
// Open 只能在 Created 状态调用；失败时状态不变，可以重试。
// Close 在任何有效状态都可以调用。Free 之后的所有操作返回 ErrInvalidArgument。
//
// # 快速开始
//
//	l, err := chanlistener.Create(
//	    types.ChannelTypeDuplexSession, types.BindingTCP,
//	    []types.Property{types.Uint32Property(types.PropListenBacklog, 128)},
//	    nil,
//	)
//	if err != nil {
//	    return err
//	}
//	defer l.Free()
//
//	if err := l.Open("net.tcp://+:808/service"); err != nil {
//	    return err
//	}
//	addr, _ := l.Addr()
//
// # 监听 URL
//
// 支持 http(80)、https(443)、net.tcp(808)、soap.udp(3702) 四种 scheme，
// 括号内为缺省端口。主机为 + 或 * 时监听所有本地地址。
// 也可以使用多地址形式，例如 /ip4/127.0.0.1/tcp/4001。
//
// # 属性
//
// 属性以原始字节读写，定长属性的缓冲区大小必须与声明大小一致。
// State、ChannelType、ChannelBinding、CustomListenerInstance 为只读属性。
// 完整列表见 pkg/types 中的 PropertyID 常量。
//
// # 配置与依赖注入
//
// FromConfig 按 JSON 配置创建监听器，Module 提供 Fx 模块，
// NewApp 构建一个启动时打开、停止时释放监听器的 Fx 应用。
//
// # 并发
//
// 单个监听器的所有操作互斥执行，Open 期间的地址解析和 bind 会持有锁。
// 不同监听器之间互不影响。
package chanlistener
