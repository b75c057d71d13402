package config

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Duration 支持 JSON 字符串的 time.Duration
//
// 接受 "30s"、"1500ms" 等字符串，也接受纳秒整数。
// 序列化时输出字符串形式。
type Duration time.Duration

// UnmarshalJSON 实现 json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\" or integer nanoseconds")
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Duration 返回 time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Milliseconds 返回毫秒数，超出 uint32 时截断为最大值
//
// 监听器的超时类属性以 uint32 毫秒存储。
func (d Duration) Milliseconds() uint32 {
	ms := time.Duration(d).Milliseconds()
	switch {
	case ms <= 0:
		return 0
	case ms > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(ms)
	}
}

// String 返回字符串表示
func (d Duration) String() string {
	return time.Duration(d).String()
}
