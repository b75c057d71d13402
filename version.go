package chanlistener

import "fmt"

// Version 当前版本
const Version = "v0.1.0"

// 构建时通过 -ldflags 注入
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回版本摘要
func VersionInfo() string {
	commit := GitCommit
	if commit == "" {
		commit = "unknown"
	}
	if BuildDate == "" {
		return fmt.Sprintf("chanlistener %s (%s)", Version, commit)
	}
	return fmt.Sprintf("chanlistener %s (%s, %s)", Version, commit, BuildDate)
}
