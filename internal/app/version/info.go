// Package version provides version information for the application.
package version

import (
	"fmt"
	"runtime"
)

// 构建时注入的变量，通过ldflags设置
var (
	// Version 语义化版本号
	Version = "v0.1.0"

	// BuildTime 构建时间戳（RFC3339格式）
	BuildTime = "unknown"
	// GitCommit 构建所在的提交
	GitCommit = "unknown"

	// GoVersion Go版本
	GoVersion = runtime.Version()
)

// BuildInfo 完整构建信息结构
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
	GitCommit string `json:"gitCommit"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get 获取完整构建信息
func Get() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String 返回单行版本描述
func (b *BuildInfo) String() string {
	return fmt.Sprintf("meridian %s (%s, %s, %s)", b.Version, b.GitCommit, b.GoVersion, b.Platform)
}
