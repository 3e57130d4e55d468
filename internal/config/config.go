// Package config 提供Meridian节点的配置加载与校验
//
// ⚙️ **配置系统 (Configuration)**
//
// 配置来源为JSON文件，未提供的字段使用默认值。
// 可选字段使用指针类型，以区分"未设置"与"显式设置为零值"。
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config 节点配置根结构
type Config struct {
	Node    NodeConfig    `json:"node"`
	Log     LogConfig     `json:"log"`
	Storage StorageConfig `json:"storage"`
	API     APIConfig     `json:"api"`
}

// NodeConfig 节点基础配置
type NodeConfig struct {
	Name    string `json:"name"`    // 节点名称，用于日志标识
	DataDir string `json:"dataDir"` // 数据根目录
}

// LogConfig 日志配置
//
// 指针字段未设置时沿用日志实现的默认值。
type LogConfig struct {
	Level            string `json:"level,omitempty"`
	FilePath         string `json:"filePath,omitempty"`
	ToConsole        *bool  `json:"toConsole,omitempty"`
	MaxSizeMB        *int   `json:"maxSizeMb,omitempty"`
	MaxBackups       *int   `json:"maxBackups,omitempty"`
	MaxAgeDays       *int   `json:"maxAgeDays,omitempty"`
	Compress         *bool  `json:"compress,omitempty"`
	EnableCaller     *bool  `json:"enableCaller,omitempty"`
	EnableStacktrace *bool  `json:"enableStacktrace,omitempty"`
}

// StorageConfig 存储引擎配置
type StorageConfig struct {
	Path             string `json:"path,omitempty"`             // Badger数据目录，默认 {dataDir}/badger
	InMemory         bool   `json:"inMemory,omitempty"`         // 纯内存模式，仅用于测试
	ValueLogFileSize *int64 `json:"valueLogFileSize,omitempty"` // 单个value log文件上限（字节）
	NumCompactors    *int   `json:"numCompactors,omitempty"`    // 压缩协程数
}

// APIConfig JSON-RPC服务配置
type APIConfig struct {
	ListenAddr       string `json:"listenAddr,omitempty"`       // 监听地址，默认 :9650
	MetricsEnabled   *bool  `json:"metricsEnabled,omitempty"`   // 是否暴露Prometheus指标
	MaxBodyBytes     *int64 `json:"maxBodyBytes,omitempty"`     // 请求体大小上限
	RequestTimeoutMs *int   `json:"requestTimeoutMs,omitempty"` // 单请求超时（毫秒）
}

// 默认值
const (
	DefaultDataDir          = "./data"
	DefaultListenAddr       = ":9650"
	DefaultMaxBodyBytes     = int64(4 << 20)
	DefaultRequestTimeoutMs = 30_000
)

// Default 返回内置默认配置
func Default() *Config {
	return &Config{
		Node: NodeConfig{
			Name:    "meridian-node",
			DataDir: DefaultDataDir,
		},
		API: APIConfig{
			ListenAddr: DefaultListenAddr,
		},
	}
}

// Load 从JSON文件加载配置
//
// path为空时返回默认配置。未设置的字段落回默认值。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置校验失败: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 校验配置的合法性
func (c *Config) Validate() error {
	if c.Node.DataDir == "" {
		return fmt.Errorf("node.dataDir 不能为空")
	}
	if c.API.MaxBodyBytes != nil && *c.API.MaxBodyBytes <= 0 {
		return fmt.Errorf("api.maxBodyBytes 必须为正数: %d", *c.API.MaxBodyBytes)
	}
	if c.API.RequestTimeoutMs != nil && *c.API.RequestTimeoutMs <= 0 {
		return fmt.Errorf("api.requestTimeoutMs 必须为正数: %d", *c.API.RequestTimeoutMs)
	}
	if c.Storage.ValueLogFileSize != nil && *c.Storage.ValueLogFileSize <= 0 {
		return fmt.Errorf("storage.valueLogFileSize 必须为正数: %d", *c.Storage.ValueLogFileSize)
	}
	return nil
}

// StoragePath 返回存储引擎的数据目录
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(c.Node.DataDir, "badger")
}

// GetMaxBodyBytes 返回请求体大小上限
func (c *APIConfig) GetMaxBodyBytes() int64 {
	if c.MaxBodyBytes != nil {
		return *c.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

// GetRequestTimeoutMs 返回单请求超时（毫秒）
func (c *APIConfig) GetRequestTimeoutMs() int {
	if c.RequestTimeoutMs != nil {
		return *c.RequestTimeoutMs
	}
	return DefaultRequestTimeoutMs
}

// IsMetricsEnabled 返回是否暴露Prometheus指标
func (c *APIConfig) IsMetricsEnabled() bool {
	if c.MetricsEnabled != nil {
		return *c.MetricsEnabled
	}
	return true
}
