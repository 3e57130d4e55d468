package config

import (
	"go.uber.org/fx"
)

// Module 返回配置模块
//
// 从指定路径加载配置文件并注入 *Config。
// path为空时使用内置默认配置。
func Module(path string) fx.Option {
	return fx.Module("config",
		fx.Provide(func() (*Config, error) {
			return Load(path)
		}),
	)
}
