package log

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/meridianchain/v1/internal/config"
	logInterface "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Config *config.Config `optional:"true"` // 节点配置
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger // 日志记录器接口
	ZapLogger *zap.Logger         // zap.Logger 具体类型（供需要 zap 特性的模块使用）
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// applyConfig 把用户配置覆盖到日志选项上
//
// 指针字段未设置时保留选项的默认值。
func applyConfig(opts *Options, c *config.LogConfig) {
	if c.Level != "" {
		opts.Level = c.Level
	}
	if c.FilePath != "" {
		opts.FilePath = c.FilePath
	}
	if c.ToConsole != nil {
		opts.ToConsole = *c.ToConsole
	}
	if c.MaxSizeMB != nil {
		opts.MaxSizeMB = *c.MaxSizeMB
	}
	if c.MaxBackups != nil {
		opts.MaxBackups = *c.MaxBackups
	}
	if c.MaxAgeDays != nil {
		opts.MaxAgeDays = *c.MaxAgeDays
	}
	if c.Compress != nil {
		opts.Compress = *c.Compress
	}
	if c.EnableCaller != nil {
		opts.EnableCaller = *c.EnableCaller
	}
	if c.EnableStacktrace != nil {
		opts.EnableStacktrace = *c.EnableStacktrace
	}
}

// ProvideServices 提供日志服务
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	opts := DefaultOptions()
	if params.Config != nil {
		applyConfig(opts, &params.Config.Log)
	}

	logger, err := New(opts)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}

	// 替换init()时用默认配置创建的全局日志器
	SetLogger(logger)

	concreteLogger, ok := logger.(*Logger)
	if !ok {
		return ModuleOutput{}, fmt.Errorf("logger 类型断言失败，无法获取 *zap.Logger")
	}

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: concreteLogger.zapLogger,
	}, nil
}
