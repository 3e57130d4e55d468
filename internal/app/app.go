// Package app 组装Meridian查询节点的全部模块
//
// 🚀 **应用装配 (Application Assembly)**
//
// 依赖注入驱动的装配层：配置 → 日志 → 存储 → 查询 → RPC。
// 各模块只声明自己的依赖与产出，装配顺序由fx按依赖图推导。
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/meridianchain/v1/internal/api/jsonrpc"
	"github.com/meridianchain/v1/internal/api/jsonrpc/methods"
	"github.com/meridianchain/v1/internal/config"
	"github.com/meridianchain/v1/internal/core/infrastructure/log"
	"github.com/meridianchain/v1/internal/core/infrastructure/storage/badger"
	"github.com/meridianchain/v1/internal/core/persistence/query"
)

// startTimeout 模块启动预算，存储打开与端口监听都应在此之内完成
const startTimeout = 30 * time.Second

// stopTimeout 优雅停机预算
const stopTimeout = 15 * time.Second

// Modules 返回节点的完整模块集
func Modules(configPath string) fx.Option {
	return fx.Options(
		config.Module(configPath),
		log.Module(),
		badger.Module(),
		query.Module(),
		jsonrpc.Module(),
		methods.Module(),
	)
}

// App 查询节点应用
type App struct {
	fxApp *fx.App
}

// New 创建查询节点应用
func New(configPath string, extra ...fx.Option) *App {
	opts := []fx.Option{
		Modules(configPath),
		fx.StartTimeout(startTimeout),
		fx.StopTimeout(stopTimeout),
		// fx自身的装配日志走zap之外的通道，保持安静
		fx.NopLogger,
	}
	opts = append(opts, extra...)

	return &App{fxApp: fx.New(opts...)}
}

// Start 启动全部模块
func (a *App) Start(ctx context.Context) error {
	if err := a.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动节点失败: %w", err)
	}
	return nil
}

// Stop 按依赖逆序停止全部模块
func (a *App) Stop(ctx context.Context) error {
	if err := a.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止节点失败: %w", err)
	}
	return nil
}

// Wait 阻塞直到收到停止信号
func (a *App) Wait() <-chan fx.ShutdownSignal {
	return a.fxApp.Wait()
}

// Err 返回装配阶段的错误，无错误时为nil
func (a *App) Err() error {
	return a.fxApp.Err()
}
