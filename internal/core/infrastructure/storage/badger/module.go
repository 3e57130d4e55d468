package badger

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/meridianchain/v1/internal/config"
	log "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/infrastructure/storage"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Config *config.Config
	Logger log.Logger `optional:"true"`
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	KVStore  storage.KVStore
	KVWriter storage.KVWriter
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),

		fx.Invoke(func(store storage.KVStore, lc fx.Lifecycle, logger log.Logger) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					if logger != nil {
						logger.Info("🛑 Storage 模块正在关闭")
					}
					return store.Close()
				},
			})
		}),
	)
}

// ProvideServices 提供存储服务
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	store, err := New(OptionsFromConfig(params.Config), params.Logger)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建BadgerDB存储失败: %w", err)
	}
	return ModuleOutput{
		KVStore:  store,
		KVWriter: store,
	}, nil
}
