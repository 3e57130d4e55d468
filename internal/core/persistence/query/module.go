package query

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/infrastructure/storage"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
)

// ModuleInput 定义 query 模块的输入依赖
type ModuleInput struct {
	fx.In

	Logger log.Logger      `optional:"true"`  // 日志记录器
	Store  storage.KVStore `optional:"false"` // 键值存储
}

// ModuleOutput 定义 query 模块的输出服务
type ModuleOutput struct {
	fx.Out

	LedgerQuery persistence.LedgerQuery `name:"ledger_query"` // 统一账本查询服务
}

// ProvideServices 提供 query 模块的所有服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	// 🎯 为查询模块添加 module 字段，日志将路由到 node-system.log
	var queryLogger log.Logger
	if input.Logger != nil {
		queryLogger = input.Logger.With("module", "query")
	}

	ledgerQuery, err := NewService(input.Store, queryLogger)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建 LedgerQuery 失败: %w", err)
	}

	return ModuleOutput{LedgerQuery: ledgerQuery}, nil
}

// Module fx模块定义
//
// 🎯 **模块职责**：
// 提供统一账本查询服务（LedgerQuery）的依赖注入配置。
//
// 💡 **设计原则**：
// - 只读入口：LedgerQuery 是唯一的账本读取入口
// - 接口隔离：调用方只依赖公共接口（pkg/interfaces/persistence）
func Module() fx.Option {
	return fx.Module(
		"query",

		fx.Provide(
			ProvideServices,
		),

		fx.Invoke(
			fx.Annotate(
				func(ledgerQuery persistence.LedgerQuery, logger log.Logger, lc fx.Lifecycle) {
					lc.Append(fx.Hook{
						OnStart: func(ctx context.Context) error {
							if ledgerQuery == nil {
								return fmt.Errorf("LedgerQuery 实例未成功创建")
							}
							if logger != nil {
								logger.Info("🚀 Query 模块已启动")
							}
							return nil
						},
						OnStop: func(ctx context.Context) error {
							if logger != nil {
								logger.Info("🛑 Query 模块已停止")
							}
							return nil
						},
					})
				},
				fx.ParamTags(
					`name:"ledger_query"`, // persistence.LedgerQuery
					`optional:"true"`,     // log.Logger
					``,                    // fx.Lifecycle
				),
			),
		),
	)
}
