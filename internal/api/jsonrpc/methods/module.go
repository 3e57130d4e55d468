package methods

import (
	"go.uber.org/fx"

	"github.com/meridianchain/v1/internal/api/jsonrpc"
	"github.com/meridianchain/v1/internal/core/checkpoint"
	"github.com/meridianchain/v1/internal/core/object"
	log "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
)

// Module 返回账本查询方法模块
//
// 基于统一账本查询服务构建解析器与各方法集，并注册到JSON-RPC服务器。
func Module() fx.Option {
	return fx.Module("methods",
		fx.Provide(
			fx.Annotate(
				func(store persistence.LedgerQuery, logger log.Logger) (*object.Resolver, error) {
					return object.NewResolver(store, logger)
				},
				fx.ParamTags(`name:"ledger_query"`, ``),
			),
			fx.Annotate(
				func(store persistence.LedgerQuery, logger log.Logger) (*checkpoint.Lookup, error) {
					return checkpoint.NewLookup(store, logger)
				},
				fx.ParamTags(`name:"ledger_query"`, ``),
			),
			fx.Annotate(
				NewObjectMethods,
				fx.ParamTags(``, `name:"ledger_query"`, ``),
			),
			fx.Annotate(
				NewTxMethods,
				fx.ParamTags(`name:"ledger_query"`, ``),
			),
			NewContractMethods,
			NewCheckpointMethods,
		),

		fx.Invoke(RegisterAll),
	)
}

// RegisterAll 把全部方法集注册到JSON-RPC服务器
func RegisterAll(
	server *jsonrpc.Server,
	objects *ObjectMethods,
	txs *TxMethods,
	contracts *ContractMethods,
	checkpoints *CheckpointMethods,
	logger log.Logger,
) {
	objects.Register(server)
	txs.Register(server)
	contracts.Register(server)
	checkpoints.Register(server)
	if logger != nil {
		logger.Info("✅ 账本查询方法已全部注册")
	}
}
