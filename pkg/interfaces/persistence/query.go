// Package persistence 提供账本读路径的公共接口定义
//
// 🔍 **统一查询服务 (Ledger Read Path)**
//
// 本包定义 Meridian 节点 CQRS 读路径的统一查询接口。
// 查询面的所有组件只依赖这些接口，不直接接触存储引擎，
// 以此保持清晰的架构边界并便于测试替身注入。
//
// ⚠️ **核心约束**：
// - 只读操作：所有方法都是查询操作，绝不修改账本状态
// - 线程安全：任意数量的调用可以并发执行
// - 一致性：单次调用读取存储层当时可见的快照；
//   跨调用的时点一致性需由调用方向存储层钉住版本获得
package persistence

import (
	"context"
	"errors"

	"github.com/meridianchain/v1/pkg/types"
)

// ErrNotFound 存储层的统一"键不存在"哨兵错误
//
// 各查询方法在目标不存在时返回包装了此哨兵的错误，
// 调用方通过 errors.Is 区分"不存在"与其他存储故障。
var ErrNotFound = errors.New("persistence: key not found")

// LedgerQuery 账本统一查询接口（CQRS读路径）
//
// 组合所有领域查询接口，查询面组件按需依赖其子接口。
type LedgerQuery interface {
	ObjectQuery
	IndexQuery
	TransactionQuery
	CheckpointQuery
}

// ObjectQuery 对象状态查询接口
type ObjectQuery interface {
	// GetLatestVersion 获取对象的最新版本号
	//
	// deleted 为 true 表示最新版本是删除墓碑。
	// 对象从未存在时返回 ErrNotFound。
	GetLatestVersion(ctx context.Context, id types.ObjectID) (version types.Version, deleted bool, err error)

	// GetObject 获取指定版本的对象
	//
	// (id, version) 行不存在时返回 ErrNotFound。
	GetObject(ctx context.Context, id types.ObjectID, version types.Version) (*types.VersionedObject, error)

	// RetainedFloor 获取对象历史的保留下界
	//
	// 低于该版本的历史已被裁剪，返回 0 表示保留完整历史。
	RetainedFloor(ctx context.Context, id types.ObjectID) (types.Version, error)
}

// IndexQuery 二级索引查询接口
//
// 游标语义：after 是排他起点，迭代从严格大于（降序时严格小于）
// 该键的第一个条目开始。游标指向的键是否仍然存在不影响起点的
// 确定性——游标只作为排序边界使用。
type IndexQuery interface {
	// ListOwnedObjects 列出某地址持有的全部对象
	ListOwnedObjects(ctx context.Context, owner types.Address) ([]types.ObjectSummary, error)

	// ListDynamicFields 按对象标识符升序列出父对象的动态字段
	//
	// 最多返回 limit 条，after 为 nil 时从头开始。
	ListDynamicFields(ctx context.Context, parent types.ObjectID, after *types.ObjectID, limit int) ([]types.FieldSummary, error)

	// GetDynamicFieldObjectID 按字段名解析动态字段子对象的标识符
	//
	// 字段不存在时返回 ErrNotFound。
	GetDynamicFieldObjectID(ctx context.Context, parent types.ObjectID, name string) (types.ObjectID, error)
}

// TransactionQuery 交易查询接口
type TransactionQuery interface {
	// GetTransaction 获取已执行交易的负载与效果
	GetTransaction(ctx context.Context, digest types.Digest) (*types.TransactionPayload, *types.TransactionEffects, error)

	// GetTransactionCheckpoint 获取交易所属的检查点序号
	//
	// 交易尚未进入检查点时返回 nil。
	GetTransactionCheckpoint(ctx context.Context, digest types.Digest) (*types.CheckpointSequenceNumber, error)

	// GetTimestampMs 获取交易的执行时间戳（毫秒）
	GetTimestampMs(ctx context.Context, digest types.Digest) (uint64, error)

	// GetTotalTransactionNumber 获取节点已记录的交易总数
	GetTotalTransactionNumber(ctx context.Context) (uint64, error)

	// GetTransactionsInRange 按执行序号区间 [start, end) 列出交易摘要
	GetTransactionsInRange(ctx context.Context, start, end uint64) ([]types.Digest, error)

	// ListTransactions 按过滤器列出交易摘要
	//
	// 最多返回 limit 条；after 为排他游标；descending 控制排序方向。
	ListTransactions(ctx context.Context, filter types.TransactionFilter, after *types.Digest, limit int, descending bool) ([]types.Digest, error)
}

// CheckpointQuery 检查点查询接口
type CheckpointQuery interface {
	// GetLatestCheckpointSequenceNumber 获取最新检查点序号
	GetLatestCheckpointSequenceNumber(ctx context.Context) (types.CheckpointSequenceNumber, error)

	// GetCheckpointSummary 按序号获取检查点摘要
	GetCheckpointSummary(ctx context.Context, seq types.CheckpointSequenceNumber) (*types.CheckpointSummary, error)

	// GetCheckpointSummaryByDigest 按摘要获取检查点摘要
	GetCheckpointSummaryByDigest(ctx context.Context, digest types.Digest) (*types.CheckpointSummary, error)

	// GetCheckpointContents 按内容摘要获取检查点内容
	GetCheckpointContents(ctx context.Context, contentDigest types.Digest) (*types.CheckpointContents, error)
}
