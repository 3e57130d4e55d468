package methods

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridianchain/v1/internal/api/jsonrpc"
	"github.com/meridianchain/v1/internal/core/persistence/query"
	txcodec "github.com/meridianchain/v1/internal/core/tx/codec"
	log "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
	"github.com/meridianchain/v1/pkg/types"
)

// TxMethods 交易查询与编解码方法
type TxMethods struct {
	store  persistence.LedgerQuery
	logger log.Logger
}

// NewTxMethods 创建交易方法集
func NewTxMethods(store persistence.LedgerQuery, logger log.Logger) (*TxMethods, error) {
	if store == nil {
		return nil, fmt.Errorf("store 不能为空")
	}
	return &TxMethods{store: store, logger: logger}, nil
}

// Register 注册全部交易方法
func (m *TxMethods) Register(server *jsonrpc.Server) {
	server.RegisterMethod("mdn_getTransaction", m.GetTransaction)
	server.RegisterMethod("mdn_getTransactions", m.GetTransactions)
	server.RegisterMethod("mdn_getTotalTransactionNumber", m.GetTotalTransactionNumber)
	server.RegisterMethod("mdn_getTransactionsInRange", m.GetTransactionsInRange)
	server.RegisterMethod("mdn_getTransactionDigest", m.GetTransactionDigest)
}

type getTransactionParams struct {
	Digest string `json:"digest"`
}

// GetTransaction 查询已执行交易的完整视图
//
// 时间戳与检查点归属是交易行之外的独立索引：
// 时间戳缺失按存储错误处理，检查点缺失表示交易尚未进入检查点。
func (m *TxMethods) GetTransaction(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getTransactionParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	digest, err := types.ParseDigest(p.Digest)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("digest 解析失败: %v", err), map[string]interface{}{"digest": p.Digest})
	}

	payload, effects, err := m.store.GetTransaction(ctx, digest)
	if err != nil {
		return nil, translateTxError(err, p.Digest)
	}

	timestamp, err := m.store.GetTimestampMs(ctx, digest)
	if err != nil {
		return nil, translateTxError(err, p.Digest)
	}

	checkpointSeq, err := m.store.GetTransactionCheckpoint(ctx, digest)
	if err != nil {
		return nil, internalError(err)
	}

	return types.TransactionRecord{
		Digest:      digest,
		Payload:     *payload,
		Effects:     *effects,
		TimestampMs: timestamp,
		Checkpoint:  checkpointSeq,
	}, nil
}

type getTransactionsParams struct {
	Filter     *types.TransactionFilter `json:"filter,omitempty"`
	Cursor     *string                  `json:"cursor,omitempty"`
	Limit      *int                     `json:"limit,omitempty"`
	Descending bool                     `json:"descending,omitempty"`
}

// GetTransactions 按过滤器分页列出交易摘要
func (m *TxMethods) GetTransactions(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getTransactionsParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}

	filter := types.TransactionFilter{Kind: types.TxFilterAll}
	if p.Filter != nil {
		filter = *p.Filter
	}

	var after *types.Digest
	if p.Cursor != nil {
		cursor, err := types.ParseDigest(*p.Cursor)
		if err != nil {
			return nil, invalidParams(fmt.Sprintf("cursor 解析失败: %v", err), map[string]interface{}{"cursor": *p.Cursor})
		}
		after = &cursor
	}

	page, err := query.Paginate(ctx, p.Limit,
		func(ctx context.Context, n int) ([]types.Digest, error) {
			return m.store.ListTransactions(ctx, filter, after, n, p.Descending)
		},
		func(item types.Digest) types.Digest {
			return item
		},
	)
	if err != nil {
		return nil, internalError(err)
	}
	return page, nil
}

// GetTotalTransactionNumber 查询节点已记录的交易总数
func (m *TxMethods) GetTotalTransactionNumber(ctx context.Context, params json.RawMessage) (interface{}, error) {
	count, err := m.store.GetTotalTransactionNumber(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return count, nil
}

type getTransactionsInRangeParams struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// GetTransactionsInRange 按执行序号区间 [start, end) 列出交易摘要
func (m *TxMethods) GetTransactionsInRange(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getTransactionsInRangeParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	if p.End <= p.Start {
		return nil, invalidParams(
			fmt.Sprintf("非法的序号区间: start=%d end=%d", p.Start, p.End),
			map[string]interface{}{"start": p.Start, "end": p.End},
		)
	}
	// 区间上限防止一次请求拉取过多数据
	if p.End-p.Start > uint64(query.MaxPageSize) {
		return nil, invalidParams(
			fmt.Sprintf("区间过大: 最多允许 %d 条", query.MaxPageSize),
			map[string]interface{}{"start": p.Start, "end": p.End},
		)
	}

	digests, err := m.store.GetTransactionsInRange(ctx, p.Start, p.End)
	if err != nil {
		return nil, internalError(err)
	}
	return digests, nil
}

type getTransactionDigestParams struct {
	TxBytes string `json:"txBytes"`
}

// transactionDigestResult 交易字节解码结果
type transactionDigestResult struct {
	Digest  types.Digest             `json:"digest"`
	Payload types.TransactionPayload `json:"payload"`
}

// GetTransactionDigest 解码交易字节并返回其规范摘要
//
// 摘要对意图信封包裹后的规范CBOR编码计算，与执行侧一致。
func (m *TxMethods) GetTransactionDigest(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getTransactionDigestParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	if p.TxBytes == "" {
		return nil, invalidParams("txBytes 不能为空", nil)
	}

	payload, digest, err := txcodec.DecodeTransactionBytes(p.TxBytes)
	if err != nil {
		return nil, translateCodecError(err)
	}
	return transactionDigestResult{Digest: digest, Payload: *payload}, nil
}
