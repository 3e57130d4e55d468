package methods

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridianchain/v1/internal/api/jsonrpc"
	"github.com/meridianchain/v1/internal/core/checkpoint"
	log "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/types"
)

// CheckpointMethods 检查点查询方法
type CheckpointMethods struct {
	lookup *checkpoint.Lookup
	logger log.Logger
}

// NewCheckpointMethods 创建检查点方法集
func NewCheckpointMethods(lookup *checkpoint.Lookup, logger log.Logger) (*CheckpointMethods, error) {
	if lookup == nil {
		return nil, fmt.Errorf("lookup 不能为空")
	}
	return &CheckpointMethods{lookup: lookup, logger: logger}, nil
}

// Register 注册全部检查点方法
func (m *CheckpointMethods) Register(server *jsonrpc.Server) {
	server.RegisterMethod("mdn_getCheckpoint", m.GetCheckpoint)
	server.RegisterMethod("mdn_getCheckpointSummary", m.GetCheckpointSummary)
	server.RegisterMethod("mdn_getCheckpointSummaryByDigest", m.GetCheckpointSummaryByDigest)
	server.RegisterMethod("mdn_getCheckpointContents", m.GetCheckpointContents)
	server.RegisterMethod("mdn_getLatestCheckpointSequenceNumber", m.GetLatestCheckpointSequenceNumber)
}

type getCheckpointParams struct {
	SequenceNumber *types.CheckpointSequenceNumber `json:"sequenceNumber,omitempty"`
	Digest         *string                         `json:"digest,omitempty"`
}

// identifier 把方法参数翻译为检查点查询键
func (p *getCheckpointParams) identifier() (checkpoint.Identifier, error) {
	id := checkpoint.Identifier{SequenceNumber: p.SequenceNumber}
	if p.Digest != nil {
		digest, err := types.ParseDigest(*p.Digest)
		if err != nil {
			return checkpoint.Identifier{}, fmt.Errorf("digest 解析失败: %w", err)
		}
		id.Digest = &digest
	}
	if id.SequenceNumber == nil && id.Digest == nil {
		return checkpoint.Identifier{}, fmt.Errorf("sequenceNumber 与 digest 必须二选一")
	}
	return id, nil
}

// GetCheckpoint 按序号或摘要查询检查点（摘要 + 内容）
func (m *CheckpointMethods) GetCheckpoint(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getCheckpointParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	id, err := p.identifier()
	if err != nil {
		return nil, invalidParams(err.Error(), nil)
	}

	cp, err := m.lookup.Get(ctx, id)
	if err != nil {
		return nil, translateCheckpointError(err)
	}
	return cp, nil
}

type checkpointSeqParams struct {
	SequenceNumber types.CheckpointSequenceNumber `json:"sequenceNumber"`
}

// GetCheckpointSummary 按序号查询检查点摘要
func (m *CheckpointMethods) GetCheckpointSummary(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p checkpointSeqParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}

	summary, err := m.lookup.Summary(ctx, p.SequenceNumber)
	if err != nil {
		return nil, translateCheckpointError(err)
	}
	return summary, nil
}

type checkpointDigestParams struct {
	Digest string `json:"digest"`
}

// GetCheckpointSummaryByDigest 按摘要查询检查点摘要
func (m *CheckpointMethods) GetCheckpointSummaryByDigest(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p checkpointDigestParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	digest, err := types.ParseDigest(p.Digest)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("digest 解析失败: %v", err), map[string]interface{}{"digest": p.Digest})
	}

	summary, err := m.lookup.SummaryByDigest(ctx, digest)
	if err != nil {
		return nil, translateCheckpointError(err)
	}
	return summary, nil
}

// GetCheckpointContents 按内容摘要查询检查点内容
func (m *CheckpointMethods) GetCheckpointContents(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p checkpointDigestParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	digest, err := types.ParseDigest(p.Digest)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("digest 解析失败: %v", err), map[string]interface{}{"digest": p.Digest})
	}

	contents, err := m.lookup.Contents(ctx, digest)
	if err != nil {
		return nil, translateCheckpointError(err)
	}
	return contents, nil
}

// GetLatestCheckpointSequenceNumber 查询最新检查点序号
func (m *CheckpointMethods) GetLatestCheckpointSequenceNumber(ctx context.Context, params json.RawMessage) (interface{}, error) {
	seq, err := m.lookup.Latest(ctx)
	if err != nil {
		return nil, translateCheckpointError(err)
	}
	return seq, nil
}
