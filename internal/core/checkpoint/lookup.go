// Package checkpoint 实现检查点的合并视图查询
//
// 先按调用方给出的键（序号或摘要）解析摘要，再沿摘要中记录的
// 内容摘要解析内容。摘要缺失是普通的 not found；摘要找到之后
// 内容缺失则是存储引用完整性被破坏，属于更严重的故障。
package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
	"github.com/meridianchain/v1/pkg/types"
)

// NotFoundError 检查点不存在
//
// SequenceNumber 与 Digest 中恰有一个记录了调用方查询的键。
type NotFoundError struct {
	SequenceNumber *types.CheckpointSequenceNumber
	Digest         *types.Digest
}

func (e *NotFoundError) Error() string {
	if e.SequenceNumber != nil {
		return fmt.Sprintf("检查点不存在: sequenceNumber=%d", *e.SequenceNumber)
	}
	if e.Digest != nil {
		return fmt.Sprintf("检查点不存在: digest=%s", *e.Digest)
	}
	return "检查点不存在"
}

// InconsistencyError 摘要存在但其引用的内容缺失
type InconsistencyError struct {
	SequenceNumber types.CheckpointSequenceNumber
	ContentDigest  types.Digest
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("检查点内容缺失但摘要存在: sequenceNumber=%d contentDigest=%s",
		e.SequenceNumber, e.ContentDigest)
}

// Identifier 检查点查询键：序号或摘要，二选一
type Identifier struct {
	SequenceNumber *types.CheckpointSequenceNumber
	Digest         *types.Digest
}

// Lookup 检查点查询服务
type Lookup struct {
	checkpoints persistence.CheckpointQuery
	logger      log.Logger
}

// NewLookup 创建检查点查询服务
func NewLookup(checkpoints persistence.CheckpointQuery, logger log.Logger) (*Lookup, error) {
	if checkpoints == nil {
		return nil, fmt.Errorf("checkpoints 不能为空")
	}
	return &Lookup{
		checkpoints: checkpoints,
		logger:      logger,
	}, nil
}

// Get 按序号或摘要解析检查点的合并视图（摘要 + 内容）
func (l *Lookup) Get(ctx context.Context, id Identifier) (*types.Checkpoint, error) {
	summary, err := l.resolveSummary(ctx, id)
	if err != nil {
		return nil, err
	}

	contents, err := l.contentsOf(ctx, summary)
	if err != nil {
		return nil, err
	}

	return &types.Checkpoint{Summary: *summary, Contents: *contents}, nil
}

// Latest 获取最新检查点序号
func (l *Lookup) Latest(ctx context.Context) (types.CheckpointSequenceNumber, error) {
	seq, err := l.checkpoints.GetLatestCheckpointSequenceNumber(ctx)
	if err != nil {
		// 账本尚无检查点
		if errors.Is(err, persistence.ErrNotFound) {
			return 0, &NotFoundError{}
		}
		return 0, fmt.Errorf("获取最新检查点序号失败: %w", err)
	}
	return seq, nil
}

// Summary 按序号获取检查点摘要
func (l *Lookup) Summary(ctx context.Context, seq types.CheckpointSequenceNumber) (*types.CheckpointSummary, error) {
	return l.resolveSummary(ctx, Identifier{SequenceNumber: &seq})
}

// SummaryByDigest 按摘要获取检查点摘要
func (l *Lookup) SummaryByDigest(ctx context.Context, digest types.Digest) (*types.CheckpointSummary, error) {
	return l.resolveSummary(ctx, Identifier{Digest: &digest})
}

// Contents 按内容摘要获取检查点内容
func (l *Lookup) Contents(ctx context.Context, contentDigest types.Digest) (*types.CheckpointContents, error) {
	contents, err := l.checkpoints.GetCheckpointContents(ctx, contentDigest)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, &NotFoundError{Digest: &contentDigest}
		}
		return nil, fmt.Errorf("获取检查点内容失败: contentDigest=%s: %w", contentDigest, err)
	}
	return contents, nil
}

// ContentsBySequence 按序号获取检查点内容
//
// 先解析摘要再沿内容摘要取内容，继承 Get 的不一致判定。
func (l *Lookup) ContentsBySequence(ctx context.Context, seq types.CheckpointSequenceNumber) (*types.CheckpointContents, error) {
	summary, err := l.resolveSummary(ctx, Identifier{SequenceNumber: &seq})
	if err != nil {
		return nil, err
	}
	return l.contentsOf(ctx, summary)
}

// resolveSummary 按调用方给出的键解析摘要
func (l *Lookup) resolveSummary(ctx context.Context, id Identifier) (*types.CheckpointSummary, error) {
	switch {
	case id.SequenceNumber != nil:
		summary, err := l.checkpoints.GetCheckpointSummary(ctx, *id.SequenceNumber)
		if err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				return nil, &NotFoundError{SequenceNumber: id.SequenceNumber}
			}
			return nil, fmt.Errorf("获取检查点摘要失败: sequenceNumber=%d: %w", *id.SequenceNumber, err)
		}
		return summary, nil
	case id.Digest != nil:
		summary, err := l.checkpoints.GetCheckpointSummaryByDigest(ctx, *id.Digest)
		if err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				return nil, &NotFoundError{Digest: id.Digest}
			}
			return nil, fmt.Errorf("获取检查点摘要失败: digest=%s: %w", *id.Digest, err)
		}
		return summary, nil
	default:
		return nil, fmt.Errorf("检查点查询键为空: 序号与摘要必须二选一")
	}
}

// contentsOf 沿摘要中的内容摘要解析内容
//
// 摘要已找到时内容缺失按存储不一致处理，不降级为 not found。
func (l *Lookup) contentsOf(ctx context.Context, summary *types.CheckpointSummary) (*types.CheckpointContents, error) {
	contents, err := l.checkpoints.GetCheckpointContents(ctx, summary.ContentDigest)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			if l.logger != nil {
				l.logger.Errorf("检查点内容缺失但摘要存在: sequenceNumber=%d contentDigest=%s",
					summary.SequenceNumber, summary.ContentDigest)
			}
			return nil, &InconsistencyError{
				SequenceNumber: summary.SequenceNumber,
				ContentDigest:  summary.ContentDigest,
			}
		}
		return nil, fmt.Errorf("获取检查点内容失败: contentDigest=%s: %w", summary.ContentDigest, err)
	}
	return contents, nil
}
