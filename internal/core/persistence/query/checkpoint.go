package query

import (
	"context"

	"github.com/meridianchain/v1/pkg/types"
)

// GetLatestCheckpointSequenceNumber 获取最新检查点序号
func (s *Service) GetLatestCheckpointSequenceNumber(ctx context.Context) (types.CheckpointSequenceNumber, error) {
	return s.getUint64(ctx, metaLatestCheckpointKey)
}

// GetCheckpointSummary 按序号获取检查点摘要
func (s *Service) GetCheckpointSummary(ctx context.Context, seq types.CheckpointSequenceNumber) (*types.CheckpointSummary, error) {
	var summary types.CheckpointSummary
	if err := s.getCBOR(ctx, checkpointSummaryKey(seq), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetCheckpointSummaryByDigest 按摘要获取检查点摘要
//
// 两跳解析：digest → 序号 → 摘要行。
func (s *Service) GetCheckpointSummaryByDigest(ctx context.Context, digest types.Digest) (*types.CheckpointSummary, error) {
	seq, err := s.getUint64(ctx, checkpointDigestKey(digest))
	if err != nil {
		return nil, err
	}
	return s.GetCheckpointSummary(ctx, seq)
}

// GetCheckpointContents 按内容摘要获取检查点内容
func (s *Service) GetCheckpointContents(ctx context.Context, contentDigest types.Digest) (*types.CheckpointContents, error) {
	var contents types.CheckpointContents
	if err := s.getCBOR(ctx, checkpointContentsKey(contentDigest), &contents); err != nil {
		return nil, err
	}
	return &contents, nil
}
