package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridianchain/v1/pkg/interfaces/persistence"
	"github.com/meridianchain/v1/pkg/types"
)

// storedTransaction 交易行的存储格式
type storedTransaction struct {
	Payload types.TransactionPayload `cbor:"1,keyasint"`
	Effects types.TransactionEffects `cbor:"2,keyasint"`
}

// GetTransaction 获取已执行交易的负载与效果
func (s *Service) GetTransaction(ctx context.Context, digest types.Digest) (*types.TransactionPayload, *types.TransactionEffects, error) {
	var row storedTransaction
	if err := s.getCBOR(ctx, txRowKey(digest), &row); err != nil {
		return nil, nil, err
	}
	return &row.Payload, &row.Effects, nil
}

// GetTransactionCheckpoint 获取交易所属的检查点序号
//
// 交易尚未进入检查点时返回 (nil, nil)。
func (s *Service) GetTransactionCheckpoint(ctx context.Context, digest types.Digest) (*types.CheckpointSequenceNumber, error) {
	seq, err := s.getUint64(ctx, txCheckpointKey(digest))
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seq, nil
}

// GetTimestampMs 获取交易的执行时间戳（毫秒）
func (s *Service) GetTimestampMs(ctx context.Context, digest types.Digest) (uint64, error) {
	return s.getUint64(ctx, txTimeKey(digest))
}

// GetTotalTransactionNumber 获取节点已记录的交易总数
func (s *Service) GetTotalTransactionNumber(ctx context.Context) (uint64, error) {
	count, err := s.getUint64(ctx, metaTxCountKey)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// GetTransactionsInRange 按执行序号区间 [start, end) 列出交易摘要
func (s *Service) GetTransactionsInRange(ctx context.Context, start, end uint64) ([]types.Digest, error) {
	if end < start {
		return nil, fmt.Errorf("非法的序号区间: start=%d end=%d", start, end)
	}

	digests := []types.Digest{}
	var decodeErr error
	// 排他游标指向 start 的前一个键位置
	var afterKey []byte
	if start > 0 {
		afterKey = txSeqKey(start - 1)
	}

	err := s.store.IteratePrefix(ctx, txSeqPrefix(), afterKey, func(key, value []byte) bool {
		if uint64(len(digests)) >= end-start {
			return false
		}
		d, err := types.NewDigest(value)
		if err != nil {
			decodeErr = fmt.Errorf("执行顺序索引值格式错误: key=%s: %w", string(key), err)
			return false
		}
		digests = append(digests, d)
		return uint64(len(digests)) < end-start
	})
	if err != nil {
		return nil, fmt.Errorf("遍历执行顺序索引失败: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return digests, nil
}

// ListTransactions 按过滤器列出交易摘要
//
// 所有过滤索引的键都以执行序号结尾，字典序即执行顺序。
// 游标摘要先换算成执行序号再定位；交易索引从不裁剪，
// 因此游标指向的摘要必然可换算，位置对任意游标值唯一确定。
func (s *Service) ListTransactions(ctx context.Context, filter types.TransactionFilter, after *types.Digest, limit int, descending bool) ([]types.Digest, error) {
	prefix, err := txFilterPrefix(filter)
	if err != nil {
		return nil, err
	}

	var afterKey []byte
	if after != nil {
		seq, err := s.getUint64(ctx, txSeqOfKey(*after))
		if err != nil {
			return nil, fmt.Errorf("解析交易游标失败: cursor=%s: %w", *after, err)
		}
		afterKey = txFilterKey(prefix, seq)
	}

	digests := []types.Digest{}
	var decodeErr error
	collect := func(key, value []byte) bool {
		if len(digests) >= limit {
			return false
		}
		d, err := types.NewDigest(value)
		if err != nil {
			decodeErr = fmt.Errorf("交易过滤索引值格式错误: key=%s: %w", string(key), err)
			return false
		}
		digests = append(digests, d)
		return len(digests) < limit
	}

	if descending {
		err = s.store.IteratePrefixReverse(ctx, prefix, afterKey, collect)
	} else {
		err = s.store.IteratePrefix(ctx, prefix, afterKey, collect)
	}
	if err != nil {
		return nil, fmt.Errorf("遍历交易过滤索引失败: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return digests, nil
}
