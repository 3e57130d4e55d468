package query

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/infrastructure/storage"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
)

// Service 账本统一查询服务
//
// 在KVStore之上实现 persistence.LedgerQuery 的全部读路径。
// 所有方法无状态且并发安全；存储快照语义由引擎保证。
type Service struct {
	store  storage.KVStore
	logger log.Logger
}

// NewService 创建账本查询服务
func NewService(store storage.KVStore, logger log.Logger) (persistence.LedgerQuery, error) {
	if store == nil {
		return nil, fmt.Errorf("store 不能为空")
	}

	s := &Service{
		store:  store,
		logger: logger,
	}

	if logger != nil {
		logger.Info("✅ LedgerQuery 服务已创建")
	}
	return s, nil
}

// getRaw 点查并把"键不存在"翻译为 persistence.ErrNotFound
func (s *Service) getRaw(ctx context.Context, key []byte) ([]byte, error) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("存储读取失败: key=%s: %w", string(key), err)
	}
	if raw == nil {
		return nil, fmt.Errorf("key=%s: %w", string(key), persistence.ErrNotFound)
	}
	return raw, nil
}

// getCBOR 点查并解码CBOR值
func (s *Service) getCBOR(ctx context.Context, key []byte, out interface{}) error {
	raw, err := s.getRaw(ctx, key)
	if err != nil {
		return err
	}
	if err := cbor.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("存储值解码失败: key=%s: %w", string(key), err)
	}
	return nil
}

// getUint64 点查8字节大端整数值
func (s *Service) getUint64(ctx context.Context, key []byte) (uint64, error) {
	raw, err := s.getRaw(ctx, key)
	if err != nil {
		return 0, err
	}
	v, err := decodeUint64(raw)
	if err != nil {
		return 0, fmt.Errorf("存储值格式错误: key=%s: %w", string(key), err)
	}
	return v, nil
}
