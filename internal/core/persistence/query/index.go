package query

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/meridianchain/v1/pkg/types"
)

// ListOwnedObjects 列出某地址持有的全部对象
//
// 按对象标识符的键序升序返回。
func (s *Service) ListOwnedObjects(ctx context.Context, owner types.Address) ([]types.ObjectSummary, error) {
	summaries := []types.ObjectSummary{}
	var decodeErr error

	err := s.store.IteratePrefix(ctx, ownerIndexPrefix(owner), nil, func(key, value []byte) bool {
		var summary types.ObjectSummary
		if err := cbor.Unmarshal(value, &summary); err != nil {
			decodeErr = fmt.Errorf("持有索引值解码失败: key=%s: %w", string(key), err)
			return false
		}
		summaries = append(summaries, summary)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("遍历持有索引失败: owner=%s: %w", owner, err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return summaries, nil
}

// ListDynamicFields 按子对象标识符升序列出父对象的动态字段
//
// after 为排他游标：即使游标指向的字段已被删除，迭代仍从
// 严格大于该键的位置开始，位置由键的字典序唯一确定。
func (s *Service) ListDynamicFields(ctx context.Context, parent types.ObjectID, after *types.ObjectID, limit int) ([]types.FieldSummary, error) {
	var afterKey []byte
	if after != nil {
		afterKey = dynFieldKey(parent, *after)
	}

	fields := []types.FieldSummary{}
	var decodeErr error

	err := s.store.IteratePrefix(ctx, dynFieldPrefix(parent), afterKey, func(key, value []byte) bool {
		if len(fields) >= limit {
			return false
		}
		var field types.FieldSummary
		if err := cbor.Unmarshal(value, &field); err != nil {
			decodeErr = fmt.Errorf("动态字段索引值解码失败: key=%s: %w", string(key), err)
			return false
		}
		fields = append(fields, field)
		return len(fields) < limit
	})
	if err != nil {
		return nil, fmt.Errorf("遍历动态字段索引失败: parent=%s: %w", parent, err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return fields, nil
}

// GetDynamicFieldObjectID 按字段名解析动态字段子对象的标识符
func (s *Service) GetDynamicFieldObjectID(ctx context.Context, parent types.ObjectID, name string) (types.ObjectID, error) {
	raw, err := s.getRaw(ctx, dynFieldNameKey(parent, name))
	if err != nil {
		return types.ObjectID{}, err
	}
	if len(raw) != types.IDLength {
		return types.ObjectID{}, fmt.Errorf("动态字段名索引值格式错误: parent=%s name=%s: 期望%d字节, 实际%d字节",
			parent, name, types.IDLength, len(raw))
	}
	var id types.ObjectID
	copy(id[:], raw)
	return id, nil
}
