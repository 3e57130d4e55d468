package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridianchain/v1/pkg/interfaces/persistence"
	"github.com/meridianchain/v1/pkg/types"
)

// 最新版本指针的值格式：8字节大端版本 + 1字节墓碑标志
const latestPointerLen = 9

// GetLatestVersion 获取对象的最新版本号与墓碑标志
func (s *Service) GetLatestVersion(ctx context.Context, id types.ObjectID) (types.Version, bool, error) {
	raw, err := s.getRaw(ctx, objectLatestKey(id))
	if err != nil {
		return 0, false, err
	}
	if len(raw) != latestPointerLen {
		return 0, false, fmt.Errorf("对象版本指针格式错误: id=%s: 期望%d字节, 实际%d字节",
			id, latestPointerLen, len(raw))
	}
	version, err := decodeUint64(raw[:8])
	if err != nil {
		return 0, false, fmt.Errorf("对象版本指针格式错误: id=%s: %w", id, err)
	}
	return types.Version(version), raw[8] == 1, nil
}

// GetObject 获取指定版本的对象行
func (s *Service) GetObject(ctx context.Context, id types.ObjectID, version types.Version) (*types.VersionedObject, error) {
	var obj types.VersionedObject
	if err := s.getCBOR(ctx, objectRowKey(id, version), &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// RetainedFloor 获取对象历史的保留下界
//
// 下界未记录时返回0，表示保留完整历史。
func (s *Service) RetainedFloor(ctx context.Context, id types.ObjectID) (types.Version, error) {
	floor, err := s.getUint64(ctx, objectFloorKey(id))
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return types.Version(floor), nil
}
