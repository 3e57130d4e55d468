// Package object 实现对象状态解析服务
//
// 🎯 **核心职责**：
// 把存储层的原始读取原语组合成对外的对象状态判定：
// - 当前状态：exists / notExists / deleted 三分
// - 历史版本：versionFound / versionNotFound / deleted / outOfRetainedRange 四分
//
// 这些结果在语义上互斥，绝不坍缩成笼统的 not found。
package object

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
	"github.com/meridianchain/v1/pkg/types"
)

// InconsistencyError 存储层引用完整性被破坏
//
// 最新版本指针存在但对应的对象行缺失，属于比 not found 更严重的
// 故障：说明存储自身的不变量已被违反。
type InconsistencyError struct {
	ID      types.ObjectID
	Version types.Version
	Reason  string
}

// Error 实现 error 接口
func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("对象存储引用完整性被破坏: id=%s version=%d: %s", e.ID, e.Version, e.Reason)
}

// Resolver 对象状态解析器
type Resolver struct {
	objects persistence.ObjectQuery
	logger  log.Logger
}

// NewResolver 创建对象状态解析器
func NewResolver(objects persistence.ObjectQuery, logger log.Logger) (*Resolver, error) {
	if objects == nil {
		return nil, fmt.Errorf("objects 不能为空")
	}
	return &Resolver{
		objects: objects,
		logger:  logger,
	}, nil
}

// Current 解析对象的当前状态
//
// 对任意标识符，恰有 exists / notExists / deleted 之一成立。
func (r *Resolver) Current(ctx context.Context, id types.ObjectID) (*types.ObjectRead, error) {
	latest, deleted, err := r.objects.GetLatestVersion(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return &types.ObjectRead{Status: types.ObjectNotAny}, nil
		}
		return nil, fmt.Errorf("获取对象最新版本失败: id=%s: %w", id, err)
	}

	if deleted {
		return &types.ObjectRead{Status: types.ObjectDeleted}, nil
	}

	obj, err := r.objects.GetObject(ctx, id, latest)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			// 最新版本指针存在但对象行缺失
			if r.logger != nil {
				r.logger.Errorf("对象行缺失但版本指针存在: id=%s version=%d", id, latest)
			}
			return nil, &InconsistencyError{ID: id, Version: latest, Reason: "最新版本指针存在但对象行缺失"}
		}
		return nil, fmt.Errorf("获取对象失败: id=%s version=%d: %w", id, latest, err)
	}

	return &types.ObjectRead{Status: types.ObjectExists, Object: obj}, nil
}

// AtVersion 解析对象在指定历史版本的状态
//
// 判定顺序（保证四种结果互斥且完备）：
// 1. 版本低于保留下界 → outOfRetainedRange（即便该版本从未存在）
// 2. 对象从未存在、或版本高于最新版本 → versionNotFound
// 3. 请求的恰是删除墓碑所在的最新版本 → deleted
// 4. 版本行存在 → versionFound；在窗口内但行缺失 → versionNotFound
func (r *Resolver) AtVersion(ctx context.Context, id types.ObjectID, version types.Version) (*types.PastObjectRead, error) {
	read := &types.PastObjectRead{ID: id, Version: version}

	floor, err := r.objects.RetainedFloor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("获取对象保留下界失败: id=%s: %w", id, err)
	}
	if floor > 0 && version < floor {
		read.Status = types.VersionOutOfRange
		return read, nil
	}

	latest, deleted, err := r.objects.GetLatestVersion(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			read.Status = types.VersionNotFound
			return read, nil
		}
		return nil, fmt.Errorf("获取对象最新版本失败: id=%s: %w", id, err)
	}

	if version > latest {
		read.Status = types.VersionNotFound
		return read, nil
	}

	if deleted && version == latest {
		read.Status = types.VersionDeleted
		return read, nil
	}

	obj, err := r.objects.GetObject(ctx, id, version)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			read.Status = types.VersionNotFound
			return read, nil
		}
		return nil, fmt.Errorf("获取对象失败: id=%s version=%d: %w", id, version, err)
	}

	read.Status = types.VersionFound
	read.Object = obj
	return read, nil
}
