// Package query 实现账本读路径的查询服务
package query

import (
	"context"

	"github.com/meridianchain/v1/pkg/types"
)

// 分页限制
const (
	// DefaultPageSize 未指定limit时的默认页大小
	DefaultPageSize = 50
	// MaxPageSize 单页条目数上限
	MaxPageSize = 1000
)

// CapPageLimit 把调用方给出的limit收敛到 [1, MaxPageSize]
//
// limit 为 nil 时使用默认页大小；0或负数按1处理。
func CapPageLimit(limit *int) int {
	if limit == nil {
		return DefaultPageSize
	}
	n := *limit
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// Paginate 执行通用的超量读取分页
//
// 向底层有序数据源多取一条（limit+1）：若确实取到了多余的一条，
// 说明后面还有数据，把第limit条的游标作为 NextCursor 并丢弃多余
// 条目；否则 NextCursor 为空。数据源为空时返回空页。
//
// fetch 负责从游标严格之后的位置按请求顺序读取至多 n 条；
// cursorOf 从条目中提取游标键。
func Paginate[T any, C any](
	ctx context.Context,
	limit *int,
	fetch func(ctx context.Context, n int) ([]T, error),
	cursorOf func(item T) C,
) (*types.Page[T, C], error) {
	capped := CapPageLimit(limit)

	items, err := fetch(ctx, capped+1)
	if err != nil {
		return nil, err
	}

	page := &types.Page[T, C]{Data: items}
	if len(items) > capped {
		cursor := cursorOf(items[capped-1])
		page.Data = items[:capped]
		page.NextCursor = &cursor
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}
