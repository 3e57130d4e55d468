// Package types provides cursor pagination type definitions.
package types

// Page 游标分页结果
//
// NextCursor 非空当且仅当在请求排序下 Data 之后还有更多条目。
// 游标是排他起点：下一页从 NextCursor 严格之后的条目开始。
type Page[T any, C any] struct {
	Data       []T `json:"data"`
	NextCursor *C  `json:"nextCursor,omitempty"`
}

// HasNext 判断是否存在下一页
func (p *Page[T, C]) HasNext() bool {
	return p.NextCursor != nil
}
