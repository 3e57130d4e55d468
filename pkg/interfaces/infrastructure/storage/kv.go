// Package storage 提供Meridian节点的键值存储接口定义
//
// 💾 **只读键值存储 (Read-only KV Store)**
//
// 查询面只需要存储引擎的读能力：点查与前缀迭代。
// 写路径（执行、检查点构建）属于外部协作方，不在本接口范围内。
package storage

import "context"

// KVStore 定义只读键值存储接口
//
// 所有方法并发安全；Get 在键不存在时返回 (nil, nil)，
// 由上层查询服务把"不存在"翻译成领域错误。
type KVStore interface {
	// Get 获取指定键的值
	//
	// 键不存在时返回 (nil, nil)，只有真实的存储故障才返回错误。
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Has 判断键是否存在
	Has(ctx context.Context, key []byte) (bool, error)

	// IteratePrefix 按键升序迭代具有指定前缀的条目
	//
	// after 非空时从严格大于 after 的键开始（排他游标语义，
	// after 本身是否存在不影响起点）。fn 返回 false 时停止迭代。
	IteratePrefix(ctx context.Context, prefix, after []byte, fn func(key, value []byte) bool) error

	// IteratePrefixReverse 按键降序迭代具有指定前缀的条目
	//
	// after 非空时从严格小于 after 的键开始。fn 返回 false 时停止迭代。
	IteratePrefixReverse(ctx context.Context, prefix, after []byte, fn func(key, value []byte) bool) error

	// Close 关闭存储引擎
	//
	// 节点关闭时必须调用，确保资源被正确释放。
	Close() error
}

// KVWriter 定义键值存储的写接口
//
// 查询面自身从不调用写方法；写入属于数据摄入工具与测试。
type KVWriter interface {
	// Set 写入键值对
	Set(ctx context.Context, key, value []byte) error

	// Delete 删除键
	Delete(ctx context.Context, key []byte) error
}
