// Package types provides object read outcome definitions.
package types

// ObjectReadStatus 当前状态读取结果的类别
//
// 三种结果互斥且完备：对任意标识符恰有一种成立。
type ObjectReadStatus string

const (
	// ObjectExists 对象当前存在
	ObjectExists ObjectReadStatus = "exists"
	// ObjectNotAny 标识符从未对应过任何对象
	ObjectNotAny ObjectReadStatus = "notExists"
	// ObjectDeleted 对象曾经存在但已被删除
	ObjectDeleted ObjectReadStatus = "deleted"
)

// ObjectRead 当前状态读取结果
//
// Object 仅在 Status 为 exists 时有效。
type ObjectRead struct {
	Status ObjectReadStatus `json:"status"`
	Object *VersionedObject `json:"object,omitempty"`
}

// PastObjectReadStatus 历史版本读取结果的类别
//
// 四种结果互斥且完备，绝不允许坍缩成笼统的 not found：
// - versionFound: 请求的版本存在
// - versionNotFound: 版本在保留窗口内但从未存在
// - deleted: 对象在该版本或之前已被删除
// - outOfRetainedRange: 版本早于节点的历史保留窗口，已被裁剪
type PastObjectReadStatus string

const (
	// VersionFound 请求的版本存在
	VersionFound PastObjectReadStatus = "versionFound"
	// VersionNotFound 版本在保留窗口内但从未存在
	VersionNotFound PastObjectReadStatus = "versionNotFound"
	// VersionDeleted 对象已被删除
	VersionDeleted PastObjectReadStatus = "deleted"
	// VersionOutOfRange 版本早于保留窗口
	VersionOutOfRange PastObjectReadStatus = "outOfRetainedRange"
)

// PastObjectRead 历史版本读取结果
//
// Object 仅在 Status 为 versionFound 时有效。
type PastObjectRead struct {
	Status  PastObjectReadStatus `json:"status"`
	ID      ObjectID             `json:"id"`
	Version Version              `json:"version"`
	Object  *VersionedObject     `json:"object,omitempty"`
}
