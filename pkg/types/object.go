// Package types provides ledger object type definitions.
package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// IDLength 对象标识符与地址的固定字节长度
const IDLength = 32

// ObjectID 账本对象的唯一标识符（固定32字节）
type ObjectID [IDLength]byte

// Address 账户地址（固定32字节）
type Address [IDLength]byte

// Version 对象版本号
//
// 每个 (ObjectID, Version) 组合一旦写入即不可变更，
// 存储层永远不会覆盖已存在的版本。
type Version uint64

// String 返回对象标识符的Base58文本形式
func (id ObjectID) String() string {
	return base58.Encode(id[:])
}

// Bytes 返回对象标识符的字节副本
func (id ObjectID) Bytes() []byte {
	b := make([]byte, IDLength)
	copy(b, id[:])
	return b
}

// MarshalJSON 实现 json.Marshaler，边界统一使用Base58文本
func (id ObjectID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON 实现 json.Unmarshaler
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	s, err := unquoteJSONString(data)
	if err != nil {
		return fmt.Errorf("对象标识符必须是字符串: %w", err)
	}
	parsed, err := ParseObjectID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseObjectID 解析Base58文本形式的对象标识符
func ParseObjectID(s string) (ObjectID, error) {
	var id ObjectID
	raw, err := base58.Decode(s)
	if err != nil {
		return id, fmt.Errorf("对象标识符不是合法的Base58编码: %w", err)
	}
	if len(raw) != IDLength {
		return id, fmt.Errorf("对象标识符长度错误: 期望%d字节, 实际%d字节", IDLength, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// String 返回地址的Base58文本形式
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bytes 返回地址的字节副本
func (a Address) Bytes() []byte {
	b := make([]byte, IDLength)
	copy(b, a[:])
	return b
}

// MarshalJSON 实现 json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON 实现 json.Unmarshaler
func (a *Address) UnmarshalJSON(data []byte) error {
	s, err := unquoteJSONString(data)
	if err != nil {
		return fmt.Errorf("地址必须是字符串: %w", err)
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress 解析Base58文本形式的地址
func ParseAddress(s string) (Address, error) {
	var a Address
	raw, err := base58.Decode(s)
	if err != nil {
		return a, fmt.Errorf("地址不是合法的Base58编码: %w", err)
	}
	if len(raw) != IDLength {
		return a, fmt.Errorf("地址长度错误: 期望%d字节, 实际%d字节", IDLength, len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// OwnerKind 对象所有权类别
type OwnerKind string

const (
	// OwnerKindAddress 由某个地址独占持有
	OwnerKindAddress OwnerKind = "address"
	// OwnerKindObject 作为动态字段挂在父对象之下
	OwnerKindObject OwnerKind = "object"
	// OwnerKindShared 共享对象，任何交易都可引用
	OwnerKindShared OwnerKind = "shared"
	// OwnerKindImmutable 不可变对象（如已发布的合约包）
	OwnerKindImmutable OwnerKind = "immutable"
)

// Owner 对象所有权描述
//
// Address 仅在 Kind 为 address 时有效；Parent 仅在 Kind 为 object 时有效。
type Owner struct {
	Kind    OwnerKind `json:"kind" cbor:"1,keyasint"`
	Address *Address  `json:"address,omitempty" cbor:"2,keyasint,omitempty"`
	Parent  *ObjectID `json:"parent,omitempty" cbor:"3,keyasint,omitempty"`
}

// DataKind 对象负载类别
type DataKind string

const (
	// DataKindValue 普通值对象（类型化的结构体内容）
	DataKindValue DataKind = "value"
	// DataKindPackage 合约包对象（模块名 → 字节码）
	DataKindPackage DataKind = "package"
)

// ObjectData 对象负载
//
// Kind 为 value 时使用 TypeTag/Contents；Kind 为 package 时使用 Modules。
type ObjectData struct {
	Kind     DataKind          `json:"kind" cbor:"1,keyasint"`
	TypeTag  string            `json:"type,omitempty" cbor:"2,keyasint,omitempty"`
	Contents []byte            `json:"contents,omitempty" cbor:"3,keyasint,omitempty"`
	Modules  map[string][]byte `json:"modules,omitempty" cbor:"4,keyasint,omitempty"`
}

// IsPackage 判断负载是否为合约包
func (d *ObjectData) IsPackage() bool {
	return d.Kind == DataKindPackage
}

// VersionedObject 带版本的账本对象
type VersionedObject struct {
	ID                  ObjectID   `json:"id" cbor:"1,keyasint"`
	Version             Version    `json:"version" cbor:"2,keyasint"`
	Owner               Owner      `json:"owner" cbor:"3,keyasint"`
	Data                ObjectData `json:"data" cbor:"4,keyasint"`
	PreviousTransaction Digest     `json:"previousTransaction" cbor:"5,keyasint"`
}

// Ref 返回对象的 (id, version, digest) 三元组引用
func (o *VersionedObject) Ref() ObjectRef {
	return ObjectRef{ID: o.ID, Version: o.Version}
}

// ObjectRef 对象引用三元组
type ObjectRef struct {
	ID      ObjectID `json:"id" cbor:"1,keyasint"`
	Version Version  `json:"version" cbor:"2,keyasint"`
	Digest  Digest   `json:"digest,omitempty" cbor:"3,keyasint,omitempty"`
}

// ObjectSummary 地址持有对象列表中的条目
type ObjectSummary struct {
	ID                  ObjectID `json:"id" cbor:"1,keyasint"`
	Version             Version  `json:"version" cbor:"2,keyasint"`
	TypeTag             string   `json:"type" cbor:"3,keyasint"`
	Owner               Owner    `json:"owner" cbor:"4,keyasint"`
	PreviousTransaction Digest   `json:"previousTransaction" cbor:"5,keyasint"`
}

// FieldSummary 动态字段列表中的条目
type FieldSummary struct {
	Name     string   `json:"name" cbor:"1,keyasint"`
	ObjectID ObjectID `json:"objectId" cbor:"2,keyasint"`
	Version  Version  `json:"version" cbor:"3,keyasint"`
	TypeTag  string   `json:"type" cbor:"4,keyasint"`
}

// unquoteJSONString 去掉JSON字符串字面量的引号
func unquoteJSONString(data []byte) (string, error) {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", fmt.Errorf("不是JSON字符串: %s", string(data))
	}
	return string(data[1 : len(data)-1]), nil
}
