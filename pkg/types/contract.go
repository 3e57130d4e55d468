// Package types provides normalized contract module definitions.
package types

// NormalizedModule 规范化后的合约模块
//
// 由原始字节码归一化得到的可查询结构，只保留对外可见的
// 结构体与函数签名信息，不包含可执行代码。
type NormalizedModule struct {
	FileFormatVersion uint32                        `json:"fileFormatVersion"`
	Address           Address                       `json:"address"`
	Name              string                        `json:"name"`
	Structs           map[string]NormalizedStruct   `json:"structs"`
	Functions         map[string]NormalizedFunction `json:"exposedFunctions"`
}

// NormalizedStruct 规范化后的结构体定义
type NormalizedStruct struct {
	Abilities      []string          `json:"abilities"`
	TypeParameters []StructTypeParam `json:"typeParameters"`
	Fields         []NormalizedField `json:"fields"`
}

// StructTypeParam 结构体类型参数
type StructTypeParam struct {
	Constraints []string `json:"constraints"`
	IsPhantom   bool     `json:"isPhantom"`
}

// NormalizedField 结构体字段
type NormalizedField struct {
	Name string         `json:"name"`
	Type NormalizedType `json:"type"`
}

// NormalizedFunction 规范化后的函数签名
//
// Parameters 严格保持声明顺序，外部交易构造器依赖该顺序
// 为每个参数匹配传参方式。
type NormalizedFunction struct {
	Visibility     string           `json:"visibility"`
	IsEntry        bool             `json:"isEntry"`
	TypeParameters [][]string       `json:"typeParameters"`
	Parameters     []NormalizedType `json:"parameters"`
	Returns        []NormalizedType `json:"returns"`
}

// TypeKind 规范化类型的类别
type TypeKind string

const (
	TypeBool             TypeKind = "bool"
	TypeU8               TypeKind = "u8"
	TypeU16              TypeKind = "u16"
	TypeU32              TypeKind = "u32"
	TypeU64              TypeKind = "u64"
	TypeU128             TypeKind = "u128"
	TypeU256             TypeKind = "u256"
	TypeAddress          TypeKind = "address"
	TypeSigner           TypeKind = "signer"
	TypeVector           TypeKind = "vector"
	TypeStruct           TypeKind = "struct"
	TypeReference        TypeKind = "reference"
	TypeMutableReference TypeKind = "mutableReference"
	TypeParameter        TypeKind = "typeParameter"
)

// NormalizedType 规范化类型（递归变体）
//
// - vector/reference/mutableReference 使用 Elem 指向内层类型
// - struct 使用 Struct 描述具体结构体
// - typeParameter 使用 TypeParamIndex 指向函数/结构体的类型参数
// - 其余类别为原生类型，无附加字段
type NormalizedType struct {
	Kind           TypeKind        `json:"kind" cbor:"1,keyasint"`
	Elem           *NormalizedType `json:"elem,omitempty" cbor:"2,keyasint,omitempty"`
	Struct         *StructTag      `json:"struct,omitempty" cbor:"3,keyasint,omitempty"`
	TypeParamIndex *uint16         `json:"typeParameter,omitempty" cbor:"4,keyasint,omitempty"`
}

// StructTag 结构体类型的完整限定名
type StructTag struct {
	Address       Address          `json:"address" cbor:"1,keyasint"`
	Module        string           `json:"module" cbor:"2,keyasint"`
	Name          string           `json:"name" cbor:"3,keyasint"`
	TypeArguments []NormalizedType `json:"typeArguments,omitempty" cbor:"4,keyasint,omitempty"`
}

// ArgumentPassingMode 函数参数的传参方式
//
// 序列化固定为四个标签之一，告诉外部交易构造器每个参数
// 应当以内联值、对象引用还是可变对象引用的方式提供。
type ArgumentPassingMode string

const (
	// ArgPure 内联纯值（原生类型、vector、类型参数等）
	ArgPure ArgumentPassingMode = "Pure"
	// ArgByValue 按值传入对象
	ArgByValue ArgumentPassingMode = "ByValue"
	// ArgByImmutableReference 按不可变引用传入对象
	ArgByImmutableReference ArgumentPassingMode = "ByImmutableReference"
	// ArgByMutableReference 按可变引用传入对象
	ArgByMutableReference ArgumentPassingMode = "ByMutableReference"
)
