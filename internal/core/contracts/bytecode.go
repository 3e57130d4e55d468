package contracts

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/meridianchain/v1/pkg/types"
)

// BytecodeFormatVersion 当前模块字节码格式版本
const BytecodeFormatVersion uint32 = 1

// ModuleDefinition 模块字节码的线格式
//
// 发布工具链按此结构生成紧凑CBOR编码；查询面只解码、
// 从不执行。字段编号一经分配不得复用。
type ModuleDefinition struct {
	FormatVersion uint32                        `cbor:"1,keyasint"`
	Address       types.Address                 `cbor:"2,keyasint"`
	Name          string                        `cbor:"3,keyasint"`
	Structs       map[string]StructDefinition   `cbor:"4,keyasint,omitempty"`
	Functions     map[string]FunctionDefinition `cbor:"5,keyasint,omitempty"`
}

// StructDefinition 结构体的线格式
type StructDefinition struct {
	Abilities      []string                `cbor:"1,keyasint,omitempty"`
	TypeParameters []types.StructTypeParam `cbor:"2,keyasint,omitempty"`
	Fields         []FieldDefinition       `cbor:"3,keyasint,omitempty"`
}

// FieldDefinition 结构体字段的线格式
type FieldDefinition struct {
	Name string               `cbor:"1,keyasint"`
	Type types.NormalizedType `cbor:"2,keyasint"`
}

// FunctionDefinition 函数签名的线格式
//
// Parameters 的顺序即声明顺序，解码后原样保留。
type FunctionDefinition struct {
	Visibility     string                 `cbor:"1,keyasint"`
	IsEntry        bool                   `cbor:"2,keyasint"`
	TypeParameters [][]string             `cbor:"3,keyasint,omitempty"`
	Parameters     []types.NormalizedType `cbor:"4,keyasint,omitempty"`
	Returns        []types.NormalizedType `cbor:"5,keyasint,omitempty"`
}

// EncodeModule 把模块定义编码为规范CBOR字节码
//
// 供发布工具链与测试使用。
func EncodeModule(def ModuleDefinition) ([]byte, error) {
	raw, err := types.CanonicalMarshal(def)
	if err != nil {
		return nil, fmt.Errorf("编码模块字节码失败: module=%s: %w", def.Name, err)
	}
	return raw, nil
}

// decodeModule 解码单个模块的字节码
func decodeModule(raw []byte) (*ModuleDefinition, error) {
	var def ModuleDefinition
	if err := cbor.Unmarshal(raw, &def); err != nil {
		return nil, err
	}
	if def.FormatVersion == 0 || def.FormatVersion > BytecodeFormatVersion {
		return nil, fmt.Errorf("不支持的字节码格式版本: %d", def.FormatVersion)
	}
	return &def, nil
}
