package contracts

import (
	"github.com/meridianchain/v1/pkg/types"
)

// ClassifyArgument 判定单个参数类型的传参方式
//
// 全函数：对任意规范化类型都给出恰好一种方式，绝不失败。
// - struct           → 按值传入对象
// - reference        → 按不可变引用传入对象
// - mutableReference → 按可变引用传入对象
// - 其余（原生类型、vector、类型参数等） → 内联纯值
func ClassifyArgument(t types.NormalizedType) types.ArgumentPassingMode {
	switch t.Kind {
	case types.TypeStruct:
		return types.ArgByValue
	case types.TypeReference:
		return types.ArgByImmutableReference
	case types.TypeMutableReference:
		return types.ArgByMutableReference
	default:
		return types.ArgPure
	}
}

// FunctionArgumentModes 按声明顺序为函数的每个参数判定传参方式
//
// 返回的切片与 Parameters 一一对应，顺序一致。
func FunctionArgumentModes(fn types.NormalizedFunction) []types.ArgumentPassingMode {
	modes := make([]types.ArgumentPassingMode, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		modes = append(modes, ClassifyArgument(p))
	}
	return modes
}
