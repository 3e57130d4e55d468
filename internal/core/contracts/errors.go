// Package contracts 实现合约包的规范化与签名内省
package contracts

import (
	"fmt"

	"github.com/meridianchain/v1/pkg/types"
)

// NotAPackageError 对象存在但负载不是合约包
type NotAPackageError struct {
	ID types.ObjectID
}

func (e *NotAPackageError) Error() string {
	return fmt.Sprintf("对象不是合约包: id=%s", e.ID)
}

// ModuleNotFoundError 合约包中不存在指定模块
type ModuleNotFoundError struct {
	Package types.ObjectID
	Module  string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("模块不存在: package=%s module=%s", e.Package, e.Module)
}

// StructNotFoundError 模块中不存在指定结构体
type StructNotFoundError struct {
	Package types.ObjectID
	Module  string
	Name    string
}

func (e *StructNotFoundError) Error() string {
	return fmt.Sprintf("结构体不存在: package=%s module=%s struct=%s", e.Package, e.Module, e.Name)
}

// FunctionNotFoundError 模块中不存在指定函数
type FunctionNotFoundError struct {
	Package types.ObjectID
	Module  string
	Name    string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("函数不存在: package=%s module=%s function=%s", e.Package, e.Module, e.Name)
}

// InvalidIdentifierError 名称不是语法合法的标识符
//
// 与"标识符合法但目标不存在"是两类不同的错误，
// 调用方能据此区分输入错误和查询落空。
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("非法标识符: %q", e.Name)
}

// MalformedBytecodeError 模块字节码无法解码
type MalformedBytecodeError struct {
	Package types.ObjectID
	Module  string
	Err     error
}

func (e *MalformedBytecodeError) Error() string {
	return fmt.Sprintf("模块字节码损坏: package=%s module=%s: %v", e.Package, e.Module, e.Err)
}

// Unwrap 支持 errors.Is/As 链式判定
func (e *MalformedBytecodeError) Unwrap() error {
	return e.Err
}
