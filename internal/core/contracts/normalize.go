package contracts

import (
	"github.com/meridianchain/v1/pkg/types"
)

// NormalizePackage 把合约包对象的原始字节码归一化为可查询的模块模型
//
// 对象负载不是合约包时返回 NotAPackageError；
// 任一模块解码失败时返回 MalformedBytecodeError。
func NormalizePackage(obj *types.VersionedObject) (map[string]types.NormalizedModule, error) {
	if obj == nil || !obj.Data.IsPackage() {
		var id types.ObjectID
		if obj != nil {
			id = obj.ID
		}
		return nil, &NotAPackageError{ID: id}
	}

	modules := make(map[string]types.NormalizedModule, len(obj.Data.Modules))
	for name, raw := range obj.Data.Modules {
		def, err := decodeModule(raw)
		if err != nil {
			return nil, &MalformedBytecodeError{Package: obj.ID, Module: name, Err: err}
		}
		modules[name] = normalizeModule(def)
	}
	return modules, nil
}

// normalizeModule 把线格式模块定义转换为对外模型
func normalizeModule(def *ModuleDefinition) types.NormalizedModule {
	mod := types.NormalizedModule{
		FileFormatVersion: def.FormatVersion,
		Address:           def.Address,
		Name:              def.Name,
		Structs:           make(map[string]types.NormalizedStruct, len(def.Structs)),
		Functions:         make(map[string]types.NormalizedFunction, len(def.Functions)),
	}

	for name, s := range def.Structs {
		fields := make([]types.NormalizedField, 0, len(s.Fields))
		for _, f := range s.Fields {
			fields = append(fields, types.NormalizedField{Name: f.Name, Type: f.Type})
		}
		mod.Structs[name] = types.NormalizedStruct{
			Abilities:      s.Abilities,
			TypeParameters: s.TypeParameters,
			Fields:         fields,
		}
	}

	for name, f := range def.Functions {
		mod.Functions[name] = types.NormalizedFunction{
			Visibility:     f.Visibility,
			IsEntry:        f.IsEntry,
			TypeParameters: f.TypeParameters,
			Parameters:     f.Parameters,
			Returns:        f.Returns,
		}
	}
	return mod
}

// GetModule 从归一化结果中取出指定模块
func GetModule(pkg types.ObjectID, modules map[string]types.NormalizedModule, name string) (types.NormalizedModule, error) {
	mod, ok := modules[name]
	if !ok {
		return types.NormalizedModule{}, &ModuleNotFoundError{Package: pkg, Module: name}
	}
	return mod, nil
}

// GetStruct 从模块中取出指定结构体
//
// 先做标识符语法校验：非法名称报 InvalidIdentifierError，
// 合法但不存在才报 StructNotFoundError。
func GetStruct(pkg types.ObjectID, modules map[string]types.NormalizedModule, module, name string) (types.NormalizedStruct, error) {
	if err := ValidateIdentifier(name); err != nil {
		return types.NormalizedStruct{}, err
	}
	mod, err := GetModule(pkg, modules, module)
	if err != nil {
		return types.NormalizedStruct{}, err
	}
	s, ok := mod.Structs[name]
	if !ok {
		return types.NormalizedStruct{}, &StructNotFoundError{Package: pkg, Module: module, Name: name}
	}
	return s, nil
}

// GetFunction 从模块中取出指定函数
func GetFunction(pkg types.ObjectID, modules map[string]types.NormalizedModule, module, name string) (types.NormalizedFunction, error) {
	if err := ValidateIdentifier(name); err != nil {
		return types.NormalizedFunction{}, err
	}
	mod, err := GetModule(pkg, modules, module)
	if err != nil {
		return types.NormalizedFunction{}, err
	}
	f, ok := mod.Functions[name]
	if !ok {
		return types.NormalizedFunction{}, &FunctionNotFoundError{Package: pkg, Module: module, Name: name}
	}
	return f, nil
}
