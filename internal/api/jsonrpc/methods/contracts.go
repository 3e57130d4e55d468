package methods

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridianchain/v1/internal/api/jsonrpc"
	apitypes "github.com/meridianchain/v1/internal/api/types"
	"github.com/meridianchain/v1/internal/core/contracts"
	"github.com/meridianchain/v1/internal/core/object"
	log "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/types"
)

// ContractMethods 合约包内省方法
type ContractMethods struct {
	resolver *object.Resolver
	logger   log.Logger
}

// NewContractMethods 创建合约内省方法集
func NewContractMethods(resolver *object.Resolver, logger log.Logger) (*ContractMethods, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver 不能为空")
	}
	return &ContractMethods{resolver: resolver, logger: logger}, nil
}

// Register 注册全部合约内省方法
func (m *ContractMethods) Register(server *jsonrpc.Server) {
	server.RegisterMethod("mdn_getNormalizedModulesByPackage", m.GetNormalizedModulesByPackage)
	server.RegisterMethod("mdn_getNormalizedModule", m.GetNormalizedModule)
	server.RegisterMethod("mdn_getNormalizedStruct", m.GetNormalizedStruct)
	server.RegisterMethod("mdn_getNormalizedFunction", m.GetNormalizedFunction)
	server.RegisterMethod("mdn_getFunctionArgumentModes", m.GetFunctionArgumentModes)
}

// loadPackage 解析包对象并规范化其全部模块
func (m *ContractMethods) loadPackage(ctx context.Context, packageID string) (types.ObjectID, map[string]types.NormalizedModule, *apitypes.ProblemDetails) {
	id, err := types.ParseObjectID(packageID)
	if err != nil {
		return types.ObjectID{}, nil, invalidParams(fmt.Sprintf("packageId 解析失败: %v", err), map[string]interface{}{"packageId": packageID})
	}

	read, err := m.resolver.Current(ctx, id)
	if err != nil {
		return types.ObjectID{}, nil, translateObjectError(err)
	}
	if read.Status != types.ObjectExists {
		return types.ObjectID{}, nil, apitypes.NewProblemDetails(
			apitypes.CodeLedgerObjectNotFound,
			apitypes.LayerLedgerQuery,
			"合约包不存在。",
			fmt.Sprintf("对象不可用: id=%s status=%s", id, read.Status),
			404,
			map[string]interface{}{
				"packageId": id.String(),
				"status":    string(read.Status),
			},
		)
	}

	modules, err := contracts.NormalizePackage(read.Object)
	if err != nil {
		return types.ObjectID{}, nil, translateContractError(err)
	}
	return id, modules, nil
}

type packageParams struct {
	PackageID string `json:"packageId"`
}

// GetNormalizedModulesByPackage 规范化合约包的全部模块
func (m *ContractMethods) GetNormalizedModulesByPackage(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p packageParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}

	_, modules, problem := m.loadPackage(ctx, p.PackageID)
	if problem != nil {
		return nil, problem
	}
	return modules, nil
}

type moduleParams struct {
	PackageID string `json:"packageId"`
	Module    string `json:"module"`
}

// GetNormalizedModule 规范化合约包中的单个模块
func (m *ContractMethods) GetNormalizedModule(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p moduleParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}

	id, modules, problem := m.loadPackage(ctx, p.PackageID)
	if problem != nil {
		return nil, problem
	}

	module, err := contracts.GetModule(id, modules, p.Module)
	if err != nil {
		return nil, translateContractError(err)
	}
	return module, nil
}

type structParams struct {
	PackageID string `json:"packageId"`
	Module    string `json:"module"`
	Struct    string `json:"struct"`
}

// GetNormalizedStruct 获取模块中单个结构体的规范化定义
func (m *ContractMethods) GetNormalizedStruct(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p structParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}

	id, modules, problem := m.loadPackage(ctx, p.PackageID)
	if problem != nil {
		return nil, problem
	}

	structDef, err := contracts.GetStruct(id, modules, p.Module, p.Struct)
	if err != nil {
		return nil, translateContractError(err)
	}
	return structDef, nil
}

type functionParams struct {
	PackageID string `json:"packageId"`
	Module    string `json:"module"`
	Function  string `json:"function"`
}

// GetNormalizedFunction 获取模块中单个函数的规范化签名
func (m *ContractMethods) GetNormalizedFunction(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p functionParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}

	id, modules, problem := m.loadPackage(ctx, p.PackageID)
	if problem != nil {
		return nil, problem
	}

	fn, err := contracts.GetFunction(id, modules, p.Module, p.Function)
	if err != nil {
		return nil, translateContractError(err)
	}
	return fn, nil
}

// GetFunctionArgumentModes 获取函数各参数的传递方式
//
// 结果顺序与函数签名中的参数顺序一致。
func (m *ContractMethods) GetFunctionArgumentModes(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p functionParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}

	id, modules, problem := m.loadPackage(ctx, p.PackageID)
	if problem != nil {
		return nil, problem
	}

	fn, err := contracts.GetFunction(id, modules, p.Module, p.Function)
	if err != nil {
		return nil, translateContractError(err)
	}
	return contracts.FunctionArgumentModes(fn), nil
}
