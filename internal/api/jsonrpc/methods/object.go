package methods

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridianchain/v1/internal/api/jsonrpc"
	"github.com/meridianchain/v1/internal/core/object"
	"github.com/meridianchain/v1/internal/core/persistence/query"
	log "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
	"github.com/meridianchain/v1/pkg/types"
)

// ObjectMethods 对象状态查询方法
type ObjectMethods struct {
	resolver *object.Resolver
	store    persistence.LedgerQuery
	logger   log.Logger
}

// NewObjectMethods 创建对象查询方法集
func NewObjectMethods(resolver *object.Resolver, store persistence.LedgerQuery, logger log.Logger) (*ObjectMethods, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver 不能为空")
	}
	if store == nil {
		return nil, fmt.Errorf("store 不能为空")
	}
	return &ObjectMethods{resolver: resolver, store: store, logger: logger}, nil
}

// Register 注册全部对象查询方法
func (m *ObjectMethods) Register(server *jsonrpc.Server) {
	server.RegisterMethod("mdn_getObject", m.GetObject)
	server.RegisterMethod("mdn_tryGetPastObject", m.TryGetPastObject)
	server.RegisterMethod("mdn_getRawObject", m.GetRawObject)
	server.RegisterMethod("mdn_getObjectsOwnedByAddress", m.GetObjectsOwnedByAddress)
	server.RegisterMethod("mdn_getDynamicFields", m.GetDynamicFields)
	server.RegisterMethod("mdn_getDynamicFieldObject", m.GetDynamicFieldObject)
}

type getObjectParams struct {
	ObjectID string `json:"objectId"`
}

// GetObject 查询对象当前状态
func (m *ObjectMethods) GetObject(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getObjectParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	id, err := types.ParseObjectID(p.ObjectID)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("objectId 解析失败: %v", err), map[string]interface{}{"objectId": p.ObjectID})
	}

	read, err := m.resolver.Current(ctx, id)
	if err != nil {
		return nil, translateObjectError(err)
	}
	return read, nil
}

type tryGetPastObjectParams struct {
	ObjectID string        `json:"objectId"`
	Version  types.Version `json:"version"`
}

// TryGetPastObject 查询对象在指定历史版本的状态
func (m *ObjectMethods) TryGetPastObject(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p tryGetPastObjectParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	id, err := types.ParseObjectID(p.ObjectID)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("objectId 解析失败: %v", err), map[string]interface{}{"objectId": p.ObjectID})
	}

	read, err := m.resolver.AtVersion(ctx, id, p.Version)
	if err != nil {
		return nil, translateObjectError(err)
	}
	return read, nil
}

// rawObjectRead 带原始编码负载的对象读取结果
type rawObjectRead struct {
	Status types.ObjectReadStatus `json:"status"`
	Object *types.VersionedObject `json:"object,omitempty"`
	Raw    []byte                 `json:"raw,omitempty"` // 对象行的规范CBOR编码
}

// GetRawObject 查询对象当前状态并附带原始编码
func (m *ObjectMethods) GetRawObject(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getObjectParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	id, err := types.ParseObjectID(p.ObjectID)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("objectId 解析失败: %v", err), map[string]interface{}{"objectId": p.ObjectID})
	}

	read, err := m.resolver.Current(ctx, id)
	if err != nil {
		return nil, translateObjectError(err)
	}

	result := rawObjectRead{Status: read.Status, Object: read.Object}
	if read.Object != nil {
		raw, err := types.CanonicalMarshal(read.Object)
		if err != nil {
			return nil, internalError(fmt.Errorf("对象编码失败: id=%s: %w", id, err))
		}
		result.Raw = raw
	}
	return result, nil
}

type getOwnedObjectsParams struct {
	Address string `json:"address"`
}

// GetObjectsOwnedByAddress 列出地址持有的全部对象
func (m *ObjectMethods) GetObjectsOwnedByAddress(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getOwnedObjectsParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	owner, err := types.ParseAddress(p.Address)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("address 解析失败: %v", err), map[string]interface{}{"address": p.Address})
	}

	summaries, err := m.store.ListOwnedObjects(ctx, owner)
	if err != nil {
		return nil, internalError(err)
	}
	return summaries, nil
}

type getDynamicFieldsParams struct {
	ParentID string  `json:"parentId"`
	Cursor   *string `json:"cursor,omitempty"`
	Limit    *int    `json:"limit,omitempty"`
}

// GetDynamicFields 分页列出父对象的动态字段
func (m *ObjectMethods) GetDynamicFields(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getDynamicFieldsParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	parent, err := types.ParseObjectID(p.ParentID)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("parentId 解析失败: %v", err), map[string]interface{}{"parentId": p.ParentID})
	}

	var after *types.ObjectID
	if p.Cursor != nil {
		cursor, err := types.ParseObjectID(*p.Cursor)
		if err != nil {
			return nil, invalidParams(fmt.Sprintf("cursor 解析失败: %v", err), map[string]interface{}{"cursor": *p.Cursor})
		}
		after = &cursor
	}

	page, err := query.Paginate(ctx, p.Limit,
		func(ctx context.Context, n int) ([]types.FieldSummary, error) {
			return m.store.ListDynamicFields(ctx, parent, after, n)
		},
		func(item types.FieldSummary) types.ObjectID {
			return item.ObjectID
		},
	)
	if err != nil {
		return nil, internalError(err)
	}
	return page, nil
}

type getDynamicFieldObjectParams struct {
	ParentID string `json:"parentId"`
	Name     string `json:"name"`
}

// GetDynamicFieldObject 按字段名解析动态字段子对象并返回其当前状态
func (m *ObjectMethods) GetDynamicFieldObject(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getDynamicFieldObjectParams
	if problem := parseParams(params, &p); problem != nil {
		return nil, problem
	}
	parent, err := types.ParseObjectID(p.ParentID)
	if err != nil {
		return nil, invalidParams(fmt.Sprintf("parentId 解析失败: %v", err), map[string]interface{}{"parentId": p.ParentID})
	}
	if p.Name == "" {
		return nil, invalidParams("name 不能为空", nil)
	}

	childID, err := m.store.GetDynamicFieldObjectID(ctx, parent, p.Name)
	if err != nil {
		if problem := asNotFound(err, p.Name, parent); problem != nil {
			return nil, problem
		}
		return nil, internalError(err)
	}

	read, err := m.resolver.Current(ctx, childID)
	if err != nil {
		return nil, translateObjectError(err)
	}
	return read, nil
}
