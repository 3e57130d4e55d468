package methods

import (
	"testing"

	apitypes "github.com/meridianchain/v1/internal/api/types"
	"github.com/meridianchain/v1/internal/core/object"
	"github.com/meridianchain/v1/pkg/types"
)

func newObjectMethods(t *testing.T, store *fakeLedger) *ObjectMethods {
	t.Helper()
	resolver, err := object.NewResolver(store, nil)
	if err != nil {
		t.Fatalf("创建解析器失败: %v", err)
	}
	m, err := NewObjectMethods(resolver, store, nil)
	if err != nil {
		t.Fatalf("创建对象方法集失败: %v", err)
	}
	return m
}

func liveObject(id types.ObjectID, version types.Version) *types.VersionedObject {
	return &types.VersionedObject{
		ID:      id,
		Version: version,
		Owner:   types.Owner{Kind: types.OwnerKindImmutable},
		Data:    types.ObjectData{Kind: types.DataKindValue, TypeTag: "0x1::coin::Coin"},
	}
}

func TestGetObjectStatuses(t *testing.T) {
	store := newFakeLedger()
	live := testID(0x01)
	gone := testID(0x02)
	store.addObject(liveObject(live, 3))
	store.latest[gone] = 5
	store.deleted[gone] = true

	m := newObjectMethods(t, store)

	result, err := call(t, m.GetObject, getObjectParams{ObjectID: live.String()})
	if err != nil {
		t.Fatalf("查询存活对象失败: %v", err)
	}
	read := result.(*types.ObjectRead)
	if read.Status != types.ObjectExists {
		t.Fatalf("期望 exists, 实际 %s", read.Status)
	}
	if read.Object == nil || read.Object.Version != 3 {
		t.Fatalf("期望返回版本3的对象, 实际 %+v", read.Object)
	}

	result, err = call(t, m.GetObject, getObjectParams{ObjectID: gone.String()})
	if err != nil {
		t.Fatalf("查询已删除对象失败: %v", err)
	}
	if read := result.(*types.ObjectRead); read.Status != types.ObjectDeleted {
		t.Fatalf("期望 deleted, 实际 %s", read.Status)
	}

	result, err = call(t, m.GetObject, getObjectParams{ObjectID: testID(0x7F).String()})
	if err != nil {
		t.Fatalf("查询不存在的对象失败: %v", err)
	}
	if read := result.(*types.ObjectRead); read.Status != types.ObjectNotAny {
		t.Fatalf("期望 notExists, 实际 %s", read.Status)
	}
}

func TestGetObjectInvalidID(t *testing.T) {
	m := newObjectMethods(t, newFakeLedger())

	_, err := call(t, m.GetObject, getObjectParams{ObjectID: "not-base58-!!"})
	wantProblem(t, err, apitypes.CodeCommonValidationError)
}

func TestTryGetPastObjectOutcomes(t *testing.T) {
	store := newFakeLedger()
	id := testID(0x10)
	store.addObject(liveObject(id, 4))
	store.addObject(liveObject(id, 7))
	store.floors[id] = 4

	m := newObjectMethods(t, store)

	cases := []struct {
		name    string
		version types.Version
		want    types.PastObjectReadStatus
	}{
		{"保留窗口内的历史版本", 4, types.VersionFound},
		{"窗口内但从未写入的版本", 5, types.VersionNotFound},
		{"高于最新版本", 9, types.VersionNotFound},
		{"早于保留下界", 2, types.VersionOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := call(t, m.TryGetPastObject, tryGetPastObjectParams{
				ObjectID: id.String(),
				Version:  tc.version,
			})
			if err != nil {
				t.Fatalf("历史版本查询失败: %v", err)
			}
			read := result.(*types.PastObjectRead)
			if read.Status != tc.want {
				t.Fatalf("version=%d: 期望 %s, 实际 %s", tc.version, tc.want, read.Status)
			}
		})
	}
}

func TestTryGetPastObjectDeletedTombstone(t *testing.T) {
	store := newFakeLedger()
	id := testID(0x11)
	store.addObject(liveObject(id, 2))
	store.latest[id] = 3
	store.deleted[id] = true

	m := newObjectMethods(t, store)

	result, err := call(t, m.TryGetPastObject, tryGetPastObjectParams{ObjectID: id.String(), Version: 3})
	if err != nil {
		t.Fatalf("历史版本查询失败: %v", err)
	}
	if read := result.(*types.PastObjectRead); read.Status != types.VersionDeleted {
		t.Fatalf("期望 deleted, 实际 %s", read.Status)
	}

	// 墓碑之前的版本行仍可读
	result, err = call(t, m.TryGetPastObject, tryGetPastObjectParams{ObjectID: id.String(), Version: 2})
	if err != nil {
		t.Fatalf("历史版本查询失败: %v", err)
	}
	if read := result.(*types.PastObjectRead); read.Status != types.VersionFound {
		t.Fatalf("期望 versionFound, 实际 %s", read.Status)
	}
}

func TestGetRawObject(t *testing.T) {
	store := newFakeLedger()
	id := testID(0x20)
	store.addObject(liveObject(id, 1))

	m := newObjectMethods(t, store)

	result, err := call(t, m.GetRawObject, getObjectParams{ObjectID: id.String()})
	if err != nil {
		t.Fatalf("查询原始对象失败: %v", err)
	}
	raw := result.(rawObjectRead)
	if raw.Status != types.ObjectExists {
		t.Fatalf("期望 exists, 实际 %s", raw.Status)
	}
	if len(raw.Raw) == 0 {
		t.Fatal("期望附带规范编码负载")
	}

	expected, err := types.CanonicalMarshal(raw.Object)
	if err != nil {
		t.Fatalf("编码对象失败: %v", err)
	}
	if string(raw.Raw) != string(expected) {
		t.Fatal("原始负载与规范编码不一致")
	}

	// 不存在的对象不带负载
	result, err = call(t, m.GetRawObject, getObjectParams{ObjectID: testID(0x21).String()})
	if err != nil {
		t.Fatalf("查询不存在的对象失败: %v", err)
	}
	if raw := result.(rawObjectRead); raw.Status != types.ObjectNotAny || raw.Raw != nil {
		t.Fatalf("期望 notExists 且无负载, 实际 %+v", raw)
	}
}

func TestGetObjectsOwnedByAddress(t *testing.T) {
	store := newFakeLedger()
	owner := testAddr(0xA0)
	store.owned[owner] = []types.ObjectSummary{
		{ID: testID(0x01), Version: 1, TypeTag: "0x1::coin::Coin"},
		{ID: testID(0x02), Version: 4, TypeTag: "0x1::nft::Card"},
	}

	m := newObjectMethods(t, store)

	result, err := call(t, m.GetObjectsOwnedByAddress, getOwnedObjectsParams{Address: owner.String()})
	if err != nil {
		t.Fatalf("查询持有对象失败: %v", err)
	}
	summaries := result.([]types.ObjectSummary)
	if len(summaries) != 2 {
		t.Fatalf("期望2条记录, 实际 %d", len(summaries))
	}

	result, err = call(t, m.GetObjectsOwnedByAddress, getOwnedObjectsParams{Address: testAddr(0xA1).String()})
	if err != nil {
		t.Fatalf("查询空地址失败: %v", err)
	}
	if summaries := result.([]types.ObjectSummary); len(summaries) != 0 {
		t.Fatalf("期望空列表, 实际 %d 条", len(summaries))
	}
}

func TestGetDynamicFieldsPagination(t *testing.T) {
	store := newFakeLedger()
	parent := testID(0x30)
	for i := byte(1); i <= 5; i++ {
		store.fields[parent] = append(store.fields[parent], types.FieldSummary{
			Name:     string(rune('a' + i - 1)),
			ObjectID: testID(0x40 + i),
			Version:  1,
		})
	}

	m := newObjectMethods(t, store)

	limit := 2
	result, err := call(t, m.GetDynamicFields, getDynamicFieldsParams{ParentID: parent.String(), Limit: &limit})
	if err != nil {
		t.Fatalf("查询动态字段失败: %v", err)
	}
	page := result.(*types.Page[types.FieldSummary, types.ObjectID])
	if len(page.Data) != 2 {
		t.Fatalf("期望2条记录, 实际 %d", len(page.Data))
	}
	if page.NextCursor == nil {
		t.Fatal("期望存在下一页游标")
	}
	if *page.NextCursor != page.Data[1].ObjectID {
		t.Fatal("游标应指向本页最后一条记录")
	}

	// 沿游标取完余下记录
	cursor := page.NextCursor.String()
	limit = 10
	result, err = call(t, m.GetDynamicFields, getDynamicFieldsParams{
		ParentID: parent.String(),
		Cursor:   &cursor,
		Limit:    &limit,
	})
	if err != nil {
		t.Fatalf("游标翻页失败: %v", err)
	}
	page = result.(*types.Page[types.FieldSummary, types.ObjectID])
	if len(page.Data) != 3 {
		t.Fatalf("期望3条记录, 实际 %d", len(page.Data))
	}
	if page.NextCursor != nil {
		t.Fatal("末页不应带游标")
	}
	if page.Data[0].ObjectID != testID(0x43) {
		t.Fatalf("游标语义应为互斥: 首条应为 %s, 实际 %s", testID(0x43), page.Data[0].ObjectID)
	}
}

func TestGetDynamicFieldObject(t *testing.T) {
	store := newFakeLedger()
	parent := testID(0x50)
	child := testID(0x51)
	store.fieldIDs[fieldKey(parent, "balance")] = child
	store.addObject(liveObject(child, 2))

	m := newObjectMethods(t, store)

	result, err := call(t, m.GetDynamicFieldObject, getDynamicFieldObjectParams{
		ParentID: parent.String(),
		Name:     "balance",
	})
	if err != nil {
		t.Fatalf("查询动态字段对象失败: %v", err)
	}
	read := result.(*types.ObjectRead)
	if read.Status != types.ObjectExists || read.Object.ID != child {
		t.Fatalf("期望返回子对象 %s, 实际 %+v", child, read)
	}

	_, err = call(t, m.GetDynamicFieldObject, getDynamicFieldObjectParams{
		ParentID: parent.String(),
		Name:     "missing",
	})
	problem := wantProblem(t, err, apitypes.CodeLedgerObjectNotFound)
	if problem.Status != 404 {
		t.Fatalf("期望HTTP状态404, 实际 %d", problem.Status)
	}

	_, err = call(t, m.GetDynamicFieldObject, getDynamicFieldObjectParams{ParentID: parent.String()})
	wantProblem(t, err, apitypes.CodeCommonValidationError)
}
