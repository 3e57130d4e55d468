package object

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/meridianchain/v1/pkg/interfaces/persistence"
	"github.com/meridianchain/v1/pkg/types"
)

// fakeObjectStore 内存对象存储测试替身
type fakeObjectStore struct {
	latest  map[types.ObjectID]types.Version
	deleted map[types.ObjectID]bool
	rows    map[string]*types.VersionedObject
	floors  map[types.ObjectID]types.Version
	failing bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		latest:  make(map[types.ObjectID]types.Version),
		deleted: make(map[types.ObjectID]bool),
		rows:    make(map[string]*types.VersionedObject),
		floors:  make(map[types.ObjectID]types.Version),
	}
}

func rowKey(id types.ObjectID, v types.Version) string {
	return fmt.Sprintf("%s:%d", id, v)
}

func (f *fakeObjectStore) put(id types.ObjectID, v types.Version) {
	f.latest[id] = v
	f.rows[rowKey(id, v)] = &types.VersionedObject{
		ID:      id,
		Version: v,
		Owner:   types.Owner{Kind: types.OwnerKindImmutable},
		Data:    types.ObjectData{Kind: types.DataKindValue, TypeTag: "0x1::coin::Coin"},
	}
}

func (f *fakeObjectStore) tombstone(id types.ObjectID, v types.Version) {
	f.latest[id] = v
	f.deleted[id] = true
}

func (f *fakeObjectStore) GetLatestVersion(ctx context.Context, id types.ObjectID) (types.Version, bool, error) {
	if f.failing {
		return 0, false, errors.New("disk failure")
	}
	v, ok := f.latest[id]
	if !ok {
		return 0, false, persistence.ErrNotFound
	}
	return v, f.deleted[id], nil
}

func (f *fakeObjectStore) GetObject(ctx context.Context, id types.ObjectID, v types.Version) (*types.VersionedObject, error) {
	obj, ok := f.rows[rowKey(id, v)]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	return obj, nil
}

func (f *fakeObjectStore) RetainedFloor(ctx context.Context, id types.ObjectID) (types.Version, error) {
	return f.floors[id], nil
}

func testID(b byte) types.ObjectID {
	var id types.ObjectID
	id[0] = b
	return id
}

func TestCurrentExists(t *testing.T) {
	store := newFakeObjectStore()
	id := testID(1)
	store.put(id, 3)

	resolver, err := NewResolver(store, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	read, err := resolver.Current(context.Background(), id)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if read.Status != types.ObjectExists {
		t.Fatalf("expected exists, got %s", read.Status)
	}
	if read.Object == nil || read.Object.Version != 3 {
		t.Fatalf("expected object at version 3")
	}
}

func TestCurrentNeverExisted(t *testing.T) {
	store := newFakeObjectStore()
	resolver, _ := NewResolver(store, nil)

	read, err := resolver.Current(context.Background(), testID(9))
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if read.Status != types.ObjectNotAny {
		t.Fatalf("expected notExists, got %s", read.Status)
	}
	if read.Object != nil {
		t.Fatalf("notExists must not carry an object")
	}
}

func TestCurrentDeleted(t *testing.T) {
	store := newFakeObjectStore()
	id := testID(2)
	store.put(id, 1)
	store.tombstone(id, 2)
	resolver, _ := NewResolver(store, nil)

	read, err := resolver.Current(context.Background(), id)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if read.Status != types.ObjectDeleted {
		t.Fatalf("expected deleted, got %s", read.Status)
	}
}

func TestCurrentStorageInconsistency(t *testing.T) {
	store := newFakeObjectStore()
	id := testID(3)
	// 版本指针存在但对象行缺失
	store.latest[id] = 5
	resolver, _ := NewResolver(store, nil)

	_, err := resolver.Current(context.Background(), id)
	var inconsistency *InconsistencyError
	if !errors.As(err, &inconsistency) {
		t.Fatalf("expected InconsistencyError, got %v", err)
	}
	if inconsistency.ID != id || inconsistency.Version != 5 {
		t.Fatalf("inconsistency must retain the queried identifier")
	}
}

func TestCurrentUpstreamFailure(t *testing.T) {
	store := newFakeObjectStore()
	store.failing = true
	resolver, _ := NewResolver(store, nil)

	read, err := resolver.Current(context.Background(), testID(4))
	if err == nil || read != nil {
		t.Fatalf("store failure must propagate as an error")
	}
}

func TestAtVersionPartition(t *testing.T) {
	store := newFakeObjectStore()
	id := testID(5)
	store.put(id, 4)
	store.put(id, 6)
	store.floors[id] = 4
	resolver, _ := NewResolver(store, nil)
	ctx := context.Background()

	cases := []struct {
		name    string
		version types.Version
		want    types.PastObjectReadStatus
	}{
		{"below retention floor", 3, types.VersionOutOfRange},
		{"found", 4, types.VersionFound},
		{"in range but never written", 5, types.VersionNotFound},
		{"latest", 6, types.VersionFound},
		{"above latest", 7, types.VersionNotFound},
	}
	for _, tc := range cases {
		read, err := resolver.AtVersion(ctx, id, tc.version)
		if err != nil {
			t.Fatalf("%s: at version: %v", tc.name, err)
		}
		if read.Status != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, read.Status)
		}
		if read.ID != id || read.Version != tc.version {
			t.Fatalf("%s: result must retain the queried identifier and version", tc.name)
		}
	}
}

func TestAtVersionDeletedTombstone(t *testing.T) {
	store := newFakeObjectStore()
	id := testID(6)
	store.put(id, 1)
	store.tombstone(id, 2)
	resolver, _ := NewResolver(store, nil)
	ctx := context.Background()

	read, err := resolver.AtVersion(ctx, id, 2)
	if err != nil {
		t.Fatalf("at version: %v", err)
	}
	if read.Status != types.VersionDeleted {
		t.Fatalf("tombstone version must read as deleted, got %s", read.Status)
	}

	// 删除前的历史版本仍然可读
	read, err = resolver.AtVersion(ctx, id, 1)
	if err != nil {
		t.Fatalf("at version: %v", err)
	}
	if read.Status != types.VersionFound {
		t.Fatalf("pre-deletion version must stay readable, got %s", read.Status)
	}
}

func TestAtVersionNeverExisted(t *testing.T) {
	store := newFakeObjectStore()
	resolver, _ := NewResolver(store, nil)

	read, err := resolver.AtVersion(context.Background(), testID(7), 1)
	if err != nil {
		t.Fatalf("at version: %v", err)
	}
	if read.Status != types.VersionNotFound {
		t.Fatalf("unknown object must read as versionNotFound, got %s", read.Status)
	}
}

func TestAtVersionOutOfRangeBeatsNotFound(t *testing.T) {
	store := newFakeObjectStore()
	id := testID(8)
	store.put(id, 10)
	store.floors[id] = 8
	resolver, _ := NewResolver(store, nil)

	// 版本2从未存在，但它低于保留下界，必须报 outOfRetainedRange 而非 versionNotFound
	read, err := resolver.AtVersion(context.Background(), id, 2)
	if err != nil {
		t.Fatalf("at version: %v", err)
	}
	if read.Status != types.VersionOutOfRange {
		t.Fatalf("retention check must run first, got %s", read.Status)
	}
}
