package methods

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"

	apitypes "github.com/meridianchain/v1/internal/api/types"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
	"github.com/meridianchain/v1/pkg/types"
)

// fakeLedger 内存中的 persistence.LedgerQuery 测试替身
type fakeLedger struct {
	latest    map[types.ObjectID]types.Version
	deleted   map[types.ObjectID]bool
	rows      map[string]*types.VersionedObject
	floors    map[types.ObjectID]types.Version
	owned     map[types.Address][]types.ObjectSummary
	fields    map[types.ObjectID][]types.FieldSummary
	fieldIDs  map[string]types.ObjectID
	txs       map[types.Digest]*storedTx
	txOrder   []types.Digest
	summaries map[types.CheckpointSequenceNumber]*types.CheckpointSummary
	byDigest  map[types.Digest]types.CheckpointSequenceNumber
	contents  map[types.Digest]*types.CheckpointContents
	latestCp  *types.CheckpointSequenceNumber
}

type storedTx struct {
	payload    types.TransactionPayload
	effects    types.TransactionEffects
	timestamp  uint64
	checkpoint *types.CheckpointSequenceNumber
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		latest:    map[types.ObjectID]types.Version{},
		deleted:   map[types.ObjectID]bool{},
		rows:      map[string]*types.VersionedObject{},
		floors:    map[types.ObjectID]types.Version{},
		owned:     map[types.Address][]types.ObjectSummary{},
		fields:    map[types.ObjectID][]types.FieldSummary{},
		fieldIDs:  map[string]types.ObjectID{},
		txs:       map[types.Digest]*storedTx{},
		summaries: map[types.CheckpointSequenceNumber]*types.CheckpointSummary{},
		byDigest:  map[types.Digest]types.CheckpointSequenceNumber{},
		contents:  map[types.Digest]*types.CheckpointContents{},
	}
}

func rowKey(id types.ObjectID, v types.Version) string {
	return fmt.Sprintf("%x:%d", id[:], v)
}

func fieldKey(parent types.ObjectID, name string) string {
	return fmt.Sprintf("%x:%s", parent[:], name)
}

func (f *fakeLedger) addObject(obj *types.VersionedObject) {
	if current, ok := f.latest[obj.ID]; !ok || obj.Version > current {
		f.latest[obj.ID] = obj.Version
	}
	f.rows[rowKey(obj.ID, obj.Version)] = obj
}

func (f *fakeLedger) GetLatestVersion(ctx context.Context, id types.ObjectID) (types.Version, bool, error) {
	v, ok := f.latest[id]
	if !ok {
		return 0, false, fmt.Errorf("id=%s: %w", id, persistence.ErrNotFound)
	}
	return v, f.deleted[id], nil
}

func (f *fakeLedger) GetObject(ctx context.Context, id types.ObjectID, version types.Version) (*types.VersionedObject, error) {
	obj, ok := f.rows[rowKey(id, version)]
	if !ok {
		return nil, fmt.Errorf("id=%s version=%d: %w", id, version, persistence.ErrNotFound)
	}
	return obj, nil
}

func (f *fakeLedger) RetainedFloor(ctx context.Context, id types.ObjectID) (types.Version, error) {
	return f.floors[id], nil
}

func (f *fakeLedger) ListOwnedObjects(ctx context.Context, owner types.Address) ([]types.ObjectSummary, error) {
	return f.owned[owner], nil
}

func (f *fakeLedger) ListDynamicFields(ctx context.Context, parent types.ObjectID, after *types.ObjectID, limit int) ([]types.FieldSummary, error) {
	all := append([]types.FieldSummary{}, f.fields[parent]...)
	sort.Slice(all, func(i, j int) bool {
		return string(all[i].ObjectID[:]) < string(all[j].ObjectID[:])
	})
	out := []types.FieldSummary{}
	for _, field := range all {
		if after != nil && string(field.ObjectID[:]) <= string(after[:]) {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, field)
	}
	return out, nil
}

func (f *fakeLedger) GetDynamicFieldObjectID(ctx context.Context, parent types.ObjectID, name string) (types.ObjectID, error) {
	id, ok := f.fieldIDs[fieldKey(parent, name)]
	if !ok {
		return types.ObjectID{}, fmt.Errorf("parent=%s name=%s: %w", parent, name, persistence.ErrNotFound)
	}
	return id, nil
}

func (f *fakeLedger) GetTransaction(ctx context.Context, digest types.Digest) (*types.TransactionPayload, *types.TransactionEffects, error) {
	tx, ok := f.txs[digest]
	if !ok {
		return nil, nil, fmt.Errorf("digest=%s: %w", digest, persistence.ErrNotFound)
	}
	return &tx.payload, &tx.effects, nil
}

func (f *fakeLedger) GetTransactionCheckpoint(ctx context.Context, digest types.Digest) (*types.CheckpointSequenceNumber, error) {
	tx, ok := f.txs[digest]
	if !ok {
		return nil, nil
	}
	return tx.checkpoint, nil
}

func (f *fakeLedger) GetTimestampMs(ctx context.Context, digest types.Digest) (uint64, error) {
	tx, ok := f.txs[digest]
	if !ok {
		return 0, fmt.Errorf("digest=%s: %w", digest, persistence.ErrNotFound)
	}
	return tx.timestamp, nil
}

func (f *fakeLedger) GetTotalTransactionNumber(ctx context.Context) (uint64, error) {
	return uint64(len(f.txOrder)), nil
}

func (f *fakeLedger) GetTransactionsInRange(ctx context.Context, start, end uint64) ([]types.Digest, error) {
	out := []types.Digest{}
	for seq := start; seq < end && seq < uint64(len(f.txOrder)); seq++ {
		out = append(out, f.txOrder[seq])
	}
	return out, nil
}

func (f *fakeLedger) ListTransactions(ctx context.Context, filter types.TransactionFilter, after *types.Digest, limit int, descending bool) ([]types.Digest, error) {
	ordered := append([]types.Digest{}, f.txOrder...)
	if descending {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	out := []types.Digest{}
	skipping := after != nil
	for _, d := range ordered {
		if skipping {
			if d == *after {
				skipping = false
			}
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeLedger) GetLatestCheckpointSequenceNumber(ctx context.Context) (types.CheckpointSequenceNumber, error) {
	if f.latestCp == nil {
		return 0, fmt.Errorf("latest checkpoint: %w", persistence.ErrNotFound)
	}
	return *f.latestCp, nil
}

func (f *fakeLedger) GetCheckpointSummary(ctx context.Context, seq types.CheckpointSequenceNumber) (*types.CheckpointSummary, error) {
	summary, ok := f.summaries[seq]
	if !ok {
		return nil, fmt.Errorf("sequenceNumber=%d: %w", seq, persistence.ErrNotFound)
	}
	return summary, nil
}

func (f *fakeLedger) GetCheckpointSummaryByDigest(ctx context.Context, digest types.Digest) (*types.CheckpointSummary, error) {
	seq, ok := f.byDigest[digest]
	if !ok {
		return nil, fmt.Errorf("digest=%s: %w", digest, persistence.ErrNotFound)
	}
	return f.GetCheckpointSummary(ctx, seq)
}

func (f *fakeLedger) GetCheckpointContents(ctx context.Context, contentDigest types.Digest) (*types.CheckpointContents, error) {
	contents, ok := f.contents[contentDigest]
	if !ok {
		return nil, fmt.Errorf("contentDigest=%s: %w", contentDigest, persistence.ErrNotFound)
	}
	return contents, nil
}

var _ persistence.LedgerQuery = (*fakeLedger)(nil)

func testID(b byte) types.ObjectID {
	var id types.ObjectID
	id[0] = b
	return id
}

func testAddr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func testDigest(b byte) types.Digest {
	var d types.Digest
	d[0] = b
	return d
}

// call 调用方法并把参数编码为JSON
func call(t *testing.T, handler func(context.Context, json.RawMessage) (interface{}, error), params interface{}) (interface{}, error) {
	t.Helper()
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("编码参数失败: %v", err)
	}
	return handler(context.Background(), raw)
}

// wantProblem 断言错误是指定错误码的 Problem Details
func wantProblem(t *testing.T, err error, code string) *apitypes.ProblemDetails {
	t.Helper()
	if err == nil {
		t.Fatalf("期望 Problem Details 错误码 %s, 实际无错误", code)
	}
	problem, ok := apitypes.IsProblemDetails(err)
	if !ok {
		t.Fatalf("期望 Problem Details, 实际 %T: %v", err, err)
	}
	if problem.Code != code {
		t.Fatalf("期望错误码 %s, 实际 %s", code, problem.Code)
	}
	return problem
}
