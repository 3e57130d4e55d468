package badger

import (
	"context"
	"fmt"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(&Options{InMemory: true}, nil)
	if err != nil {
		t.Fatalf("打开内存存储失败: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetSetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	key := []byte("objects:latest:abc")

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if got != nil {
		t.Fatalf("不存在的键应返回nil, 实际 %v", got)
	}

	if err := store.Set(ctx, key, []byte("v1")); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}
	got, err = store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("期望 v1, 实际 %s", got)
	}

	exists, err := store.Has(ctx, key)
	if err != nil || !exists {
		t.Fatalf("Has 应返回 true: exists=%v err=%v", exists, err)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	exists, err = store.Has(ctx, key)
	if err != nil || exists {
		t.Fatalf("删除后 Has 应返回 false: exists=%v err=%v", exists, err)
	}
}

func seedIterationData(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		key := []byte(fmt.Sprintf("idx:a:%03d", i))
		if err := store.Set(ctx, key, []byte(fmt.Sprintf("v%d", i))); err != nil {
			t.Fatalf("写入测试数据失败: %v", err)
		}
	}
	// 其他前缀的数据不应被迭代到
	if err := store.Set(ctx, []byte("idx:b:000"), []byte("x")); err != nil {
		t.Fatalf("写入测试数据失败: %v", err)
	}
}

func TestIteratePrefix(t *testing.T) {
	store := newTestStore(t)
	seedIterationData(t, store)
	ctx := context.Background()

	var keys []string
	err := store.IteratePrefix(ctx, []byte("idx:a:"), nil, func(key, value []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	if err != nil {
		t.Fatalf("IteratePrefix 失败: %v", err)
	}
	if len(keys) != 5 || keys[0] != "idx:a:000" || keys[4] != "idx:a:004" {
		t.Fatalf("升序迭代结果不一致: %v", keys)
	}

	// 排他游标
	keys = nil
	err = store.IteratePrefix(ctx, []byte("idx:a:"), []byte("idx:a:002"), func(key, value []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	if err != nil {
		t.Fatalf("IteratePrefix 失败: %v", err)
	}
	if len(keys) != 2 || keys[0] != "idx:a:003" {
		t.Fatalf("游标迭代结果不一致: %v", keys)
	}

	// 游标键不存在时从严格大于它的位置开始
	keys = nil
	err = store.IteratePrefix(ctx, []byte("idx:a:"), []byte("idx:a:0025"), func(key, value []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	if err != nil {
		t.Fatalf("IteratePrefix 失败: %v", err)
	}
	if len(keys) != 2 || keys[0] != "idx:a:003" {
		t.Fatalf("不存在游标的迭代结果不一致: %v", keys)
	}

	// 提前终止
	keys = nil
	err = store.IteratePrefix(ctx, []byte("idx:a:"), nil, func(key, value []byte) bool {
		keys = append(keys, string(key))
		return len(keys) < 2
	})
	if err != nil {
		t.Fatalf("IteratePrefix 失败: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("期望提前终止在2项, 实际 %d", len(keys))
	}
}

func TestIteratePrefixReverse(t *testing.T) {
	store := newTestStore(t)
	seedIterationData(t, store)
	ctx := context.Background()

	var keys []string
	err := store.IteratePrefixReverse(ctx, []byte("idx:a:"), nil, func(key, value []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	if err != nil {
		t.Fatalf("IteratePrefixReverse 失败: %v", err)
	}
	if len(keys) != 5 || keys[0] != "idx:a:004" || keys[4] != "idx:a:000" {
		t.Fatalf("降序迭代结果不一致: %v", keys)
	}

	keys = nil
	err = store.IteratePrefixReverse(ctx, []byte("idx:a:"), []byte("idx:a:002"), func(key, value []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	if err != nil {
		t.Fatalf("IteratePrefixReverse 失败: %v", err)
	}
	if len(keys) != 2 || keys[0] != "idx:a:001" || keys[1] != "idx:a:000" {
		t.Fatalf("降序游标迭代结果不一致: %v", keys)
	}
}

func TestIterateContextCancel(t *testing.T) {
	store := newTestStore(t)
	seedIterationData(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.IteratePrefix(ctx, []byte("idx:a:"), nil, func(key, value []byte) bool {
		return true
	})
	if err == nil {
		t.Fatal("已取消的context应使迭代报错")
	}
}
