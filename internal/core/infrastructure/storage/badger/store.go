// Package badger 提供基于BadgerDB的键值存储实现
package badger

import (
	"context"
	"fmt"
	"os"

	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"github.com/meridianchain/v1/internal/config"
	log "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/meridianchain/v1/pkg/interfaces/infrastructure/storage"
)

// Store 实现 storage.KVStore 与 storage.KVWriter
type Store struct {
	db     *badgerdb.DB
	logger log.Logger
}

// Options 存储引擎配置
type Options struct {
	Path             string // 数据目录；InMemory为true时忽略
	InMemory         bool   // 纯内存模式，仅用于测试
	ValueLogFileSize int64  // 单个value log文件上限（字节），0表示使用默认值
	NumCompactors    int    // 压缩协程数，0表示使用默认值
}

// OptionsFromConfig 从节点配置构造存储选项
func OptionsFromConfig(cfg *config.Config) *Options {
	opts := &Options{
		Path:     cfg.StoragePath(),
		InMemory: cfg.Storage.InMemory,
	}
	if cfg.Storage.ValueLogFileSize != nil {
		opts.ValueLogFileSize = *cfg.Storage.ValueLogFileSize
	}
	if cfg.Storage.NumCompactors != nil {
		opts.NumCompactors = *cfg.Storage.NumCompactors
	}
	return opts
}

// New 打开BadgerDB存储
func New(opts *Options, logger log.Logger) (*Store, error) {
	if opts == nil {
		return nil, fmt.Errorf("opts 不能为空")
	}
	if logger == nil {
		logger = nopLogger{}
	}

	var dbOpts badgerdb.Options
	if opts.InMemory {
		dbOpts = badgerdb.DefaultOptions("").WithInMemory(true)
		logger.Info("🧠 以内存模式打开BadgerDB（数据不持久化）")
	} else {
		if opts.Path == "" {
			return nil, fmt.Errorf("存储路径不能为空")
		}
		if err := os.MkdirAll(opts.Path, 0700); err != nil {
			return nil, fmt.Errorf("创建存储目录失败: %s: %w", opts.Path, err)
		}
		dbOpts = badgerdb.DefaultOptions(opts.Path)
		logger.Infof("初始化BadgerDB存储，数据目录: %s", opts.Path)
	}

	// 降低mmap虚拟地址占用：value log文件默认从1GB降到512MB
	dbOpts.ValueLogFileSize = 512 << 20
	if opts.ValueLogFileSize > 0 {
		dbOpts.ValueLogFileSize = opts.ValueLogFileSize
	}
	dbOpts.BlockCacheSize = 64 << 20
	dbOpts.IndexCacheSize = 64 << 20
	dbOpts.NumMemtables = 2
	dbOpts.NumCompactors = 2
	if opts.NumCompactors > 0 {
		dbOpts.NumCompactors = opts.NumCompactors
	}
	dbOpts.Logger = newBadgerLogger(logger)

	db, err := badgerdb.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("打开BadgerDB失败: %w", err)
	}

	logger.Info("✅ BadgerDB存储初始化完成")
	return &Store{db: db, logger: logger}, nil
}

// Get 获取指定键的值
//
// 键不存在时返回 (nil, nil)。
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	var valCopy []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("badger获取键失败: %w", err)
	}
	return valCopy, nil
}

// Has 判断键是否存在
func (s *Store) Has(ctx context.Context, key []byte) (bool, error) {
	var exists bool
	err := s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(key)
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("badger检查键存在性失败: %w", err)
	}
	return exists, nil
}

// IteratePrefix 按键升序迭代具有指定前缀的条目
//
// after 非空时从严格大于 after 的键开始。
func (s *Store) IteratePrefix(ctx context.Context, prefix, after []byte, fn func(key, value []byte) bool) error {
	err := s.db.View(func(txn *badgerdb.Txn) error {
		itOpts := badgerdb.DefaultIteratorOptions
		itOpts.Prefix = prefix
		it := txn.NewIterator(itOpts)
		defer it.Close()

		// 排他游标：定位到after并跳过它本身
		if len(after) > 0 {
			it.Seek(after)
			if it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(after) {
				it.Next()
			}
		} else {
			it.Rewind()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !fn(item.KeyCopy(nil), value) {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger前缀迭代失败: %w", err)
	}
	return nil
}

// IteratePrefixReverse 按键降序迭代具有指定前缀的条目
//
// after 非空时从严格小于 after 的键开始。
func (s *Store) IteratePrefixReverse(ctx context.Context, prefix, after []byte, fn func(key, value []byte) bool) error {
	err := s.db.View(func(txn *badgerdb.Txn) error {
		itOpts := badgerdb.DefaultIteratorOptions
		itOpts.Prefix = prefix
		itOpts.Reverse = true
		it := txn.NewIterator(itOpts)
		defer it.Close()

		if len(after) > 0 {
			it.Seek(after)
			if it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(after) {
				it.Next()
			}
		} else {
			// 反向迭代的起点是前缀区间的上界
			it.Seek(append(append([]byte{}, prefix...), 0xff))
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !fn(item.KeyCopy(nil), value) {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger反向前缀迭代失败: %w", err)
	}
	return nil
}

// Set 写入键值对
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("badger写入失败: %w", err)
	}
	return nil
}

// Delete 删除键
func (s *Store) Delete(ctx context.Context, key []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("badger删除失败: %w", err)
	}
	return nil
}

// Close 关闭存储引擎
func (s *Store) Close() error {
	s.logger.Info("🔧 关闭BadgerDB存储...")
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("关闭BadgerDB失败: %w", err)
	}
	s.logger.Info("🛑 BadgerDB存储已关闭")
	return nil
}

// 编译期接口断言
var (
	_ storage.KVStore  = (*Store)(nil)
	_ storage.KVWriter = (*Store)(nil)
)

// nopLogger 在logger未注入时避免nil指针崩溃
type nopLogger struct{}

func (nopLogger) Debug(string)                   {}
func (nopLogger) Debugf(string, ...interface{})  {}
func (nopLogger) Info(string)                    {}
func (nopLogger) Infof(string, ...interface{})   {}
func (nopLogger) Warn(string)                    {}
func (nopLogger) Warnf(string, ...interface{})   {}
func (nopLogger) Error(string)                   {}
func (nopLogger) Errorf(string, ...interface{})  {}
func (nopLogger) Fatal(string)                   {}
func (nopLogger) Fatalf(string, ...interface{})  {}
func (nopLogger) With(...interface{}) log.Logger { return nopLogger{} }
func (nopLogger) Sync() error                    { return nil }
func (nopLogger) GetZapLogger() *zap.Logger      { return zap.NewNop() }
