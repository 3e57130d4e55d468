package query

import (
	"encoding/binary"
	"fmt"

	"github.com/meridianchain/v1/pkg/types"
)

// 键族规范（遵循 docs/data-architecture.md）：
//
//	objects:latest:{id}                对象最新版本指针（8字节版本 + 1字节墓碑标志）
//	objects:row:{id}:{version}         对象版本行（CBOR编码的VersionedObject）
//	objects:floor:{id}                 对象历史保留下界（8字节版本）
//	indices:owner:{addr}:{id}          地址持有索引（CBOR编码的ObjectSummary）
//	indices:dynfield:{parent}:{id}     动态字段索引（CBOR编码的FieldSummary）
//	indices:dynfieldname:{parent}:{name} 字段名 → 子对象标识符（32字节）
//	indices:txseq:{seq}                执行顺序索引（32字节交易摘要）
//	indices:txseqof:{digest}           交易摘要 → 执行序号（8字节）
//	indices:txfrom:{addr}:{seq}        发起方过滤索引（32字节交易摘要）
//	indices:txto:{addr}:{seq}          接收方过滤索引（32字节交易摘要）
//	indices:txobj:{id}:{seq}           输入对象过滤索引（32字节交易摘要）
//	indices:txcheckpoint:{digest}      交易 → 检查点序号（8字节）
//	indices:txtime:{digest}            交易 → 执行时间戳毫秒（8字节）
//	transactions:{digest}              交易行（CBOR编码的负载+效果）
//	checkpoints:summary:{seq}          检查点摘要（CBOR）
//	checkpoints:digest:{digest}        摘要digest → 序号（8字节）
//	checkpoints:contents:{digest}      检查点内容（CBOR）
//	meta:txcount                       交易总数（8字节）
//	meta:latestcheckpoint              最新检查点序号（8字节）
//
// 版本与序号在键中一律使用16位十六进制定长编码，保证字典序即数值序。

func objectLatestKey(id types.ObjectID) []byte {
	return []byte(fmt.Sprintf("objects:latest:%x", id[:]))
}

func objectRowKey(id types.ObjectID, version types.Version) []byte {
	return []byte(fmt.Sprintf("objects:row:%x:%016x", id[:], uint64(version)))
}

func objectFloorKey(id types.ObjectID) []byte {
	return []byte(fmt.Sprintf("objects:floor:%x", id[:]))
}

func ownerIndexPrefix(owner types.Address) []byte {
	return []byte(fmt.Sprintf("indices:owner:%x:", owner[:]))
}

func ownerIndexKey(owner types.Address, id types.ObjectID) []byte {
	return []byte(fmt.Sprintf("indices:owner:%x:%x", owner[:], id[:]))
}

func dynFieldPrefix(parent types.ObjectID) []byte {
	return []byte(fmt.Sprintf("indices:dynfield:%x:", parent[:]))
}

func dynFieldKey(parent, child types.ObjectID) []byte {
	return []byte(fmt.Sprintf("indices:dynfield:%x:%x", parent[:], child[:]))
}

func dynFieldNameKey(parent types.ObjectID, name string) []byte {
	return []byte(fmt.Sprintf("indices:dynfieldname:%x:%s", parent[:], name))
}

func txSeqPrefix() []byte {
	return []byte("indices:txseq:")
}

func txSeqKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("indices:txseq:%016x", seq))
}

func txSeqOfKey(digest types.Digest) []byte {
	return []byte(fmt.Sprintf("indices:txseqof:%x", digest[:]))
}

func txFilterPrefix(filter types.TransactionFilter) ([]byte, error) {
	switch filter.Kind {
	case types.TxFilterAll:
		return txSeqPrefix(), nil
	case types.TxFilterFromAddress:
		if filter.Address == nil {
			return nil, fmt.Errorf("fromAddress 过滤器缺少地址")
		}
		return []byte(fmt.Sprintf("indices:txfrom:%x:", filter.Address[:])), nil
	case types.TxFilterToAddress:
		if filter.Address == nil {
			return nil, fmt.Errorf("toAddress 过滤器缺少地址")
		}
		return []byte(fmt.Sprintf("indices:txto:%x:", filter.Address[:])), nil
	case types.TxFilterInputObject:
		if filter.ObjectID == nil {
			return nil, fmt.Errorf("inputObject 过滤器缺少对象标识符")
		}
		return []byte(fmt.Sprintf("indices:txobj:%x:", filter.ObjectID[:])), nil
	default:
		return nil, fmt.Errorf("未知的交易过滤器类别: %q", filter.Kind)
	}
}

func txFilterKey(prefix []byte, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%016x", prefix, seq))
}

func txCheckpointKey(digest types.Digest) []byte {
	return []byte(fmt.Sprintf("indices:txcheckpoint:%x", digest[:]))
}

func txTimeKey(digest types.Digest) []byte {
	return []byte(fmt.Sprintf("indices:txtime:%x", digest[:]))
}

func txRowKey(digest types.Digest) []byte {
	return []byte(fmt.Sprintf("transactions:%x", digest[:]))
}

func checkpointSummaryKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("checkpoints:summary:%016x", seq))
}

func checkpointDigestKey(digest types.Digest) []byte {
	return []byte(fmt.Sprintf("checkpoints:digest:%x", digest[:]))
}

func checkpointContentsKey(contentDigest types.Digest) []byte {
	return []byte(fmt.Sprintf("checkpoints:contents:%x", contentDigest[:]))
}

var (
	metaTxCountKey          = []byte("meta:txcount")
	metaLatestCheckpointKey = []byte("meta:latestcheckpoint")
)

// encodeUint64 8字节大端编码
func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// decodeUint64 解码8字节大端整数
func decodeUint64(raw []byte) (uint64, error) {
	if len(raw) != 8 {
		return 0, fmt.Errorf("整数值长度错误: 期望8字节, 实际%d字节", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}
