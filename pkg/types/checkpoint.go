// Package types provides checkpoint type definitions.
package types

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"
)

// CheckpointSequenceNumber 检查点序号
type CheckpointSequenceNumber = uint64

// CheckpointSummary 检查点摘要
//
// ContentDigest 指向对应的 CheckpointContents，
// 二者的引用完整性由存储层保证，查询层只做校验性读取。
type CheckpointSummary struct {
	Epoch                    uint64                   `json:"epoch" cbor:"1,keyasint"`
	SequenceNumber           CheckpointSequenceNumber `json:"sequenceNumber" cbor:"2,keyasint"`
	NetworkTotalTransactions uint64                   `json:"networkTotalTransactions" cbor:"3,keyasint"`
	ContentDigest            Digest                   `json:"contentDigest" cbor:"4,keyasint"`
	PreviousDigest           *Digest                  `json:"previousDigest,omitempty" cbor:"5,keyasint,omitempty"`
	TimestampMs              uint64                   `json:"timestampMs" cbor:"6,keyasint"`
}

// Digest 计算摘要自身的内容摘要（规范CBOR编码后做SHA3-256）
func (s *CheckpointSummary) Digest() (Digest, error) {
	raw, err := canonicalEnc.Marshal(s)
	if err != nil {
		return Digest{}, fmt.Errorf("序列化检查点摘要失败: %w", err)
	}
	return sha3.Sum256(raw), nil
}

// CheckpointContents 检查点内容：按执行顺序排列的交易摘要序列
type CheckpointContents struct {
	Transactions []ExecutionDigests `json:"transactions" cbor:"1,keyasint"`
}

// ExecutionDigests 一笔已执行交易的 (交易摘要, 效果摘要) 对
type ExecutionDigests struct {
	Transaction Digest `json:"transaction" cbor:"1,keyasint"`
	Effects     Digest `json:"effects" cbor:"2,keyasint"`
}

// Size 返回检查点包含的交易数量
func (c *CheckpointContents) Size() int {
	return len(c.Transactions)
}

// Digest 计算内容摘要（规范CBOR编码后做SHA3-256）
//
// 摘要必须与 CheckpointSummary.ContentDigest 一致，
// 不一致意味着存储层的引用完整性已被破坏。
func (c *CheckpointContents) Digest() (Digest, error) {
	raw, err := canonicalEnc.Marshal(c)
	if err != nil {
		return Digest{}, fmt.Errorf("序列化检查点内容失败: %w", err)
	}
	return sha3.Sum256(raw), nil
}

// Checkpoint 检查点的合并视图（摘要 + 内容）
type Checkpoint struct {
	Summary  CheckpointSummary  `json:"summary"`
	Contents CheckpointContents `json:"contents"`
}

// canonicalEnc 规范CBOR编码模式，保证跨节点摘要一致
var canonicalEnc cbor.EncMode

func init() {
	var err error
	canonicalEnc, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("初始化规范CBOR编码模式失败: %v", err))
	}
}

// CanonicalMarshal 使用规范CBOR编码序列化任意值
//
// 所有参与摘要计算的序列化都必须经过此入口，确保确定性。
func CanonicalMarshal(v interface{}) ([]byte, error) {
	return canonicalEnc.Marshal(v)
}
