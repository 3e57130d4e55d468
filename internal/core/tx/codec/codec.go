// Package codec 实现交易字节的解码与规范摘要计算
//
// 🎯 **核心职责**：
// 1. 解码外层Base64文本得到原始交易字节
// 2. 按规范CBOR反序列化为交易负载
// 3. 用意图信封包裹负载后计算SHA3-256摘要
//
// 摘要永远作用于意图包裹后的规范编码，而不是原始输入字节：
// 域分离保证一个值不会被跨协议用途重放解释。
package codec

import (
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/meridianchain/v1/pkg/types"
	"golang.org/x/crypto/sha3"
)

// 意图信封的固定标签
const (
	// IntentVersionV0 意图信封版本
	IntentVersionV0 uint8 = 0
	// IntentScopeTransactionData 作用域：交易数据
	IntentScopeTransactionData uint8 = 0
	// IntentAppMeridian 应用标识：Meridian协议
	IntentAppMeridian uint8 = 0
)

// Intent 意图信封头（版本 + 作用域 + 应用标识）
type Intent struct {
	Scope   uint8 `cbor:"1,keyasint"`
	Version uint8 `cbor:"2,keyasint"`
	AppID   uint8 `cbor:"3,keyasint"`
}

// IntentMessage 意图包裹后的交易负载
//
// 摘要计算的唯一输入。三个标签固定，保证同一负载在
// 不同协议用途下得到不同摘要。
type IntentMessage struct {
	Intent Intent                   `cbor:"1,keyasint"`
	Value  types.TransactionPayload `cbor:"2,keyasint"`
}

// MalformedEncodingError 外层文本编码非法
type MalformedEncodingError struct {
	Err error
}

func (e *MalformedEncodingError) Error() string {
	return fmt.Sprintf("交易字节的Base64编码非法: %v", e.Err)
}

// Unwrap 支持 errors.Is/As 链式判定
func (e *MalformedEncodingError) Unwrap() error { return e.Err }

// MalformedPayloadError 交易负载字节结构非法
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("交易负载反序列化失败: %v", e.Err)
}

// Unwrap 支持 errors.Is/As 链式判定
func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// DecodeTransactionBytes 解码Base64交易字节并计算规范摘要
//
// 相同输入永远得到相同摘要：解码与摘要计算全程确定性。
func DecodeTransactionBytes(encoded string) (*types.TransactionPayload, types.Digest, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, types.Digest{}, &MalformedEncodingError{Err: err}
	}
	return DecodeRawTransaction(raw)
}

// DecodeRawTransaction 反序列化原始交易字节并计算规范摘要
func DecodeRawTransaction(raw []byte) (*types.TransactionPayload, types.Digest, error) {
	var payload types.TransactionPayload
	if err := cbor.Unmarshal(raw, &payload); err != nil {
		return nil, types.Digest{}, &MalformedPayloadError{Err: err}
	}

	digest, err := PayloadDigest(&payload)
	if err != nil {
		return nil, types.Digest{}, err
	}
	return &payload, digest, nil
}

// PayloadDigest 计算交易负载的意图包裹摘要
//
// 步骤：负载 → 意图信封 → 规范CBOR编码 → SHA3-256。
func PayloadDigest(payload *types.TransactionPayload) (types.Digest, error) {
	msg := IntentMessage{
		Intent: Intent{
			Scope:   IntentScopeTransactionData,
			Version: IntentVersionV0,
			AppID:   IntentAppMeridian,
		},
		Value: *payload,
	}

	raw, err := types.CanonicalMarshal(msg)
	if err != nil {
		return types.Digest{}, fmt.Errorf("序列化意图信封失败: %w", err)
	}
	return sha3.Sum256(raw), nil
}

// EncodeTransaction 把交易负载编码为规范CBOR字节
//
// 供交易构造工具与测试使用；查询面自身只解码。
func EncodeTransaction(payload *types.TransactionPayload) ([]byte, error) {
	raw, err := types.CanonicalMarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化交易负载失败: %w", err)
	}
	return raw, nil
}
