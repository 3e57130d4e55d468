// Package types provides ledger digest type definitions.
package types

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
)

// DigestLength 摘要的固定字节长度
const DigestLength = 32

// Digest 固定长度的加密摘要（交易、检查点、内容摘要通用）
type Digest [DigestLength]byte

// NewDigest 从字节切片构造摘要
func NewDigest(raw []byte) (Digest, error) {
	var d Digest
	if len(raw) != DigestLength {
		return d, fmt.Errorf("摘要长度错误: 期望%d字节, 实际%d字节", DigestLength, len(raw))
	}
	copy(d[:], raw)
	return d, nil
}

// String 返回摘要的Base58文本形式
func (d Digest) String() string {
	return base58.Encode(d[:])
}

// Bytes 返回摘要的字节副本
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestLength)
	copy(b, d[:])
	return b
}

// IsZero 判断摘要是否为零值
func (d Digest) IsZero() bool {
	return bytes.Equal(d[:], make([]byte, DigestLength))
}

// MarshalJSON 实现 json.Marshaler，边界统一使用Base58文本
func (d Digest) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON 实现 json.Unmarshaler
func (d *Digest) UnmarshalJSON(data []byte) error {
	s, err := unquoteJSONString(data)
	if err != nil {
		return fmt.Errorf("摘要必须是字符串: %w", err)
	}
	parsed, err := ParseDigest(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest 解析Base58文本形式的摘要
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := base58.Decode(s)
	if err != nil {
		return d, fmt.Errorf("摘要不是合法的Base58编码: %w", err)
	}
	return NewDigest(raw)
}
