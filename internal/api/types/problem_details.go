// Package types 提供API层的错误信封定义
//
// 所有查询失败统一包装为 Problem Details（RFC7807），
// 再由JSON-RPC层映射为线上的错误码。错误码 + 层标识 + TraceID
// 使得一次失败可以跨日志与客户端报告关联起来。
package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProblemDetails 查询失败的结构化描述（RFC7807 + 扩展字段）
type ProblemDetails struct {
	// RFC7807 标准字段
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// 扩展字段（必填）
	Code        string                 `json:"code"`
	Layer       string                 `json:"layer"`
	UserMessage string                 `json:"userMessage"`
	Details     map[string]interface{} `json:"details,omitempty"`
	TraceID     string                 `json:"traceId"`
	Timestamp   string                 `json:"timestamp"`
}

// Error 实现 error 接口
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.UserMessage
}

// NewProblemDetails 创建带TraceID与时间戳的 Problem Details
func NewProblemDetails(
	code string,
	layer string,
	userMessage string,
	detail string,
	status int,
	details map[string]interface{},
) *ProblemDetails {
	if details == nil {
		details = make(map[string]interface{})
	}

	return &ProblemDetails{
		Code:        code,
		Layer:       layer,
		UserMessage: userMessage,
		Detail:      detail,
		Status:      status,
		Details:     details,
		TraceID:     uuid.New().String(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// IsProblemDetails 判断错误链中是否包含 Problem Details
func IsProblemDetails(err error) (*ProblemDetails, bool) {
	var pd *ProblemDetails
	if errors.As(err, &pd) {
		return pd, true
	}
	return nil, false
}

// 错误码常量
const (
	// 账本查询错误
	CodeLedgerObjectNotFound       = "LEDGER_OBJECT_NOT_FOUND"
	CodeLedgerVersionOutOfRange    = "LEDGER_VERSION_OUT_OF_RANGE"
	CodeLedgerTxNotFound           = "LEDGER_TX_NOT_FOUND"
	CodeLedgerCheckpointNotFound   = "LEDGER_CHECKPOINT_NOT_FOUND"
	CodeLedgerStorageInconsistency = "LEDGER_STORAGE_INCONSISTENCY"

	// 合约内省错误
	CodeContractNotAPackage       = "CONTRACT_NOT_A_PACKAGE"
	CodeContractMemberNotFound    = "CONTRACT_MEMBER_NOT_FOUND"
	CodeContractInvalidIdentifier = "CONTRACT_INVALID_IDENTIFIER"
	CodeContractMalformedBytecode = "CONTRACT_MALFORMED_BYTECODE"

	// 交易编解码错误
	CodeTxMalformedEncoding = "TX_MALFORMED_ENCODING"
	CodeTxMalformedPayload  = "TX_MALFORMED_PAYLOAD"

	// 通用错误
	CodeCommonValidationError = "COMMON_VALIDATION_ERROR"
	CodeCommonInternalError   = "COMMON_INTERNAL_ERROR"
)

// Layer 常量
const (
	LayerLedgerQuery = "ledger-query"
)
