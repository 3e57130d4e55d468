package types

import "fmt"

// RPCError JSON-RPC错误
type RPCError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}

// 标准JSON-RPC 2.0错误码
const (
	// CodeParseError 解析错误
	CodeParseError = -32700
	// CodeInvalidRequest 无效请求
	CodeInvalidRequest = -32600
	// CodeMethodNotFound 方法不存在
	CodeMethodNotFound = -32601
	// CodeInvalidParams 无效参数
	CodeInvalidParams = -32602
	// CodeInternalError 内部错误
	CodeInternalError = -32603
)

// Meridian自定义错误码（-32000至-32099）
const (
	// CodeServerError 通用服务端错误
	CodeServerError = -32000
	// CodeObjectNotFound 对象不存在
	CodeObjectNotFound = -32001
	// CodeVersionOutOfRange 版本低于历史保留下界
	CodeVersionOutOfRange = -32002
	// CodeTxNotFound 交易不存在
	CodeTxNotFound = -32003
	// CodeCheckpointNotFound 检查点不存在
	CodeCheckpointNotFound = -32004
	// CodeStorageInconsistency 存储引用完整性被破坏
	CodeStorageInconsistency = -32005
	// CodeContractIntrospection 合约内省失败
	CodeContractIntrospection = -32006
	// CodeMalformedTransaction 交易字节无法解码
	CodeMalformedTransaction = -32007
)

// NewRPCError 创建RPC错误
func NewRPCError(code int, message string, data interface{}) *RPCError {
	return &RPCError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
