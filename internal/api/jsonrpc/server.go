// Package jsonrpc 提供JSON-RPC 2.0服务器与账本查询方法的注册
package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/meridianchain/v1/internal/api/jsonrpc/types"
	apitypes "github.com/meridianchain/v1/internal/api/types"
)

// Server JSON-RPC 2.0 服务器
type Server struct {
	logger  *zap.Logger
	methods map[string]MethodHandler
	metrics *Metrics
}

// MethodHandler JSON-RPC方法处理器
type MethodHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// NewServer 创建JSON-RPC服务器
func NewServer(logger *zap.Logger, metrics *Metrics) *Server {
	return &Server{
		logger:  logger,
		methods: make(map[string]MethodHandler),
		metrics: metrics,
	}
}

// RegisterMethod 注册JSON-RPC方法
func (s *Server) RegisterMethod(method string, handler MethodHandler) {
	s.methods[method] = handler
}

// ServeHTTP 处理HTTP请求
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// panic recovery（带堆栈）
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("JSON-RPC handler panic recovered",
				zap.Any("panic", rec),
				zap.String("http_method", r.Method),
				zap.String("path", r.URL.Path),
				zap.ByteString("stack", debug.Stack()),
			)

			if w.Header().Get("Content-Type") == "" {
				problem := apitypes.NewProblemDetails(
					apitypes.CodeCommonInternalError,
					apitypes.LayerLedgerQuery,
					"服务器内部错误，请稍后重试或联系管理员。",
					fmt.Sprintf("Panic recovered: %v", rec),
					500,
					map[string]interface{}{
						"panic": fmt.Sprintf("%v", rec),
					},
				)
				s.writeErrorWithProblemDetails(w, nil, problem, types.CodeInternalError, "")
			}
		}
	}()

	if r.Method != http.MethodPost {
		problem := apitypes.NewProblemDetails(
			apitypes.CodeCommonValidationError,
			apitypes.LayerLedgerQuery,
			"请求方法无效，仅支持 POST 方法。",
			"Only POST method is allowed",
			405,
			nil,
		)
		s.writeErrorWithProblemDetails(w, nil, problem, types.CodeInvalidRequest, "")
		return
	}

	var req types.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem := apitypes.NewProblemDetails(
			apitypes.CodeCommonValidationError,
			apitypes.LayerLedgerQuery,
			"请求格式无效，无法解析 JSON。",
			fmt.Sprintf("Parse error: %v", err),
			400,
			nil,
		)
		s.writeErrorWithProblemDetails(w, nil, problem, types.CodeParseError, "")
		return
	}

	if req.JSONRPC != "2.0" {
		problem := apitypes.NewProblemDetails(
			apitypes.CodeCommonValidationError,
			apitypes.LayerLedgerQuery,
			"请求格式无效，jsonrpc 字段必须为 '2.0'。",
			"jsonrpc field must be '2.0'",
			400,
			map[string]interface{}{
				"provided": req.JSONRPC,
			},
		)
		s.writeErrorWithProblemDetails(w, req.ID, problem, types.CodeInvalidRequest, req.Method)
		return
	}

	handler, ok := s.methods[req.Method]
	if !ok {
		problem := apitypes.NewProblemDetails(
			apitypes.CodeCommonValidationError,
			apitypes.LayerLedgerQuery,
			"方法不存在，请检查方法名称。",
			fmt.Sprintf("Method '%s' not found", req.Method),
			404,
			map[string]interface{}{
				"method": req.Method,
			},
		)
		s.writeErrorWithProblemDetails(w, req.ID, problem, types.CodeMethodNotFound, req.Method)
		return
	}

	start := time.Now()
	result, err := handler(r.Context(), req.Params)
	if s.metrics != nil {
		s.metrics.Observe(req.Method, err == nil, time.Since(start))
	}

	if err != nil {
		// 所有handler错误都应是 Problem Details；不是则降级为通用内部错误
		problem, ok := apitypes.IsProblemDetails(err)
		if !ok {
			s.logger.Error("Handler returned non-ProblemDetails error",
				zap.String("method", req.Method),
				zap.Error(err))
			problem = apitypes.NewProblemDetails(
				apitypes.CodeCommonInternalError,
				apitypes.LayerLedgerQuery,
				"服务器内部错误，请稍后重试或联系管理员。",
				fmt.Sprintf("Internal error: %v", err),
				500,
				map[string]interface{}{
					"method": req.Method,
				},
			)
		}
		s.writeErrorWithProblemDetails(w, req.ID, problem, rpcCodeOf(problem), req.Method)
		return
	}

	s.writeSuccess(w, req.ID, result)
}

// rpcCodeOf 把 Problem Details 错误码映射为 JSON-RPC 自定义错误码
func rpcCodeOf(problem *apitypes.ProblemDetails) int {
	switch problem.Code {
	case apitypes.CodeLedgerObjectNotFound:
		return types.CodeObjectNotFound
	case apitypes.CodeLedgerVersionOutOfRange:
		return types.CodeVersionOutOfRange
	case apitypes.CodeLedgerTxNotFound:
		return types.CodeTxNotFound
	case apitypes.CodeLedgerCheckpointNotFound:
		return types.CodeCheckpointNotFound
	case apitypes.CodeLedgerStorageInconsistency:
		return types.CodeStorageInconsistency
	case apitypes.CodeContractNotAPackage,
		apitypes.CodeContractMemberNotFound,
		apitypes.CodeContractInvalidIdentifier,
		apitypes.CodeContractMalformedBytecode:
		return types.CodeContractIntrospection
	case apitypes.CodeTxMalformedEncoding, apitypes.CodeTxMalformedPayload:
		return types.CodeMalformedTransaction
	case apitypes.CodeCommonValidationError:
		return types.CodeInvalidParams
	default:
		return types.CodeServerError
	}
}

// writeSuccess 写入成功响应
func (s *Server) writeSuccess(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := types.Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeErrorWithProblemDetails 写入包含 Problem Details 的错误响应
func (s *Server) writeErrorWithProblemDetails(w http.ResponseWriter, id interface{}, problem *apitypes.ProblemDetails, jsonrpcCode int, method string) {
	if w.Header().Get("Content-Type") != "" {
		return
	}

	resp := types.Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &types.ErrorResponse{
			Code:    jsonrpcCode,
			Message: problem.UserMessage,
			Data:    problem,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	// JSON-RPC 规范：错误也返回 200，错误信息在 body 中体现
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to encode error response", zap.Error(err))
	}

	s.logger.Error("JSON-RPC error",
		zap.String("code", problem.Code),
		zap.String("traceId", problem.TraceID),
		zap.String("method", method),
		zap.Error(problem))
}
