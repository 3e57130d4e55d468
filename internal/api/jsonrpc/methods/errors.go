// Package methods 提供账本查询的JSON-RPC方法实现
//
// 每个方法只做参数解析与错误翻译，领域逻辑全部在 internal/core 中。
package methods

import (
	"encoding/json"
	"errors"
	"fmt"

	apitypes "github.com/meridianchain/v1/internal/api/types"
	"github.com/meridianchain/v1/internal/core/checkpoint"
	"github.com/meridianchain/v1/internal/core/contracts"
	"github.com/meridianchain/v1/internal/core/object"
	txcodec "github.com/meridianchain/v1/internal/core/tx/codec"
	"github.com/meridianchain/v1/pkg/interfaces/persistence"
)

// invalidParams 构造参数校验失败的 Problem Details
func invalidParams(detail string, details map[string]interface{}) *apitypes.ProblemDetails {
	return apitypes.NewProblemDetails(
		apitypes.CodeCommonValidationError,
		apitypes.LayerLedgerQuery,
		"请求参数无效。",
		detail,
		400,
		details,
	)
}

// internalError 构造内部错误的 Problem Details
func internalError(err error) *apitypes.ProblemDetails {
	return apitypes.NewProblemDetails(
		apitypes.CodeCommonInternalError,
		apitypes.LayerLedgerQuery,
		"服务器内部错误，请稍后重试。",
		err.Error(),
		500,
		nil,
	)
}

// parseParams 解析JSON对象形式的方法参数
func parseParams(params json.RawMessage, out interface{}) *apitypes.ProblemDetails {
	if len(params) == 0 {
		return invalidParams("缺少参数", nil)
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidParams(fmt.Sprintf("参数解析失败: %v", err), nil)
	}
	return nil
}

// translateObjectError 把对象解析层错误翻译为 Problem Details
func translateObjectError(err error) *apitypes.ProblemDetails {
	var inconsistency *object.InconsistencyError
	if errors.As(err, &inconsistency) {
		return apitypes.NewProblemDetails(
			apitypes.CodeLedgerStorageInconsistency,
			apitypes.LayerLedgerQuery,
			"存储状态不一致，请联系节点运维。",
			inconsistency.Error(),
			500,
			map[string]interface{}{
				"objectId": inconsistency.ID.String(),
				"version":  inconsistency.Version,
			},
		)
	}
	return internalError(err)
}

// translateCheckpointError 把检查点查询层错误翻译为 Problem Details
func translateCheckpointError(err error) *apitypes.ProblemDetails {
	var notFound *checkpoint.NotFoundError
	if errors.As(err, &notFound) {
		details := map[string]interface{}{}
		if notFound.SequenceNumber != nil {
			details["sequenceNumber"] = *notFound.SequenceNumber
		}
		if notFound.Digest != nil {
			details["digest"] = notFound.Digest.String()
		}
		return apitypes.NewProblemDetails(
			apitypes.CodeLedgerCheckpointNotFound,
			apitypes.LayerLedgerQuery,
			"检查点不存在。",
			notFound.Error(),
			404,
			details,
		)
	}

	var inconsistency *checkpoint.InconsistencyError
	if errors.As(err, &inconsistency) {
		return apitypes.NewProblemDetails(
			apitypes.CodeLedgerStorageInconsistency,
			apitypes.LayerLedgerQuery,
			"存储状态不一致，请联系节点运维。",
			inconsistency.Error(),
			500,
			map[string]interface{}{
				"sequenceNumber": inconsistency.SequenceNumber,
				"contentDigest":  inconsistency.ContentDigest.String(),
			},
		)
	}
	return internalError(err)
}

// translateContractError 把合约内省层错误翻译为 Problem Details
func translateContractError(err error) *apitypes.ProblemDetails {
	var invalidIdent *contracts.InvalidIdentifierError
	if errors.As(err, &invalidIdent) {
		return apitypes.NewProblemDetails(
			apitypes.CodeContractInvalidIdentifier,
			apitypes.LayerLedgerQuery,
			"标识符不符合命名规则。",
			invalidIdent.Error(),
			400,
			map[string]interface{}{
				"identifier": invalidIdent.Name,
			},
		)
	}

	var notAPackage *contracts.NotAPackageError
	if errors.As(err, &notAPackage) {
		return apitypes.NewProblemDetails(
			apitypes.CodeContractNotAPackage,
			apitypes.LayerLedgerQuery,
			"对象不是合约包。",
			notAPackage.Error(),
			400,
			map[string]interface{}{
				"objectId": notAPackage.ID.String(),
			},
		)
	}

	var malformed *contracts.MalformedBytecodeError
	if errors.As(err, &malformed) {
		return apitypes.NewProblemDetails(
			apitypes.CodeContractMalformedBytecode,
			apitypes.LayerLedgerQuery,
			"合约包字节码无法解析。",
			malformed.Error(),
			500,
			nil,
		)
	}

	var moduleNotFound *contracts.ModuleNotFoundError
	if errors.As(err, &moduleNotFound) {
		return memberNotFound(moduleNotFound.Error(), map[string]interface{}{
			"package": moduleNotFound.Package.String(),
			"module":  moduleNotFound.Module,
		})
	}
	var structNotFound *contracts.StructNotFoundError
	if errors.As(err, &structNotFound) {
		return memberNotFound(structNotFound.Error(), map[string]interface{}{
			"package": structNotFound.Package.String(),
			"module":  structNotFound.Module,
			"struct":  structNotFound.Name,
		})
	}
	var functionNotFound *contracts.FunctionNotFoundError
	if errors.As(err, &functionNotFound) {
		return memberNotFound(functionNotFound.Error(), map[string]interface{}{
			"package":  functionNotFound.Package.String(),
			"module":   functionNotFound.Module,
			"function": functionNotFound.Name,
		})
	}
	return internalError(err)
}

func memberNotFound(detail string, details map[string]interface{}) *apitypes.ProblemDetails {
	return apitypes.NewProblemDetails(
		apitypes.CodeContractMemberNotFound,
		apitypes.LayerLedgerQuery,
		"请求的合约成员不存在。",
		detail,
		404,
		details,
	)
}

// asNotFound 把动态字段名查询落空翻译为 Problem Details
//
// 非 not-found 的错误返回 nil，由调用方按内部错误处理。
func asNotFound(err error, name string, parent interface{ String() string }) *apitypes.ProblemDetails {
	if !errors.Is(err, persistence.ErrNotFound) {
		return nil
	}
	return apitypes.NewProblemDetails(
		apitypes.CodeLedgerObjectNotFound,
		apitypes.LayerLedgerQuery,
		"动态字段不存在。",
		err.Error(),
		404,
		map[string]interface{}{
			"parentId": parent.String(),
			"name":     name,
		},
	)
}

// translateTxError 把交易查询层错误翻译为 Problem Details
func translateTxError(err error, digest string) *apitypes.ProblemDetails {
	if errors.Is(err, persistence.ErrNotFound) {
		return apitypes.NewProblemDetails(
			apitypes.CodeLedgerTxNotFound,
			apitypes.LayerLedgerQuery,
			"交易不存在。",
			err.Error(),
			404,
			map[string]interface{}{
				"digest": digest,
			},
		)
	}
	return internalError(err)
}

// translateCodecError 把交易编解码错误翻译为 Problem Details
func translateCodecError(err error) *apitypes.ProblemDetails {
	var encoding *txcodec.MalformedEncodingError
	if errors.As(err, &encoding) {
		return apitypes.NewProblemDetails(
			apitypes.CodeTxMalformedEncoding,
			apitypes.LayerLedgerQuery,
			"交易字节不是合法的Base64编码。",
			encoding.Error(),
			400,
			nil,
		)
	}
	var payload *txcodec.MalformedPayloadError
	if errors.As(err, &payload) {
		return apitypes.NewProblemDetails(
			apitypes.CodeTxMalformedPayload,
			apitypes.LayerLedgerQuery,
			"交易负载无法解码。",
			payload.Error(),
			400,
			nil,
		)
	}
	return internalError(err)
}
