// Package types provides transaction type definitions.
package types

// TransactionKindType 交易负载类别
type TransactionKindType string

const (
	// TxKindTransfer 对象转移
	TxKindTransfer TransactionKindType = "transfer"
	// TxKindPublish 合约包发布
	TxKindPublish TransactionKindType = "publish"
	// TxKindCall 合约函数调用
	TxKindCall TransactionKindType = "call"
)

// TransactionKind 交易负载变体
//
// Type 决定其余字段中哪一个有效，解码时按类别校验。
type TransactionKind struct {
	Type     TransactionKindType `json:"type" cbor:"1,keyasint"`
	Transfer *TransferPayload    `json:"transfer,omitempty" cbor:"2,keyasint,omitempty"`
	Publish  *PublishPayload     `json:"publish,omitempty" cbor:"3,keyasint,omitempty"`
	Call     *CallPayload        `json:"call,omitempty" cbor:"4,keyasint,omitempty"`
}

// TransferPayload 对象转移负载
type TransferPayload struct {
	Recipient Address   `json:"recipient" cbor:"1,keyasint"`
	ObjectRef ObjectRef `json:"objectRef" cbor:"2,keyasint"`
}

// PublishPayload 合约包发布负载
type PublishPayload struct {
	Modules [][]byte `json:"modules" cbor:"1,keyasint"`
}

// CallPayload 合约函数调用负载
type CallPayload struct {
	Package   ObjectID `json:"package" cbor:"1,keyasint"`
	Module    string   `json:"module" cbor:"2,keyasint"`
	Function  string   `json:"function" cbor:"3,keyasint"`
	TypeArgs  []string `json:"typeArgs,omitempty" cbor:"4,keyasint,omitempty"`
	Arguments [][]byte `json:"arguments,omitempty" cbor:"5,keyasint,omitempty"`
}

// TransactionPayload 解码后的交易内容
type TransactionPayload struct {
	Sender     Address         `json:"sender" cbor:"1,keyasint"`
	Kind       TransactionKind `json:"kind" cbor:"2,keyasint"`
	GasPayment ObjectRef       `json:"gasPayment" cbor:"3,keyasint"`
	GasBudget  uint64          `json:"gasBudget" cbor:"4,keyasint"`
	GasPrice   uint64          `json:"gasPrice" cbor:"5,keyasint"`
}

// ExecutionStatus 交易执行状态
type ExecutionStatus struct {
	Success bool   `json:"success" cbor:"1,keyasint"`
	Error   string `json:"error,omitempty" cbor:"2,keyasint,omitempty"`
}

// GasSummary 执行消耗的gas汇总
type GasSummary struct {
	ComputationCost uint64 `json:"computationCost" cbor:"1,keyasint"`
	StorageCost     uint64 `json:"storageCost" cbor:"2,keyasint"`
	StorageRebate   uint64 `json:"storageRebate" cbor:"3,keyasint"`
}

// TransactionEffects 交易执行效果
type TransactionEffects struct {
	Status            ExecutionStatus `json:"status" cbor:"1,keyasint"`
	GasUsed           GasSummary      `json:"gasUsed" cbor:"2,keyasint"`
	TransactionDigest Digest          `json:"transactionDigest" cbor:"3,keyasint"`
	Created           []ObjectRef     `json:"created,omitempty" cbor:"4,keyasint,omitempty"`
	Mutated           []ObjectRef     `json:"mutated,omitempty" cbor:"5,keyasint,omitempty"`
	Deleted           []ObjectRef     `json:"deleted,omitempty" cbor:"6,keyasint,omitempty"`
}

// TransactionRecord 已执行交易的完整查询视图
type TransactionRecord struct {
	Digest      Digest                    `json:"digest"`
	Payload     TransactionPayload        `json:"payload"`
	Effects     TransactionEffects        `json:"effects"`
	TimestampMs uint64                    `json:"timestampMs"`
	Checkpoint  *CheckpointSequenceNumber `json:"checkpoint,omitempty"`
}

// TransactionFilterKind 交易列表过滤器类别
type TransactionFilterKind string

const (
	// TxFilterAll 全部交易（按执行顺序）
	TxFilterAll TransactionFilterKind = "all"
	// TxFilterFromAddress 某地址发起的交易
	TxFilterFromAddress TransactionFilterKind = "fromAddress"
	// TxFilterToAddress 影响某地址持有对象的交易
	TxFilterToAddress TransactionFilterKind = "toAddress"
	// TxFilterInputObject 以某对象为输入的交易
	TxFilterInputObject TransactionFilterKind = "inputObject"
)

// TransactionFilter 交易列表过滤器
//
// Address 仅在 fromAddress/toAddress 时有效，ObjectID 仅在 inputObject 时有效。
type TransactionFilter struct {
	Kind     TransactionFilterKind `json:"kind"`
	Address  *Address              `json:"address,omitempty"`
	ObjectID *ObjectID             `json:"objectId,omitempty"`
}
