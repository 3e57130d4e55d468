package codec

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/meridianchain/v1/pkg/types"
)

func samplePayload() *types.TransactionPayload {
	var sender types.Address
	sender[0] = 0xAA
	var recipient types.Address
	recipient[0] = 0xBB
	var objID types.ObjectID
	objID[0] = 0x01

	return &types.TransactionPayload{
		Sender: sender,
		Kind: types.TransactionKind{
			Type: types.TxKindTransfer,
			Transfer: &types.TransferPayload{
				Recipient: recipient,
				ObjectRef: types.ObjectRef{ID: objID, Version: 7},
			},
		},
		GasPayment: types.ObjectRef{ID: objID, Version: 3},
		GasBudget:  1000,
		GasPrice:   1,
	}
}

func TestDecodeDeterministic(t *testing.T) {
	raw, err := EncodeTransaction(samplePayload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	payload1, digest1, err := DecodeTransactionBytes(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	_, digest2, err := DecodeTransactionBytes(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if digest1 != digest2 {
		t.Fatalf("same input must yield same digest: %s vs %s", digest1, digest2)
	}
	if payload1.GasBudget != 1000 || payload1.Kind.Type != types.TxKindTransfer {
		t.Fatalf("payload not preserved through decode")
	}
}

func TestDecodeBitFlipChangesDigest(t *testing.T) {
	raw, err := EncodeTransaction(samplePayload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, baseline, err := DecodeRawTransaction(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	flips := 0
	for i := 0; i < len(raw); i++ {
		for bit := 0; bit < 8; bit++ {
			mutated := make([]byte, len(raw))
			copy(mutated, raw)
			mutated[i] ^= 1 << bit

			_, digest, err := DecodeRawTransaction(mutated)
			if err != nil {
				// 翻转可能破坏CBOR结构，这也是可接受的区分结果
				continue
			}
			flips++
			if digest == baseline {
				t.Fatalf("bit flip at byte %d bit %d left digest unchanged", i, bit)
			}
		}
	}
	if flips == 0 {
		t.Fatalf("expected at least one decodable mutation")
	}
}

func TestDigestCoversIntentEnvelope(t *testing.T) {
	payload := samplePayload()
	raw, err := EncodeTransaction(payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	digest, err := PayloadDigest(payload)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}

	// 摘要作用于意图包裹后的编码，绝不等于原始字节的直接哈希
	rawMsg, err := types.CanonicalMarshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(rawMsg) != string(raw) {
		t.Fatalf("canonical encoding must be stable")
	}
	wrapped, err := types.CanonicalMarshal(IntentMessage{
		Intent: Intent{Scope: IntentScopeTransactionData, Version: IntentVersionV0, AppID: IntentAppMeridian},
		Value:  *payload,
	})
	if err != nil {
		t.Fatalf("marshal intent: %v", err)
	}
	if string(wrapped) == string(raw) {
		t.Fatalf("intent envelope must change the hashed bytes")
	}
	if digest.IsZero() {
		t.Fatalf("digest must not be zero")
	}
}

func TestDecodeMalformedBase64(t *testing.T) {
	_, _, err := DecodeTransactionBytes("not-*-base64!!")
	var malformed *MalformedEncodingError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedEncodingError, got %v", err)
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte{0xff, 0xff, 0xff})
	_, _, err := DecodeTransactionBytes(encoded)
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPayloadError, got %v", err)
	}
}
