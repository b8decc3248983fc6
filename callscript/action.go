package callscript

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Payload is the call-data half of an Action. The concrete type selects how
// the bytes are obtained: ResolvedCall, HexPayload or RawPayload. No other
// implementations exist.
type Payload interface {
	payload() ([]byte, error)
}

// ResolvedCall is call-data already produced from a contract interface.
// Method is informational only and never affects encoding.
type ResolvedCall struct {
	Method string
	Data   []byte
}

func (c ResolvedCall) payload() ([]byte, error) { return c.Data, nil }

// HexPayload is call-data given as a hex string, with or without 0x prefix.
type HexPayload string

func (h HexPayload) payload() ([]byte, error) {
	s := string(h)
	if !has0xPrefix(s) {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayloadEncoding, err)
	}
	return b, nil
}

// RawPayload is call-data given as raw bytes.
type RawPayload []byte

func (r RawPayload) payload() ([]byte, error) { return r, nil }

// Action pairs a target contract address with the call-data to send it.
type Action struct {
	Target  string
	Payload Payload
}

// Record is a normalized action: the canonical 20-byte target and the exact
// payload bytes that go on the wire.
type Record struct {
	Target common.Address
	Data   []byte
}

// Normalize resolves every action into a Record, preserving order. The first
// failing action aborts normalization and no records are returned.
func Normalize(actions []Action) ([]Record, error) {
	records := make([]Record, 0, len(actions))
	for i, a := range actions {
		target, err := ParseAddress(a.Target)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		if a.Payload == nil {
			return nil, fmt.Errorf("action %d: %w: missing payload", i, ErrInvalidPayloadEncoding)
		}
		data, err := a.Payload.payload()
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		records = append(records, Record{Target: target, Data: data})
	}
	return records, nil
}

// ParseAddress decodes a hex address string into its 20 raw bytes. The 0x
// prefix is optional and letter case is ignored, so checksums are not
// verified.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
