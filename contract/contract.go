// Package contract turns named contract operations into call-data. A
// Contract binds a parsed artifact to a deployed address; translators such as
// TokenManager give the common operations typed Go signatures.
package contract

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/eth2030/callscript/artifact"
	"github.com/eth2030/callscript/callscript"
)

var (
	// ErrUnknownMethod is returned when the bound ABI has no such method.
	ErrUnknownMethod = errors.New("contract: unknown method")

	// ErrUnknownSelector is returned when call-data does not start with the
	// selector of any method in the ABI.
	ErrUnknownSelector = errors.New("contract: unknown selector")

	// ErrShortCallData is returned when call-data is too short to hold a selector.
	ErrShortCallData = errors.New("contract: call data shorter than selector")
)

// Loader resolves a contract name to its artifact.
type Loader interface {
	Load(name string) (*artifact.Artifact, error)
}

// Contract is a contract interface bound to an address.
type Contract struct {
	name    string
	address common.Address
	abi     abi.ABI
}

// New loads the named artifact and binds it to address.
func New(loader Loader, name string, address common.Address) (*Contract, error) {
	a, err := loader.Load(name)
	if err != nil {
		return nil, err
	}
	return Bind(a, address), nil
}

// Bind binds an already loaded artifact to address.
func Bind(a *artifact.Artifact, address common.Address) *Contract {
	return &Contract{name: a.Name, address: address, abi: a.ABI}
}

// Name returns the artifact name the contract was bound from.
func (c *Contract) Name() string { return c.name }

// Address returns the bound address.
func (c *Contract) Address() common.Address { return c.address }

// ABI returns the bound interface description.
func (c *Contract) ABI() abi.ABI { return c.abi }

// Call packs a call to method with args into call-data.
func (c *Contract) Call(method string, args ...interface{}) (callscript.ResolvedCall, error) {
	if _, ok := c.abi.Methods[method]; !ok {
		return callscript.ResolvedCall{}, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, c.name, method)
	}
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return callscript.ResolvedCall{}, fmt.Errorf("contract: pack %s.%s: %w", c.name, method, err)
	}
	return callscript.ResolvedCall{Method: method, Data: data}, nil
}

// Action packs a call to method and targets it at the bound address.
func (c *Contract) Action(method string, args ...interface{}) (callscript.Action, error) {
	call, err := c.Call(method, args...)
	if err != nil {
		return callscript.Action{}, err
	}
	return callscript.Action{Target: c.address.Hex(), Payload: call}, nil
}

// Unpack resolves call-data against the bound ABI.
func (c *Contract) Unpack(data []byte) (*DecodedCall, error) {
	return Unpack(c.abi, data)
}

// DecodedCall is call-data resolved back to a method and its arguments.
type DecodedCall struct {
	Method    string
	Signature string
	Args      []interface{}
}

// Unpack finds the method whose selector prefixes data and decodes its
// arguments.
func Unpack(contractABI abi.ABI, data []byte) (*DecodedCall, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortCallData, len(data))
	}
	m, err := contractABI.MethodById(data[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %x", ErrUnknownSelector, data[:4])
	}
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("contract: unpack %s: %w", m.Sig, err)
	}
	return &DecodedCall{Method: m.Name, Signature: m.Sig, Args: args}, nil
}

// String renders the call as name(arg, ...).
func (d *DecodedCall) String() string {
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = formatArg(a)
	}
	return d.Method + "(" + strings.Join(parts, ", ") + ")"
}

func formatArg(v interface{}) string {
	switch a := v.(type) {
	case common.Address:
		return a.Hex()
	case *big.Int:
		return a.String()
	case []byte:
		return hexutil.Encode(a)
	case string:
		return fmt.Sprintf("%q", a)
	default:
		return fmt.Sprint(a)
	}
}

// toBig converts an amount for ABI packing. A nil amount packs as zero.
func toBig(u *uint256.Int) *big.Int {
	if u == nil {
		return new(big.Int)
	}
	return u.ToBig()
}
