package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/eth2030/callscript/callscript"
)

// TokenManagerName is the artifact name of the token manager app.
const TokenManagerName = "TokenManager"

// TokenManager produces call-data for a token manager app: minting,
// issuing, assigning and burning organization tokens, and forwarding scripts.
type TokenManager struct {
	*Contract
}

// NewTokenManager binds the TokenManager artifact to address.
func NewTokenManager(loader Loader, address common.Address) (*TokenManager, error) {
	c, err := New(loader, TokenManagerName, address)
	if err != nil {
		return nil, err
	}
	return &TokenManager{Contract: c}, nil
}

// Mint creates amount new tokens and gives them to receiver.
func (t *TokenManager) Mint(receiver common.Address, amount *uint256.Int) (callscript.ResolvedCall, error) {
	return t.Call("mint", receiver, toBig(amount))
}

// Issue creates amount new tokens held by the token manager itself.
func (t *TokenManager) Issue(amount *uint256.Int) (callscript.ResolvedCall, error) {
	return t.Call("issue", toBig(amount))
}

// Assign transfers amount tokens held by the token manager to receiver.
func (t *TokenManager) Assign(receiver common.Address, amount *uint256.Int) (callscript.ResolvedCall, error) {
	return t.Call("assign", receiver, toBig(amount))
}

// Burn destroys amount tokens held by holder.
func (t *TokenManager) Burn(holder common.Address, amount *uint256.Int) (callscript.ResolvedCall, error) {
	return t.Call("burn", holder, toBig(amount))
}

// Forward wraps a call script so token holders can execute it through the
// token manager.
func (t *TokenManager) Forward(script []byte) (callscript.ResolvedCall, error) {
	return t.Call("forward", script)
}
