package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/eth2030/callscript/callscript"
)

// VotingName is the artifact name of the voting app.
const VotingName = "Voting"

// Voting produces call-data for a voting app. A vote carries a call script
// that runs once the vote passes.
type Voting struct {
	*Contract
}

// NewVoting binds the Voting artifact to address.
func NewVoting(loader Loader, address common.Address) (*Voting, error) {
	c, err := New(loader, VotingName, address)
	if err != nil {
		return nil, err
	}
	return &Voting{Contract: c}, nil
}

// NewVote opens a vote on script with a free-form metadata string.
func (v *Voting) NewVote(script []byte, metadata string) (callscript.ResolvedCall, error) {
	return v.Call("newVote", script, metadata)
}

// Vote casts a vote on voteID.
func (v *Voting) Vote(voteID *uint256.Int, supports, executesIfDecided bool) (callscript.ResolvedCall, error) {
	return v.Call("vote", toBig(voteID), supports, executesIfDecided)
}

// ExecuteVote runs the script of a passed vote.
func (v *Voting) ExecuteVote(voteID *uint256.Int) (callscript.ResolvedCall, error) {
	return v.Call("executeVote", toBig(voteID))
}

// Forward opens a vote on script with empty metadata.
func (v *Voting) Forward(script []byte) (callscript.ResolvedCall, error) {
	return v.Call("forward", script)
}
