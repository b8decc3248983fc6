// Package proposal assembles the actions of a governance proposal into a
// single call script.
package proposal

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/eth2030/callscript/callscript"
	"github.com/eth2030/callscript/crypto"
	"github.com/eth2030/callscript/log"
	"github.com/eth2030/callscript/metrics"
)

// Script is a built call script together with the records it frames.
type Script struct {
	Data    []byte
	Hash    common.Hash
	Records []callscript.Record
}

// Hex returns the 0x-prefixed script.
func (s *Script) Hex() string { return hexutil.Encode(s.Data) }

// Builder collects actions in the order they should execute. A Builder is
// not safe for concurrent use.
type Builder struct {
	actions []callscript.Action
	log     *log.Logger
}

// NewBuilder returns an empty Builder logging through l. A nil l uses the
// default logger.
func NewBuilder(l *log.Logger) *Builder {
	if l == nil {
		l = log.Default()
	}
	return &Builder{log: l.Module("proposal")}
}

// Add appends an action targeting target.
func (b *Builder) Add(target string, payload callscript.Payload) *Builder {
	b.actions = append(b.actions, callscript.Action{Target: target, Payload: payload})
	return b
}

// AddAction appends a prepared action.
func (b *Builder) AddAction(a callscript.Action) *Builder {
	b.actions = append(b.actions, a)
	return b
}

// Len returns the number of collected actions.
func (b *Builder) Len() int { return len(b.actions) }

// Build normalizes and encodes the collected actions.
func (b *Builder) Build() (*Script, error) {
	records, err := callscript.Normalize(b.actions)
	if err != nil {
		metrics.ScriptErrors.Inc()
		b.log.Warn("proposal rejected", "actions", len(b.actions), "err", err)
		return nil, fmt.Errorf("proposal: %w", err)
	}
	data, err := callscript.Encode(records)
	if err != nil {
		metrics.ScriptErrors.Inc()
		b.log.Warn("proposal rejected", "actions", len(b.actions), "err", err)
		return nil, fmt.Errorf("proposal: %w", err)
	}

	s := &Script{Data: data, Hash: crypto.Keccak256Hash(data), Records: records}
	metrics.ScriptsEncoded.Inc()
	metrics.ActionsEncoded.Add(float64(len(records)))
	metrics.ScriptSize.Observe(float64(len(data)))
	b.log.Debug("proposal built", "actions", len(records), "bytes", len(data), "hash", s.Hash.Hex())
	return s, nil
}
