package main

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/eth2030/callscript/callscript"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	artifactsFlag = &cli.StringFlag{
		Name:  "artifacts",
		Usage: "artifact resource root (default: built-in artifacts)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "loglevel",
		Usage: "log level (debug, info, warn, error)",
		Value: "info",
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "logformat",
		Usage: "log format (text, json)",
		Value: "text",
	}
	metricsFlag = &cli.BoolFlag{
		Name:  "metrics",
		Usage: "print process metrics to stderr on exit",
	}

	globalFlags = []cli.Flag{configFlag, artifactsFlag, logLevelFlag, logFormatFlag, metricsFlag}
)

var (
	actionFlag = &cli.StringSliceFlag{
		Name:    "action",
		Aliases: []string{"a"},
		Usage:   "action as target:hexdata, repeatable, executed in the given order",
	}
	hashFlag = &cli.BoolFlag{
		Name:  "hash",
		Usage: "also print the keccak256 hash of the script",
	}
	describeFlag = &cli.StringSliceFlag{
		Name:  "abi",
		Usage: "artifact names used to describe record call-data, repeatable",
	}
	tokenManagerFlag = &cli.StringFlag{
		Name:     "token-manager",
		Usage:    "token manager app address",
		Required: true,
	}
	accountFlag = &cli.StringFlag{
		Name:  "account",
		Usage: "receiver (mint, assign) or holder (burn) address",
	}
	amountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "token amount in base units, decimal or 0x-hex",
		Required: true,
	}
	votingFlag = &cli.StringFlag{
		Name:  "voting",
		Usage: "voting app address; when set, wrap the script into newVote call-data",
	}
	metadataFlag = &cli.StringFlag{
		Name:  "metadata",
		Usage: "vote metadata",
	}
)

// parseActionSpec splits "target:hexdata" into an action.
func parseActionSpec(spec string) (callscript.Action, error) {
	target, data, ok := strings.Cut(spec, ":")
	if !ok {
		return callscript.Action{}, fmt.Errorf("action %q: want target:hexdata", spec)
	}
	return callscript.Action{Target: target, Payload: callscript.HexPayload(data)}, nil
}

// parseAmount accepts decimal or 0x-prefixed hex.
func parseAmount(s string) (*uint256.Int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		u, err := uint256.FromHex(s)
		if err != nil {
			return nil, fmt.Errorf("amount %q: %w", s, err)
		}
		return u, nil
	}
	u, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", s, err)
	}
	return u, nil
}

func addressFlag(c *cli.Context, name string) (common.Address, error) {
	v := c.String(name)
	if v == "" {
		return common.Address{}, fmt.Errorf("flag --%s is required", name)
	}
	addr, err := callscript.ParseAddress(v)
	if err != nil {
		return common.Address{}, fmt.Errorf("--%s: %w", name, err)
	}
	return addr, nil
}
