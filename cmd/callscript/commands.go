package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/eth2030/callscript/artifact"
	"github.com/eth2030/callscript/callscript"
	"github.com/eth2030/callscript/contract"
	"github.com/eth2030/callscript/proposal"
)

func (e *env) encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "encode actions into a call script",
		ArgsUsage: " ",
		Flags:     []cli.Flag{actionFlag, hashFlag},
		Action: func(c *cli.Context) error {
			b := proposal.NewBuilder(e.log)
			for _, spec := range c.StringSlice(actionFlag.Name) {
				a, err := parseActionSpec(spec)
				if err != nil {
					return err
				}
				b.AddAction(a)
			}
			s, err := b.Build()
			if err != nil {
				return err
			}
			e.printScript(s, c.Bool(hashFlag.Name))
			return nil
		},
	}
}

func (e *env) decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "print the records of a call script",
		ArgsUsage: "<0x-script>",
		Flags:     []cli.Flag{describeFlag},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("decode takes exactly one script argument")
			}
			script, err := hexutil.Decode(c.Args().First())
			if err != nil {
				return fmt.Errorf("script: %w", err)
			}
			records, err := callscript.Decode(script)
			if err != nil {
				return err
			}
			var artifacts []*artifact.Artifact
			for _, name := range c.StringSlice(describeFlag.Name) {
				a, err := e.store.Load(name)
				if err != nil {
					return err
				}
				artifacts = append(artifacts, a)
			}
			for i, r := range records {
				fmt.Fprintf(e.stdout, "#%d target=%s len=%d data=%s\n", i, r.Target.Hex(), len(r.Data), hexutil.Encode(r.Data))
				if call := describe(artifacts, r.Data); call != "" {
					fmt.Fprintf(e.stdout, "   call=%s\n", call)
				}
			}
			return nil
		},
	}
}

// describe renders data as a call on the first artifact that recognizes
// its selector.
func describe(artifacts []*artifact.Artifact, data []byte) string {
	for _, a := range artifacts {
		if dec, err := contract.Unpack(a.ABI, data); err == nil {
			return a.Name + "." + dec.String()
		}
	}
	return ""
}

func (e *env) tokenCommand() *cli.Command {
	sub := func(name, usage string, needsAccount bool) *cli.Command {
		flags := []cli.Flag{tokenManagerFlag, amountFlag, votingFlag, metadataFlag, hashFlag}
		if needsAccount {
			flags = append(flags, accountFlag)
		}
		return &cli.Command{
			Name:  name,
			Usage: usage,
			Flags: flags,
			Action: func(c *cli.Context) error {
				return e.tokenAction(c, name, needsAccount)
			},
		}
	}
	return &cli.Command{
		Name:  "token",
		Usage: "build a script for a token manager operation",
		Subcommands: []*cli.Command{
			sub("mint", "mint new tokens to --account", true),
			sub("issue", "issue new tokens to the token manager", false),
			sub("assign", "assign token manager tokens to --account", true),
			sub("burn", "burn tokens held by --account", true),
		},
	}
}

func (e *env) tokenAction(c *cli.Context, op string, needsAccount bool) error {
	tmAddr, err := addressFlag(c, tokenManagerFlag.Name)
	if err != nil {
		return err
	}
	amount, err := parseAmount(c.String(amountFlag.Name))
	if err != nil {
		return err
	}
	tm, err := contract.NewTokenManager(e.store, tmAddr)
	if err != nil {
		return err
	}

	var call callscript.ResolvedCall
	if needsAccount {
		account, err := addressFlag(c, accountFlag.Name)
		if err != nil {
			return err
		}
		switch op {
		case "mint":
			call, err = tm.Mint(account, amount)
		case "assign":
			call, err = tm.Assign(account, amount)
		case "burn":
			call, err = tm.Burn(account, amount)
		}
		if err != nil {
			return err
		}
	} else {
		if call, err = tm.Issue(amount); err != nil {
			return err
		}
	}

	s, err := proposal.NewBuilder(e.log).Add(tmAddr.Hex(), call).Build()
	if err != nil {
		return err
	}
	if c.IsSet(votingFlag.Name) {
		return e.printVote(c, s.Data)
	}
	e.printScript(s, c.Bool(hashFlag.Name))
	return nil
}

func (e *env) voteCommand() *cli.Command {
	return &cli.Command{
		Name:      "vote",
		Usage:     "wrap a call script into newVote call-data",
		ArgsUsage: "<0x-script>",
		Flags:     []cli.Flag{requiredVotingFlag, metadataFlag},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("vote takes exactly one script argument")
			}
			script, err := hexutil.Decode(c.Args().First())
			if err != nil {
				return fmt.Errorf("script: %w", err)
			}
			if _, err := callscript.Decode(script); err != nil {
				return err
			}
			return e.printVote(c, script)
		},
	}
}

var requiredVotingFlag = &cli.StringFlag{
	Name:     votingFlag.Name,
	Usage:    "voting app address",
	Required: true,
}

func (e *env) printVote(c *cli.Context, script []byte) error {
	votingAddr, err := addressFlag(c, votingFlag.Name)
	if err != nil {
		return err
	}
	voting, err := contract.NewVoting(e.store, votingAddr)
	if err != nil {
		return err
	}
	call, err := voting.NewVote(script, c.String(metadataFlag.Name))
	if err != nil {
		return err
	}
	e.log.Info("vote prepared", "voting", votingAddr.Hex(), "script_bytes", len(script))
	fmt.Fprintf(e.stdout, "to:   %s\ndata: %s\n", votingAddr.Hex(), hexutil.Encode(call.Data))
	return nil
}

func (e *env) printScript(s *proposal.Script, withHash bool) {
	fmt.Fprintln(e.stdout, s.Hex())
	if withHash {
		fmt.Fprintln(e.stdout, s.Hash.Hex())
	}
}

func (e *env) artifactsCommand() *cli.Command {
	return &cli.Command{
		Name:  "artifacts",
		Usage: "list the available contract artifacts and their methods",
		Action: func(c *cli.Context) error {
			names, err := e.store.Names()
			if err != nil {
				return err
			}
			for _, name := range names {
				a, err := e.store.Load(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(e.stdout, name)
				sigs := a.Signatures()
				methods := make([]string, 0, len(sigs))
				for _, sig := range sigs {
					methods = append(methods, sig)
				}
				sort.Strings(methods)
				for _, m := range methods {
					fmt.Fprintf(e.stdout, "  %s\n", m)
				}
			}
			return nil
		},
	}
}
