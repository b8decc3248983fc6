// Command callscript builds and inspects call scripts: batches of contract
// calls that a governance app executes atomically.
//
// Usage:
//
//	callscript [global flags] <command> [flags] [args]
//
// Commands:
//
//	encode     Encode --action target:hexdata pairs into a script
//	decode     Print the records of a hex script
//	token      Build a script for a token manager operation (mint, issue, assign, burn)
//	vote       Wrap a script into newVote call-data for a voting app
//	artifacts  List the available contract artifacts
//
// Global flags:
//
//	--config      TOML config file
//	--artifacts   Artifact resource root (default: built-in artifacts)
//	--loglevel    Log level: debug, info, warn, error (default: info)
//	--logformat   Log format: text, json (default: text)
//	--metrics     Print process metrics to stderr on exit
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/eth2030/callscript/artifact"
	"github.com/eth2030/callscript/config"
	"github.com/eth2030/callscript/log"
	"github.com/eth2030/callscript/metrics"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// env is the state shared by all commands once global flags are resolved.
type env struct {
	cfg    *config.Config
	store  *artifact.Store
	log    *log.Logger
	stdout io.Writer
	stderr io.Writer
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.Run(append([]string{app.Name}, args...)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newApp(stdout, stderr io.Writer) *cli.App {
	e := &env{stdout: stdout, stderr: stderr}
	return &cli.App{
		Name:                 "callscript",
		Usage:                "build and inspect governance call scripts",
		Version:              fmt.Sprintf("%s (commit %s)", version, commit),
		Writer:               stdout,
		ErrWriter:            stderr,
		Flags:                globalFlags,
		EnableBashCompletion: true,
		Before:               e.setup,
		After:                e.teardown,
		ExitErrHandler:       func(*cli.Context, error) {},
		Commands: []*cli.Command{
			e.encodeCommand(),
			e.decodeCommand(),
			e.tokenCommand(),
			e.voteCommand(),
			e.artifactsCommand(),
		},
	}
}

// setup resolves configuration from file, environment and flags, in that
// order of increasing precedence, then opens the artifact store.
func (e *env) setup(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String(configFlag.Name))
	if err != nil {
		return err
	}
	if err := config.ApplyEnvironment(cfg); err != nil {
		return err
	}
	if c.IsSet(artifactsFlag.Name) {
		cfg.ArtifactsDir = c.String(artifactsFlag.Name)
	}
	if c.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = c.String(logLevelFlag.Name)
	}
	if c.IsSet(logFormatFlag.Name) {
		cfg.LogFormat = c.String(logFormatFlag.Name)
	}
	if c.IsSet(metricsFlag.Name) {
		cfg.Metrics = c.Bool(metricsFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	e.log = log.NewWithWriter(e.stderr, cfg.LogFormat, level)
	log.SetDefault(e.log)

	store, err := artifact.NewStore(cfg.ArtifactsDir, cfg.CacheSize)
	if err != nil {
		return err
	}
	store.SetLogger(e.log)

	e.cfg = cfg
	e.store = store
	e.log.Debug("configuration resolved", "artifacts", store.Root(), "cache", cfg.CacheSize)
	return nil
}

func (e *env) teardown(*cli.Context) error {
	if e.cfg == nil || !e.cfg.Metrics {
		return nil
	}
	return metrics.WriteText(e.stderr)
}
