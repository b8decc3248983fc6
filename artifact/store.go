// Package artifact resolves contract names to their parsed ABI. Artifacts are
// JSON files named <ContractName>.json under a configured resource root, in
// the Truffle/Aragon layout: {"contractName": ..., "abi": [...]}.
package artifact

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/eth2030/callscript/log"
	"github.com/eth2030/callscript/metrics"
)

const fileExt = ".json"

var (
	// ErrArtifactNotFound is returned when no artifact matches a name.
	ErrArtifactNotFound = errors.New("artifact: not found")

	// ErrInvalidArtifact is returned when an artifact file cannot be parsed.
	ErrInvalidArtifact = errors.New("artifact: invalid artifact")
)

//go:embed builtin/*.json
var builtinFS embed.FS

// Artifact is a parsed contract interface description.
type Artifact struct {
	Name string
	ABI  abi.ABI
	// RawABI is the "abi" member exactly as stored.
	RawABI json.RawMessage
}

// Signatures maps each method name to its canonical signature, for example
// "mint" -> "mint(address,uint256)".
func (a *Artifact) Signatures() map[string]string {
	sigs := make(map[string]string, len(a.ABI.Methods))
	for name, m := range a.ABI.Methods {
		sigs[name] = m.Sig
	}
	return sigs
}

type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
}

// Store loads artifacts from a resource root and caches the parsed result.
// It is safe for concurrent use.
type Store struct {
	fsys  fs.FS
	root  string
	cache *lru.Cache[string, *Artifact]
	log   *log.Logger
}

// NewStore creates a Store reading from the directory root. An empty root
// selects the artifacts built into the binary. cacheSize bounds the number
// of parsed artifacts kept in memory.
func NewStore(root string, cacheSize int) (*Store, error) {
	if root == "" {
		sub, err := fs.Sub(builtinFS, "builtin")
		if err != nil {
			return nil, err
		}
		return newStore(sub, "<builtin>", cacheSize)
	}
	return newStore(os.DirFS(root), root, cacheSize)
}

// NewStoreFS creates a Store over an arbitrary file system.
func NewStoreFS(fsys fs.FS, cacheSize int) (*Store, error) {
	return newStore(fsys, "<fs>", cacheSize)
}

func newStore(fsys fs.FS, root string, cacheSize int) (*Store, error) {
	cache, err := lru.New[string, *Artifact](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("artifact: cache: %w", err)
	}
	return &Store{
		fsys:  fsys,
		root:  root,
		cache: cache,
		log:   log.Default().Module("artifact").With("root", root),
	}, nil
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(l *log.Logger) {
	if l != nil {
		s.log = l.Module("artifact").With("root", s.root)
	}
}

// Root returns a description of where artifacts are read from.
func (s *Store) Root() string { return s.root }

// Load returns the artifact for the named contract.
func (s *Store) Load(name string) (*Artifact, error) {
	if a, ok := s.cache.Get(name); ok {
		metrics.ArtifactCacheHits.Inc()
		return a, nil
	}

	file := name + fileExt
	if name == "" || strings.ContainsAny(name, `/\`) || !fs.ValidPath(file) {
		metrics.ArtifactNotFound.Inc()
		return nil, fmt.Errorf("%w: invalid name %q", ErrArtifactNotFound, name)
	}
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.ArtifactNotFound.Inc()
			s.log.Debug("artifact missing", "name", name)
			return nil, fmt.Errorf("%w: %q in %s", ErrArtifactNotFound, name, s.root)
		}
		return nil, fmt.Errorf("artifact: read %q: %w", name, err)
	}

	a, err := parse(name, data)
	if err != nil {
		s.log.Warn("artifact unparseable", "name", name, "err", err)
		return nil, err
	}
	metrics.ArtifactLoads.Inc()
	s.log.Debug("artifact loaded", "name", name, "methods", len(a.ABI.Methods))
	s.cache.Add(name, a)
	return a, nil
}

// Names lists the contract names available under the resource root.
func (s *Store) Names() ([]string, error) {
	matches, err := fs.Glob(s.fsys, "*"+fileExt)
	if err != nil {
		return nil, fmt.Errorf("artifact: list: %w", err)
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(m, fileExt)
	}
	sort.Strings(names)
	return names, nil
}

func parse(name string, data []byte) (*Artifact, error) {
	var f artifactFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidArtifact, name, err)
	}
	if len(f.ABI) == 0 || bytes.Equal(f.ABI, []byte("null")) {
		return nil, fmt.Errorf("%w: %q has no abi", ErrInvalidArtifact, name)
	}
	parsed, err := abi.JSON(bytes.NewReader(f.ABI))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidArtifact, name, err)
	}
	return &Artifact{Name: name, ABI: parsed, RawABI: f.ABI}, nil
}
