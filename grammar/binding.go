// Package grammar provides the compiled BevyML grammar as a validated handle
// for the parser front end.
package grammar

import (
	"errors"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrArtifactUnavailable is returned when the compiled grammar is missing or
// does not look like the grammar it claims to be.
var ErrArtifactUnavailable = errors.New("grammar artifact unavailable")

// Name of the BevyML grammar.
const Name = "bevyml"

// NodeKinds lists the node kinds the rest of the module depends on. An
// artifact missing any of them is treated as corrupt.
var NodeKinds = []string{
	"fragment",
	"element",
	"start_tag",
	"end_tag",
	"self_closing_tag",
	"tag_name",
	"attribute",
	"attribute_name",
	"attribute_value",
	"quoted_attribute_value",
	"text",
}

// Artifact describes a compiled grammar and how to load it.
type Artifact struct {
	Name string
	// Load returns the compiled language, nil when it is not linked in.
	Load func() *sitter.Language
	// ABIVersion reads the ABI version the artifact was generated with.
	ABIVersion func() uint32
	// NodeKinds that must be present in the language's symbol table.
	NodeKinds []string
}

// Handle is an immutable reference to a loaded grammar. It does not own the
// underlying language which lives for the whole process.
type Handle struct {
	name       string
	abiVersion uint32
	language   *sitter.Language
	symbols    []string
}

// NewHandle wraps an already loaded language without validating it. Use a
// Provider to obtain validated handles.
func NewHandle(name string, abiVersion uint32, language *sitter.Language) *Handle {
	return &Handle{
		name:       name,
		abiVersion: abiVersion,
		language:   language,
		symbols:    symbolNames(language),
	}
}

func (h *Handle) Name() string {
	return h.name
}

func (h *Handle) ABIVersion() uint32 {
	return h.abiVersion
}

func (h *Handle) Language() *sitter.Language {
	return h.language
}

func (h *Handle) SymbolCount() uint32 {
	return uint32(len(h.symbols))
}

// Equal reports whether both handles refer to the same artifact. Languages
// are compared by their symbol tables since every load wraps the compiled
// grammar in a new *sitter.Language.
func (h *Handle) Equal(other *Handle) bool {
	if h == nil || other == nil {
		return h == other
	}
	if h.name != other.name || h.abiVersion != other.abiVersion {
		return false
	}
	if h.language == other.language {
		return true
	}
	if h.language == nil || other.language == nil || len(h.symbols) != len(other.symbols) {
		return false
	}
	for i := range h.symbols {
		if h.symbols[i] != other.symbols[i] {
			return false
		}
	}
	return true
}

func (h *Handle) String() string {
	return fmt.Sprintf("%s (abi %d, %d symbols)", h.name, h.abiVersion, len(h.symbols))
}

// Provider loads an artifact once and hands out its handle.
type Provider struct {
	artifact Artifact
	once     sync.Once
	handle   *Handle
	err      error
}

func NewProvider(artifact Artifact) *Provider {
	return &Provider{artifact: artifact}
}

// Init loads and validates the artifact. Only the first call does any work,
// later calls return the same result.
func (p *Provider) Init() error {
	p.once.Do(func() {
		p.handle, p.err = load(p.artifact)
	})
	return p.err
}

// Handle returns the artifact's handle, initialising the provider if needed.
func (p *Provider) Handle() (*Handle, error) {
	if err := p.Init(); err != nil {
		return nil, err
	}
	return p.handle, nil
}

func load(artifact Artifact) (*Handle, error) {
	if artifact.Load == nil {
		return nil, fmt.Errorf("%w: %s: no loader", ErrArtifactUnavailable, artifact.Name)
	}
	language := artifact.Load()
	if language == nil {
		return nil, fmt.Errorf("%w: %s: language not linked", ErrArtifactUnavailable, artifact.Name)
	}
	symbols := symbolNames(language)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: %s: empty symbol table", ErrArtifactUnavailable, artifact.Name)
	}
	known := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		known[symbol] = true
	}
	for _, kind := range artifact.NodeKinds {
		if !known[kind] {
			return nil, fmt.Errorf("%w: %s: missing node kind %q", ErrArtifactUnavailable, artifact.Name, kind)
		}
	}
	if artifact.ABIVersion == nil {
		return nil, fmt.Errorf("%w: %s: unknown abi version", ErrArtifactUnavailable, artifact.Name)
	}
	abiVersion := artifact.ABIVersion()
	if abiVersion == 0 {
		return nil, fmt.Errorf("%w: %s: invalid abi version 0", ErrArtifactUnavailable, artifact.Name)
	}
	return &Handle{
		name:       artifact.Name,
		abiVersion: abiVersion,
		language:   language,
		symbols:    symbols,
	}, nil
}

func symbolNames(language *sitter.Language) []string {
	if language == nil {
		return nil
	}
	count := language.SymbolCount()
	symbols := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		symbols = append(symbols, language.SymbolName(sitter.Symbol(i)))
	}
	return symbols
}

// BevyML is the grammar compiled into this binary.
var BevyML = Artifact{
	Name:       Name,
	Load:       GetLanguage,
	ABIVersion: LanguageVersion,
	NodeKinds:  NodeKinds,
}

var defaultProvider = NewProvider(BevyML)

// Init loads the BevyML grammar. It is safe to call any number of times.
func Init() error {
	return defaultProvider.Init()
}

// GetHandle returns the handle of the BevyML grammar compiled into this
// binary.
func GetHandle() (*Handle, error) {
	return defaultProvider.Handle()
}
