// Package parser binds a grammar handle to a tree-sitter parser and turns
// BevyML documents into syntax and element trees.
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kelly-lin/bevyml/grammar"
	"github.com/kelly-lin/bevyml/itree"
	"github.com/kelly-lin/bevyml/log"
)

// Range of grammar ABI versions the runtime can load.
const (
	LanguageVersion              uint32 = 14
	MinCompatibleLanguageVersion uint32 = 13
)

var (
	ErrInvalidHandle       = errors.New("invalid grammar handle")
	ErrIncompatibleGrammar = errors.New("incompatible grammar")
	ErrParserClosed        = errors.New("parser is closed")
)

type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Option func(*Parser)

// WithLogger sets the logger used while building element trees.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser is bound to one grammar handle for its whole life. A Parser is not
// meant to be shared but calls are serialised so concurrent use is safe.
// Several parsers may share the same handle.
type Parser struct {
	mu     sync.Mutex
	handle *grammar.Handle
	parser *sitter.Parser
	logger *log.Logger
	state  State
}

// New validates handle and returns a ready parser bound to it. On error no
// parser is returned.
func New(handle *grammar.Handle, opts ...Option) (*Parser, error) {
	if err := validate(handle); err != nil {
		return nil, err
	}
	p := &Parser{handle: handle}
	for _, opt := range opts {
		opt(p)
	}
	p.parser = sitter.NewParser()
	p.parser.SetLanguage(handle.Language())
	p.state = StateReady
	p.logger.Debugf("parser ready for %s", handle)
	return p, nil
}

// Must is like New but panics when the grammar cannot be loaded.
func Must(handle *grammar.Handle, opts ...Option) *Parser {
	p, err := New(handle, opts...)
	if err != nil {
		panic("Error loading BevyML grammar.")
	}
	return p
}

// Default returns a parser bound to the BevyML grammar. Errors from the
// grammar provider are returned unchanged.
func Default(opts ...Option) (*Parser, error) {
	handle, err := grammar.GetHandle()
	if err != nil {
		return nil, err
	}
	return New(handle, opts...)
}

func validate(handle *grammar.Handle) error {
	if handle == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidHandle)
	}
	if handle.Language() == nil {
		return fmt.Errorf("%w: %q has no language", ErrInvalidHandle, handle.Name())
	}
	if handle.Name() == "" {
		return fmt.Errorf("%w: handle has no name", ErrInvalidHandle)
	}
	abi := handle.ABIVersion()
	if abi < MinCompatibleLanguageVersion || abi > LanguageVersion {
		return fmt.Errorf(
			"%w: %s has abi version %d, supported versions are %d to %d",
			ErrIncompatibleGrammar, handle.Name(), abi, MinCompatibleLanguageVersion, LanguageVersion,
		)
	}
	return nil
}

func (p *Parser) Handle() *grammar.Handle {
	return p.handle
}

func (p *Parser) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close releases the underlying parser. Closing twice is a no-op.
func (p *Parser) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateReady {
		return
	}
	p.parser.Close()
	p.parser = nil
	p.state = StateUninitialized
}

// ParseTree parses source into a syntax tree. The caller owns the returned
// tree and should close it.
func (p *Parser) ParseTree(ctx context.Context, source []byte) (*sitter.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateReady {
		return nil, ErrParserClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	// The runtime's cancellation flag can be raised after the parse has
	// finished and is never cleared, so a parser that saw a cancellable
	// context is not reused.
	if ctx.Done() != nil {
		p.resetParser()
	}
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, itree.ErrMissingParseTree
	}
	return tree, nil
}

func (p *Parser) resetParser() {
	p.parser.Close()
	p.parser = sitter.NewParser()
	p.parser.SetLanguage(p.handle.Language())
}

// Parse parses source into an element tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (*itree.Tree, error) {
	tree, err := p.ParseTree(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return itree.Build(tree, source, p.logger)
}

// ParseFile reads and parses the file at path, returning the syntax tree and
// the file contents it refers to.
func (p *Parser) ParseFile(ctx context.Context, path string) (*sitter.Tree, []byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	p.logger.Debugf("parsing %s (%d bytes)", path, len(source))
	tree, err := p.ParseTree(ctx, source)
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return tree, source, nil
}
