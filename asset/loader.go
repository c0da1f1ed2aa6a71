// Package asset loads BevyML documents into node trees ready to be spawned by
// a UI runtime.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kelly-lin/bevyml/itree"
	"github.com/kelly-lin/bevyml/log"
	"github.com/kelly-lin/bevyml/parser"
)

var (
	ErrIO    = errors.New("could not load asset")
	ErrUTF8  = errors.New("invalid utf-8 in asset")
	ErrParse = errors.New("could not parse bevyml")
)

var extensions = []string{"bevyml", "html"}

// Asset is a loaded document.
type Asset struct {
	Path  string
	Roots []itree.NodeTree
}

type Loader struct {
	logger *log.Logger
}

func NewLoader(logger *log.Logger) *Loader {
	return &Loader{logger: logger}
}

// Extensions returns the file extensions the loader handles, without dots.
func (l *Loader) Extensions() []string {
	return append([]string(nil), extensions...)
}

// Supports reports whether path has one of the loader's extensions. The
// comparison ignores case.
func (l *Loader) Supports(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, supported := range extensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Load reads a whole document from r and parses it.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Asset, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%w: at byte %d", ErrUTF8, invalidOffset(source))
	}

	p, err := parser.Default(parser.WithLogger(l.logger))
	if err != nil {
		return nil, err
	}
	defer p.Close()

	tree, err := p.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &Asset{Roots: tree.NodeTrees()}, nil
}

// LoadFile loads the document at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Asset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer file.Close()

	l.logger.Debugf("loading asset %s", path)
	asset, err := l.Load(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	asset.Path = path
	return asset, nil
}

func invalidOffset(source []byte) int {
	offset := 0
	for len(source) > 0 {
		r, size := utf8.DecodeRune(source)
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
		source = source[size:]
	}
	return offset
}
