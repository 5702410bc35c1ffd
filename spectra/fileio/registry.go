package fileio

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrNotImplemented reports a file whose format is not supported.
	ErrNotImplemented = errors.New("fileio: file format not implemented")
	// ErrNoParser reports a recognised format with no registered parser.
	ErrNoParser = fmt.Errorf("%w: no parser registered", ErrNotImplemented)
	// ErrUnknownExtension is returned by Register for extensions outside
	// the recognised set.
	ErrUnknownExtension = errors.New("fileio: unrecognised extension")
)

// Extensions returns the recognised file extensions.
func Extensions() []string {
	return []string{".cnf", ".spc", ".spe"}
}

// Registry maps file extensions to parsers. The zero value is ready to use
// and safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register installs p for ext. The extension is matched case-insensitively
// and may be given with or without the leading dot.
func (r *Registry) Register(ext string, p Parser) error {
	key := normalizeExt(ext)
	if !slices.Contains(Extensions(), key) {
		return fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
	if p == nil {
		return fmt.Errorf("fileio: nil parser for %q", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsers == nil {
		r.parsers = make(map[string]Parser)
	}
	r.parsers[key] = p
	return nil
}

// Lookup returns the parser for filename's extension.
func (r *Registry) Lookup(filename string) (Parser, error) {
	key := normalizeExt(filepath.Ext(filename))
	if !slices.Contains(Extensions(), key) {
		return nil, fmt.Errorf("%w: %q", ErrNotImplemented, filename)
	}
	r.mu.RLock()
	p, ok := r.parsers[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for %s files", ErrNoParser, key)
	}
	return p, nil
}

// Parse looks up the parser for filename and runs it. The record's Filename
// is set when the parser leaves it empty.
func (r *Registry) Parse(filename string) (*Record, error) {
	p, err := r.Lookup(filename)
	if err != nil {
		return nil, err
	}
	rec, err := p.Parse(filename)
	if err != nil {
		return nil, fmt.Errorf("fileio: parse %s: %w", filename, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("fileio: parse %s: parser returned no record", filename)
	}
	if rec.Filename == "" {
		rec.Filename = filename
	}
	return rec, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
