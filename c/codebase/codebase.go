// Package codebase keeps the lexed and parsed state of every C file under a
// root directory, and serves it to the watcher and the language server.
package codebase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/config"
)

var log = commonlog.GetLogger("cfront.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	cfg     *config.Config
	files   map[string]*FileInfo
}

// FileInfo is the result of checking one file. Tokens exclude whitespace
// and comments and end with EOF.
type FileInfo struct {
	Path        string
	Source      *parser.SourceFile
	Tokens      []parser.Token
	Unit        *parser.Unit
	Diagnostics []parser.Diagnostic
}

// Analyze lexes and parses content as a sequence of declarations and
// statements. Names in typedefs parse as type names.
func Analyze(path string, content []byte, typedefs []string) *FileInfo {
	diags := parser.NewDiagnostics()
	src := parser.NewSourceFile(path, content)
	tokens := parser.Tokenize(src, diags, false, false)
	p := parser.New(tokens, diags, parser.WithTypedefNames(typedefs...))
	unit := p.ParseUnit()
	return &FileInfo{
		Path:        path,
		Source:      src,
		Tokens:      p.Tokens(),
		Unit:        unit,
		Diagnostics: diags.All(),
	}
}

func New(rootDir string, cfg *config.Config) *Codebase {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Codebase{
		rootDir: rootDir,
		cfg:     cfg,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Config() *config.Config {
	return c.cfg
}

// SourcePaths lists the files under the root that ScanAll would check,
// skipping ignored directories.
func (c *Codebase) SourcePaths() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warningf("skipping %s: %s", path, err)
			return nil
		}
		if d.IsDir() {
			if path != c.rootDir && c.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if c.cfg.HasSourceExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func (c *Codebase) skipDir(name string) bool {
	return c.cfg.Ignored(name) || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// ScanAll checks every source file under the root, a bounded number at a
// time. It stops at the first file that cannot be read.
func (c *Codebase) ScanAll(ctx context.Context) error {
	paths, err := c.SourcePaths()
	if err != nil {
		return err
	}
	log.Infof("scanning %d files under %s", len(paths), c.rootDir)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.ScanFile(path)
			return err
		})
	}
	return g.Wait()
}

func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read c file: %w", err)
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile replaces the state of path with the result of checking
// content.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := Analyze(path, content, c.cfg.Typedefs)
	log.Debugf("%s: %d tokens, %d diagnostics", path, len(info.Tokens), len(info.Diagnostics))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

// RemoveFile forgets path and reports whether it was known.
func (c *Codebase) RemoveFile(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.files[path]
	delete(c.files, path)
	return ok
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the known paths in sorted order.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (c *Codebase) Diagnostics(path string) []parser.Diagnostic {
	if f := c.GetFile(path); f != nil {
		return f.Diagnostics
	}
	return nil
}

// AllDiagnostics returns the diagnostics of every file, grouped by path in
// sorted order.
func (c *Codebase) AllDiagnostics() []parser.Diagnostic {
	var all []parser.Diagnostic
	for _, path := range c.Files() {
		all = append(all, c.Diagnostics(path)...)
	}
	return all
}

// TokenAt returns the token covering the 1-based line and byte column.
// Tokens continued across lines cover every line they span.
func (c *Codebase) TokenAt(path string, line, column int) (parser.Token, bool) {
	f := c.GetFile(path)
	if f == nil {
		return parser.Token{}, false
	}
	before := func(a parser.Position) bool {
		return a.Line < line || (a.Line == line && a.Column <= column)
	}
	i := sort.Search(len(f.Tokens), func(i int) bool {
		return !before(f.Tokens[i].Location.EndPosition())
	})
	if i == len(f.Tokens) {
		return parser.Token{}, false
	}
	tok := f.Tokens[i]
	if tok.Kind == parser.TokenEOF || !before(tok.Location.Start()) {
		return parser.Token{}, false
	}
	return tok, true
}
