package codebase

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/config"
)

const lsName = "cfront"

type LSPServer struct {
	codebase *Codebase
	cfg      *config.Config
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string, cfg *config.Config) *LSPServer {
	ls := &LSPServer{
		version: version,
		cfg:     cfg,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.cfg)
	log.Infof("initialize: root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		log.Warningf("initial scan: %s", err)
	}
	for _, path := range ls.codebase.Files() {
		ls.publish(ctx, ls.codebase.GetFile(path))
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.publish(ctx, ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text)))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.publish(ctx, ls.codebase.UpdateFile(path, []byte(textChange.Text)))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.publish(ctx, ls.codebase.UpdateFile(path, []byte(*params.Text)))
		return nil
	}
	info, err := ls.codebase.ScanFile(path)
	if err != nil {
		log.Warningf("%s", err)
		return nil
	}
	ls.publish(ctx, info)
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	info := ls.codebase.GetFile(path)
	if info == nil {
		return nil, nil
	}
	line := int(params.Position.Line) + 1
	col := byteOffset(info.Source.Line(line), int(params.Position.Character)) + 1

	tok, ok := ls.codebase.TokenAt(path, line, col)
	if !ok {
		return nil, nil
	}
	rng := locationRange(tok.Location)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(tok),
		},
		Range: &rng,
	}, nil
}

// publish replaces the client's diagnostics for the file. An empty list
// clears them.
func (ls *LSPServer) publish(ctx *glsp.Context, info *FileInfo) {
	if info == nil {
		return
	}
	diagnostics := make([]protocol.Diagnostic, 0, len(info.Diagnostics))
	for _, d := range info.Diagnostics {
		diagnostics = append(diagnostics, toProtocolDiagnostic(d))
	}
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), info.Path)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(info.Path),
		Diagnostics: diagnostics,
	})
}

func toProtocolDiagnostic(d parser.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    locationRange(d.Location),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: d.Code.String()},
		Source:   &source,
		Message:  d.Message,
	}
}

// locationRange converts 1-based lines and byte columns to the protocol's
// 0-based lines and UTF-16 offsets.
func locationRange(loc parser.Location) protocol.Range {
	return protocol.Range{
		Start: protocolPosition(loc.File, loc.Start()),
		End:   protocolPosition(loc.File, loc.EndPosition()),
	}
}

func protocolPosition(src *parser.SourceFile, pos parser.Position) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(utf16Offset(src.Line(pos.Line), max(pos.Column-1, 0))),
	}
}

// byteOffset converts a UTF-16 offset within line to a byte offset. Offsets
// past the end of line stay past it.
func byteOffset(line string, units int) int {
	for i, r := range line {
		if units <= 0 {
			return i
		}
		units -= utf16.RuneLen(r)
	}
	return len(line) + max(units, 0)
}

// utf16Offset converts a byte offset within line to a UTF-16 offset.
func utf16Offset(line string, n int) int {
	units := 0
	for i, r := range line {
		if i >= n {
			return units
		}
		units += utf16.RuneLen(r)
	}
	return units + max(n-len(line), 0)
}

func hoverText(tok parser.Token) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", tok.Kind, tok.Literal())

	switch {
	case tok.Kind.IsKeyword():
		sb.WriteString("\n\nkeyword")
	case tok.Kind.IsPunctuator():
		sb.WriteString("\n\npunctuator")
	}

	switch tok.Kind {
	case parser.TokenIntLiteral:
		fmt.Fprintf(&sb, "\n\n%s, base %d", tok.Int.Type, tok.Int.Base)
		if v, err := tok.IntValue(); err == nil {
			fmt.Fprintf(&sb, "\n\nvalue: %d", v)
		} else {
			fmt.Fprintf(&sb, "\n\ninvalid: %s", err)
		}
	case parser.TokenFloatLiteral:
		fmt.Fprintf(&sb, "\n\n%s", tok.Float.Type)
		if v, err := tok.FloatValue(); err == nil {
			fmt.Fprintf(&sb, "\n\nvalue: %s", strconv.FormatFloat(v, 'g', -1, 64))
		}
	case parser.TokenStringLiteral:
		if v, err := tok.StringValue(); err == nil {
			fmt.Fprintf(&sb, "\n\nvalue: %s (%d bytes)", strconv.Quote(v), len(v))
		}
	case parser.TokenCharLiteral:
		if v, err := tok.CharValue(); err == nil {
			fmt.Fprintf(&sb, "\n\nvalue: %s (%d)", strconv.QuoteRune(v), v)
		}
	}
	return sb.String()
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
