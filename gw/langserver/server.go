// Package langserver exposes the .gw parser over the language server
// protocol: files are reparsed as they are edited and the resulting
// problems published as diagnostics.
package langserver

import (
	"strings"
	"sync"

	"github.com/dhamidi/gw/gw"
	"github.com/dhamidi/gw/gw/diag"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "gwls"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	documents map[string]string
}

func New(version string) *Server {
	s := &Server{
		version:   version,
		documents: make(map[string]string),
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentDidSave:    s.textDocumentDidSave,
		TextDocumentCompletion: s.textDocumentCompletion,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"#"},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.updateDocument(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.updateDocument(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	s.publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.updateDocument(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

// updateDocument stores the new content, reparses it leniently and
// republishes the document's diagnostics.
func (s *Server) updateDocument(ctx *glsp.Context, uri, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()

	parser := gw.New(gw.WithStrict(false), gw.WithValidation(true))
	genealogy, err := parser.ParseString(text)

	var items []protocol.Diagnostic
	if err != nil {
		items = append(items, diagnosticFromError(err))
	}
	for _, w := range parser.Warnings() {
		items = append(items, toProtocolDiagnostic(w))
	}
	if genealogy != nil {
		for _, p := range genealogy.Problems {
			items = append(items, toProtocolDiagnostic(p))
		}
	}

	s.publish(ctx, uri, items)
}

func (s *Server) publish(ctx *glsp.Context, uri string, items []protocol.Diagnostic) {
	if items == nil {
		items = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: items,
	})
}

// blockCompletions and hashCompletions list the keywords a .gw
// document may use at the start of a line and after a '#'.
var blockCompletions = []string{
	"fam", "notes", "rel", "pevt", "fevt",
	"notes-db", "page-ext", "wizard-note",
	"beg", "end", "wit", "src", "comm", "cbp", "csrc",
}

var hashCompletions = []string{
	"bp", "dp", "mp", "occu", "nick", "salias", "alias", "image",
	"apubl", "apriv", "od", "mj", "buri", "crem",
	"nm", "eng", "sep", "div", "s", "p",
	"birt", "bapt", "deat", "marr", "enga",
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	s.mu.Lock()
	text, ok := s.documents[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	words := blockCompletions
	kind := protocol.CompletionItemKindKeyword
	if afterHash(text, int(params.Position.Line), int(params.Position.Character)) {
		words = hashCompletions
		kind = protocol.CompletionItemKindProperty
	}

	var items []protocol.CompletionItem
	for _, word := range words {
		k := kind
		items = append(items, protocol.CompletionItem{
			Label: word,
			Kind:  &k,
		})
	}
	return items, nil
}

func afterHash(text string, line, col int) bool {
	lines := strings.Split(text, "\n")
	if line < 0 || line >= len(lines) {
		return false
	}
	content := lines[line]
	for i := col - 1; i >= 0; i-- {
		if i >= len(content) {
			continue
		}
		switch content[i] {
		case '#':
			return true
		case ' ', '\t':
			return false
		}
	}
	return false
}

func toProtocolDiagnostic(d diag.Diagnostic) protocol.Diagnostic {
	line := d.Line - 1
	if line < 0 {
		line = 0
	}
	col := d.Column
	if col < 0 {
		col = 0
	}
	severity := protocol.DiagnosticSeverityError
	if d.Severity == diag.SeverityWarning {
		severity = protocol.DiagnosticSeverityWarning
	}
	source := lsName

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)},
			End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col + 1)},
		},
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	}
}

func diagnosticFromError(err error) protocol.Diagnostic {
	if d, ok := err.(diag.Diagnostic); ok {
		return toProtocolDiagnostic(d)
	}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 1},
		},
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
