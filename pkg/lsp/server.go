package lsp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"gridedit.dev/pkg/diag"
	"gridedit.dev/pkg/script"
	"gridedit.dev/pkg/selection"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		// Required by the protocol.
		"initialized": noop,
		"shutdown":    noop,
		// Called by clients even when server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider:      true,
			CompletionProvider: &lsp.CompletionOptions{},
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	s.update(ctx, conn, params.TextDocument.URI, params.TextDocument.Text)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// Only full syncs are advertised.
	s.update(ctx, conn, params.TextDocument.URI, params.ContentChanges[0].Text)
	return nil, nil
}

// Stores the new content of a document and checks it in the background.
func (s *server) update(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	idx := lspPositionToIdx(content, params.Position)
	for _, cmd := range script.Parse(script.Source{Code: content}) {
		if cmd.From <= idx && idx <= cmd.To {
			r := lspRangeFromRange(content, cmd)
			return lsp.Hover{
				Contents: []lsp.MarkedString{lsp.RawMarkedString(describe(cmd))},
				Range:    &r,
			}, nil
		}
	}
	return lsp.Hover{}, nil
}

var docs = map[string]string{
	"irow":  "Inserts a blank row above the selection.",
	"arow":  "Appends a blank row below the selection.",
	"drow":  "Deletes the rows of the selection.",
	"icol":  "Inserts a blank column left of the selection.",
	"acol":  "Appends a blank column right of the selection.",
	"dcol":  "Deletes the columns of the selection.",
	"sum":   "Writes the sum of the numbers in the selection to the target cell.",
	"avg":   "Writes the average of the numbers in the selection to the target cell.",
	"count": "Writes the number of non-blank cells in the selection to the target cell.",
	"len":   "Writes the length of the top-left cell of the selection to the target cell.",
	"swap":  "Swaps the top-left cell of the selection with the target cell.",
	"set":   "Sets the top-left cell of the selection to the text.",
	"clear": "Blanks all cells of the selection.",
}

func describe(cmd script.Command) string {
	if cmd.Kind != script.Select {
		return docs[cmd.Name()]
	}
	if _, ok := selection.Parse(cmd.Literal, 0, 0); !ok {
		return script.InvalidMessage(cmd.Literal)
	}
	return "Selects " + cmd.Literal + "; the table grows to cover it."
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	start := dot
	for start > 0 && isNameByte(content[start-1]) {
		start--
	}
	prefix := content[start:dot]
	lspRange := lspRangeFromRange(content, diag.Ranging{From: start, To: dot})

	items := []lsp.CompletionItem{}
	for _, name := range script.CommandNames() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		items = append(items, lsp.CompletionItem{
			Label:         name,
			Kind:          lsp.CIKKeyword,
			Documentation: docs[name],
			TextEdit:      &lsp.TextEdit{Range: lspRange, NewText: name},
		})
	}
	return items, nil
}

func isNameByte(b byte) bool { return 'a' <= b && b <= 'z' }

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	errs := script.Check(script.Source{Name: string(uri), Code: content})
	diags := make([]lsp.Diagnostic, len(errs))
	for i, err := range errs {
		diags[i] = lsp.Diagnostic{
			Range:    lspRangeFromRange(content, err),
			Severity: lsp.Error,
			Source:   "gridedit",
			Message:  err.Message,
		}
	}
	return diags
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

// Returns the byte offsets at which lines of s start. Lines are terminated by
// "\n", "\r\n" or a lone "\r".
func lineStarts(s string) []int {
	starts := []int{0}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LSP counts characters in UTF-16 code units.
func utf16Units(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	idx = min(max(idx, 0), len(s))
	starts := lineStarts(s)
	line := sort.SearchInts(starts, idx+1) - 1
	character := 0
	for _, r := range s[starts[line]:idx] {
		character += utf16Units(r)
	}
	return lsp.Position{Line: line, Character: character}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	starts := lineStarts(s)
	switch {
	case pos.Line < 0:
		return 0
	case pos.Line >= len(starts):
		return len(s)
	}
	start, end := starts[pos.Line], len(s)
	if pos.Line+1 < len(starts) {
		end = starts[pos.Line+1]
	}
	units := 0
	for i, r := range s[start:end] {
		if units >= pos.Character || r == '\r' || r == '\n' {
			return start + i
		}
		units += utf16Units(r)
	}
	return end
}
