package lsp

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"gridedit.dev/pkg/must"
	"gridedit.dev/pkg/prog/progtest"
	"gridedit.dev/pkg/tt"
)

func TestProgram_NotRun(t *testing.T) {
	progtest.Test(t, &Program{},
		progtest.ThatGridedit().ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

type client struct {
	conn  *jsonrpc2.Conn
	diags chan lsp.PublishDiagnosticsParams
}

// Starts a server connected to a client through pipes. The client is closed
// and the server is waited for when the test finishes.
func startServer(t *testing.T) *client {
	r0, w0 := must.OK2(os.Pipe())
	r1, w1 := must.OK2(os.Pipe())
	done := make(chan struct{})
	go func() {
		(&Program{run: true}).Run([3]*os.File{r0, w1, os.Stderr}, nil)
		close(done)
	}()

	diags := make(chan lsp.PublishDiagnosticsParams, 10)
	h := jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		if req.Method == "textDocument/publishDiagnostics" && req.Params != nil {
			var params lsp.PublishDiagnosticsParams
			if json.Unmarshal(*req.Params, &params) == nil {
				diags <- params
			}
		}
		return nil, nil
	})
	conn := jsonrpc2.NewConn(context.Background(),
		jsonrpc2.NewBufferedStream(transport{r1, w0}, jsonrpc2.VSCodeObjectCodec{}), h)
	t.Cleanup(func() {
		conn.Close()
		<-done
	})
	return &client{conn, diags}
}

func (c *client) call(t *testing.T, method string, params, result any) {
	t.Helper()
	err := c.conn.Call(context.Background(), method, params, result)
	if err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

func (c *client) open(t *testing.T, uri lsp.DocumentURI, text string) {
	t.Helper()
	err := c.conn.Notify(context.Background(), "textDocument/didOpen",
		lsp.DidOpenTextDocumentParams{
			TextDocument: lsp.TextDocumentItem{URI: uri, Text: text}})
	if err != nil {
		t.Fatal(err)
	}
}

func (c *client) nextDiagnostics(t *testing.T) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case d := <-c.diags:
		return d
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		return lsp.PublishDiagnosticsParams{}
	}
}

func TestInitialize(t *testing.T) {
	c := startServer(t)
	var result lsp.InitializeResult
	c.call(t, "initialize", lsp.InitializeParams{}, &result)
	caps := result.Capabilities
	if !caps.HoverProvider || caps.CompletionProvider == nil {
		t.Errorf("got capabilities %+v", caps)
	}
}

func TestDiagnostics(t *testing.T) {
	c := startServer(t)
	c.open(t, "file:///a.gs", "[1,1];\nbogus;sum [1,2]")
	d := c.nextDiagnostics(t)
	if d.URI != "file:///a.gs" || len(d.Diagnostics) != 1 {
		t.Fatalf("got %+v", d)
	}
	diag := d.Diagnostics[0]
	wantRange := lsp.Range{
		Start: lsp.Position{Line: 1, Character: 0},
		End:   lsp.Position{Line: 1, Character: 5}}
	if diag.Range != wantRange || !strings.Contains(diag.Message, `"bogus"`) {
		t.Errorf("got diagnostic %+v", diag)
	}

	err := c.conn.Notify(context.Background(), "textDocument/didChange",
		lsp.DidChangeTextDocumentParams{
			TextDocument: lsp.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: "file:///a.gs"}},
			ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "[1,1]"}}})
	if err != nil {
		t.Fatal(err)
	}
	if d := c.nextDiagnostics(t); len(d.Diagnostics) != 0 {
		t.Errorf("got diagnostics %+v after fixing the script", d.Diagnostics)
	}
}

func TestCompletion(t *testing.T) {
	c := startServer(t)
	c.open(t, "file:///a.gs", "[1,1];su")
	c.nextDiagnostics(t)

	complete := func(char int) []string {
		var items []lsp.CompletionItem
		c.call(t, "textDocument/completion", lsp.CompletionParams{
			TextDocumentPositionParams: lsp.TextDocumentPositionParams{
				TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.gs"},
				Position:     lsp.Position{Line: 0, Character: char}}}, &items)
		labels := make([]string, len(items))
		for i, item := range items {
			labels[i] = item.Label
		}
		return labels
	}
	if got := complete(8); len(got) != 1 || got[0] != "sum" {
		t.Errorf("completions after su: %q", got)
	}
	if got := complete(6); len(got) != 13 {
		t.Errorf("completions after ;: %q", got)
	}
}

func TestHover(t *testing.T) {
	c := startServer(t)
	c.open(t, "file:///a.gs", "[1,1];sum [1,2];nope")
	c.nextDiagnostics(t)

	hover := func(char int) string {
		var result struct {
			Contents []string `json:"contents"`
		}
		c.call(t, "textDocument/hover", lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.gs"},
			Position:     lsp.Position{Line: 0, Character: char}}, &result)
		return strings.Join(result.Contents, "\n")
	}
	if got := hover(7); !strings.HasPrefix(got, "Writes the sum") {
		t.Errorf("hover on sum: %q", got)
	}
	if got := hover(2); !strings.HasPrefix(got, "Selects [1,1]") {
		t.Errorf("hover on selection: %q", got)
	}
	if got := hover(18); !strings.Contains(got, `invalid selection "nope"`) {
		t.Errorf("hover on invalid command: %q", got)
	}
}

func TestUnknownMethod(t *testing.T) {
	c := startServer(t)
	err := c.conn.Call(context.Background(), "no/such/method", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "method not found") {
		t.Errorf("got error %v", err)
	}
}

func TestPositionConversion(t *testing.T) {
	tt.Test(t, tt.Fn("lspPositionFromIdx", lspPositionFromIdx), tt.Table{
		tt.Args("foo", 1).Rets(lsp.Position{Line: 0, Character: 1}),
		tt.Args("a\nbc", 3).Rets(lsp.Position{Line: 1, Character: 1}),
		tt.Args("a\r\nbc", 4).Rets(lsp.Position{Line: 1, Character: 1}),
		tt.Args("é;x", 3).Rets(lsp.Position{Line: 0, Character: 2}),
		tt.Args("😀x", 4).Rets(lsp.Position{Line: 0, Character: 2}),
	})
	tt.Test(t, tt.Fn("lspPositionToIdx", lspPositionToIdx), tt.Table{
		tt.Args("a\nbc", lsp.Position{Line: 1, Character: 1}).Rets(3),
		tt.Args("é;x", lsp.Position{Line: 0, Character: 2}).Rets(3),
		tt.Args("abc", lsp.Position{Line: 5, Character: 0}).Rets(3),
	})
}
