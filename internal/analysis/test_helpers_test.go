package analysis

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"jobfit-backend/internal/llm"
)

// fakeLLM returns a canned payload or error for every call and records how
// often it was invoked.
type fakeLLM struct {
	resp  string
	err   error
	calls int
	last  llm.MatchInput
}

func (f *fakeLLM) AnalyzeMatch(ctx context.Context, input llm.MatchInput) (json.RawMessage, error) {
	_ = ctx
	f.calls++
	f.last = input
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.resp), nil
}

// buildDocxResume assembles a docx archive in memory with the parts the
// extractor requires.
func buildDocxResume(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`
	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

	entries := []struct {
		name    string
		content string
	}{
		{"word/document.xml", document},
		{"word/_rels/document.xml.rels", rels},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", entry.name, err)
		}
		if _, err := w.Write([]byte(entry.content)); err != nil {
			t.Fatalf("write zip entry %s: %v", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
