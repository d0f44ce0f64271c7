// Package search implements read-only content queries over open
// documents: substring search, line-range extraction, and byte-offset
// resolution. Every query works on the document's materialized text;
// none of them calls the rope's SearchBy descent.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/caretext/rope/pkg/registry"
)

// Match is a single substring hit within a document.
type Match struct {
	DocumentID ksuid.KSUID
	Byte       int
	Line       int
}

// Engine executes content queries against a registry of open
// documents, mirroring the field-query engine's Validate/Execute shape
// but re-keyed to document content instead of JSON record fields.
type Engine struct {
	registry *registry.Registry
}

// New returns an Engine backed by registry.
func New(registry *registry.Registry) *Engine {
	return &Engine{registry: registry}
}

// Find returns every byte offset at which needle occurs in id's
// document, converted to (byte, line) pairs.
func (e *Engine) Find(ctx context.Context, id ksuid.KSUID, needle string) ([]Match, error) {
	if needle == "" {
		return nil, fmt.Errorf("search: empty query")
	}
	doc, err := e.registry.GetOrOpen(id)
	if err != nil {
		return nil, err
	}
	text := doc.Text()

	var matches []Match
	start := 0
	for {
		idx := strings.Index(text[start:], needle)
		if idx < 0 {
			break
		}
		byteOff := start + idx
		line := strings.Count(text[:byteOff], "\n")
		matches = append(matches, Match{DocumentID: id, Byte: byteOff, Line: line})
		start = byteOff + 1
		if start >= len(text) {
			break
		}
	}
	return matches, nil
}

// LineRange returns the text of lines [startLine, endLine) (0-indexed,
// half-open) from id's document.
func (e *Engine) LineRange(ctx context.Context, id ksuid.KSUID, startLine, endLine int) (string, error) {
	doc, err := e.registry.GetOrOpen(id)
	if err != nil {
		return "", err
	}
	lines := strings.Split(doc.Text(), "\n")
	if startLine < 0 {
		startLine = 0
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine > endLine {
		return "", fmt.Errorf("search: invalid line range [%d, %d)", startLine, endLine)
	}
	return strings.Join(lines[startLine:endLine], "\n"), nil
}

// ByteAt resolves a byte offset within id's document to its
// (char index, line index) by counting runes and line breaks in the
// document's text before that offset.
func (e *Engine) ByteAt(ctx context.Context, id ksuid.KSUID, byteIndex int) (charIndex, lineIndex int, err error) {
	doc, err := e.registry.GetOrOpen(id)
	if err != nil {
		return 0, 0, err
	}
	stat := doc.Stat()
	if byteIndex < 0 || byteIndex > stat.Bytes {
		return 0, 0, fmt.Errorf("search: byte index %d out of bounds (len %d)", byteIndex, stat.Bytes)
	}
	text := doc.Text()
	prefix := text[:byteIndex]
	return len([]rune(prefix)), strings.Count(prefix, "\n"), nil
}
