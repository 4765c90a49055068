// Package conll reads CoNLL token-annotation files and renders the resolved
// clustering back onto the token stream in bracket notation.
package conll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/clinstack/coref/internal/model"
)

// ErrMissingInput means the token-annotation source cannot be opened.
var ErrMissingInput = errors.New("input file not found")

// Reader parses CoNLL token records into a document. A blank line is a
// sentence break; comment lines (#begin/#end markers) are skipped.
type Reader struct {
	docColumn  int
	wordColumn int
}

// NewReader creates a reader with the given column mapping.
func NewReader(docColumn, wordColumn int) *Reader {
	return &Reader{docColumn: docColumn, wordColumn: wordColumn}
}

// ReadFile reads a CoNLL file from disk. The file's base name is used as
// document name when no record carries a document id column.
func (r *Reader) ReadFile(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
	}
	defer f.Close()
	return r.Read(f, filepath.Base(path))
}

// Read parses CoNLL records from rd.
func (r *Reader) Read(rd io.Reader, defaultName string) (*model.Document, error) {
	doc := &model.Document{Name: defaultName}
	var sentence []string

	flush := func() {
		if len(sentence) > 0 {
			doc.Sentences = append(doc.Sentences, sentence)
			sentence = nil
		}
	}

	scanner := bufio.NewScanner(rd)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(text, "#") {
			continue
		}
		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}

		fields := strings.Fields(text)
		if r.docColumn >= len(fields) {
			return nil, fmt.Errorf("line %d: record has %d columns, document id expected in column %d", line, len(fields), r.docColumn)
		}
		if doc.Name == defaultName {
			doc.Name = fields[r.docColumn]
		}

		word := fields[len(fields)-1]
		if r.wordColumn < len(fields) {
			word = fields[r.wordColumn]
		}
		sentence = append(sentence, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	flush()

	return doc, nil
}
