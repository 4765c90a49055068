package conll

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/clinstack/coref/internal/model"
)

// Renderer projects the final cluster assignment back onto the token stream
// as bracket-encoded coreference labels.
type Renderer struct {
	docTags bool
}

// NewRenderer creates a renderer. With docTags enabled the output is
// bracketed by #begin/#end document markers.
func NewRenderer(docTags bool) *Renderer {
	return &Renderer{docTags: docTags}
}

// Label computes the coreference column for one token. Mentions are visited
// in canonical order: a mention starting at the token contributes an opening
// bracket before its cluster id, a mention ending at the token a closing
// bracket after it, and simultaneous mentions are separated by "|". A token
// covered by no mention yields "-".
func Label(sentence, token int, order []int, mentions map[int]*model.Mention) string {
	var parts []string
	for _, id := range order {
		m := mentions[id]
		if m.SentenceIndex != sentence || !m.Covers(token) {
			continue
		}
		part := strconv.Itoa(m.ClusterID)
		if token == m.Begin {
			part = "(" + part
		}
		if token+1 == m.End {
			part += ")"
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "|")
}

// Render produces the full CoNLL output: one tab-separated record per token
// with columns [document, sentence, 0, 0, 0, 0, token, label], sentences
// separated by a blank record.
func (r *Renderer) Render(doc *model.Document, order []int, mentions map[int]*model.Mention) string {
	var b strings.Builder

	if r.docTags {
		fmt.Fprintf(&b, "#begin document (%s); part 000\n", doc.Name)
	}
	for s, tokens := range doc.Sentences {
		for t, token := range tokens {
			label := Label(s, t, order, mentions)
			fmt.Fprintf(&b, "%s\t%d\t0\t0\t0\t0\t%s\t%s\n", doc.Name, s, token, label)
		}
		b.WriteString("\n")
	}
	if r.docTags {
		b.WriteString("#end document\n")
	}
	return b.String()
}

// WriteFile renders and writes the output atomically: the target appears
// complete or not at all.
func (r *Renderer) WriteFile(path string, doc *model.Document, order []int, mentions map[int]*model.Mention) error {
	out := r.Render(doc, order, mentions)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".coref-*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := tmp.WriteString(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}
