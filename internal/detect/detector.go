// Package detect derives the canonical mention set from per-sentence parse
// trees: rule-based candidate extraction, name stitching, duplicate removal
// and canonical ordering.
package detect

import (
	"fmt"
	"strings"

	"github.com/clinstack/coref/internal/model"
	"github.com/clinstack/coref/internal/parse"
)

// Alpino attribute values the extraction rules key on.
const (
	catNP        = "np"
	catMWU       = "mwu"
	catDU        = "du"
	ntypeCommon  = "soort"
	posNoun      = "noun"
	posName      = "name"
	posAdverb    = "adv"
	posDet       = "det"
	pdtypePron   = "pron"
	pdtypeDet    = "det"
	framePronDet = "determiner(pron"
)

// detPlaceholder fills the widened first slot of a determiner+noun mention
// when the determiner's surface word is not available.
const detPlaceholder = "_det_"

// Result is the canonical, deduplicated mention set of one document.
type Result struct {
	Order    []int // canonical traversal order for every sieve
	Mentions map[int]*model.Mention
}

// Detector turns parse trees into mentions. Malformed nodes are reported
// through warn and skipped; the run continues.
type Detector struct {
	warn func(format string, args ...interface{})
}

// NewDetector creates a detector. A nil warn discards malformed-node reports.
func NewDetector(warn func(format string, args ...interface{})) *Detector {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &Detector{warn: warn}
}

// rule is one declarative extraction pattern: a predicate over a node (with
// its parent for context) plus a builder producing the candidate mention.
type rule struct {
	name  string
	match func(parent, n *parse.Node) bool
	build func(d *Detector, parent, n *parse.Node, id, sentence int) (*model.Mention, error)
}

// rules run in order per sentence; the order decides which duplicate
// survives when two rules derive the same span.
var rules = []rule{
	{
		name: "np",
		match: func(_, n *parse.Node) bool {
			return n.Cat == catNP
		},
		build: buildNP,
	},
	{
		name: "np2",
		match: func(_, n *parse.Node) bool {
			return n.Lcat == catNP && n.Ntype == ntypeCommon
		},
		build: buildPlain(model.MentionNP2),
	},
	{
		name: "detn",
		match: func(parent, n *parse.Node) bool {
			return n.Pos == posNoun && hasDeterminerSibling(parent, n)
		},
		build: buildDetN,
	},
	{
		name: "mwu",
		match: func(_, n *parse.Node) bool {
			return n.Cat == catMWU
		},
		build: buildPlain(model.MentionMWU),
	},
	{
		name: "du",
		match: func(_, n *parse.Node) bool {
			return n.Cat == catDU
		},
		build: buildPlain(model.MentionDU),
	},
	{
		name: "pronoun",
		match: func(_, n *parse.Node) bool {
			return n.Pdtype == pdtypePron || strings.HasPrefix(n.Frame, framePronDet)
		},
		build: buildPlain(model.MentionPronoun),
	},
	{
		name: "name",
		match: func(_, n *parse.Node) bool {
			return n.Pos == posName
		},
		build: buildPlain(model.MentionName),
	},
}

// Detect extracts mentions from the trees of sentences 0..numSentences-1,
// stitches split names, removes duplicate spans and fixes the canonical
// order. A sentence without a tree is a data-integrity error.
func (d *Detector) Detect(trees map[int]*parse.Tree, numSentences int) (*Result, error) {
	var all []*model.Mention
	nextID := 0

	for s := 0; s < numSentences; s++ {
		tree, ok := trees[s]
		if !ok {
			return nil, fmt.Errorf("%w: sentence %d", parse.ErrMissingParseFile, s)
		}
		d.detectSentence(s, tree, &all, &nextID)
	}

	all = stitchNames(all)
	all = dedupe(all)

	mentions := make(map[int]*model.Mention, len(all))
	for _, m := range all {
		mentions[m.ID] = m
	}
	return &Result{
		Order:    canonicalOrder(all),
		Mentions: mentions,
	}, nil
}

// detectSentence runs every rule pass over one sentence tree, unioning the
// candidates in rule order.
func (d *Detector) detectSentence(sentence int, tree *parse.Tree, out *[]*model.Mention, nextID *int) {
	for _, r := range rules {
		tree.Root.Walk(func(parent, n *parse.Node) {
			if !r.match(parent, n) {
				return
			}
			m, err := r.build(d, parent, n, *nextID, sentence)
			if err != nil {
				d.warn("sentence %d: skipping %s candidate: %v", sentence, r.name, err)
				return
			}
			*nextID++
			*out = append(*out, m)
		})
	}
}

// buildPlain builds a mention straight from the node's own span and leaves.
func buildPlain(t model.MentionType) func(*Detector, *parse.Node, *parse.Node, int, int) (*model.Mention, error) {
	return func(_ *Detector, _, n *parse.Node, id, sentence int) (*model.Mention, error) {
		begin, end, err := n.Span()
		if err != nil {
			return nil, err
		}
		return &model.Mention{
			ID:            id,
			SentenceIndex: sentence,
			Begin:         begin,
			End:           end,
			Tokens:        n.Words(),
			Type:          t,
		}, nil
	}
}

// buildNP builds a noun-phrase mention, trimming an adverb that occupies the
// phrase's first token slot: adverb-initial NPs are taken as non-referential.
func buildNP(_ *Detector, _, n *parse.Node, id, sentence int) (*model.Mention, error) {
	begin, end, err := n.Span()
	if err != nil {
		return nil, err
	}
	tokens := n.Words()

	if leading := firstLeafAt(n, begin); leading != nil && leading.Pos == posAdverb && len(tokens) > 0 {
		begin++
		tokens = tokens[1:]
	}
	return &model.Mention{
		ID:            id,
		SentenceIndex: sentence,
		Begin:         begin,
		End:           end,
		Tokens:        tokens,
		Type:          model.MentionNP,
	}, nil
}

// buildDetN builds a determiner+noun mention: the noun's span widened one
// token to the left, with the determiner slot filled by its surface word
// when available and a placeholder otherwise.
func buildDetN(_ *Detector, parent, n *parse.Node, id, sentence int) (*model.Mention, error) {
	begin, end, err := n.Span()
	if err != nil {
		return nil, err
	}
	det := detPlaceholder
	if sib := determinerSibling(parent, n); sib != nil {
		if word, ok := sib.Word(); ok {
			det = word
		}
	}
	tokens := append([]string{det}, n.Words()...)
	return &model.Mention{
		ID:            id,
		SentenceIndex: sentence,
		Begin:         begin - 1,
		End:           end,
		Tokens:        tokens,
		Type:          model.MentionDetN,
	}, nil
}

// hasDeterminerSibling reports whether n has a determiner sibling under the
// same parent.
func hasDeterminerSibling(parent, n *parse.Node) bool {
	return determinerSibling(parent, n) != nil
}

func determinerSibling(parent, n *parse.Node) *parse.Node {
	if parent == nil {
		return nil
	}
	for _, child := range parent.Children {
		if child == n {
			continue
		}
		if child.Pdtype == pdtypeDet || child.Pos == posDet {
			return child
		}
	}
	return nil
}

// firstLeafAt returns the leaf occupying the given token offset, if any.
func firstLeafAt(n *parse.Node, offset int) *parse.Node {
	for _, leaf := range n.Leaves() {
		begin, _, err := leaf.Span()
		if err != nil {
			continue
		}
		if begin == offset {
			return leaf
		}
	}
	return nil
}
