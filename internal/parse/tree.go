// Package parse models Alpino dependency trees and loads them from
// per-sentence XML files.
package parse

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/net/html/charset"
)

// ErrMalformedNode is returned when a node used by an extraction rule lacks
// a required span attribute.
var ErrMalformedNode = errors.New("node is missing span attributes")

// Tree is one sentence's syntactic parse.
type Tree struct {
	Sentence int // sentence index within the document
	Root     *Node
}

// Node is one constituent in an Alpino tree. Attributes are kept as raw
// strings; typed access goes through the accessor methods so extraction
// rules never see an attribute bag.
type Node struct {
	Cat      string  `xml:"cat,attr"`
	Lcat     string  `xml:"lcat,attr"`
	Ntype    string  `xml:"ntype,attr"`
	Pos      string  `xml:"pos,attr"`
	Pdtype   string  `xml:"pdtype,attr"`
	Frame    string  `xml:"frame,attr"`
	BeginRaw string  `xml:"begin,attr"`
	EndRaw   string  `xml:"end,attr"`
	WordRaw  string  `xml:"word,attr"`
	Children []*Node `xml:"node"`
}

// Span returns the node's half-open token span. A missing or unparsable
// begin/end attribute is a malformed-node error.
func (n *Node) Span() (begin, end int, err error) {
	if n.BeginRaw == "" || n.EndRaw == "" {
		return 0, 0, ErrMalformedNode
	}
	begin, err = strconv.Atoi(n.BeginRaw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: begin=%q", ErrMalformedNode, n.BeginRaw)
	}
	end, err = strconv.Atoi(n.EndRaw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: end=%q", ErrMalformedNode, n.EndRaw)
	}
	return begin, end, nil
}

// Word returns the node's surface word. Only leaves carry one.
func (n *Node) Word() (string, bool) {
	return n.WordRaw, n.WordRaw != ""
}

// Walk visits the node and every descendant in pre-order, passing each
// node's parent (nil for the receiver).
func (n *Node) Walk(visit func(parent, node *Node)) {
	var walk func(parent, node *Node)
	walk = func(parent, node *Node) {
		visit(parent, node)
		for _, child := range node.Children {
			walk(node, child)
		}
	}
	walk(nil, n)
}

// Leaves collects every descendant leaf carrying a surface word, ordered by
// token offset. Child order in the XML follows dependency structure, not
// surface order, so leaves are sorted by their begin attribute.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(_, node *Node) {
		if _, ok := node.Word(); ok {
			leaves = append(leaves, node)
		}
	})
	sort.SliceStable(leaves, func(i, j int) bool {
		bi, _, erri := leaves[i].Span()
		bj, _, errj := leaves[j].Span()
		if erri != nil || errj != nil {
			return erri == nil
		}
		return bi < bj
	})
	return leaves
}

// Words returns the node's surface tokens in document order.
func (n *Node) Words() []string {
	leaves := n.Leaves()
	words := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		word, _ := leaf.Word()
		words = append(words, word)
	}
	return words
}

// treeFile matches the alpino_ds document root.
type treeFile struct {
	XMLName xml.Name `xml:"alpino_ds"`
	Node    *Node    `xml:"node"`
}

// sentenceComment matches the embedded sentence-number comment that keys a
// parse file to its sentence, e.g. <!-- sentence 12 -->.
var sentenceComment = regexp.MustCompile(`(?is)<!--.*?sentence\s+(\d+).*?-->`)

// ParseTree decodes one Alpino XML parse file. The sentence number is taken
// from the embedded comment when present; otherwise it stays -1 and the
// loader falls back to the file name.
func ParseTree(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read parse file: %w", err)
	}

	sentence := -1
	if m := sentenceComment.FindSubmatch(data); m != nil {
		if n, err := strconv.Atoi(string(m[1])); err == nil {
			sentence = n
		}
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var doc treeFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode parse file: %w", err)
	}
	if doc.Node == nil {
		return nil, fmt.Errorf("parse file has no root node")
	}

	return &Tree{Sentence: sentence, Root: doc.Node}, nil
}
