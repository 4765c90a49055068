package parse

import (
	"errors"
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<alpino_ds version="1.3">
  <!-- sentence 12 -->
  <node cat="top" begin="0" end="3">
    <node cat="np" begin="0" end="2">
      <node pos="noun" begin="1" end="2" word="hond"/>
      <node pos="det" pdtype="det" begin="0" end="1" word="de"/>
    </node>
    <node pos="verb" begin="2" end="3" word="blaft"/>
  </node>
</alpino_ds>`

func TestParseTree_Basic(t *testing.T) {
	tree, err := ParseTree(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}

	if tree.Sentence != 12 {
		t.Errorf("Sentence = %d, want 12 (from embedded comment)", tree.Sentence)
	}
	if tree.Root.Cat != "top" {
		t.Errorf("Root cat = %q, want %q", tree.Root.Cat, "top")
	}
	begin, end, err := tree.Root.Span()
	if err != nil {
		t.Fatalf("Span failed: %v", err)
	}
	if begin != 0 || end != 3 {
		t.Errorf("Root span = [%d,%d), want [0,3)", begin, end)
	}
}

func TestParseTree_LeavesInDocumentOrder(t *testing.T) {
	// The np node lists its noun child before its determiner; leaves must
	// still come back in surface order.
	tree, err := ParseTree(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}

	words := tree.Root.Words()
	want := []string{"de", "hond", "blaft"}
	if len(words) != len(want) {
		t.Fatalf("Words = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestParseTree_NoSentenceComment(t *testing.T) {
	xml := `<alpino_ds><node cat="top" begin="0" end="1"><node pos="noun" begin="0" end="1" word="x"/></node></alpino_ds>`

	tree, err := ParseTree(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}
	if tree.Sentence != -1 {
		t.Errorf("Sentence = %d, want -1 without a comment", tree.Sentence)
	}
}

func TestParseTree_NoRootNode(t *testing.T) {
	if _, err := ParseTree(strings.NewReader(`<alpino_ds></alpino_ds>`)); err == nil {
		t.Error("Expected error for parse file without root node")
	}
}

func TestNode_SpanMissing(t *testing.T) {
	n := &Node{Cat: "np"}
	if _, _, err := n.Span(); !errors.Is(err, ErrMalformedNode) {
		t.Errorf("Expected ErrMalformedNode, got %v", err)
	}
}

func TestNode_SpanUnparsable(t *testing.T) {
	n := &Node{BeginRaw: "zero", EndRaw: "1"}
	if _, _, err := n.Span(); !errors.Is(err, ErrMalformedNode) {
		t.Errorf("Expected ErrMalformedNode, got %v", err)
	}
}

func TestNode_WordOnlyOnLeaves(t *testing.T) {
	tree, err := ParseTree(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.Root.Word(); ok {
		t.Error("Expected no word on a constituent node")
	}
	leaves := tree.Root.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("Expected 3 leaves, got %d", len(leaves))
	}
	if word, ok := leaves[0].Word(); !ok || word != "de" {
		t.Errorf("First leaf word = %q, want %q", word, "de")
	}
}
