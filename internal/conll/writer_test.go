package conll

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clinstack/coref/internal/model"
)

func singleMention(id, sentence, begin, end, clusterID int, tokens ...string) (order []int, mentions map[int]*model.Mention) {
	m := &model.Mention{
		ID:            id,
		SentenceIndex: sentence,
		Begin:         begin,
		End:           end,
		Tokens:        tokens,
		Type:          model.MentionName,
		ClusterID:     clusterID,
	}
	return []int{id}, map[int]*model.Mention{id: m}
}

func TestLabel_CanonicalBrackets(t *testing.T) {
	// A stitched name spanning [0,2) in cluster 7 over "John Smith left .":
	// token 0 opens without closing, token 1 carries the closing bracket.
	order, mentions := singleMention(0, 0, 0, 2, 7, "John", "Smith")

	want := []string{"(7", "7)", "-", "-"}
	for token, expected := range want {
		got := Label(0, token, order, mentions)
		if got != expected {
			t.Errorf("token %d: label = %q, want %q", token, got, expected)
		}
	}
}

func TestLabel_SingleTokenMention(t *testing.T) {
	order, mentions := singleMention(0, 0, 1, 2, 3, "Anna")

	if got := Label(0, 1, order, mentions); got != "(3)" {
		t.Errorf("label = %q, want %q", got, "(3)")
	}
}

func TestLabel_SimultaneousMentions(t *testing.T) {
	inner := &model.Mention{ID: 0, SentenceIndex: 0, Begin: 0, End: 1, Tokens: []string{"Anna"}, Type: model.MentionName, ClusterID: 2}
	outer := &model.Mention{ID: 1, SentenceIndex: 0, Begin: 0, End: 2, Tokens: []string{"Anna", "Karenina"}, Type: model.MentionNP, ClusterID: 5}
	order := []int{0, 1} // canonical: shorter span first at equal begin
	mentions := map[int]*model.Mention{0: inner, 1: outer}

	if got := Label(0, 0, order, mentions); got != "(2)|(5" {
		t.Errorf("token 0 label = %q, want %q", got, "(2)|(5")
	}
	if got := Label(0, 1, order, mentions); got != "5)" {
		t.Errorf("token 1 label = %q, want %q", got, "5)")
	}
}

func TestLabel_OtherSentenceIgnored(t *testing.T) {
	order, mentions := singleMention(0, 1, 0, 1, 4, "hij")

	if got := Label(0, 0, order, mentions); got != "-" {
		t.Errorf("label = %q, want %q", got, "-")
	}
}

func TestRenderer_Render(t *testing.T) {
	doc := &model.Document{
		Name:      "WR77",
		Sentences: [][]string{{"John", "Smith", "left", "."}, {"He", "smiled", "."}},
	}
	order, mentions := singleMention(0, 0, 0, 2, 7, "John", "Smith")

	out := NewRenderer(false).Render(doc, order, mentions)
	lines := strings.Split(out, "\n")

	if lines[0] != "WR77\t0\t0\t0\t0\t0\tJohn\t(7" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "WR77\t0\t0\t0\t0\t0\tSmith\t7)" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[3] != "WR77\t0\t0\t0\t0\t0\t.\t-" {
		t.Errorf("line 3 = %q", lines[3])
	}
	// Blank record separates sentences.
	if lines[4] != "" {
		t.Errorf("Expected blank separator after sentence 0, got %q", lines[4])
	}
	if lines[5] != "WR77\t1\t0\t0\t0\t0\tHe\t-" {
		t.Errorf("line 5 = %q", lines[5])
	}
}

func TestRenderer_DocTags(t *testing.T) {
	doc := &model.Document{Name: "WR77", Sentences: [][]string{{"Hoi"}}}
	order, mentions := singleMention(0, 0, 0, 1, 0, "Hoi")

	out := NewRenderer(true).Render(doc, order, mentions)

	if !strings.HasPrefix(out, "#begin document (WR77); part 000\n") {
		t.Errorf("Expected begin marker, got %q", out)
	}
	if !strings.HasSuffix(out, "#end document\n") {
		t.Errorf("Expected end marker, got %q", out)
	}
}

func TestRenderer_WriteFile(t *testing.T) {
	doc := &model.Document{Name: "WR77", Sentences: [][]string{{"Hoi"}}}
	order, mentions := singleMention(0, 0, 0, 1, 0, "Hoi")

	dir := t.TempDir()
	path := filepath.Join(dir, "out.coref")

	if err := NewRenderer(false).WriteFile(path, doc, order, mentions); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != NewRenderer(false).Render(doc, order, mentions) {
		t.Error("Written file does not match rendered output")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the output file in dir, found %d entries", len(entries))
	}
}
