package model

// Document holds the tokenized sentences of one input document. It is
// read-only after construction: the resolver only reads tokens for span
// validation and final rendering.
type Document struct {
	Name      string
	Sentences [][]string // sentence index -> surface tokens
}

// NumSentences returns the number of sentences in the document.
func (d *Document) NumSentences() int {
	return len(d.Sentences)
}

// Tokens returns the token sequence of the given sentence, or nil when the
// sentence index is out of range.
func (d *Document) Tokens(sentence int) []string {
	if sentence < 0 || sentence >= len(d.Sentences) {
		return nil
	}
	return d.Sentences[sentence]
}
