package model

import "strings"

// MentionType tags the syntactic pattern that produced a mention
type MentionType string

const (
	MentionNP      MentionType = "np"      // noun phrase constituent
	MentionNP2     MentionType = "np2"     // common noun with noun-phrase lexical category
	MentionDetN    MentionType = "detn"    // determiner + noun pair
	MentionMWU     MentionType = "mwu"     // multi-word unit
	MentionDU      MentionType = "du"      // discourse unit
	MentionPronoun MentionType = "pronoun" // pronoun or pronominal determiner
	MentionName    MentionType = "name"    // proper name (possibly stitched from fragments)
)

// Mention is a candidate reference to an entity: a token span inside one
// sentence. IDs are assigned in extraction order and stay stable for the
// lifetime of the mention. Begin/End/Tokens are only mutated by name
// stitching before clustering starts.
type Mention struct {
	ID            int
	SentenceIndex int
	Begin         int // token offset, inclusive
	End           int // token offset, exclusive
	Tokens        []string
	Type          MentionType
	ClusterID     int
}

// Covers reports whether the mention span contains the given token offset.
func (m *Mention) Covers(token int) bool {
	return token >= m.Begin && token < m.End
}

// Text renders the mention's surface string.
func (m *Mention) Text() string {
	return strings.Join(m.Tokens, " ")
}

// Head returns the mention's head token (the final token of the span).
func (m *Mention) Head() string {
	if len(m.Tokens) == 0 {
		return ""
	}
	return m.Tokens[len(m.Tokens)-1]
}
