// SPDX-License-Identifier: Apache-2.0

package corpus

// TokenTable maps 1-based token ids to restored surface strings for one
// document. Only genuine single-token rows receive ids.
type TokenTable struct {
	tokens []string
}

func NewTokenTable() *TokenTable {
	return &TokenTable{}
}

// Append stores the next token and returns its id.
func (t *TokenTable) Append(token string) int {
	t.tokens = append(t.tokens, token)
	return len(t.tokens)
}

func (t *TokenTable) Lookup(id int) (string, bool) {
	if id < 1 || id > len(t.tokens) {
		return "", false
	}
	return t.tokens[id-1], true
}

func (t *TokenTable) Len() int {
	return len(t.tokens)
}

// Session is the state shared by the files of one restore run: the harvested
// documents (read only), the token streams rebuilt from dependency files, and
// the token tables consulted by relation files.
type Session struct {
	docs    map[string]Document
	streams map[string][]rune
	tables  map[string]*TokenTable
}

func NewSession(docs map[string]Document) *Session {
	return &Session{
		docs:    docs,
		streams: make(map[string][]rune),
		tables:  make(map[string]*TokenTable),
	}
}

// Document returns the harvested text for id.
func (s *Session) Document(id string) (Document, bool) {
	d, ok := s.docs[id]
	return d, ok
}

// Source returns the characters a file restores document id against.
// Tokenization layers read the token stream rebuilt from the dependency layer
// when one exists, and the harvested text otherwise.
func (s *Session) Source(id string, fromStream bool) ([]rune, bool) {
	if fromStream {
		if stream, ok := s.streams[id]; ok {
			return stream, true
		}
	}
	d, ok := s.docs[id]
	if !ok {
		return nil, false
	}
	return d.Chars, true
}

// Commit records the outcome of a fully validated document. The first file to
// cover a document owns its token table; dependency files run first.
func (s *Session) Commit(id, parse string, table *TokenTable, fromStream bool) {
	if !fromStream && parse != "" {
		s.streams[id] = []rune(parse)
	}
	if _, ok := s.tables[id]; !ok && table != nil {
		s.tables[id] = table
	}
}

// Table returns the token table for id, if a primary file has populated it.
func (s *Session) Table(id string) (*TokenTable, bool) {
	t, ok := s.tables[id]
	return t, ok
}
