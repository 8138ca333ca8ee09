// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinels used in distributed files. They only appear at the file boundary;
// everything else works with Lemma values.
const (
	identicalSentinel = "_"
	lowercaseSentinel = "*LOWER*"
	GapMarker         = "<*>"
)

// LemmaKind tags how a lemma column relates to its token.
type LemmaKind int

const (
	// LemmaVerbatim keeps the lemma text as written.
	LemmaVerbatim LemmaKind = iota
	// LemmaIdentical means the lemma equals the token.
	LemmaIdentical
	// LemmaLowercase means the lemma is the lowercased token.
	LemmaLowercase
)

type Lemma struct {
	Kind LemmaKind
	Text string
}

// EncodeLemma chooses the most compact representation of lemma relative to
// token for a redacted file.
func EncodeLemma(token, lemma string) Lemma {
	switch {
	case lemma == token:
		return Lemma{Kind: LemmaIdentical}
	case lower(token) == lemma:
		return Lemma{Kind: LemmaLowercase}
	default:
		return Lemma{Kind: LemmaVerbatim, Text: lemma}
	}
}

// ParseLemma reads a lemma column from a redacted file.
func ParseLemma(field string) Lemma {
	switch field {
	case identicalSentinel:
		return Lemma{Kind: LemmaIdentical}
	case lowercaseSentinel:
		return Lemma{Kind: LemmaLowercase}
	default:
		return Lemma{Kind: LemmaVerbatim, Text: field}
	}
}

// String serializes the lemma back to its column form.
func (l Lemma) String() string {
	switch l.Kind {
	case LemmaIdentical:
		return identicalSentinel
	case LemmaLowercase:
		return lowercaseSentinel
	default:
		return l.Text
	}
}

// Resolve returns the lemma text given the restored token.
func (l Lemma) Resolve(token string) string {
	switch l.Kind {
	case LemmaIdentical:
		return token
	case LemmaLowercase:
		return lower(token)
	default:
		return l.Text
	}
}

// lower applies full Unicode lowercasing, so "İ" becomes "i" plus a combining
// dot above rather than a bare "i".
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
