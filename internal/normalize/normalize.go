// Package normalize provides the shared text normalization used by catalog
// indexing and manifest matching: Unicode folding, name normalization,
// tokenization, key-term derivation, and vendor token extraction.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopwords are tokens that carry no matching signal on their own.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "and": {},
	"with": {}, "for": {}, "in": {}, "by": {}, "to": {},
	"from": {}, "pack": {}, "each": {}, "per": {},
}

// vocabulary holds short tokens that are still meaningful product-type or
// strain markers and survive the minimum-length filter.
var vocabulary = map[string]struct{}{
	"og": {}, "gsc": {}, "gdp": {}, "gg4": {},
	"cbd": {}, "thc": {}, "cbn": {}, "cbg": {},
	"1g": {}, "2g": {}, "3.5g": {}, "7g": {}, "14g": {}, "28g": {},
	"oz": {}, "ml": {}, "mg": {},
	"wax": {}, "ice": {},
}

// minTokenLength is the shortest token indexed as a key term unless it
// appears in the known vocabulary.
const minTokenLength = 4

// accentStripper removes combining marks after NFD decomposition.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases, trims, and strips accents so names with decorated
// characters index and compare deterministically.
func Fold(s string) string {
	folded, _, err := transform.String(accentStripper, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Name normalizes a product name for exact-name and substring comparison.
func Name(s string) string {
	return Fold(s)
}

// Tokenize splits a normalized string into tokens on whitespace and
// common punctuation, dropping empties.
func Tokenize(s string) []string {
	normalized := Fold(s)
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', '/', '|', '_':
			return true
		}
		return false
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-()[]{}*+\"'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// KeyTerms derives the set of index-worthy terms from a name: stop-words are
// dropped, and short tokens are dropped unless they are known product-type or
// strain vocabulary.
func KeyTerms(s string) []string {
	tokens := Tokenize(s)
	terms := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))

	for _, tok := range tokens {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if len(tok) < minTokenLength {
			if _, known := vocabulary[tok]; !known {
				continue
			}
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

// TokenSet returns the tokens of s as a set for overlap computations.
func TokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// Vendor derives a normalized vendor token from heterogeneous name, vendor,
// and brand fields, in priority order:
//  1. explicit vendor field
//  2. explicit brand field
//  3. the "<name> by <vendor>" pattern
//  4. the "<name> (<vendor>)" pattern
//
// An empty result means the vendor is unknown, which disables vendor-based
// filtering for that item.
func Vendor(name, vendor, brand string) string {
	if v := Fold(vendor); v != "" {
		return v
	}
	if b := Fold(brand); b != "" {
		return b
	}

	n := Fold(name)
	if n == "" {
		return ""
	}

	// "<name> by <vendor>": everything after the first " by ", first two tokens.
	if idx := strings.Index(n, " by "); idx >= 0 {
		return firstTokens(n[idx+len(" by "):], 2)
	}

	// "<name> (<vendor>)": parenthesized content, first two tokens.
	if open := strings.Index(n, "("); open >= 0 {
		if close := strings.Index(n[open:], ")"); close > 0 {
			return firstTokens(n[open+1:open+close], 2)
		}
	}

	return ""
}

// firstTokens returns up to n leading whitespace-separated tokens of s,
// joined by single spaces.
func firstTokens(s string, n int) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
