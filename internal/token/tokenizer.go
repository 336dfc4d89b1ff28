package token

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into lowercase word tokens.
type Tokenizer interface {
	Tokenize(input string) []string
}

type WordTokenizer struct{}

func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{}
}

// Tokenize lowercases the input and returns every maximal run of word
// characters. Everything else acts as a separator.
// Example: Input: `Bitcoin's rally, again!` Output: [bitcoin s rally again]
func (t *WordTokenizer) Tokenize(input string) []string {
	return strings.FieldsFunc(strings.ToLower(input), func(ch rune) bool {
		return !isWordChar(ch)
	})
}

func isWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
