package enrich

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Lexicon maps lowercase words to polarity weights.
type Lexicon map[string]float64

type lexiconFile struct {
	Words map[string]float64 `yaml:"words"`
}

func ParseLexicon(data []byte) (Lexicon, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if len(f.Words) == 0 {
		return nil, fmt.Errorf("lexicon contains no words")
	}

	lex := make(Lexicon, len(f.Words))
	for w, weight := range f.Words {
		lex[strings.ToLower(w)] = weight
	}
	return lex, nil
}

// DefaultLexicon returns the embedded lexicon. It panics if the embedded
// file is malformed, which is a build defect.
func DefaultLexicon() Lexicon {
	lex, err := ParseLexicon(defaultLexiconYAML)
	if err != nil {
		panic(err)
	}
	return lex
}
