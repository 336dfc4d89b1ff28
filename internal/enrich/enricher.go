package enrich

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/token"
)

// DefaultTrendingLimit is the number of keywords returned by ComputeTrending
// when no positive limit is given.
const DefaultTrendingLimit = 20

// minKeywordLen counts runes, not bytes.
const minKeywordLen = 4

var stopWords = map[string]struct{}{
	"the": {},
	"is":  {},
	"in":  {},
	"and": {},
	"of":  {},
	"to":  {},
	"a":   {},
}

// Enricher computes derived signals over stored articles. It holds no
// mutable state and is safe for concurrent use.
type Enricher struct {
	lexicon   Lexicon
	tokenizer token.Tokenizer
}

type Option func(*Enricher)

func WithLexicon(lex Lexicon) Option {
	return func(e *Enricher) {
		e.lexicon = lex
	}
}

func WithTokenizer(t token.Tokenizer) Option {
	return func(e *Enricher) {
		e.tokenizer = t
	}
}

func New(opts ...Option) *Enricher {
	e := &Enricher{}
	for _, opt := range opts {
		opt(e)
	}
	if e.lexicon == nil {
		e.lexicon = DefaultLexicon()
	}
	if e.tokenizer == nil {
		e.tokenizer = token.NewWordTokenizer()
	}
	return e
}

// ScoreSentiment sums the weights of every lexicon word in text. Unknown
// words contribute 0.
func (e *Enricher) ScoreSentiment(text string) float64 {
	var score float64
	for _, tok := range e.tokenizer.Tokenize(text) {
		score += e.lexicon[tok]
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// ExtractKeywords returns candidate keywords in order of appearance.
// Duplicates are kept.
func (e *Enricher) ExtractKeywords(text string) []string {
	var out []string
	for _, tok := range e.tokenizer.Tokenize(text) {
		if utf8.RuneCountInString(tok) < minKeywordLen {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ComputeTrending tallies keywords over title and description of every
// article and returns the most frequent ones. Ties keep first-seen order.
func (e *Enricher) ComputeTrending(articles []domain.Article, limit int) []domain.KeywordCount {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	counts := make(map[string]int)
	var order []string
	for _, a := range articles {
		for _, kw := range e.ExtractKeywords(articleText(a)) {
			if _, seen := counts[kw]; !seen {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}

	out := make([]domain.KeywordCount, 0, len(order))
	for _, kw := range order {
		out = append(out, domain.KeywordCount{Keyword: kw, Count: counts[kw]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Enrich scores every article. The order of the input is preserved.
func (e *Enricher) Enrich(articles []domain.Article) []domain.FeedArticle {
	out := make([]domain.FeedArticle, 0, len(articles))
	for _, a := range articles {
		out = append(out, domain.NewFeedArticle(a, e.ScoreSentiment(articleText(a))))
	}
	return out
}

func articleText(a domain.Article) string {
	return a.Title + " " + a.Description
}
