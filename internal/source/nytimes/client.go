package nytimes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/source"
)

const DefaultBaseURL = "https://api.nytimes.com"

type Config struct {
	BaseURL string
	APIKey  string
}

type Option func(*Client)

// Client performs a single-page article search. The provider's result cap
// is applied as-is.
type Client struct {
	base   string
	apiKey string
	http   *http.Client
}

func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		base:   cfg.BaseURL,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: source.DefaultTimeout},
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

type searchEnvelope struct {
	Status   string `json:"status"`
	Response *struct {
		Docs []source.NYTimesDoc `json:"docs"`
	} `json:"response"`
}

func (c *Client) Source() domain.Source {
	return domain.SourceNYTimes
}

func (c *Client) FetchAll(ctx context.Context, query string) (*source.Batch, error) {
	q := url.Values{
		"q":       {query},
		"api-key": {c.apiKey},
	}

	var env searchEnvelope
	endpoint := c.base + "/svc/search/v2/articlesearch.json?" + q.Encode()
	if err := source.GetJSON(ctx, c.http, endpoint, nil, &env); err != nil {
		return nil, apperr.NewUpstream(string(domain.SourceNYTimes), err)
	}
	if env.Response == nil {
		return nil, apperr.NewUpstream(string(domain.SourceNYTimes), fmt.Errorf("missing response envelope"))
	}

	docs := env.Response.Docs
	items := make([]source.RawItem, 0, len(docs))
	for i := range docs {
		items = append(items, source.RawItem{NYTimes: &docs[i]})
	}

	slog.Info("NYTimes fetch completed", "query", query, "items", len(items))
	return &source.Batch{Items: items, TotalResults: len(items)}, nil
}
