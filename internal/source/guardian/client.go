package guardian

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/source"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://content.guardianapis.com"
	DefaultPageSize = 200

	defaultConcurrency = 4
	defaultRate        = 5.0
	defaultBurst       = 5
)

type Config struct {
	BaseURL  string
	APIKey   string
	PageSize int
}

type Option func(*Client)

// Client fetches every page of a Guardian content search. Pages after the
// first are fetched concurrently and reassembled in page order.
type Client struct {
	base        string
	apiKey      string
	pageSize    int
	http        *http.Client
	limiter     *rate.Limiter
	concurrency int
}

func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		base:        cfg.BaseURL,
		apiKey:      cfg.APIKey,
		pageSize:    cfg.PageSize,
		http:        &http.Client{Timeout: source.DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(defaultRate), defaultBurst),
		concurrency: defaultConcurrency,
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
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

// WithRateLimit throttles page requests to rps requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

type searchEnvelope struct {
	Response struct {
		Status      string                  `json:"status"`
		Total       int                     `json:"total"`
		CurrentPage int                     `json:"currentPage"`
		Pages       int                     `json:"pages"`
		Results     []source.GuardianResult `json:"results"`
	} `json:"response"`
}

func (c *Client) Source() domain.Source {
	return domain.SourceGuardian
}

func (c *Client) FetchAll(ctx context.Context, query string) (*source.Batch, error) {
	start := time.Now()

	first, err := c.fetchPage(ctx, query, 1)
	if err != nil {
		return nil, apperr.NewUpstream(string(domain.SourceGuardian), fmt.Errorf("page 1: %w", err))
	}

	totalPages := first.Response.Pages
	pages := make([][]source.GuardianResult, max(totalPages, 1))
	pages[0] = first.Response.Results

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for page := 2; page <= totalPages; page++ {
		g.Go(func() error {
			env, err := c.fetchPage(gctx, query, page)
			if err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
			pages[page-1] = env.Response.Results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.NewUpstream(string(domain.SourceGuardian), err)
	}

	items := make([]source.RawItem, 0, first.Response.Total)
	for _, results := range pages {
		for i := range results {
			items = append(items, source.RawItem{Guardian: &results[i]})
		}
	}

	slog.Info("Guardian fetch completed",
		"query", query,
		"pages", totalPages,
		"items", len(items),
		"duration", time.Since(start),
	)

	return &source.Batch{Items: items, TotalResults: len(items)}, nil
}

func (c *Client) fetchPage(ctx context.Context, query string, page int) (*searchEnvelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{
		"q":           {query},
		"page-size":   {strconv.Itoa(c.pageSize)},
		"page":        {strconv.Itoa(page)},
		"show-fields": {"trailText,thumbnail"},
		"api-key":     {c.apiKey},
	}

	var env searchEnvelope
	if err := source.GetJSON(ctx, c.http, c.base+"/search?"+q.Encode(), nil, &env); err != nil {
		return nil, err
	}
	if env.Response.Status != "ok" {
		return nil, fmt.Errorf("unexpected response status: %q", env.Response.Status)
	}

	slog.Debug("Guardian page fetched", "page", page, "of", env.Response.Pages, "results", len(env.Response.Results))
	return &env, nil
}
