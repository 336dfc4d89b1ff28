package price

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/source"
)

const (
	DefaultBaseURL  = "https://api.coingecko.com/api/v3"
	DefaultCoin     = "bitcoin"
	DefaultCurrency = "usd"
	DefaultDays     = 30

	dateLayout = "2006-01-02"
)

type Config struct {
	BaseURL  string
	Coin     string
	Currency string
}

type Option func(*Client)

func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// Client proxies a daily price history from a CoinGecko compatible API.
type Client struct {
	base     string
	coin     string
	currency string
	http     *http.Client
}

func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		base:     cfg.BaseURL,
		coin:     cfg.Coin,
		currency: cfg.Currency,
		http:     &http.Client{Timeout: source.DefaultTimeout},
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.coin == "" {
		c.coin = DefaultCoin
	}
	if c.currency == "" {
		c.currency = DefaultCurrency
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// History returns one point per UTC day, oldest first. When the provider
// reports several samples for a day the latest one wins.
func (c *Client) History(ctx context.Context, days int) ([]domain.PricePoint, error) {
	if days <= 0 {
		days = DefaultDays
	}

	q := url.Values{
		"vs_currency": {c.currency},
		"days":        {strconv.Itoa(days)},
		"interval":    {"daily"},
	}
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.base, url.PathEscape(c.coin), q.Encode())

	var chart marketChart
	if err := source.GetJSON(ctx, c.http, endpoint, nil, &chart); err != nil {
		return nil, apperr.NewUpstream(apperr.ProviderPrice, err)
	}

	points := make([]domain.PricePoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		date := time.UnixMilli(int64(p[0])).UTC().Format(dateLayout)
		if n := len(points); n > 0 && points[n-1].Date == date {
			points[n-1].Price = p[1]
			continue
		}
		points = append(points, domain.PricePoint{Date: date, Price: p[1]})
	}
	return points, nil
}
