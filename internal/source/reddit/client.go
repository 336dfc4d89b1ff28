package reddit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/source"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	DefaultBaseURL  = "https://oauth.reddit.com"
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	DefaultLimit    = 100
)

type Config struct {
	BaseURL  string
	TokenURL string
	// ClientIDSecret is either "id:secret" or its base64 encoding.
	ClientIDSecret string
	Username       string
	Password       string
	Limit          int
}

type Option func(*Client)

// Client searches the social provider. A bearer token is exchanged on every
// FetchAll call and never cached.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   source.DefaultTimeout,
			Transport: &userAgentTransport{base: http.DefaultTransport},
		},
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

type listing struct {
	Data struct {
		Dist     int `json:"dist"`
		Children []struct {
			Data source.RedditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *Client) Source() domain.Source {
	return domain.SourceReddit
}

func (c *Client) FetchAll(ctx context.Context, query string) (*source.Batch, error) {
	tok, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(c.cfg.Limit)},
		"sort":  {"new"},
	}
	header := http.Header{}
	header.Set("Authorization", tok.Type()+" "+tok.AccessToken)

	var l listing
	if err := source.GetJSON(ctx, c.http, c.cfg.BaseURL+"/search?"+q.Encode(), header, &l); err != nil {
		return nil, apperr.NewUpstream(string(domain.SourceReddit), err)
	}

	items := make([]source.RawItem, 0, len(l.Data.Children))
	for i := range l.Data.Children {
		items = append(items, source.RawItem{Reddit: &l.Data.Children[i].Data})
	}

	slog.Info("Reddit fetch completed", "query", query, "items", len(items), "total_results", l.Data.Dist)
	return &source.Batch{Items: items, TotalResults: l.Data.Dist}, nil
}

// Token exchanges the configured credentials for a bearer token. A password
// grant is used when a username is configured, client credentials otherwise.
func (c *Client) Token(ctx context.Context) (*oauth2.Token, error) {
	id, secret, err := splitClientSecret(c.cfg.ClientIDSecret)
	if err != nil {
		return nil, apperr.NewAuth(string(domain.SourceReddit), err)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	var tok *oauth2.Token
	if c.cfg.Username != "" {
		cfg := oauth2.Config{
			ClientID:     id,
			ClientSecret: secret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  c.cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		}
		tok, err = cfg.PasswordCredentialsToken(ctx, c.cfg.Username, c.cfg.Password)
	} else {
		cfg := clientcredentials.Config{
			ClientID:     id,
			ClientSecret: secret,
			TokenURL:     c.cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		tok, err = cfg.Token(ctx)
	}
	if err != nil {
		slog.Error("Reddit token exchange failed", "error", err)
		return nil, apperr.NewAuth(string(domain.SourceReddit), err)
	}
	if tok.AccessToken == "" {
		return nil, apperr.NewAuth(string(domain.SourceReddit), errors.New("empty access token"))
	}
	return tok, nil
}

func splitClientSecret(s string) (string, string, error) {
	if id, secret, ok := strings.Cut(s, ":"); ok {
		return id, secret, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", "", fmt.Errorf("client id secret is neither id:secret nor base64: %w", err)
	}
	id, secret, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", errors.New("decoded client id secret has no ':' separator")
	}
	return id, secret, nil
}

type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", source.UserAgent)
	return t.base.RoundTrip(r)
}
