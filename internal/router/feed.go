package router

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/internal/enrich"
	"github.com/DjordjeVuckovic/crypto-board/internal/ingest"
	"github.com/DjordjeVuckovic/crypto-board/internal/price"
	"github.com/labstack/echo/v4"
)

const maxHistoryDays = 365

type FeedReader interface {
	Articles(ctx context.Context) ([]domain.FeedArticle, error)
	Trending(ctx context.Context) ([]domain.KeywordCount, error)
}

type PriceHistory interface {
	History(ctx context.Context, days int) ([]domain.PricePoint, error)
}

// SocialFeedResponse is returned by the social ingestion route.
type SocialFeedResponse struct {
	TotalResults int                  `json:"totalResults"`
	Articles     []domain.FeedArticle `json:"articles"`
}

type FeedRouter struct {
	e        *echo.Echo
	runners  map[domain.Source]ingest.Runner
	enricher *enrich.Enricher
	feed     FeedReader
	prices   PriceHistory
}

type FeedRouterOption func(*FeedRouter)

// WithPriceHistory enables the /crypto-growth routes.
func WithPriceHistory(p PriceHistory) FeedRouterOption {
	return func(r *FeedRouter) {
		r.prices = p
	}
}

func NewFeedRouter(e *echo.Echo, feed FeedReader, enricher *enrich.Enricher, runners []ingest.Runner, opts ...FeedRouterOption) *FeedRouter {
	r := &FeedRouter{
		e:        e,
		runners:  make(map[domain.Source]ingest.Runner, len(runners)),
		enricher: enricher,
		feed:     feed,
	}
	for _, run := range runners {
		r.runners[run.Source()] = run
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *FeedRouter) Bind() {
	for src := range r.runners {
		r.e.GET("/"+string(src), r.ingestHandler(src))
	}
	r.e.GET("/articles", r.articlesHandler)
	r.e.GET("/trending", r.trendingHandler)
	if r.prices != nil {
		r.e.GET("/crypto-growth", r.priceHistoryHandler)
		r.e.GET("/crypto-growth/trend", r.priceTrendHandler)
	}
}

// ingestHandler godoc
// @Summary Ingest a source
// @Description Runs a fresh ingestion cycle for the source and returns the full updated collection. The social source responds with {totalResults, articles}.
// @Tags ingest
// @Produce json
// @Param q query string false "Search query overriding the configured default"
// @Success 200 {array} domain.FeedArticle
// @Failure 400 {object} apperr.ErrorBody
// @Failure 500 {object} apperr.ErrorBody
// @Router /guardian [get]
// @Router /nytimes [get]
// @Router /reddit [get]
func (r *FeedRouter) ingestHandler(src domain.Source) echo.HandlerFunc {
	run := r.runners[src]
	return func(c echo.Context) error {
		query, err := parseQuery(c)
		if err != nil {
			return err
		}

		res, err := run.Run(c.Request().Context(), query)
		if err != nil {
			return err
		}

		articles := r.enricher.Enrich(res.Articles)
		if src == domain.SourceReddit {
			return c.JSON(http.StatusOK, SocialFeedResponse{
				TotalResults: res.TotalResults,
				Articles:     articles,
			})
		}
		return c.JSON(http.StatusOK, articles)
	}
}

// articlesHandler godoc
// @Summary Unified feed
// @Description Returns every stored article across sources with a sentiment score. Served from cache.
// @Tags feed
// @Produce json
// @Success 200 {array} domain.FeedArticle
// @Failure 500 {object} apperr.ErrorBody
// @Router /articles [get]
func (r *FeedRouter) articlesHandler(c echo.Context) error {
	articles, err := r.feed.Articles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

// trendingHandler godoc
// @Summary Trending keywords
// @Description Returns the most frequent keywords over the unified feed, most frequent first. Served from cache.
// @Tags feed
// @Produce json
// @Success 200 {array} domain.KeywordCount
// @Failure 500 {object} apperr.ErrorBody
// @Router /trending [get]
func (r *FeedRouter) trendingHandler(c echo.Context) error {
	trending, err := r.feed.Trending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trending)
}

// priceHistoryHandler godoc
// @Summary Price history
// @Tags price
// @Produce json
// @Param days query int false "Number of days" default(30)
// @Success 200 {array} domain.PricePoint
// @Failure 400 {object} apperr.ErrorBody
// @Failure 500 {object} apperr.ErrorBody
// @Router /crypto-growth [get]
func (r *FeedRouter) priceHistoryHandler(c echo.Context) error {
	days, err := intParam(c, "days", price.DefaultDays, 1, maxHistoryDays)
	if err != nil {
		return err
	}

	points, err := r.prices.History(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, points)
}

// priceTrendHandler godoc
// @Summary Price trend projection
// @Description Fits a least squares line over the price history and projects it forward.
// @Tags price
// @Produce json
// @Param days query int false "Number of days of history" default(30)
// @Param horizon query int false "Days to project" default(7)
// @Success 200 {object} domain.PriceTrend
// @Failure 400 {object} apperr.ErrorBody
// @Failure 500 {object} apperr.ErrorBody
// @Router /crypto-growth/trend [get]
func (r *FeedRouter) priceTrendHandler(c echo.Context) error {
	days, err := intParam(c, "days", price.DefaultDays, 1, maxHistoryDays)
	if err != nil {
		return err
	}
	horizon, err := intParam(c, "horizon", price.DefaultHorizon, 0, maxHistoryDays)
	if err != nil {
		return err
	}

	points, err := r.prices.History(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, price.Project(points, horizon))
}

// parseQuery returns the optional q parameter. Present but blank is rejected.
func parseQuery(c echo.Context) (string, error) {
	if !c.QueryParams().Has("q") {
		return "", nil
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return "", apperr.NewValidation("query parameter q must not be blank")
	}
	return q, nil
}

func intParam(c echo.Context, name string, def, lo, hi int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.NewValidationWrap("query parameter "+name+" must be a number", err)
	}
	if v < lo || v > hi {
		return 0, apperr.NewValidation("query parameter " + name + " must be between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi))
	}
	return v, nil
}
