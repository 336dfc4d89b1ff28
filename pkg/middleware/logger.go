package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type loggerConfig struct {
	logger  *slog.Logger
	skipper middleware.Skipper
}

type LoggerOpts func(*loggerConfig)

// WithSkipper excludes matching requests from the access log.
func WithSkipper(skipper middleware.Skipper) LoggerOpts {
	return func(cfg *loggerConfig) {
		cfg.skipper = skipper
	}
}

func WithLogger(l *slog.Logger) LoggerOpts {
	return func(cfg *loggerConfig) {
		cfg.logger = l
	}
}

// Logger writes one access log line per request. 5xx responses and handler
// errors are logged at error level, 4xx at warn.
func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	cfg := loggerConfig{skipper: middleware.DefaultSkipper}
	for _, opt := range opts {
		opt(&cfg)
	}

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:     cfg.skipper,
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := cfg.logger
			if l == nil {
				l = slog.Default()
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
			}

			l.LogAttrs(context.Background(), levelFor(v), "REQUEST", attrs...)
			return nil
		},
	})
}

func levelFor(v middleware.RequestLoggerValues) slog.Level {
	switch {
	case v.Error != nil || v.Status >= 500:
		return slog.LevelError
	case v.Status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
