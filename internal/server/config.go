package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/crypto-board/pkg/config/env"
	"github.com/DjordjeVuckovic/crypto-board/pkg/stringsutil"
)

const (
	DefaultPort = "8082"

	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 60 * time.Second
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string

	// WriteTimeout bounds a whole ingestion round trip, which includes the
	// provider fan-out.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// LoadConfig reads PORT, USE_HTTP2, CORS_ORIGINS and the HTTP_*_TIMEOUT
// settings. Loading a .env file is the caller's job.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:     env.String("PORT", DefaultPort),
		UseHttp2: env.String("USE_HTTP2", "false") == "true",
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	cfg.CorsOrigins = stringsutil.SplitTrim(env.String("CORS_ORIGINS", "*"), ",")
	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}

	var err error
	if cfg.ReadTimeout, err = env.Duration("HTTP_READ_TIMEOUT", defaultReadTimeout); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = env.Duration("HTTP_WRITE_TIMEOUT", defaultWriteTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("port must be a number, got %q", port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", n)
	}
	return nil
}
