package server

import (
	"context"
	"log/slog"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type HealthCheckerFunc func(ctx context.Context) bool

func (f HealthCheckerFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

type namedCheck struct {
	name    string
	checker HealthChecker
}

// CompositeHealthChecker is healthy only when every registered dependency
// is. Every check runs so each failing dependency gets logged.
type CompositeHealthChecker struct {
	checks []namedCheck
}

func NewCompositeHealthChecker() *CompositeHealthChecker {
	return &CompositeHealthChecker{}
}

func (hc *CompositeHealthChecker) Register(name string, checker HealthChecker) *CompositeHealthChecker {
	hc.checks = append(hc.checks, namedCheck{name: name, checker: checker})
	return hc
}

func (hc *CompositeHealthChecker) Healthy(ctx context.Context) bool {
	healthy := true
	for _, c := range hc.checks {
		if !c.checker.Healthy(ctx) {
			slog.Warn("Dependency unhealthy", "dependency", c.name)
			healthy = false
		}
	}
	return healthy
}
