package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeHealthChecker(t *testing.T) {
	ctx := context.Background()
	ok := HealthCheckerFunc(func(context.Context) bool { return true })

	assert.True(t, NewCompositeHealthChecker().Healthy(ctx))
	assert.True(t, NewCompositeHealthChecker().Register("store", ok).Register("cache", ok).Healthy(ctx))

	calls := 0
	down := HealthCheckerFunc(func(context.Context) bool {
		calls++
		return false
	})
	hc := NewCompositeHealthChecker().Register("store", down).Register("cache", down)
	assert.False(t, hc.Healthy(ctx))
	assert.Equal(t, 2, calls)
}
