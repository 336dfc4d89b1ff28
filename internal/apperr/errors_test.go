package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := fmt.Errorf("status 502")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", apperr.NewValidation("q must not be blank"), "q must not be blank"},
		{"validation wrap", apperr.NewValidationWrap("horizon must be a number", fmt.Errorf("strconv: bad")), "horizon must be a number: strconv: bad"},
		{"upstream", apperr.NewUpstream("guardian", cause), "upstream guardian: status 502"},
		{"persistence", apperr.NewPersistence("find all", fmt.Errorf("connection refused")), "persistence find all: connection refused"},
		{"auth", apperr.NewAuth("reddit", fmt.Errorf("invalid_grant")), "auth reddit: invalid_grant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrors_UnwrapToCause(t *testing.T) {
	cause := fmt.Errorf("eof")

	assert.Nil(t, apperr.NewValidation("x").Unwrap())
	assert.ErrorIs(t, apperr.NewValidationWrap("x", cause), cause)
	assert.ErrorIs(t, apperr.NewUpstream("nytimes", cause), cause)
	assert.ErrorIs(t, apperr.NewPersistence("insert", cause), cause)
	assert.ErrorIs(t, apperr.NewAuth("reddit", cause), cause)
}

func TestErrors_FoundThroughWrapping(t *testing.T) {
	err := fmt.Errorf("ingest reddit: %w", fmt.Errorf("fetch: %w", apperr.NewAuth("reddit", fmt.Errorf("denied"))))

	var ae *apperr.AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "reddit", ae.Provider)

	var ve *apperr.ValidationError
	assert.False(t, errors.As(fmt.Errorf("storage: %w", fmt.Errorf("down")), &ve))
}
