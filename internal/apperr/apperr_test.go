package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("title is required"), http.StatusBadRequest},
		{"unauthenticated", Unauthorized("invalid token"), http.StatusUnauthorized},
		{"forbidden", Denied("not yours"), http.StatusForbidden},
		{"not found", Missing("product not found"), http.StatusNotFound},
		{"conflict keeps 404", Duplicate("already exists"), http.StatusNotFound},
		{"internal", Internalf(errors.New("socket closed")), http.StatusInternalServerError},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestKindOfSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create product: %w", Duplicate("Product Widget already exists"))
	assert.Equal(t, Conflict, KindOf(err))
	assert.Equal(t, "Product Widget already exists", PublicMessage(err))
}

func TestPublicMessageHidesInternals(t *testing.T) {
	err := Internalf(errors.New("mongo: connection refused on 10.0.0.3"))
	assert.Equal(t, InternalMessage, PublicMessage(err))
	assert.Equal(t, InternalMessage, PublicMessage(errors.New("raw")))
	assert.ErrorContains(t, err, "connection refused")
}
