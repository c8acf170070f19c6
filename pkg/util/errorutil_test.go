package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	err := ToDomainError(fmt.Errorf("query ticket: %w", pgx.ErrNoRows))
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", err.Code)
}

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewForbidden("admin access required")
	mapped := ToDomainError(original)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
	assert.Equal(t, "admin access required", mapped.Message)
}

func TestToDomainErrorHidesUnknownErrors(t *testing.T) {
	mapped := ToDomainError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.Equal(t, "internal server error", mapped.Message)
	// The cause stays wrapped for server-side logging only.
	assert.ErrorContains(t, mapped, "connection refused")
}
