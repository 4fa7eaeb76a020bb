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

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("nope")
	converted := ToDomainError(original)
	require.NotNil(t, converted)
	assert.Equal(t, CodeForbidden, converted.Code)
	assert.Equal(t, http.StatusForbidden, converted.HTTPStatus)

	wrapped := fmt.Errorf("handler: %w", original)
	converted = ToDomainError(wrapped)
	assert.Equal(t, CodeForbidden, converted.Code)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	converted := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, converted)
	assert.Equal(t, CodeNotFound, converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	converted := ToDomainError(errors.New("boom"))
	require.NotNil(t, converted)
	assert.Equal(t, CodeInternal, converted.Code)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)

	assert.Nil(t, ToDomainError(nil))
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantCode   string
		wantStatus int
	}{
		{NewUnauthenticated("x"), CodeUnauthenticated, http.StatusUnauthorized},
		{NewTokenExpired(), CodeTokenExpired, http.StatusUnauthorized},
		{NewInvalidToken(), CodeInvalidToken, http.StatusUnauthorized},
		{NewMissingRefreshToken(), CodeMissingRefreshToken, http.StatusUnauthorized},
		{NewInvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
		{NewAccountNotActive(), CodeAccountNotActive, http.StatusForbidden},
		{NewForbidden("x"), CodeForbidden, http.StatusForbidden},
		{NewNotFound("thing"), CodeNotFound, http.StatusNotFound},
		{NewConflict("x", nil), CodeConflict, http.StatusConflict},
		{NewValidationError("x", nil), CodeValidationFailed, http.StatusUnprocessableEntity},
		{NewRateLimited(), CodeRateLimited, http.StatusTooManyRequests},
		{NewInternalError(nil), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.wantCode, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tc.err, &domainErr)
			assert.Equal(t, tc.wantCode, domainErr.Code)
			assert.Equal(t, tc.wantStatus, domainErr.HTTPStatus)
		})
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("db gone")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}
