package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoriesCarryStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NewValidation("bad"), CodeValidation, http.StatusBadRequest},
		{NewNotFound("quotation", "q1"), CodeNotFound, http.StatusNotFound},
		{NewConflict("conflict"), CodeConflict, http.StatusConflict},
		{NewDuplicate("quotation", "manual_order_number", "PO-1"), CodeDuplicate, http.StatusConflict},
		{NewConcurrentModification("quotation", "q1"), CodeConcurrentModification, http.StatusConflict},
		{NewBusinessRule(CodeBusinessRule, "rule"), CodeBusinessRule, http.StatusUnprocessableEntity},
		{NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
		{NewDatabase(errors.New("boom")), CodeDatabase, http.StatusInternalServerError},
		{NewUpstream("freight", errors.New("down")), CodeUpstream, http.StatusBadGateway},
		{NewUnauthorized("no"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("no"), CodeForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.HTTPStatus)
	}
}

func TestUnwrapAndAs(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternal(cause)

	wrapped := fmt.Errorf("outer: %w", err)
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInternal, appErr.Code)
	assert.True(t, errors.Is(wrapped, cause))
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("client", "c1")))
	assert.False(t, IsNotFound(NewValidation("bad")))
	assert.False(t, IsNotFound(errors.New("plain")))

	assert.True(t, IsConflict(NewConflict("x")))
	assert.True(t, IsConflict(NewDuplicate("q", "f", "v")))
	assert.False(t, IsConflict(NewValidation("bad")))

	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(NewNotFound("client", "c1")))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("bad").
		WithDetail("field", "quantity").
		WithDetail("value", -1)

	assert.Equal(t, "quantity", err.Details["field"])
	assert.Equal(t, -1, err.Details["value"])
}
