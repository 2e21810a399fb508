package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(Validation("weight must be positive")))
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("client %d not found", 7)))
	assert.Equal(t, CodeConflict, CodeOf(Conflict("already billed")))
	assert.Equal(t, CodeForbidden, CodeOf(Forbidden("invalid credentials")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := Wrap(CodeConflict, "shipment already billed", cause)

	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeValidation))

	// Wrapping again keeps the outermost classification.
	outer := fmt.Errorf("creating invoice: %w", err)
	assert.Equal(t, CodeConflict, CodeOf(outer))
	assert.True(t, errors.Is(outer, cause))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "weight must be positive", MessageOf(Validation("weight must be positive")))
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: connection reset")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad input")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("missing")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("dup")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("nope")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
