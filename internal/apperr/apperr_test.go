package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("vessel not found")))
	assert.Equal(t, KindDuplicate, KindOf(Duplicate("mmsi already registered")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := Transient("storage timeout")
	outer := fmt.Errorf("listing vessels: %w", inner)

	assert.Equal(t, KindTransient, KindOf(outer))
	assert.True(t, IsKind(outer, KindTransient))
	assert.False(t, IsKind(outer, KindNotFound))
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindTransient, "mongo unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "mongo unavailable: connection refused", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:        http.StatusBadRequest,
		KindDuplicate:         http.StatusConflict,
		KindNotFound:          http.StatusNotFound,
		KindInvalidTransition: http.StatusConflict,
		KindUnauthorized:      http.StatusUnauthorized,
		KindForbidden:         http.StatusForbidden,
		KindTransient:         http.StatusServiceUnavailable,
		KindInternal:          http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}
