package derrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	t.Run("returns the attached code", func(t *testing.T) {
		err := New(CodeConflict, "name taken")
		assert.Equal(t, CodeConflict, CodeOf(err))
	})

	t.Run("finds the code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeNotFound, "no such job"))
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})

	t.Run("plain errors default to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("preserves the cause chain", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeInternal, "store unavailable")
		assert.ErrorIs(t, err, cause)
		assert.True(t, HasCode(err, CodeInternal))
	})
}

func TestMessageOf(t *testing.T) {
	t.Run("hides internal causes", func(t *testing.T) {
		err := Wrap(errors.New("pq: password authentication failed"), CodeInternal, "store unavailable")
		assert.Equal(t, "internal error", MessageOf(err))
	})

	t.Run("exposes domain messages", func(t *testing.T) {
		assert.Equal(t, "job is closed", MessageOf(New(CodeInvalidState, "job is closed")))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInvalidState: http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(New(code, "x")), string(code))
	}
}
