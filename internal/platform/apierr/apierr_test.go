package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageFallsBackToStatusText(t *testing.T) {
	require.Equal(t, "Not Found", New(http.StatusNotFound, "presentation_not_found", nil).Message())
	require.Equal(t, "boom", New(http.StatusInternalServerError, "x", errors.New("boom")).Message())
	require.Equal(t, "unknown error", New(0, "", nil).Message())
}

func TestAsFindsWrappedError(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("render: %w", New(http.StatusInsufficientStorage, "persistence_exhausted", cause))

	ae, ok := As(wrapped)
	require.True(t, ok)
	require.Equal(t, "persistence_exhausted", ae.Code)
	require.ErrorIs(t, wrapped, cause)

	_, ok = As(errors.New("plain"))
	require.False(t, ok)
}

func TestErrorfAndNilSafety(t *testing.T) {
	e := Errorf(http.StatusBadRequest, "invalid_limit", "limit %d out of range", -1)
	require.Equal(t, "limit -1 out of range", e.Error())

	var nilErr *Error
	require.Empty(t, nilErr.Error())
	require.Empty(t, nilErr.Message())
	require.NoError(t, nilErr.Unwrap())
}
