package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/yungbote/deckgen-backend/internal/deck/artifact"
	"github.com/yungbote/deckgen-backend/internal/platform/apierr"
	"github.com/yungbote/deckgen-backend/internal/services"
)

// toAPIError maps service and persistence failures onto HTTP status and code.
// fallbackCode is used for anything unrecognised.
func toAPIError(err error, fallbackCode string) *apierr.Error {
	if ae, ok := apierr.As(err); ok {
		return ae
	}
	var pe *artifact.Error
	if errors.As(err, &pe) {
		status := http.StatusInternalServerError
		switch pe.Kind {
		case artifact.KindDenied:
			status = http.StatusForbidden
		case artifact.KindExhausted:
			status = http.StatusInsufficientStorage
		}
		return apierr.New(status, string(pe.Kind), errors.New(pe.Message()))
	}
	switch {
	case errors.Is(err, services.ErrEmptyContent):
		return apierr.New(http.StatusBadRequest, "empty_content", err)
	case errors.Is(err, services.ErrInvalidFileName):
		return apierr.New(http.StatusBadRequest, "invalid_filename", err)
	case errors.Is(err, services.ErrArtifactNotFound):
		return apierr.New(http.StatusNotFound, "file_not_found", err)
	case errors.Is(err, services.ErrPresentationNotFound):
		return apierr.New(http.StatusNotFound, "presentation_not_found", err)
	case errors.Is(err, services.ErrSlideNotFound):
		return apierr.New(http.StatusNotFound, "slide_not_found", err)
	case errors.Is(err, services.ErrCompletionUnavailable):
		return apierr.New(http.StatusServiceUnavailable, "completion_unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apierr.New(http.StatusGatewayTimeout, "timeout", err)
	}
	return apierr.New(http.StatusInternalServerError, fallbackCode, err)
}
