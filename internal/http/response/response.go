package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/deckgen-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	abortJSON(c, status, code, msg)
}

// RespondAPIError writes ae with its own status and code.
func RespondAPIError(c *gin.Context, ae *apierr.Error) {
	if ae == nil {
		abortJSON(c, http.StatusInternalServerError, "internal_error", "unknown error")
		return
	}
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if ae.Err != nil {
		_ = c.Error(ae.Err)
	}
	abortJSON(c, status, ae.Code, ae.Message())
}

func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
