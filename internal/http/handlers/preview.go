package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/deckgen-backend/internal/http/response"
	"github.com/yungbote/deckgen-backend/internal/services"
)

type PreviewHandler struct {
	previews services.PreviewService
}

func NewPreviewHandler(previews services.PreviewService) *PreviewHandler {
	return &PreviewHandler{previews: previews}
}

// GET /api/presentations/:id/slides/:n/preview.png
func (h *PreviewHandler) SlidePNG(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_presentation_id", err)
		return
	}
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 1 {
		response.RespondError(c, http.StatusBadRequest, "invalid_slide_number", errors.New("slide number must be a positive integer"))
		return
	}
	png, err := h.previews.SlidePNG(c.Request.Context(), id, n)
	if err != nil {
		respond(c, err, "render_preview_failed")
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", png)
}
