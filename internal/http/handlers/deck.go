package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/http/response"
	"github.com/yungbote/deckgen-backend/internal/services"
)

// maxRequestBody caps generate and render bodies.
const maxRequestBody = 4 << 20

const headerPresentationID = "X-Presentation-Id"

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type DeckHandler struct {
	decks services.DeckService
}

func NewDeckHandler(decks services.DeckService) *DeckHandler {
	return &DeckHandler{decks: decks}
}

type generateRequest struct {
	Content string `json:"content"`
}

type generateResponse struct {
	Status         string   `json:"status"`
	PresentationID string   `json:"presentation_id"`
	Title          string   `json:"title"`
	FileName       string   `json:"filename"`
	DownloadURL    string   `json:"download_url"`
	SlideCount     int      `json:"slide_count"`
	Issues         []string `json:"issues"`
	Fallback       bool     `json:"fallback"`
}

func respond(c *gin.Context, err error, fallbackCode string) {
	response.RespondAPIError(c, toAPIError(err, fallbackCode))
}

func generationPayload(g *services.Generation) generateResponse {
	out := generateResponse{
		Status:      "success",
		Title:       g.Plan.Title,
		FileName:    g.Artifact.Name,
		DownloadURL: "/api/download/" + url.PathEscape(g.Artifact.Name),
		SlideCount:  g.Artifact.Pages,
		Issues:      g.Report.Strings(),
		Fallback:    g.Fallback,
	}
	if g.Presentation != nil {
		out.PresentationID = g.Presentation.ID.String()
	}
	return out
}

// POST /api/generate
func (h *DeckHandler) Generate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "request_too_large", errors.New("content exceeds 4 MiB"))
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		response.RespondError(c, http.StatusBadRequest, "empty_content", services.ErrEmptyContent)
		return
	}
	gen, err := h.decks.GenerateFromText(c.Request.Context(), req.Content)
	if err != nil {
		respond(c, err, "generate_failed")
		return
	}
	response.RespondOK(c, generationPayload(gen))
}

// POST /api/render
//
// Accepts {"plan": {...}} or the plan object itself. Anything that parses as
// JSON is rendered; malformed plans come back with repairs in issues.
func (h *DeckHandler) Render(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBody+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if len(body) > maxRequestBody {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "request_too_large", errors.New("plan exceeds 4 MiB"))
		return
	}
	raw, err := plan.Decode(body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	gen, err := h.decks.RenderPlan(c.Request.Context(), unwrapPlan(raw))
	if err != nil {
		respond(c, err, "render_failed")
		return
	}
	response.RespondOK(c, generationPayload(gen))
}

// unwrapPlan returns body.plan when the body is an envelope rather than a plan.
func unwrapPlan(raw any) any {
	obj, ok := raw.(plan.Object)
	if !ok {
		return raw
	}
	if _, isPlan := obj.Get("slides"); isPlan {
		return raw
	}
	if inner, ok := obj.Get("plan"); ok {
		return inner
	}
	return raw
}

// GET /api/presentations
func (h *DeckHandler) List(c *gin.Context) {
	limit := 0
	if s := strings.TrimSpace(c.Query("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	rows, err := h.decks.List(c.Request.Context(), limit)
	if err != nil {
		respond(c, err, "list_presentations_failed")
		return
	}
	response.RespondOK(c, gin.H{"presentations": rows})
}

// GET /api/presentations/:id
func (h *DeckHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_presentation_id", err)
		return
	}
	row, err := h.decks.Get(c.Request.Context(), id)
	if err != nil {
		respond(c, err, "load_presentation_failed")
		return
	}
	response.RespondOK(c, gin.H{"presentation": row})
}

// GET /api/download/:filename
func (h *DeckHandler) Download(c *gin.Context) {
	name := c.Param("filename")
	dl, err := h.decks.ArtifactPath(c.Request.Context(), name)
	if err != nil {
		respond(c, err, "download_failed")
		return
	}
	if dl.Presentation != nil {
		c.Header(headerPresentationID, dl.Presentation.ID.String())
	}
	c.Header("Content-Type", pptxContentType)
	c.FileAttachment(dl.Path, name)
}
