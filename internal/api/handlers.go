package api

import (
	"bytes"
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
	"github.com/ninocam2680/slidegen-backend/internal/service/assembler"
	"github.com/ninocam2680/slidegen-backend/internal/service/render"
	"github.com/ninocam2680/slidegen-backend/internal/service/storage"
	"github.com/ninocam2680/slidegen-backend/pkg/errors"
)

// DeckAssembler is what the handler needs from the assembly engine.
type DeckAssembler interface {
	Assemble(ctx context.Context, req *assembler.DeckRequest) (*assembler.Deck, error)
}

type Handler struct {
	assembler DeckAssembler
	storage   *storage.Service
	secret    string
	logger    *logger.Logger
}

func NewHandler(asm DeckAssembler, store *storage.Service, secret string, log *logger.Logger) *Handler {
	return &Handler{
		assembler: asm,
		storage:   store,
		secret:    secret,
		logger:    log,
	}
}

func (h *Handler) GenerateDeck(c *gin.Context) {
	var req GenerateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	// The engine is never invoked for callers that fail the shared-secret
	// check.
	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.secret)) != 1 {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Unauthorized or invalid input"})
		return
	}

	requestID := req.ClientRequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	deck, err := h.assembler.Assemble(c.Request.Context(), toDeckRequest(&req, requestID))
	if err != nil {
		h.handleError(c, requestID, err)
		return
	}

	// Serialize fully before touching the response: either a complete
	// document goes out, or none.
	var buf bytes.Buffer
	if err := deck.Document.Save(&buf); err != nil {
		h.handleError(c, requestID, errors.Wrap(err, errors.ErrCodeInternal, "failed to serialize deck"))
		return
	}

	c.Header("X-Render-Warnings", strconv.Itoa(deck.WarningCount()))

	if req.Persist && h.storage != nil {
		url, err := h.storage.SaveDeck(c.Request.Context(), requestID, buf.Bytes())
		if err != nil {
			h.handleError(c, requestID, err)
			return
		}
		c.JSON(http.StatusOK, PersistedDeckResponse{
			RequestID: requestID,
			Status:    StatusSucceeded,
			URL:       url,
			Warnings:  deck.WarningCount(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, deckFileName(req.Style)))
	c.Data(http.StatusOK, pptxContentType, buf.Bytes())
}

func (h *Handler) handleError(c *gin.Context, requestID string, err error) {
	h.logger.Error("failed to generate deck", "error", err, "request_id", requestID)

	status := http.StatusInternalServerError
	if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeRateLimited {
		status = http.StatusTooManyRequests
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func toDeckRequest(req *GenerateDeckRequest, requestID string) *assembler.DeckRequest {
	out := &assembler.DeckRequest{
		RequestID: requestID,
		Title:     req.Title,
		Style:     req.Style,
		Format:    req.Format,
		Fonts:     toFontOverrides(req.Fonts),
	}
	if req.Dimensions != nil {
		out.Dimensions = &assembler.Dimensions{
			Width:  req.Dimensions.Width,
			Height: req.Dimensions.Height,
		}
	}
	for _, s := range req.Slides {
		out.Slides = append(out.Slides, assembler.SlideSpec{
			Layout:   s.Layout,
			Title:    s.Title,
			Subtitle: s.Subtitle,
			Content:  s.Content,
			ImageURL: s.ImageURL,
		})
	}
	return out
}

func toFontOverrides(fonts map[string]FontOverride) render.FontOverrides {
	var out render.FontOverrides
	for region, f := range fonts {
		style := toFontStyle(f)
		if style == nil {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(region)) {
		case "title":
			out.Title = style
		case "subtitle":
			out.Subtitle = style
		case "body", "content":
			out.Body = style
		}
	}
	return out
}

func toFontStyle(f FontOverride) *document.FontStyle {
	var style document.FontStyle
	if f.Size > 0 {
		size := f.Size
		style.Size = &size
	}
	if f.Color != "" {
		color := f.Color
		style.Color = &color
	}
	if style.IsZero() {
		return nil
	}
	return &style
}

// deckFileName derives the attachment name from the style identifier.
func deckFileName(style string) string {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		return "presentazione.pptx"
	}
	var b strings.Builder
	for _, r := range style {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String() + ".pptx"
}
