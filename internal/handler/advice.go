package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"atelier/internal/config"
	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// AdviceHandler proxies design questions to the advice service
type AdviceHandler struct {
	advice services.AdviceService
	logger *slog.Logger
}

// NewAdviceHandler creates a new advice handler
func NewAdviceHandler(advice services.AdviceService, logger *slog.Logger) *AdviceHandler {
	return &AdviceHandler{advice: advice, logger: logger}
}

type adviceRequest struct {
	Prompt string `json:"prompt"`
}

type adviceResponse struct {
	Reply string `json:"reply"`
}

// GetAdvice answers with a reply even when the model is unavailable
// POST /api/advice
func (h *AdviceHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, h.logger, err)
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		httputil.RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if utf8.RuneCountInString(prompt) > config.MaxPromptLength {
		httputil.RespondError(w, http.StatusBadRequest, "prompt is too long")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, adviceResponse{
		Reply: h.advice.GetDesignAdvice(r.Context(), prompt),
	})
}
