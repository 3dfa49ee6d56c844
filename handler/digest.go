package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"relationship-dashboard/digest"
	"relationship-dashboard/model"
	"relationship-dashboard/utils"

	"github.com/rs/zerolog/log"
)

// PreviewResponse is returned by GET /test
type PreviewResponse struct {
	Success bool              `json:"success"`
	Stats   model.WeeklyStats `json:"stats"`
	Days    []model.WeekDay   `json:"days"`
	HTML    string            `json:"html"`
}

// SendResponse is returned by GET /send-email
type SendResponse struct {
	Success bool `json:"success"`
	digest.SendResult
}

// TestDigest handles GET /test. It renders the weekly digest without
// sending it; ?format=html returns the page itself.
func (h *DashboardHandler) TestDigest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	weekly, html, err := h.service.Preview(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render digest preview")
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}

	if r.URL.Query().Get("format") == "html" {
		SendHTML(w, http.StatusOK, html)
		return
	}

	SendJSONSuccess(w, http.StatusOK, PreviewResponse{
		Success: true,
		Stats:   weekly.Stats,
		Days:    weekly.Days,
		HTML:    html,
	})
}

// SendEmail handles GET /send-email
func (h *DashboardHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	// Delivery gets its own budget on top of the sheet read.
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout()+30*time.Second)
	defer cancel()

	result, err := h.service.SendWeekly(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to send weekly digest")
		message := ""
		if errors.Is(err, utils.ErrEmailNotConfigured) {
			message = "Set RESEND_API_KEY and EMAIL_TO, or configure SMTP"
		}
		SendJSONError(w, http.StatusInternalServerError, err, message)
		return
	}

	SendJSONSuccess(w, http.StatusOK, SendResponse{Success: true, SendResult: result})
}
