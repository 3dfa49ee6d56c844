package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// GetStatus handles GET /status
func (h *DashboardHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	status, err := h.service.Status(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build status")
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}
	SendJSONSuccess(w, http.StatusOK, status)
}

// GetLastEntries handles GET /last-entries
func (h *DashboardHandler) GetLastEntries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	entries, err := h.service.LastEntries(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load last entries")
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}
	SendJSONSuccess(w, http.StatusOK, entries)
}

// GetHangoutData handles GET /hangout-data
func (h *DashboardHandler) GetHangoutData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	trend, err := h.service.Trend(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build trend")
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}
	SendJSONSuccess(w, http.StatusOK, trend)
}

// GetStatusPage handles GET /dashboard, the HTML rendering of /status and
// /hangout-data.
func (h *DashboardHandler) GetStatusPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	page, err := h.service.StatusPage(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render status page")
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}
	SendHTML(w, http.StatusOK, page)
}

// GetRecentHangout handles GET /hangout. The body is null when nobody has
// reported a hangout.
func (h *DashboardHandler) GetRecentHangout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	status, err := h.service.Status(ctx)
	if err != nil {
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}
	SendJSONSuccess(w, http.StatusOK, status.MostRecentHangout)
}

// GetRecentMinecraft handles GET /minecraft
func (h *DashboardHandler) GetRecentMinecraft(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	status, err := h.service.Status(ctx)
	if err != nil {
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}
	SendJSONSuccess(w, http.StatusOK, status.MostRecentMinecraft)
}

// GetRecentAll handles GET /all
func (h *DashboardHandler) GetRecentAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	status, err := h.service.Status(ctx)
	if err != nil {
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}
	SendJSONSuccess(w, http.StatusOK, map[string]interface{}{
		"recent_hangout":   status.MostRecentHangout,
		"recent_minecraft": status.MostRecentMinecraft,
	})
}
