package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"relationship-dashboard/faces"
	"relationship-dashboard/utils"
)

// FaceMatchRequest is the body of POST /face-match
type FaceMatchRequest struct {
	Faces [][]float64 `json:"faces"`
}

// FaceMatchResponse lists the best reference per submitted face
type FaceMatchResponse struct {
	Success bool           `json:"success"`
	Matches []faces.Result `json:"matches"`
}

// MatchFaces handles POST /face-match
func (h *DashboardHandler) MatchFaces(w http.ResponseWriter, r *http.Request) {
	var req FaceMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendJSONError(w, http.StatusBadRequest, errors.New("invalid request body"), "")
		return
	}
	if h.matcher == nil {
		SendJSONError(w, http.StatusInternalServerError, errors.New("face matching is not configured"), "")
		return
	}

	results, err := h.matcher.Match(req.Faces)
	if err != nil {
		if errors.Is(err, utils.ErrNoFaces) || errors.Is(err, utils.ErrDimensionMismatch) {
			SendJSONError(w, http.StatusBadRequest, err, "")
			return
		}
		SendJSONError(w, http.StatusInternalServerError, err, "")
		return
	}

	SendJSONSuccess(w, http.StatusOK, FaceMatchResponse{Success: true, Matches: results})
}
