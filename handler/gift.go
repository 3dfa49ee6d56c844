package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"relationship-dashboard/middleware"
	"relationship-dashboard/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// GiftVerifyRequest is the body of POST /gift-verify
type GiftVerifyRequest struct {
	Password string `json:"password"`
}

// GiftVerifyResponse is returned for a correct password
type GiftVerifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// checkGiftPassword compares against the configured secret, which may be
// stored as a bcrypt hash.
func checkGiftPassword(configured, given string) bool {
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}

// VerifyGift handles POST /gift-verify
func (h *DashboardHandler) VerifyGift(w http.ResponseWriter, r *http.Request) {
	if h.config.Gift.Password == "" {
		SendJSONError(w, http.StatusInternalServerError, utils.ErrGiftNotConfigured, "")
		return
	}

	var req GiftVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendJSONError(w, http.StatusBadRequest, errors.New("invalid request body"), "")
		return
	}
	if req.Password == "" {
		SendJSONError(w, http.StatusBadRequest, errors.New("password is required"), "")
		return
	}

	ip := middleware.ClientIP(r)
	if !checkGiftPassword(h.config.Gift.Password, req.Password) {
		log.Warn().Str("ip", ip).Msg("Incorrect gift password")
		SendJSONError(w, http.StatusUnauthorized, utils.ErrIncorrectPassword, "")
		return
	}

	log.Info().Str("ip", ip).Msg("Gift unlocked")
	SendJSONSuccess(w, http.StatusOK, GiftVerifyResponse{
		Success: true,
		Message: h.config.Gift.Message,
	})
}

// ServeGiftAsset handles GET /gift-assets/{filename}
func (h *DashboardHandler) ServeGiftAsset(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]
	if err := utils.ValidateAssetName(name); err != nil {
		SendJSONError(w, http.StatusBadRequest, err, "")
		return
	}

	path := filepath.Join(h.config.Gift.AssetsDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		SendJSONError(w, http.StatusNotFound, errors.New("asset not found"), "")
		return
	}

	http.ServeFile(w, r, path)
}
