package handler

import (
	"net/http"

	"relationship-dashboard/middleware"

	"github.com/gorilla/mux"
)

// Register mounts the dashboard routes on r. giftAttempts may be nil.
// mux only runs router middleware on a matched route, so preflight
// requests get a route of their own that CORS can answer.
func (h *DashboardHandler) Register(r *mux.Router, giftAttempts *middleware.GiftAttempts) {
	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/cache/metrics", h.CacheMetrics).Methods("GET")

	r.HandleFunc("/status", h.GetStatus).Methods("GET")
	r.HandleFunc("/last-entries", h.GetLastEntries).Methods("GET")
	r.HandleFunc("/hangout-data", h.GetHangoutData).Methods("GET")
	r.HandleFunc("/dashboard", h.GetStatusPage).Methods("GET")
	r.HandleFunc("/hangout", h.GetRecentHangout).Methods("GET")
	r.HandleFunc("/minecraft", h.GetRecentMinecraft).Methods("GET")
	r.HandleFunc("/all", h.GetRecentAll).Methods("GET")

	r.HandleFunc("/test", h.TestDigest).Methods("GET")
	r.HandleFunc("/send-email", h.SendEmail).Methods("GET")

	r.Handle("/gift-verify", giftAttempts.Protect(http.HandlerFunc(h.VerifyGift))).Methods("POST")
	r.HandleFunc("/gift-assets/{filename}", h.ServeGiftAsset).Methods("GET")
	r.HandleFunc("/face-match", h.MatchFaces).Methods("POST")

	r.Methods(http.MethodOptions).HandlerFunc(preflight)
}

func preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
