// Package proxy exposes the CORS relay the browser widget talks to. It
// performs no caching, retries, or payload transformation; its sole value is
// sidestepping browser cross-origin restrictions on the upstream API.
package proxy

import (
	"encoding/json"
	"log"
	"net/http"

	"school-menu/internal/nutrislice"
)

const (
	errMissingParams = "Missing mealType or date parameter"
	errMethod        = "Method not allowed"
	errUpstream      = "Failed to fetch menu data"
)

// Handler relays GET /api/menu?mealType=<meal>&date=<YYYY-MM-DD> to the
// upstream provider and streams back its JSON body.
type Handler struct {
	client nutrislice.Client
}

// NewHandler creates a proxy handler over an upstream client.
func NewHandler(client nutrislice.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errMethod)
		return
	}

	mealType := r.URL.Query().Get("mealType")
	date := r.URL.Query().Get("date")
	if mealType == "" || date == "" {
		writeError(w, http.StatusBadRequest, errMissingParams)
		return
	}

	body, status, err := h.client.Get(r.Context(), mealType, date)
	if err != nil || status != http.StatusOK || !json.Valid(body) {
		log.Printf("Proxy upstream failure for %s/%s (status %d): %v", mealType, date, status, err)
		writeError(w, http.StatusInternalServerError, errUpstream)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("Error streaming upstream body: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}
