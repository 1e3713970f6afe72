package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adboard/adboard/internal/repo"
)

// ==========================
// AdHandler
// ==========================
type AdHandler struct {
	Repo *repo.AdRepo
}

// ==========================
// Get Ad By External ID
// ==========================
// Authorization is authentication-only: any logged-in user may fetch any ad.
func (h *AdHandler) GetAd(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "ad_id")
	adID, err := strconv.Atoi(idStr)
	if err != nil {
		JSONError(w, "invalid ad id", http.StatusBadRequest)
		return
	}

	ad, err := h.Repo.GetByAdID(r.Context(), adID)
	if err != nil {
		JSONError(w, "ad not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ad)
}
