package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adboard/adboard/internal/middleware"
	"github.com/adboard/adboard/internal/repo"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo *repo.UserRepo
}

// ==========================
// Me (resolve the token subject to a user row)
// ==========================
// A subject that no longer exists yields 401, not 404: the token is simply
// no longer good, and a 404 would confirm the account was deleted.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.GetSubject(r.Context())
	if !ok {
		Unauthorized(w, "could not validate credentials")
		return
	}

	user, err := h.Repo.GetByUsername(r.Context(), subject)
	if err != nil {
		Unauthorized(w, "could not validate credentials")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
