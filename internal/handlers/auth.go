package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/adboard/adboard/internal/auth"
	"github.com/adboard/adboard/internal/metrics"
	"github.com/adboard/adboard/internal/repo"
)

// errIncorrectCredentials is the single message for every login failure.
// Unknown username and wrong password must be indistinguishable to the caller.
const errIncorrectCredentials = "incorrect username or password"

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Hasher *auth.Hasher
	Tokens *auth.TokenIssuer
}

// RegisterRequest is the JSON body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// TokenResponse is the body of a successful POST /token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ==========================
// Register (password stored as bcrypt hash, never logged)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	hash, err := h.Hasher.Hash(input.Password)
	if err != nil {
		slog.Error("register: hash password failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(r.Context(), input.Username, hash)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			metrics.IncRegistrations("conflict")
			JSONError(w, "username already registered", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncRegistrations("created")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// ==========================
// Token (form-encoded credentials, OAuth2 password style)
// ==========================
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		JSONError(w, "invalid form body", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		metrics.IncLogins("rejected")
		Unauthorized(w, errIncorrectCredentials)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil {
		// Same response as a wrong password; do not leak account existence.
		metrics.IncLogins("rejected")
		Unauthorized(w, errIncorrectCredentials)
		return
	}

	if !h.Hasher.Verify(user.PasswordHash, password) {
		metrics.IncLogins("rejected")
		Unauthorized(w, errIncorrectCredentials)
		return
	}

	token, err := h.Tokens.Issue(user.Username)
	if err != nil {
		slog.Error("token: sign failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncLogins("issued")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
