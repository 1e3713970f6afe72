package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/adboard/adboard/internal/auth"
)

type key string

// SubjectKey holds the authenticated username in the request context.
const SubjectKey key = "subject"

// unauthorized writes a 401 JSON error with the Bearer challenge hint.
// Every token failure path goes through here so clients always get the
// same shape regardless of what went wrong.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"could not validate credentials"}`))
}

// BearerAuth validates the Authorization header with the token issuer and
// stores the subject username in the request context.
func BearerAuth(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			subject, err := tokens.Parse(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject returns the authenticated username set by BearerAuth.
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}
