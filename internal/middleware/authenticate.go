package middleware

import (
	"net/http"
	"strings"

	"github.com/hongminglow/leads-api/internal/auth"
	"github.com/hongminglow/leads-api/internal/http/respond"
	"github.com/hongminglow/leads-api/internal/logging"
)

// TokenVerifier resolves a bearer token to an account id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

const invalidAccessToken = "Invalid access token"

// Authenticate guards next behind an "Authorization: Bearer <token>" header.
// Every rejection, whichever check failed, gets the same 401 body; the reason
// is only logged at debug level.
func Authenticate(verifier TokenVerifier, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, reason := bearerToken(r.Header.Get("Authorization"))
			if reason == "" {
				accountID, err := verifier.Verify(token)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(auth.WithAccountID(r.Context(), accountID)))
					return
				}
				reason = "verification failed"
			}

			log.Debug(r.Context(), "access denied", "path", r.URL.Path, "reason", reason)
			respond.Error(w, http.StatusUnauthorized, invalidAccessToken)
		})
	}
}

// bearerToken extracts the token from header. A non-empty reason means the
// header is missing or malformed.
func bearerToken(header string) (token, reason string) {
	if header == "" {
		return "", "missing header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" {
		return "", "bad scheme"
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", "malformed token"
	}
	return token, ""
}
