package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hongminglow/leads-api/internal/auth"
	"github.com/hongminglow/leads-api/internal/http/respond"
	"github.com/hongminglow/leads-api/internal/logging"
	"github.com/hongminglow/leads-api/internal/models/dto"
)

// AccessTokenHeader carries the issued token on a successful sign-in.
const AccessTokenHeader = "X-Access-Token"

// SignUpper runs the registration flow.
type SignUpper interface {
	SignUp(ctx context.Context, in auth.SignUpInput) error
}

// SignInner runs the authentication flow.
type SignInner interface {
	SignIn(ctx context.Context, in auth.SignInInput) (string, error)
}

// AuthHandler owns the sign-up and sign-in endpoints.
type AuthHandler struct {
	signUp SignUpper
	signIn SignInner
	log    logging.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(signUp SignUpper, signIn SignInner, log logging.Logger) *AuthHandler {
	return &AuthHandler{signUp: signUp, signIn: signIn, log: log}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /sign-up", h.handleSignUp)
	mux.HandleFunc("POST /sign-in", h.handleSignIn)
}

func (h *AuthHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.signUp.SignUp(r.Context(), auth.SignUpInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountAlreadyExists):
			respond.Error(w, http.StatusConflict, "Account already exists")
		default:
			h.log.Error(r.Context(), "sign-up failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respond.NoContent(w)
}

func (h *AuthHandler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.signIn.SignIn(r.Context(), auth.SignInInput{Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.log.Error(r.Context(), "sign-in failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	w.Header().Set(AccessTokenHeader, token)
	respond.NoContent(w)
}

type validatable interface {
	Validate() error
}

// maxBodyBytes caps auth request bodies; every field is at most 255 chars.
const maxBodyBytes = 1 << 20

// decodeAndValidate reads a single JSON object from the body into dst and runs
// its rules. It writes the 400 response itself and reports whether the handler
// may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusBadRequest, "request body too large")
			return false
		}
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	if err := dst.Validate(); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			respond.JSON(w, http.StatusBadRequest, "Validation failed", fields)
			return false
		}
		respond.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
