package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/leads-api/internal/auth"
	"github.com/hongminglow/leads-api/internal/logging"
)

type fakeSignUp struct {
	got auth.SignUpInput
	err error
}

func (f *fakeSignUp) SignUp(_ context.Context, in auth.SignUpInput) error {
	f.got = in
	return f.err
}

type fakeSignIn struct {
	token string
	err   error
}

func (f *fakeSignIn) SignIn(context.Context, auth.SignInInput) (string, error) {
	return f.token, f.err
}

func newMux(up *fakeSignUp, in *fakeSignIn) *http.ServeMux {
	mux := http.NewServeMux()
	NewAuthHandler(up, in, logging.Discard()).Register(mux)
	return mux
}

func do(mux http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSignUp_Handler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "created", body: `{"name":"Ana","email":"a@x.com","password":"secret1"}`, wantCode: http.StatusNoContent},
		{name: "conflict", body: `{"name":"Ana","email":"a@x.com","password":"secret1"}`, err: auth.ErrAccountAlreadyExists,
			wantCode: http.StatusConflict, wantBody: `{"code":409,"message":"Account already exists"}`},
		{name: "store down", body: `{"name":"Ana","email":"a@x.com","password":"secret1"}`, err: errors.New("db down"),
			wantCode: http.StatusInternalServerError, wantBody: `{"code":500,"message":"Internal server error"}`},
		{name: "bad json", body: `{"name":`, wantCode: http.StatusBadRequest, wantBody: `{"code":400,"message":"invalid JSON payload"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &fakeSignUp{err: tt.err}
			rec := do(newMux(up, &fakeSignIn{}), "/sign-up", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rec.Body.String())
				assert.Equal(t, auth.SignUpInput{Name: "Ana", Email: "a@x.com", Password: "secret1"}, up.got)
				return
			}
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestSignUp_HandlerFieldErrors(t *testing.T) {
	up := &fakeSignUp{}
	rec := do(newMux(up, &fakeSignIn{}), "/sign-up", `{"name":"Ana","email":"a@x.com","password":"123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var env struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Validation failed", env.Message)
	assert.Len(t, env.Data, 1)
	assert.NotEmpty(t, env.Data["password"])
	assert.Empty(t, up.got, "flow must not run on invalid input")
}

func TestSignIn_Handler(t *testing.T) {
	valid := `{"email":"a@x.com","password":"secret1"}`

	rec := do(newMux(&fakeSignUp{}, &fakeSignIn{token: "tok"}), "/sign-in", valid)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "tok", rec.Header().Get(AccessTokenHeader))
	assert.Empty(t, rec.Body.String())

	rec = do(newMux(&fakeSignUp{}, &fakeSignIn{err: auth.ErrInvalidCredentials}), "/sign-in", valid)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get(AccessTokenHeader))
	assert.JSONEq(t, `{"code":401,"message":"Invalid credentials"}`, rec.Body.String())

	rec = do(newMux(&fakeSignUp{}, &fakeSignIn{err: errors.New("db down")}), "/sign-in", valid)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(newMux(&fakeSignUp{}, &fakeSignIn{}), "/sign-in", `{"email":"bad","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email"`)
}

func TestSignUp_RejectsOversizedBody(t *testing.T) {
	up := &fakeSignUp{}
	body := `{"name":"` + strings.Repeat("x", 2<<20) + `","email":"a@x.com","password":"secret1"}`

	rec := do(newMux(up, &fakeSignIn{}), "/sign-up", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"code":400,"message":"request body too large"}`, rec.Body.String())
	assert.Empty(t, up.got)
}

func TestDecode_RejectsTrailingData(t *testing.T) {
	tests := map[string]string{
		"trailing text": `{"name":"Ana","email":"a@x.com","password":"secret1"} trailing`,
		"second object":   `{"name":"Ana","email":"a@x.com","password":"secret1"}{"name":"Bia"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			up := &fakeSignUp{}
			rec := do(newMux(up, &fakeSignIn{}), "/sign-up", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"code":400,"message":"invalid JSON payload"}`, rec.Body.String())
			assert.Empty(t, up.got)
		})
	}

	rec := do(newMux(&fakeSignUp{}, &fakeSignIn{}), "/sign-up", `{"name":"Ana","email":"a@x.com","password":"secret1"}`+"\n")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
