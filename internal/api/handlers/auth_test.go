package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Andert51/P-Music-td/internal/api/generated"
	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/domain/rbac"
	"github.com/Andert51/P-Music-td/internal/service"
)

func TestAuthHandler_Register(t *testing.T) {
	var got service.RegisterParams
	auth := &mockAuth{
		registerFn: func(_ context.Context, p service.RegisterParams) (*model.User, error) {
			got = p
			return &model.User{ID: 1, Username: p.Username, Email: p.Email, Role: rbac.RoleCreator, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(auth, staticJWKS(`{"keys":[]}`), testLogger())

	body := `{"username":"thom","email":"thom@example.com","password":"karma-police","role":"creator"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}
	if got.Role != "creator" || got.Password != "karma-police" {
		t.Errorf("params = %+v", got)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("ответ содержит пароль: %s", rec.Body.String())
	}

	var resp generated.UserResponse
	decodeBody(t, rec, &resp)
	if resp.Id != 1 || resp.Role != generated.UserRoleCreator {
		t.Errorf("resp = %+v", resp)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	auth := &mockAuth{
		loginFn: func(_ context.Context, email, password string) (*service.LoginResult, error) {
			if email != "thom@example.com" || password != "karma-police" {
				return nil, service.ErrUnauthorized
			}
			return &service.LoginResult{AccessToken: "jwt", TokenType: "bearer", ExpiresAt: expires}, nil
		},
	}
	h := NewAuthHandler(auth, staticJWKS(`{"keys":[]}`), testLogger())

	tests := []struct {
		name     string
		form     url.Values
		wantCode int
	}{
		{"поле email", url.Values{"email": {"thom@example.com"}, "password": {"karma-police"}}, http.StatusOK},
		{"поле username как email", url.Values{"username": {"thom@example.com"}, "password": {"karma-police"}}, http.StatusOK},
		{"неверный пароль", url.Values{"email": {"thom@example.com"}, "password": {"nope"}}, http.StatusUnauthorized},
		{"без пароля", url.Values{"email": {"thom@example.com"}}, http.StatusBadRequest},
		{"без email", url.Values{"password": {"karma-police"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("статус = %d, ожидался %d; тело: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Error("нет заголовка WWW-Authenticate")
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var tok generated.Token
			decodeBody(t, rec, &tok)
			if tok.AccessToken != "jwt" || tok.TokenType != "bearer" || !tok.ExpiresAt.Equal(expires) {
				t.Errorf("token = %+v", tok)
			}
		})
	}
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	h := NewAuthHandler(&mockAuth{}, staticJWKS(`{"keys":[]}`), testLogger())

	rec := httptest.NewRecorder()
	h.GetCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("без токена: статус = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.GetCurrentUser(rec, asUser(httptest.NewRequest(http.MethodGet, "/auth/me", nil), testUser(3, rbac.RoleUser)))
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	var resp generated.UserResponse
	decodeBody(t, rec, &resp)
	if resp.Id != 3 {
		t.Errorf("id = %d", resp.Id)
	}
}

func TestAuthHandler_GetJWKS(t *testing.T) {
	h := NewAuthHandler(&mockAuth{}, staticJWKS(`{"keys":[{"kty":"RSA"}]}`), testLogger())

	rec := httptest.NewRecorder()
	h.GetJWKS(rec, httptest.NewRequest(http.MethodGet, "/auth/jwks.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Error("нет Cache-Control")
	}
	if !strings.Contains(rec.Body.String(), `"kty":"RSA"`) {
		t.Errorf("тело = %s", rec.Body.String())
	}
}
