package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/strettonotes/strettonotes/internal/auth"
	"github.com/strettonotes/strettonotes/internal/domain/user"
	"github.com/strettonotes/strettonotes/internal/http/handlers"
	"github.com/strettonotes/strettonotes/internal/repo/postgres"
	"github.com/strettonotes/strettonotes/internal/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake implementations of the handler interfaces

type fakeCredentials struct {
	getFn func(ctx context.Context, email string) (user.Credential, error)
}

func (f *fakeCredentials) GetCredentialByEmail(ctx context.Context, email string) (user.Credential, error) {
	if f.getFn != nil {
		return f.getFn(ctx, email)
	}
	return user.Credential{}, user.ErrNotFound
}

type fakeUserWriter struct {
	createFn func(ctx context.Context, email, passwordHash, fullName string) (user.User, error)
}

func (f *fakeUserWriter) Create(ctx context.Context, email, passwordHash, fullName string) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, email, passwordHash, fullName)
	}
	return user.User{}, nil
}

func newAuthHandler(creds *fakeCredentials, writer *fakeUserWriter) *handlers.AuthHandler {
	hasher := security.NewHasher(4)
	jwtManager := auth.NewManager("test-secret-key", 30*time.Minute)

	return handlers.NewAuthHandler(creds, writer, hasher, jwtManager, nil)
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		writerSetUp    func(*fakeUserWriter)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"email":"Alice@Example.com","password":"secret123","full_name":"Alice"}`,
			writerSetUp: func(f *fakeUserWriter) {
				f.createFn = func(ctx context.Context, email, passwordHash, fullName string) (user.User, error) {
					if email != "alice@example.com" {
						t.Fatalf("email not lowercased: %q", email)
					}
					if passwordHash == "secret123" || passwordHash == "" {
						t.Fatalf("password stored unhashed: %q", passwordHash)
					}
					return user.User{
						ID:        "u-1",
						Email:     email,
						FullName:  fullName,
						CreatedAt: time.Now().UTC(),
					}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "duplicate_email",
			body: `{"email":"alice@example.com","password":"secret123"}`,
			writerSetUp: func(f *fakeUserWriter) {
				f.createFn = func(ctx context.Context, email, passwordHash, fullName string) (user.User, error) {
					return user.User{}, postgres.ErrEmailAlreadyUsed
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid_email",
			body:           `{"email":"not-an-email","password":"secret123"}`,
			writerSetUp:    func(f *fakeUserWriter) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "short_password",
			body:           `{"email":"alice@example.com","password":"short"}`,
			writerSetUp:    func(f *fakeUserWriter) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			writer := &fakeUserWriter{}
			tt.writerSetUp(writer)

			h := newAuthHandler(&fakeCredentials{}, writer)

			r := gin.New()
			r.POST("/auth/register", h.Register)

			w := postJSON(r, "/auth/register", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if w.Code == http.StatusCreated {
				if strings.Contains(w.Body.String(), "password") || strings.Contains(w.Body.String(), "hash") {
					t.Fatalf("registration response leaks credential material: %s", w.Body.String())
				}
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	hasher := security.NewHasher(4)

	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}

	creds := &fakeCredentials{
		getFn: func(ctx context.Context, email string) (user.Credential, error) {
			if email != "alice@example.com" {
				return user.Credential{}, user.ErrNotFound
			}
			return user.Credential{
				User:         user.User{ID: "u-1", Email: email},
				PasswordHash: hash,
			}, nil
		},
	}

	jwtManager := auth.NewManager("test-secret-key", 30*time.Minute)
	h := handlers.NewAuthHandler(creds, &fakeUserWriter{}, hasher, jwtManager, nil)

	r := gin.New()
	r.POST("/auth/token", h.Login)

	w := postJSON(r, "/auth/token", `{"email":"Alice@example.com","password":"secret123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp handlers.TokenResponse

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v, body=%s", err, w.Body.String())
	}

	if resp.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", resp.TokenType)
	}

	subject, err := jwtManager.VerifyAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}

	if subject != "alice@example.com" {
		t.Fatalf("token subject = %q, want alice@example.com", subject)
	}
}

// A login against an unknown email and a login with a wrong password must be
// indistinguishable on the wire.
func TestLoginFailuresAreIdentical(t *testing.T) {
	hasher := security.NewHasher(4)

	hash, err := hasher.Hash("correct-password")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}

	creds := &fakeCredentials{
		getFn: func(ctx context.Context, email string) (user.Credential, error) {
			if email != "alice@example.com" {
				return user.Credential{}, user.ErrNotFound
			}
			return user.Credential{
				User:         user.User{ID: "u-1", Email: email},
				PasswordHash: hash,
			}, nil
		},
	}

	jwtManager := auth.NewManager("test-secret-key", 30*time.Minute)
	h := handlers.NewAuthHandler(creds, &fakeUserWriter{}, hasher, jwtManager, nil)

	r := gin.New()
	r.POST("/auth/token", h.Login)

	wUnknown := postJSON(r, "/auth/token", `{"email":"nobody@example.com","password":"correct-password"}`)
	wWrongPw := postJSON(r, "/auth/token", `{"email":"alice@example.com","password":"wrong-password"}`)

	if wUnknown.Code != http.StatusUnauthorized || wWrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want both %d", wUnknown.Code, wWrongPw.Code, http.StatusUnauthorized)
	}

	if wUnknown.Body.String() != wWrongPw.Body.String() {
		t.Fatalf("failure bodies differ:\n%s\n%s", wUnknown.Body.String(), wWrongPw.Body.String())
	}
}
