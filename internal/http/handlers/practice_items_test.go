package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/strettonotes/strettonotes/internal/domain/practiceitem"
	"github.com/strettonotes/strettonotes/internal/domain/user"
	"github.com/strettonotes/strettonotes/internal/http/handlers"
	"github.com/strettonotes/strettonotes/internal/http/middlewares"
)

// Fake repository implementation of the handlers.PracticeItemsStore interface

type fakePracticeItemsRepo struct {
	createFn func(ctx context.Context, ownerID string, req practiceitem.CreateRequest) (practiceitem.PracticeItem, error)
	listFn   func(ctx context.Context, ownerID string, filter practiceitem.ListFilter) ([]practiceitem.PracticeItem, error)
	getFn    func(ctx context.Context, ownerID, id string) (practiceitem.PracticeItem, error)
	updateFn func(ctx context.Context, ownerID, id string, req practiceitem.UpdateRequest) (practiceitem.PracticeItem, error)
	deleteFn func(ctx context.Context, ownerID, id string) error
}

func (f *fakePracticeItemsRepo) Create(ctx context.Context, ownerID string, req practiceitem.CreateRequest) (practiceitem.PracticeItem, error) {
	if f.createFn != nil {
		return f.createFn(ctx, ownerID, req)
	}
	return practiceitem.PracticeItem{}, nil
}

func (f *fakePracticeItemsRepo) List(ctx context.Context, ownerID string, filter practiceitem.ListFilter) ([]practiceitem.PracticeItem, error) {
	if f.listFn != nil {
		return f.listFn(ctx, ownerID, filter)
	}
	return []practiceitem.PracticeItem{}, nil
}

func (f *fakePracticeItemsRepo) GetByID(ctx context.Context, ownerID, id string) (practiceitem.PracticeItem, error) {
	if f.getFn != nil {
		return f.getFn(ctx, ownerID, id)
	}
	return practiceitem.PracticeItem{}, practiceitem.ErrNotFound
}

func (f *fakePracticeItemsRepo) Update(ctx context.Context, ownerID, id string, req practiceitem.UpdateRequest) (practiceitem.PracticeItem, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, ownerID, id, req)
	}
	return practiceitem.PracticeItem{}, practiceitem.ErrNotFound
}

func (f *fakePracticeItemsRepo) Delete(ctx context.Context, ownerID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, ownerID, id)
	}
	return practiceitem.ErrNotFound
}

// identityAs mimics the auth middleware by stashing a resolved identity
func identityAs(u user.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(middlewares.CtxIdentity), u)
		c.Next()
	}
}

func setupItemsRouter(u user.User, repo *fakePracticeItemsRepo) *gin.Engine {
	h := handlers.NewPracticeItemsHandler(repo)

	r := gin.New()

	g := r.Group("/practice-items", identityAs(u))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request

	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePracticeItemStampsOwner(t *testing.T) {
	alice := user.User{ID: uuid.NewString(), Email: "alice@example.com"}

	var gotOwner string

	repo := &fakePracticeItemsRepo{
		createFn: func(ctx context.Context, ownerID string, req practiceitem.CreateRequest) (practiceitem.PracticeItem, error) {
			gotOwner = ownerID
			return practiceitem.NewFromCreateRequest(ownerID, req), nil
		},
	}

	r := setupItemsRouter(alice, repo)

	// a client-supplied user_id must be ignored
	w := doJSON(r, http.MethodPost, "/practice-items", `{"title":"Chopin Nocturne Op. 9 No. 2","composer":"Chopin","user_id":"someone-else"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
	}

	if gotOwner != alice.ID {
		t.Fatalf("owner stamped = %q, want %q", gotOwner, alice.ID)
	}

	var created practiceitem.PracticeItem
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if created.UserID != alice.ID {
		t.Fatalf("created.UserID = %q, want %q", created.UserID, alice.ID)
	}
}

func TestListPracticeItemsScopedToCaller(t *testing.T) {
	alice := user.User{ID: uuid.NewString(), Email: "alice@example.com"}

	repo := &fakePracticeItemsRepo{
		listFn: func(ctx context.Context, ownerID string, filter practiceitem.ListFilter) ([]practiceitem.PracticeItem, error) {
			if ownerID != alice.ID {
				t.Fatalf("list queried with owner %q, want %q", ownerID, alice.ID)
			}
			if filter.Skip != 5 || filter.Limit != 20 {
				t.Fatalf("filter = %+v, want skip=5 limit=20", filter)
			}
			return []practiceitem.PracticeItem{}, nil
		},
	}

	r := setupItemsRouter(alice, repo)

	w := doJSON(r, http.MethodGet, "/practice-items?skip=5&limit=20", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestGetPracticeItem(t *testing.T) {
	alice := user.User{ID: uuid.NewString(), Email: "alice@example.com"}
	itemID := uuid.NewString()

	tests := []struct {
		name           string
		path           string
		repoSetUp      func(*fakePracticeItemsRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			path: "/practice-items/" + itemID,
			repoSetUp: func(f *fakePracticeItemsRepo) {
				f.getFn = func(ctx context.Context, ownerID, id string) (practiceitem.PracticeItem, error) {
					return practiceitem.PracticeItem{ID: id, UserID: ownerID, Title: "Etude"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// the repo folds ownership into the lookup, so another user's item
			// surfaces exactly like a nonexistent one
			name: "foreign_or_missing",
			path: "/practice-items/" + itemID,
			repoSetUp: func(f *fakePracticeItemsRepo) {
				f.getFn = func(ctx context.Context, ownerID, id string) (practiceitem.PracticeItem, error) {
					return practiceitem.PracticeItem{}, practiceitem.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "malformed_id",
			path: "/practice-items/not-a-uuid",
			repoSetUp: func(f *fakePracticeItemsRepo) {
				f.getFn = func(ctx context.Context, ownerID, id string) (practiceitem.PracticeItem, error) {
					t.Fatalf("store must not be queried for a malformed id")
					return practiceitem.PracticeItem{}, nil
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			path: "/practice-items/" + itemID,
			repoSetUp: func(f *fakePracticeItemsRepo) {
				f.getFn = func(ctx context.Context, ownerID, id string) (practiceitem.PracticeItem, error) {
					return practiceitem.PracticeItem{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePracticeItemsRepo{}
			tt.repoSetUp(repo)

			r := setupItemsRouter(alice, repo)

			w := doJSON(r, http.MethodGet, tt.path, "")

			if w.Code != tt.wantStatusCode {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestUpdatePracticeItemPartial(t *testing.T) {
	alice := user.User{ID: uuid.NewString(), Email: "alice@example.com"}
	itemID := uuid.NewString()

	repo := &fakePracticeItemsRepo{
		updateFn: func(ctx context.Context, ownerID, id string, req practiceitem.UpdateRequest) (practiceitem.PracticeItem, error) {
			if req.Title == nil || *req.Title != "Renamed" {
				t.Fatalf("title not carried: %+v", req)
			}
			if req.Composer != nil || req.Genre != nil || req.Tags != nil {
				t.Fatalf("unset fields must stay nil: %+v", req)
			}
			now := time.Now().UTC()
			return practiceitem.PracticeItem{ID: id, UserID: ownerID, Title: *req.Title, UpdatedAt: now}, nil
		},
	}

	r := setupItemsRouter(alice, repo)

	w := doJSON(r, http.MethodPut, "/practice-items/"+itemID, `{"title":"Renamed"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestDeletePracticeItem(t *testing.T) {
	alice := user.User{ID: uuid.NewString(), Email: "alice@example.com"}
	itemID := uuid.NewString()

	tests := []struct {
		name           string
		deleteErr      error
		wantStatusCode int
	}{
		{"success", nil, http.StatusOK},
		{"foreign_or_missing", practiceitem.ErrNotFound, http.StatusNotFound},
		{"repo_error", errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePracticeItemsRepo{
				deleteFn: func(ctx context.Context, ownerID, id string) error {
					return tt.deleteErr
				},
			}

			r := setupItemsRouter(alice, repo)

			w := doJSON(r, http.MethodDelete, "/practice-items/"+itemID, "")

			if w.Code != tt.wantStatusCode {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}
