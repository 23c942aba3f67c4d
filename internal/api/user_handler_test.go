package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fvidalmarques/userhub-api/internal/api/shared"
	"github.com/fvidalmarques/userhub-api/internal/service"
	"github.com/fvidalmarques/userhub-api/internal/service/auth"
	"github.com/fvidalmarques/userhub-api/internal/store"
)

// stubUserService implements service.UserService with overridable function
// fields, so each test wires only the path it exercises.
type stubUserService struct {
	registerFn   func(ctx context.Context, input service.RegisterInput) (*service.UserResponse, error)
	loginFn      func(ctx context.Context, input service.LoginInput) (*service.AuthenticatedSession, error)
	getUserFn    func(ctx context.Context, id int64) (*service.UserResponse, error)
	listUsersFn  func(ctx context.Context, limit, offset int) ([]service.UserResponse, error)
	updateUserFn func(ctx context.Context, id int64, input service.UpdateUserInput) (*service.UserResponse, error)
	patchUserFn  func(ctx context.Context, id int64, input service.PatchUserInput) (*service.UserResponse, error)
	deleteUserFn func(ctx context.Context, id int64) error
}

var _ service.UserService = (*stubUserService)(nil)

func (s *stubUserService) Register(ctx context.Context, input service.RegisterInput) (*service.UserResponse, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, input service.LoginInput) (*service.AuthenticatedSession, error) {
	return s.loginFn(ctx, input)
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*service.UserResponse, error) {
	return s.getUserFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context, limit, offset int) ([]service.UserResponse, error) {
	return s.listUsersFn(ctx, limit, offset)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id int64, input service.UpdateUserInput) (*service.UserResponse, error) {
	return s.updateUserFn(ctx, id, input)
}

func (s *stubUserService) PatchUser(ctx context.Context, id int64, input service.PatchUserInput) (*service.UserResponse, error) {
	return s.patchUserFn(ctx, id, input)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id int64) error {
	return s.deleteUserFn(ctx, id)
}

func newTestRouter(svc service.UserService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewUserHandler(svc, logger)

	r := chi.NewRouter()
	r.Post("/auth/register", handler.Register)
	r.Post("/auth/login", handler.Login)
	r.Get("/auth", handler.List)
	r.Get("/auth/{id}", handler.GetByID)
	r.Put("/auth/{id}", handler.Update)
	r.Patch("/auth/{id}", handler.Patch)
	r.Delete("/auth/{id}", handler.Delete)
	r.Get("/auth/me", handler.Me) // chi matches the literal route before {id}
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) shared.Envelope {
	t.Helper()

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func sampleUser() *service.UserResponse {
	return &service.UserResponse{
		ID:        1,
		Name:      "Alice Johnson",
		Email:     "alice@example.com",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRegisterSuccess(t *testing.T) {
	svc := &stubUserService{
		registerFn: func(ctx context.Context, input service.RegisterInput) (*service.UserResponse, error) {
			assert.Equal(t, "Alice Johnson", input.Name)
			assert.Equal(t, "alice@example.com", input.Email)
			return sampleUser(), nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Alice Johnson",
		"email":    "alice@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Message)

	body := rec.Body.String()
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := &stubUserService{
		registerFn: func(ctx context.Context, input service.RegisterInput) (*service.UserResponse, error) {
			return nil, store.ErrEmailExists
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Alice Johnson",
		"email":    "alice@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, strings.ToLower(env.Message), "exists")
}

func TestRegisterValidation(t *testing.T) {
	registerCalled := false
	svc := &stubUserService{
		registerFn: func(ctx context.Context, input service.RegisterInput) (*service.UserResponse, error) {
			registerCalled = true
			return sampleUser(), nil
		},
	}
	router := newTestRouter(svc)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"short name", map[string]string{"name": "Al", "email": "alice@example.com", "password": "password123"}},
		{"bad email", map[string]string{"name": "Alice Johnson", "email": "not-an-email", "password": "password123"}},
		{"short password", map[string]string{"name": "Alice Johnson", "email": "alice@example.com", "password": "short"}},
		{"missing fields", map[string]string{"name": "Alice Johnson"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/auth/register", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, decodeEnvelope(t, rec).Success)
		})
	}
	assert.False(t, registerCalled)
}

func TestLoginSuccess(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(ctx context.Context, input service.LoginInput) (*service.AuthenticatedSession, error) {
			return &service.AuthenticatedSession{
				User:  *sampleUser(),
				Token: "signed.jwt.token",
			}, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(ctx context.Context, input service.LoginInput) (*service.AuthenticatedSession, error) {
			return nil, store.ErrUserNotFound
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(ctx context.Context, input service.LoginInput) (*service.AuthenticatedSession, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestGetByIDSuccess(t *testing.T) {
	svc := &stubUserService{
		getUserFn: func(ctx context.Context, id int64) (*service.UserResponse, error) {
			assert.Equal(t, int64(1), id)
			return sampleUser(), nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/auth/1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", data["email"])
}

func TestGetByIDNotFound(t *testing.T) {
	svc := &stubUserService{
		getUserFn: func(ctx context.Context, id int64) (*service.UserResponse, error) {
			return nil, store.ErrUserNotFound
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/auth/999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetByIDMalformed(t *testing.T) {
	svc := &stubUserService{
		getUserFn: func(ctx context.Context, id int64) (*service.UserResponse, error) {
			t.Fatal("service should not be called for a malformed id")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/auth/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPassesPagination(t *testing.T) {
	svc := &stubUserService{
		listUsersFn: func(ctx context.Context, limit, offset int) ([]service.UserResponse, error) {
			assert.Equal(t, 5, limit)
			assert.Equal(t, 10, offset)
			return []service.UserResponse{*sampleUser()}, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/auth?limit=5&skip=10", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Len(t, env.Data, 1)
}

func TestListDefaults(t *testing.T) {
	svc := &stubUserService{
		listUsersFn: func(ctx context.Context, limit, offset int) ([]service.UserResponse, error) {
			assert.Equal(t, defaultListLimit, limit)
			assert.Equal(t, defaultListOffset, offset)
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/auth", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListRejectsBadPagination(t *testing.T) {
	svc := &stubUserService{
		listUsersFn: func(ctx context.Context, limit, offset int) ([]service.UserResponse, error) {
			t.Fatal("service should not be called with invalid pagination")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	for _, target := range []string{
		"/auth?limit=0",
		"/auth?limit=-3",
		"/auth?limit=abc",
		"/auth?skip=-1",
		"/auth?skip=xyz",
	} {
		rec := doJSON(t, router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestUpdateSuccess(t *testing.T) {
	svc := &stubUserService{
		updateUserFn: func(ctx context.Context, id int64, input service.UpdateUserInput) (*service.UserResponse, error) {
			assert.Equal(t, int64(1), id)
			assert.Equal(t, "Alice Updated", input.Name)
			updated := *sampleUser()
			updated.Name = input.Name
			return &updated, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPut, "/auth/1", map[string]string{
		"name":     "Alice Updated",
		"email":    "alice@example.com",
		"password": "newpassword123",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestUpdateRequiresAllFields(t *testing.T) {
	svc := &stubUserService{
		updateUserFn: func(ctx context.Context, id int64, input service.UpdateUserInput) (*service.UserResponse, error) {
			t.Fatal("service should not be called for an incomplete replacement")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPut, "/auth/1", map[string]string{
		"name": "Alice Updated",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEmailConflict(t *testing.T) {
	svc := &stubUserService{
		updateUserFn: func(ctx context.Context, id int64, input service.UpdateUserInput) (*service.UserResponse, error) {
			return nil, store.ErrEmailExists
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPut, "/auth/1", map[string]string{
		"name":     "Alice Johnson",
		"email":    "taken@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, strings.ToLower(decodeEnvelope(t, rec).Message), "exists")
}

func TestPatchPartialFields(t *testing.T) {
	svc := &stubUserService{
		patchUserFn: func(ctx context.Context, id int64, input service.PatchUserInput) (*service.UserResponse, error) {
			require.NotNil(t, input.Name)
			assert.Nil(t, input.Email)
			assert.Nil(t, input.Password)
			updated := *sampleUser()
			updated.Name = *input.Name
			return &updated, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPatch, "/auth/1", map[string]string{
		"name": "Alice Renamed",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestPatchEmptyBody(t *testing.T) {
	svc := &stubUserService{
		patchUserFn: func(ctx context.Context, id int64, input service.PatchUserInput) (*service.UserResponse, error) {
			t.Fatal("service should not be called for an empty patch")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPatch, "/auth/1", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchInvalidField(t *testing.T) {
	svc := &stubUserService{
		patchUserFn: func(ctx context.Context, id int64, input service.PatchUserInput) (*service.UserResponse, error) {
			t.Fatal("service should not be called for an invalid patch")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPatch, "/auth/1", map[string]string{
		"name": "Al",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSuccess(t *testing.T) {
	deleted := int64(0)
	svc := &stubUserService{
		deleteUserFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodDelete, "/auth/1", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, int64(1), deleted)
}

func TestDeleteNotFound(t *testing.T) {
	svc := &stubUserService{
		deleteUserFn: func(ctx context.Context, id int64) error {
			return store.ErrUserNotFound
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodDelete, "/auth/42", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeReturnsClaimsUser(t *testing.T) {
	svc := &stubUserService{
		getUserFn: func(ctx context.Context, id int64) (*service.UserResponse, error) {
			assert.Equal(t, int64(1), id)
			return sampleUser(), nil
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewUserHandler(svc, logger)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	claims := &auth.Claims{UserID: 1, Email: "alice@example.com", Role: auth.DefaultRole}
	req = req.WithContext(context.WithValue(req.Context(), shared.ClaimsContextKey, claims))

	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestMeWithoutClaims(t *testing.T) {
	svc := &stubUserService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewUserHandler(svc, logger)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
