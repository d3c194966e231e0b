package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"symptalyze/internal/auth"
	mw "symptalyze/internal/middleware"
	"symptalyze/internal/storage"
)

const testJWTSecret = "test-secret"

type testApp struct {
	router  chi.Router
	store   *storage.MemoryStore
	adapter *storage.Adapter
	manager *auth.Manager
}

// newTestApp wires the real router over an in-memory store, mirroring the
// route table in cmd/server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMemoryStore()
	adapter := storage.NewAdapter(store, log)
	manager := auth.NewManager(context.Background(), adapter, log)

	authHandler := NewAuthHandler(manager, []byte(testJWTSecret))
	userHandler := NewUserHandler(manager)
	entriesHandler := NewEntriesHandler(adapter)
	medicationsHandler := NewMedicationsHandler(adapter)
	dashboardHandler := NewDashboardHandler(adapter)
	importHandler := NewImportHandler(adapter)
	authMW := mw.NewAuthMiddleware([]byte(testJWTSecret))

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Post("/auth/logout", authHandler.Logout)
			pr.Get("/users/me", userHandler.GetMe)
			pr.Post("/entries", entriesHandler.Add)
			pr.Get("/entries", entriesHandler.List)
			pr.Get("/medications", medicationsHandler.List)
			pr.Post("/medications", medicationsHandler.Add)
			pr.Post("/medications/{id}/toggle", medicationsHandler.ToggleTaken)
			pr.Delete("/medications/{id}", medicationsHandler.Remove)
			pr.Get("/dashboard", dashboardHandler.Get)
			pr.Post("/import", importHandler.ImportData)
		})
	})

	return &testApp{router: r, store: store, adapter: adapter, manager: manager}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func signupBody(email string) map[string]string {
	return map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"gender":    "female",
		"birthday":  "1990-03-14",
		"email":     email,
		"password":  "Passw0rd",
	}
}

// signup registers a user and returns their bearer token.
func (a *testApp) signup(t *testing.T, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/signup", "", signupBody(email))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}
