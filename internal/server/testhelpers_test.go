package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/t0sssik/gsd-ci-cd/internal/app"
	"github.com/t0sssik/gsd-ci-cd/internal/config"
	"github.com/t0sssik/gsd-ci-cd/internal/domain"
	"github.com/t0sssik/gsd-ci-cd/internal/memory"
)

var testTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		AppEnv:      "test",
		Port:        "8000",
		CORSOrigins: "http://localhost",
	}
	store := memory.NewStore()
	svc := app.NewService(store, clockwork.NewFakeClockAt(testTime))
	return NewServer(cfg, svc, store)
}

// doJSON performs a request against the full middleware chain and returns the
// recorder. A nil body sends an empty request.
func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func seedUser(t *testing.T, srv *Server, username, email string) domain.User {
	t.Helper()
	rec := doJSON(t, srv, "POST", "/api/v1/users", map[string]any{
		"username": username,
		"email":    email,
	})
	require.Equal(t, 201, rec.Code)
	return decode[domain.User](t, rec)
}

func seedImage(t *testing.T, srv *Server, userID int, filename string) domain.Image {
	t.Helper()
	rec := doJSON(t, srv, "POST", "/api/v1/images", map[string]any{
		"user_id":   userID,
		"filename":  filename,
		"file_size": 2048,
	})
	require.Equal(t, 201, rec.Code)
	return decode[domain.Image](t, rec)
}

func seedModel(t *testing.T, srv *Server) domain.Model {
	t.Helper()
	rec := doJSON(t, srv, "POST", "/api/v1/models", map[string]any{
		"model_name": "gsd-net",
		"version":    "1.0",
	})
	require.Equal(t, 201, rec.Code)
	return decode[domain.Model](t, rec)
}

func seedAssessment(t *testing.T, srv *Server, imageID, modelID int) domain.Assessment {
	t.Helper()
	rec := doJSON(t, srv, "POST", "/api/v1/assessments", map[string]any{
		"image_id": imageID,
		"model_id": modelID,
	})
	require.Equal(t, 201, rec.Code)
	return decode[domain.Assessment](t, rec)
}
