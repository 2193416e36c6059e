package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCORSServer(t *testing.T, origins []string) *Server {
	t.Helper()

	services, _, _, _ := newTestServices()
	server, err := NewServer(Config{CORSOrigins: origins}, services)
	require.NoError(t, err)
	return server
}

func TestCORS_AllowedOrigin(t *testing.T) {
	server := newCORSServer(t, []string{"http://localhost:3000", "http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	rec := doRequest(server, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	server := newCORSServer(t, []string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "http://evil.example.com")

	rec := doRequest(server, req)

	require.Equal(t, http.StatusOK, rec.Code, "request still served, just without CORS headers")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginHeader(t *testing.T) {
	server := newCORSServer(t, []string{"http://localhost:3000"})

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/api/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	server := newCORSServer(t, []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "http://anywhere.example.com")

	rec := doRequest(server, req)

	assert.Equal(t, "http://anywhere.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	server := newCORSServer(t, []string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := doRequest(server, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestCORS_TrailingSlashNormalised(t *testing.T) {
	server := newCORSServer(t, []string{"http://localhost:3000/"})

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := doRequest(server, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
