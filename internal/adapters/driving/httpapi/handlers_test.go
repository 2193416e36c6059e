package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

func newTestServer(t *testing.T) (*Server, *mockDocumentService, *mockChatService, *mockCollectionService) {
	t.Helper()

	services, docs, chat, collections := newTestServices()
	server, err := NewServer(Config{Version: "1.0.0"}, services)
	require.NoError(t, err)

	return server, docs, chat, collections
}

// doRequest drives a request through the router and returns the
// response recorder.
func doRequest(server *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

// multipartUpload builds a multipart body with a file part and any
// extra form fields.
func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return buf, writer.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleHealth(t *testing.T) {
	server, _, _, _ := newTestServer(t)

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/api/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "groundchat", body["service"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestHandleUpload(t *testing.T) {
	server, docs, _, _ := newTestServer(t)
	docs.result = &domain.UploadResult{
		CollectionID: "report.txt_a1b2c3d4",
		DocumentName: "report.txt",
		ChunksCount:  3,
		Message:      "Successfully uploaded document 'report.txt'",
	}

	buf, contentType := multipartUpload(t, "report.txt", []byte("hello world"), map[string]string{
		"chunk_size": "200",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(server, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "report.txt_a1b2c3d4", body["collection_id"])
	assert.Equal(t, "report.txt", body["document_name"])
	assert.Equal(t, float64(3), body["chunks_count"])

	assert.Equal(t, "report.txt", docs.gotReq.Filename)
	assert.Equal(t, []byte("hello world"), docs.gotReq.Data)
	assert.Equal(t, 200, docs.gotReq.ChunkSize)
}

func TestHandleUpload_DefaultChunkSize(t *testing.T) {
	server, docs, _, _ := newTestServer(t)
	docs.result = &domain.UploadResult{CollectionID: "c", DocumentName: "d", ChunksCount: 1}

	buf, contentType := multipartUpload(t, "notes.txt", []byte("text"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(server, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, docs.gotReq.ChunkSize, "absent chunk_size should defer to the service default")
}

func TestHandleUpload_MissingFile(t *testing.T) {
	server, docs, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	rec := doRequest(server, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "file is required")
	assert.False(t, docs.called)
}

func TestHandleUpload_InvalidChunkSize(t *testing.T) {
	server, docs, _, _ := newTestServer(t)

	for _, raw := range []string{"abc", "-5", "0"} {
		buf, contentType := multipartUpload(t, "a.txt", []byte("text"), map[string]string{"chunk_size": raw})
		req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
		req.Header.Set("Content-Type", contentType)

		rec := doRequest(server, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "chunk_size=%s", raw)
		assert.Contains(t, decodeBody(t, rec)["error"], "chunk_size")
	}
	assert.False(t, docs.called)
}

func TestHandleUpload_UnsupportedFormat(t *testing.T) {
	server, docs, _, _ := newTestServer(t)
	docs.err = fmt.Errorf("extract text: %w", domain.ErrUnsupportedFormat)

	buf, contentType := multipartUpload(t, "image.png", []byte{0x89, 0x50}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(server, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "unsupported")
}

func TestHandleUpload_ServerError(t *testing.T) {
	server, docs, _, _ := newTestServer(t)
	docs.err = fmt.Errorf("create collection: %w", domain.ErrCollectionCreateFailed)

	buf, contentType := multipartUpload(t, "a.txt", []byte("text"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(server, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleChat(t *testing.T) {
	server, _, chat, _ := newTestServer(t)
	chat.result = &domain.ChatResult{
		CollectionID: "col-1",
		Query:        "what is this?",
		Response:     "An answer.",
		Chunks: []domain.RetrievedChunk{
			{Content: "evidence", Score: 0.9, Metadata: map[string]string{"chunk_index": "0"}},
		},
		ChunksFound: 1,
	}

	reqBody := `{
		"collection_id": "col-1",
		"query": "what is this?",
		"max_chunks": 3,
		"llm_model": "gpt-4o",
		"llm_temperature": 0.2,
		"llm_max_tokens": 256
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(server, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "col-1", body["collection_id"])
	assert.Equal(t, "An answer.", body["response"])
	assert.Equal(t, float64(1), body["chunks_found"])

	assert.Equal(t, "col-1", chat.gotReq.CollectionID)
	assert.Equal(t, "what is this?", chat.gotReq.Query)
	assert.Equal(t, 3, chat.gotReq.MaxChunks)
	assert.Equal(t, "gpt-4o", chat.gotReq.Model)
	require.NotNil(t, chat.gotReq.Temperature)
	assert.InDelta(t, 0.2, *chat.gotReq.Temperature, 0.0001)
	assert.Equal(t, 256, chat.gotReq.MaxTokens)
}

func TestHandleChat_OptionalFieldsDefault(t *testing.T) {
	server, _, chat, _ := newTestServer(t)
	chat.result = &domain.ChatResult{CollectionID: "col-1", Query: "q", Response: "a"}

	reqBody := `{"collection_id": "col-1", "query": "q"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(server, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, chat.gotReq.MaxChunks)
	assert.Empty(t, chat.gotReq.Model)
	assert.Nil(t, chat.gotReq.Temperature, "absent temperature must stay nil so the default applies")
	assert.Zero(t, chat.gotReq.MaxTokens)
}

func TestHandleChat_ExplicitZeroTemperature(t *testing.T) {
	server, _, chat, _ := newTestServer(t)
	chat.result = &domain.ChatResult{CollectionID: "col-1", Query: "q", Response: "a"}

	reqBody := `{"collection_id": "col-1", "query": "q", "llm_temperature": 0.0}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(server, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, chat.gotReq.Temperature)
	assert.Zero(t, *chat.gotReq.Temperature)
}

func TestHandleChat_MissingRequiredFields(t *testing.T) {
	server, _, _, _ := newTestServer(t)

	for _, reqBody := range []string{
		`{}`,
		`{"collection_id": "col-1"}`,
		`{"query": "q"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")

		rec := doRequest(server, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", reqBody)
	}
}

func TestHandleChat_InvalidInput(t *testing.T) {
	server, _, chat, _ := newTestServer(t)
	chat.err = fmt.Errorf("%w: max_chunks must be between 1 and 20", domain.ErrInvalidInput)

	reqBody := `{"collection_id": "col-1", "query": "q", "max_chunks": 50}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(server, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "max_chunks")
}

func TestHandleChat_CollectionNotFound(t *testing.T) {
	server, _, chat, _ := newTestServer(t)
	chat.err = fmt.Errorf("search collection col-1: %w", domain.ErrNotFound)

	reqBody := `{"collection_id": "col-1", "query": "q"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(server, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleChat_SearchFailure(t *testing.T) {
	server, _, chat, _ := newTestServer(t)
	chat.err = fmt.Errorf("search collection col-1: %w", domain.ErrGroundingUnavailable)

	reqBody := `{"collection_id": "col-1", "query": "q"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(server, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleListCollections(t *testing.T) {
	server, _, _, collections := newTestServer(t)
	collections.collections = []domain.Collection{
		{ID: "col-1", Title: "report.txt_a1b2c3d4"},
		{ID: "col-2", Title: "notes.txt_b2c3d4e5"},
	}

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/api/collections", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
	list, ok := body["collections"].([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	first, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "col-1", first["id"])
	assert.Equal(t, "report.txt_a1b2c3d4", first["title"])
}

func TestHandleListCollections_Empty(t *testing.T) {
	server, _, _, _ := newTestServer(t)

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/api/collections", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["count"])
	assert.NotNil(t, body["collections"], "empty list should serialize as [], not null")
}

func TestHandleListCollections_Error(t *testing.T) {
	server, _, _, collections := newTestServer(t)
	collections.listErr = fmt.Errorf("list collections: %w", domain.ErrGroundingUnavailable)

	rec := doRequest(server, httptest.NewRequest(http.MethodGet, "/api/collections", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleDeleteCollection(t *testing.T) {
	server, _, _, collections := newTestServer(t)

	rec := doRequest(server, httptest.NewRequest(http.MethodDelete, "/api/collections/col-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Collection deleted successfully", decodeBody(t, rec)["message"])
	assert.Equal(t, "col-1", collections.deletedID)
}

func TestHandleDeleteCollection_NotFound(t *testing.T) {
	server, _, _, collections := newTestServer(t)
	collections.deleteErr = fmt.Errorf("delete collection col-9: %w", domain.ErrNotFound)

	rec := doRequest(server, httptest.NewRequest(http.MethodDelete, "/api/collections/col-9", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Collection not found or could not be deleted", decodeBody(t, rec)["error"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unsupported format", domain.ErrUnsupportedFormat, http.StatusBadRequest},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"wrapped invalid input", fmt.Errorf("chat: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"grounding unavailable", domain.ErrGroundingUnavailable, http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
