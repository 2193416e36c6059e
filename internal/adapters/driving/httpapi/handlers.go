package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// healthResponse is the GET /api/ body.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// chatRequest is the POST /api/chat body. Zero-valued optional fields
// take the configured defaults; the chat service validates ranges.
type chatRequest struct {
	CollectionID   string   `json:"collection_id" binding:"required"`
	Query          string   `json:"query" binding:"required"`
	MaxChunks      int      `json:"max_chunks"`
	LLMModel       string   `json:"llm_model"`
	LLMTemperature *float64 `json:"llm_temperature"`
	LLMMaxTokens   int      `json:"llm_max_tokens"`
}

// handleHealth reports service status for monitors and probes.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: s.cfg.Version,
	})
}

// handleUpload accepts a multipart document upload and runs the
// ingestion pipeline. The optional chunk_size form field overrides the
// configured chunk target size.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	chunkSize := 0
	if raw := c.PostForm("chunk_size"); raw != "" {
		chunkSize, err = strconv.Atoi(raw)
		if err != nil || chunkSize <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chunk_size must be a positive integer"})
			return
		}
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file: " + err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file: " + err.Error()})
		return
	}

	result, err := s.services.Documents.Upload(c.Request.Context(), domain.UploadRequest{
		Filename:  fileHeader.Filename,
		Data:      data,
		ChunkSize: chunkSize,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleChat answers a question grounded in a collection.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.services.Chat.Chat(c.Request.Context(), domain.ChatRequest{
		CollectionID: req.CollectionID,
		Query:        req.Query,
		MaxChunks:    req.MaxChunks,
		Model:        req.LLMModel,
		Temperature:  req.LLMTemperature,
		MaxTokens:    req.LLMMaxTokens,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleListCollections lists all collections in the resource group.
func (s *Server) handleListCollections(c *gin.Context) {
	collections, err := s.services.Collections.List(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if collections == nil {
		collections = []domain.Collection{}
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"count":       len(collections),
	})
}

// handleDeleteCollection removes a collection and its documents.
func (s *Server) handleDeleteCollection(c *gin.Context) {
	err := s.services.Collections.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found or could not be deleted"})
			return
		}
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted successfully"})
}

// statusFor maps domain errors to HTTP status codes. Client input
// problems are 4xx; everything else is a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
