// Package genaihub provides an LLM service adapter using SAP
// Generative AI Hub. Models are served behind AI Core deployments;
// the adapter resolves the deployment for a model once and then calls
// its OpenAI-compatible chat completions endpoint.
package genaihub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultModel      = "gpt-4o"
	DefaultAPIVersion = "2023-05-15"
	DefaultTimeout    = 120 * time.Second
)

// Config holds configuration for the GenAI Hub LLM service.
type Config struct {
	// APIURL is the AI Core API base URL without the /v2 suffix (required).
	APIURL string

	// ResourceGroup is the AI Core resource group hosting the model
	// deployments (required).
	ResourceGroup string

	// Model is the default model used when a request names none
	// (default: gpt-4o).
	Model string

	// APIVersion is the api-version query parameter for the inference
	// endpoint (default: 2023-05-15).
	APIVersion string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService generates answers through SAP Generative AI Hub.
type LLMService struct {
	client        *http.Client
	baseURL       string
	resourceGroup string
	model         string
	apiVersion    string
	tokens        driven.TokenProvider

	// deployments caches model name -> inference URL. AI Core
	// deployments change rarely; the cache refreshes only on a miss.
	mu          sync.RWMutex
	deployments map[string]string
}

// chatCompletionRequest is the deployment's /chat/completions request
// format. The deployment is already bound to one model, so no model
// field is sent.
type chatCompletionRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// chatMessage is the chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// deploymentsResponse is the GET /lm/deployments envelope.
type deploymentsResponse struct {
	Resources []deploymentResource `json:"resources"`
}

// deploymentResource is one AI Core deployment. The served model name
// sits in the backend details block.
type deploymentResource struct {
	ID            string `json:"id"`
	DeploymentURL string `json:"deploymentUrl"`
	Status        string `json:"status"`
	Details       struct {
		Resources struct {
			BackendDetails struct {
				Model struct {
					Name    string `json:"name"`
					Version string `json:"version"`
				} `json:"model"`
			} `json:"backend_details"`
		} `json:"resources"`
	} `json:"details"`
}

// NewLLMService creates a new GenAI Hub LLM service.
func NewLLMService(cfg Config, tokens driven.TokenProvider) (*LLMService, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("genaihub: API URL is required")
	}
	if cfg.ResourceGroup == "" {
		return nil, fmt.Errorf("genaihub: resource group is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("genaihub: token provider is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:       strings.TrimRight(cfg.APIURL, "/") + "/v2",
		resourceGroup: cfg.ResourceGroup,
		model:         cfg.Model,
		apiVersion:    cfg.APIVersion,
		tokens:        tokens,
		deployments:   make(map[string]string),
	}, nil
}

// Generate produces a text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = s.model
	}

	deploymentURL, err := s.deploymentURL(ctx, model)
	if err != nil {
		return "", err
	}

	reqBody := chatCompletionRequest{
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		reqBody.MaxTokens = opts.MaxTokens
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions?api-version=%s", deploymentURL, s.apiVersion)
	req, err := s.authedRequest(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	// Throttling responses are not always JSON, so the status check
	// runs before decoding.
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: %s", domain.ErrRateLimited, strings.TrimSpace(string(body)))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("genaihub error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genaihub error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("genaihub: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// deploymentURL resolves the inference URL for a model, refreshing the
// deployment cache on a miss.
func (s *LLMService) deploymentURL(ctx context.Context, model string) (string, error) {
	s.mu.RLock()
	url, ok := s.deployments[model]
	s.mu.RUnlock()
	if ok {
		return url, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if url, ok := s.deployments[model]; ok {
		return url, nil
	}

	if err := s.refreshDeployments(ctx); err != nil {
		return "", err
	}

	url, ok = s.deployments[model]
	if !ok {
		return "", fmt.Errorf("genaihub: no running deployment serves model %q", model)
	}
	return url, nil
}

// refreshDeployments fetches all deployments and indexes the running
// ones by served model name. Caller must hold the write lock.
func (s *LLMService) refreshDeployments(ctx context.Context) error {
	req, err := s.authedRequest(ctx, http.MethodGet, s.baseURL+"/lm/deployments", http.NoBody)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read deployments response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("genaihub: list deployments returned status %d: %s", resp.StatusCode, string(body))
	}

	var deployments deploymentsResponse
	if err := json.Unmarshal(body, &deployments); err != nil {
		return fmt.Errorf("decode deployments response: %w", err)
	}

	for _, d := range deployments.Resources {
		name := d.Details.Resources.BackendDetails.Model.Name
		if d.Status != "RUNNING" || name == "" || d.DeploymentURL == "" {
			continue
		}
		s.deployments[name] = d.DeploymentURL
	}

	return nil
}

// authedRequest builds a request carrying the bearer token and
// resource group headers.
func (s *LLMService) authedRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("AI-Resource-Group", s.resourceGroup)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// ModelName returns the default model the service generates with.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by listing deployments.
// This is a lightweight check that validates credentials without
// running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := s.authedRequest(ctx, http.MethodGet, s.baseURL+"/lm/deployments", http.NoBody)
	if err != nil {
		return fmt.Errorf("genaihub: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("genaihub: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("genaihub: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("genaihub: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
