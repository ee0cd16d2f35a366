// Package client talks to the SalesAI backend over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/salesai/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

var (
	// ErrAnalysisAPI is returned when the analysis endpoint call fails
	ErrAnalysisAPI = errors.New("Failed to call analysis API")

	// ErrRecommendAPI is returned when the recommendation endpoint call fails
	ErrRecommendAPI = errors.New("Failed to call recommendSolutions API")

	// ErrCompaniesAPI is returned when the autocomplete endpoint call fails
	ErrCompaniesAPI = errors.New("Failed to call companies API")
)

// APIError is a non-2xx answer from the backend. Its message is the server's
// {"error"} field when present, otherwise the generic message of Op.
type APIError struct {
	Op      error
	Status  int
	Message string
	Raw     string // unparseable completion text for INVALID_JSON answers
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Op.Error()
}

func (e *APIError) Unwrap() error {
	return e.Op
}

// Client calls the two analysis endpoints and the catalog helpers
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        logrus.FieldLogger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client, which has no timeout
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the backend rooted at baseURL, e.g. http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		c.log = discard
	}
	return c
}

// GenerateAnalysis posts the customer facts and returns the report
func (c *Client) GenerateAnalysis(ctx context.Context, data domain.CustomerFormData) (*domain.AnalysisReport, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/generateAnalysis", data, ErrAnalysisAPI)
	if err != nil {
		return nil, err
	}

	var report domain.AnalysisReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrAnalysisAPI, err)
	}
	return &report, nil
}

// RecommendSolutions posts the pain points. The endpoint may answer either
// {"solutions": [...]} or a bare array; both are normalized.
func (c *Client) RecommendSolutions(ctx context.Context, painPoints []string) (domain.RecommendationResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/recommendSolutions", domain.RecommendRequest{PainPoints: painPoints}, ErrRecommendAPI)
	if err != nil {
		return domain.RecommendationResult{}, err
	}
	return decodeRecommendation(body)
}

// Companies asks the backend for autocomplete suggestions
func (c *Client) Companies(ctx context.Context, query string) ([]domain.CompanyProfile, error) {
	path := "/api/companies?" + url.Values{"q": {query}}.Encode()
	body, err := c.do(ctx, http.MethodGet, path, nil, ErrCompaniesAPI)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Companies []domain.CompanyProfile `json:"companies"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrCompaniesAPI, err)
	}
	return resp.Companies, nil
}

// decodeRecommendation accepts both wire shapes of a recommendation response
func decodeRecommendation(body []byte) (domain.RecommendationResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return domain.RecommendationResult{}, fmt.Errorf("%w: empty response", ErrRecommendAPI)
	}

	result := domain.RecommendationResult{Shape: domain.ShapeWrapped}
	switch trimmed[0] {
	case '[':
		result.Shape = domain.ShapeBare
		if err := json.Unmarshal(trimmed, &result.Solutions); err != nil {
			return domain.RecommendationResult{}, fmt.Errorf("%w: failed to decode response: %v", ErrRecommendAPI, err)
		}
	case '{':
		var wrapped domain.RecommendResponse
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return domain.RecommendationResult{}, fmt.Errorf("%w: failed to decode response: %v", ErrRecommendAPI, err)
		}
		result.Solutions = wrapped.Solutions
	default:
		return domain.RecommendationResult{}, fmt.Errorf("%w: unexpected response", ErrRecommendAPI)
	}

	if result.Solutions == nil {
		result.Solutions = []domain.RecommendedSystexSolution{}
	}
	return result, nil
}

// do executes a request and returns the body of a 2xx answer
func (c *Client) do(ctx context.Context, method, path string, payload any, op error) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", op, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", "SalesAI/1.0")

	log := c.log.WithFields(logrus.Fields{"method": method, "path": path, "request_id": requestID})
	log.Debug("calling backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("backend unreachable")
		return nil, fmt.Errorf("%w: %v", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op, Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
			Raw   string `json:"raw"`
		}
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Message = errBody.Error
			apiErr.Raw = errBody.Raw
		}
		log.WithField("status", resp.StatusCode).Warn("backend returned an error")
		return nil, apiErr
	}

	return body, nil
}
