package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/platewise/backend/internal/models"
)

var (
	// ErrGatewayUnavailable means the recommender could not be reached or
	// timed out. The call is not retried.
	ErrGatewayUnavailable = errors.New("recommendation gateway unavailable")
	// ErrMalformedResponse means the recommender answered with something we
	// could not parse.
	ErrMalformedResponse = errors.New("malformed recommendation response")
)

// GatewayError carries an error payload the recommender produced itself.
// Its message is surfaced to the caller verbatim.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("recommendation gateway error: %s", e.Message)
}

// MealCandidate is one meal of a recommended plan as returned by the gateway.
type MealCandidate struct {
	Name      string        `json:"name"`
	Time      string        `json:"time"`
	Calories  float64       `json:"calories"`
	Macros    models.Macros `json:"macros"`
	Completed bool          `json:"completed"`
}

// Recommender produces a candidate plan from a profile. Implementations are
// synchronous; the call blocks until the recommender answers or the
// configured timeout fires.
type Recommender interface {
	Recommend(ctx context.Context, profile *models.UserProfile) ([]MealCandidate, error)
}

// HTTPRecommender calls the external diet recommendation service over HTTP.
type HTTPRecommender struct {
	url    string
	client *http.Client
}

// NewHTTPRecommender creates a gateway client with an explicit timeout so a
// stuck recommender cannot block requests indefinitely.
func NewHTTPRecommender(url string, timeout time.Duration) *HTTPRecommender {
	return &HTTPRecommender{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// recommendResponse is the recommender's wire format: either a meal list or
// an embedded error payload.
type recommendResponse struct {
	Meals []MealCandidate `json:"meals"`
	Error string          `json:"error"`
}

func (r *HTTPRecommender) Recommend(ctx context.Context, profile *models.UserProfile) ([]MealCandidate, error) {
	body, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	var parsed recommendResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// The recommender reports its own failures inside the payload.
	if parsed.Error != "" {
		return nil, &GatewayError{Message: parsed.Error}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	if len(parsed.Meals) == 0 {
		return nil, fmt.Errorf("%w: no meals in response", ErrMalformedResponse)
	}

	return parsed.Meals, nil
}
