package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/talentsift/talentsift/internal/models"
)

// ExternalStrategy queries a profile enrichment API (a LinkedIn-style
// lookup service) by candidate email. It is disabled unless a base URL
// is configured, so the chain falls through to the model strategy.
type ExternalStrategy struct {
	baseURL string
	client  *http.Client
}

func NewExternalStrategy(baseURL string) *ExternalStrategy {
	return &ExternalStrategy{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (*ExternalStrategy) Name() string { return "external" }

func (s *ExternalStrategy) Enrich(ctx context.Context, profile models.CandidateProfile) (Result, error) {
	if s.baseURL == "" {
		return Result{}, fmt.Errorf("external enrichment not configured")
	}
	if profile.Email == "" {
		return Result{}, fmt.Errorf("external enrichment requires an email")
	}

	endpoint := fmt.Sprintf("%s/profiles?email=%s", s.baseURL, url.QueryEscape(profile.Email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, &models.ExternalServiceError{Service: "external", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, &models.ExternalServiceError{
			Service: "external",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var body struct {
		Skills []string `json:"skills"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, &models.ExternalServiceError{Service: "external", Err: err}
	}

	return Result{Skills: body.Skills}, nil
}
