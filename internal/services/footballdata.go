// football-data.org v4 implementation of [Catalog]
//
// Response types based on https://www.football-data.org/documentation/quickstart
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/shared"
)

const footballDataBaseURL = "https://api.football-data.org/v4"

// authHeader carries the API token on every request.
const authHeader = "X-Auth-Token"

// competitionsResponse wraps the catalog listing.
type competitionsResponse struct {
	Count        int                  `json:"count"`
	Competitions []models.Competition `json:"competitions"`
}

// fixturesResponse wraps a competition's scheduled matches.
type fixturesResponse struct {
	Matches []models.Fixture `json:"matches"`
}

// teamMatchesResponse wraps a team's finished matches.
type teamMatchesResponse struct {
	Matches []models.Match `json:"matches"`
}

// FootballDataService implements the Catalog interface for the football-data.org v4 API.
// Authentication is a single static token sent as an X-Auth-Token header.
type FootballDataService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewFootballDataService creates a new football-data.org client.
// An empty baseURL selects the production endpoint. A nil client selects http.DefaultClient.
// The token may be empty; every call then fails with [shared.ErrMissingCredentials]
// so callers degrade to empty results instead of crashing.
func NewFootballDataService(baseURL, token string, client *http.Client) *FootballDataService {
	if baseURL == "" {
		baseURL = footballDataBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &FootballDataService{
		baseURL:    baseURL,
		token:      token,
		httpClient: client,
	}
}

func (s *FootballDataService) Name() string {
	return "football-data.org"
}

// doRequest performs an authenticated GET against the API and decodes the JSON body into result.
func (s *FootballDataService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == "" {
		return shared.ErrMissingCredentials
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(authHeader, s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Competitions retrieves the full competition catalog.
func (s *FootballDataService) Competitions(ctx context.Context) ([]models.Competition, error) {
	var response competitionsResponse
	if err := s.doRequest(ctx, "/competitions", &response); err != nil {
		return nil, err
	}
	return response.Competitions, nil
}

// ScheduledFixtures retrieves a competition's scheduled fixtures.
func (s *FootballDataService) ScheduledFixtures(ctx context.Context, code string) ([]models.Fixture, error) {
	endpoint := fmt.Sprintf("/competitions/%s/matches?status=SCHEDULED", code)

	var response fixturesResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response.Matches, nil
}

// TeamMatches retrieves a team's most recent finished matches, most-recent-first.
func (s *FootballDataService) TeamMatches(ctx context.Context, teamID int64, limit int) ([]models.Match, error) {
	if limit <= 0 {
		limit = 5
	}

	endpoint := fmt.Sprintf("/teams/%d/matches?status=FINISHED&limit=%d", teamID, limit)

	var response teamMatchesResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response.Matches, nil
}

// CheckToken verifies the configured token by fetching a known competition.
func (s *FootballDataService) CheckToken(ctx context.Context) (string, error) {
	var competition models.Competition
	if err := s.doRequest(ctx, "/competitions/PL", &competition); err != nil {
		return "", err
	}
	return competition.Name, nil
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Get performs a raw GET request to the specified API path and returns the response
// without decoding into a typed struct. Used by the CLI's api subcommands.
func (s *FootballDataService) Get(ctx context.Context, path string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if s.token != "" {
		req.Header.Set(authHeader, s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
