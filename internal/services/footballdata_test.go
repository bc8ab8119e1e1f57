package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/scout/internal/shared"
)

func TestFootballDataService(t *testing.T) {
	ctx := context.Background()

	t.Run("Competitions", func(t *testing.T) {
		var gotToken, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.Header.Get("X-Auth-Token")
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count":2,"competitions":[
				{"code":"PL","name":"Premier League","area":{"id":2077,"name":"Europe"},"type":"LEAGUE"},
				{"code":"CL","name":"Champions League","area":{"id":2077,"name":"Europe"},"type":"CUP"}
			]}`))
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "test-token", server.Client())

		competitions, err := service.Competitions(ctx)
		if err != nil {
			t.Fatalf("Competitions failed: %v", err)
		}

		if gotToken != "test-token" {
			t.Errorf("Expected X-Auth-Token header, got %q", gotToken)
		}
		if gotPath != "/competitions" {
			t.Errorf("Expected /competitions, got %s", gotPath)
		}
		if len(competitions) != 2 {
			t.Fatalf("Expected 2 competitions, got %d", len(competitions))
		}
		if competitions[0].Code != "PL" || competitions[0].Area.ID != 2077 {
			t.Errorf("Unexpected first competition: %+v", competitions[0])
		}
	})

	t.Run("ScheduledFixtures", func(t *testing.T) {
		var gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.String()
			w.Write([]byte(`{"matches":[
				{"id":10,"homeTeam":{"id":1,"name":"A"},"awayTeam":{"id":2,"name":"B"},
				 "odds":{"homeWin":1.4,"draw":4.8,"awayWin":7.25}}
			]}`))
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "test-token", server.Client())

		fixtures, err := service.ScheduledFixtures(ctx, "PL")
		if err != nil {
			t.Fatalf("ScheduledFixtures failed: %v", err)
		}

		if gotURL != "/competitions/PL/matches?status=SCHEDULED" {
			t.Errorf("Unexpected request URL: %s", gotURL)
		}
		if len(fixtures) != 1 {
			t.Fatalf("Expected 1 fixture, got %d", len(fixtures))
		}
		if fixtures[0].Odds.HomeWin == nil || *fixtures[0].Odds.HomeWin != 1.4 {
			t.Errorf("Expected home price 1.4, got %v", fixtures[0].Odds.HomeWin)
		}
	})

	t.Run("TeamMatches", func(t *testing.T) {
		var gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.String()
			w.Write([]byte(`{"matches":[
				{"homeTeam":{"id":1,"name":"A"},"awayTeam":{"id":2,"name":"B"},
				 "score":{"winner":"HOME_TEAM","fullTime":{"home":2,"away":0}}}
			]}`))
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "test-token", server.Client())

		matches, err := service.TeamMatches(ctx, 1, 5)
		if err != nil {
			t.Fatalf("TeamMatches failed: %v", err)
		}

		if gotURL != "/teams/1/matches?status=FINISHED&limit=5" {
			t.Errorf("Unexpected request URL: %s", gotURL)
		}
		if len(matches) != 1 || !matches[0].WonBy(1) {
			t.Errorf("Expected one home win, got %+v", matches)
		}

		if _, err := service.TeamMatches(ctx, 1, 0); err != nil {
			t.Fatalf("TeamMatches with zero limit failed: %v", err)
		}
		if !strings.Contains(gotURL, "limit=5") {
			t.Errorf("Expected non-positive limit to default to 5, got %s", gotURL)
		}
	})

	t.Run("CheckToken", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/competitions/PL" {
				t.Errorf("Unexpected path: %s", r.URL.Path)
			}
			w.Write([]byte(`{"code":"PL","name":"Premier League"}`))
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "test-token", server.Client())

		name, err := service.CheckToken(ctx)
		if err != nil {
			t.Fatalf("CheckToken failed: %v", err)
		}
		if name != "Premier League" {
			t.Errorf("Expected Premier League, got %s", name)
		}
	})

	t.Run("missing token fails before the request", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "", server.Client())

		if _, err := service.Competitions(ctx); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("Expected ErrMissingCredentials, got %v", err)
		}
		if requests != 0 {
			t.Errorf("Expected no upstream request, got %d", requests)
		}
	})

	t.Run("non-2xx status is an API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "test-token", server.Client())

		if _, err := service.Competitions(ctx); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("Expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "test-token", server.Client())

		if _, err := service.Competitions(ctx); err == nil {
			t.Error("Expected decode error")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		service := NewFootballDataService("", "token", nil)
		if service.baseURL != footballDataBaseURL {
			t.Errorf("Expected production base URL, got %s", service.baseURL)
		}
		if service.httpClient != http.DefaultClient {
			t.Error("Expected http.DefaultClient")
		}
		if service.Name() != "football-data.org" {
			t.Errorf("Unexpected service name: %s", service.Name())
		}
	})
}

func TestFootballDataServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns decoded JSON payloads", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count":1}`))
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "test-token", server.Client())

		resp, err := service.Get(ctx, "/competitions")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected 200, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("Expected JSON response to be detected")
		}
	})

	t.Run("passes non-JSON bodies through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("plain text"))
		}))
		defer server.Close()

		service := NewFootballDataService(server.URL, "test-token", server.Client())

		resp, err := service.Get(ctx, "/whatever")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if resp.IsJSON {
			t.Error("Expected non-JSON body")
		}
		if string(resp.Body) != "plain text" {
			t.Errorf("Unexpected body: %s", resp.Body)
		}
	})
}
