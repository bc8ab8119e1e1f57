// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/scout/internal/models"
)

// MockCatalog is a test double for [services.Catalog]. Each method delegates
// to the corresponding function field when set and returns empty data
// otherwise.
type MockCatalog struct {
	CompetitionsFn func(ctx context.Context) ([]models.Competition, error)
	FixturesFn     func(ctx context.Context, code string) ([]models.Fixture, error)
	TeamMatchesFn  func(ctx context.Context, teamID int64, limit int) ([]models.Match, error)
	CheckTokenFn   func(ctx context.Context) (string, error)
}

func (m *MockCatalog) Competitions(ctx context.Context) ([]models.Competition, error) {
	if m.CompetitionsFn != nil {
		return m.CompetitionsFn(ctx)
	}
	return []models.Competition{}, nil
}

func (m *MockCatalog) ScheduledFixtures(ctx context.Context, code string) ([]models.Fixture, error) {
	if m.FixturesFn != nil {
		return m.FixturesFn(ctx, code)
	}
	return []models.Fixture{}, nil
}

func (m *MockCatalog) TeamMatches(ctx context.Context, teamID int64, limit int) ([]models.Match, error) {
	if m.TeamMatchesFn != nil {
		return m.TeamMatchesFn(ctx, teamID, limit)
	}
	return []models.Match{}, nil
}

func (m *MockCatalog) CheckToken(ctx context.Context) (string, error) {
	if m.CheckTokenFn != nil {
		return m.CheckTokenFn(ctx)
	}
	return "mock", nil
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// IntPtr returns a pointer to the given goal count.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to the given price.
func FloatPtr(v float64) *float64 { return &v }
