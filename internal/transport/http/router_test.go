package httptransport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibliodesk/internal/console/handler"
	"bibliodesk/internal/console/lifecycle"
	"bibliodesk/internal/console/models"
	"bibliodesk/internal/console/session"
	"bibliodesk/internal/console/view"
	"bibliodesk/internal/platform/health"
	"bibliodesk/internal/stafftoken"
	"bibliodesk/internal/upstream"
)

const testSigningKey = "router-test-key"

type staticSnapshots struct{}

func (staticSnapshots) Borrows(context.Context) ([]models.EnrichedBorrow, error) {
	return []models.EnrichedBorrow{
		{BorrowRecord: models.BorrowRecord{ID: 1, Status: models.StatusBorrowed}, UserName: "Alice", BookTitle: "Dune"},
	}, nil
}

func (staticSnapshots) Fines(context.Context) ([]models.EnrichedFine, error) {
	return nil, nil
}

type noopBorrowMutator struct{}

func (noopBorrowMutator) Return(context.Context, int64) error { return nil }
func (noopBorrowMutator) Delete(context.Context, int64) error { return nil }

type noopFineMutator struct{}

func (noopFineMutator) Create(context.Context, upstream.CreateFineInput) error { return nil }
func (noopFineMutator) Update(context.Context, int64, upstream.UpdateFineInput) error {
	return nil
}
func (noopFineMutator) Pay(context.Context, int64) error    { return nil }
func (noopFineMutator) Delete(context.Context, int64) error { return nil }

func newRouterUnderTest(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	factory := func(string) *lifecycle.Controller {
		return lifecycle.New(staticSnapshots{}, noopBorrowMutator{}, noopFineMutator{},
			view.NewBorrowView(8), view.NewFineView(8), logger)
	}
	sessions := session.NewRegistry(factory, logger)

	return NewRouter(RouterConfig{
		Console:  handler.New(sessions, logger),
		Health:   health.New("test"),
		Verifier: stafftoken.NewVerifier(testSigningKey),
		Logger:   logger,
	})
}

func TestOperationalEndpointsAreOpen(t *testing.T) {
	srv := httptest.NewServer(newRouterUnderTest(t))
	defer srv.Close()

	for _, path := range []string{"/healthz", "/health/live", "/health/ready", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestConsoleRequiresStaffToken(t *testing.T) {
	srv := httptest.NewServer(newRouterUnderTest(t))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/console/borrows")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConsoleAcceptsStaffToken(t *testing.T) {
	srv := httptest.NewServer(newRouterUnderTest(t))
	defer srv.Close()

	token, err := stafftoken.Issue(testSigningKey, "op-router", "STAFF", time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/console/borrows", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestConsoleRejectsNonStaffRole(t *testing.T) {
	srv := httptest.NewServer(newRouterUnderTest(t))
	defer srv.Close()

	token, err := stafftoken.Issue(testSigningKey, "op-member", "MEMBER", time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/console/borrows", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
