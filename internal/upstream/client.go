// Package upstream contains the typed HTTP clients for the four services the
// console consumes: users, books, borrows, and fines. Clients report failures
// truthfully with domain error codes; degradation policy (stale view, "N/A"
// joins) belongs to the aggregation layer, not here.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	dErrors "bibliodesk/pkg/domain-errors"
	"bibliodesk/pkg/platform/circuit"
	"bibliodesk/pkg/platform/tracer"

	"bibliodesk/internal/platform/metrics"
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token for upstream calls. Injecting it
// keeps authentication out of ambient globals; the gateway passes a source
// bound to its service credentials.
type TokenSource func() string

// base carries the plumbing shared by all four collection clients.
type base struct {
	service    string
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	breaker    *circuit.Breaker
	metrics    *metrics.Metrics
	tracer     tracer.Tracer
}

// Option configures a client.
type Option func(*base)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) Option {
	return func(b *base) {
		b.httpClient = client
	}
}

// WithTokenSource sets the bearer token source for authenticated upstreams.
func WithTokenSource(ts TokenSource) Option {
	return func(b *base) {
		b.token = ts
	}
}

// WithBreaker sets the circuit breaker guarding this upstream.
func WithBreaker(br *circuit.Breaker) Option {
	return func(b *base) {
		b.breaker = br
	}
}

// WithMetrics enables per-call latency/outcome metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *base) {
		b.metrics = m
	}
}

// WithTracer enables per-call spans.
func WithTracer(t tracer.Tracer) Option {
	return func(b *base) {
		b.tracer = t
	}
}

func newBase(service, baseURL string, opts ...Option) base {
	b := base{
		service: service,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Healthy reports whether this upstream's circuit is closed.
// Used by the readiness probe.
func (b *base) Healthy() error {
	if b.breaker != nil && b.breaker.State() == circuit.StateOpen {
		return dErrors.New(dErrors.CodeUpstreamUnavailable, b.service+" circuit open")
	}
	return nil
}

// do executes one upstream call. A non-nil out is filled from a 2xx
// response body. Either the remote record changed (2xx) or the caller gets
// an error; there is no partial application.
func (b *base) do(ctx context.Context, op, method, path string, body, out any) error {
	if b.breaker != nil && !b.breaker.Allow() {
		if b.metrics != nil {
			b.metrics.UpstreamRequests.WithLabelValues(b.service, op, "short_circuit").Inc()
		}
		return dErrors.New(dErrors.CodeUpstreamUnavailable, b.service+" circuit open")
	}

	ctx, span := b.tracer.Start(ctx, "upstream."+b.service+"."+op,
		tracer.String("service", b.service),
		tracer.String("method", method),
	)
	start := time.Now()
	err := b.roundTrip(ctx, method, path, body, out)
	if b.metrics != nil {
		b.metrics.ObserveUpstream(b.service, op, err, time.Since(start))
	}
	b.record(err)
	span.End(err)
	return err
}

// record feeds the circuit breaker. Only availability failures count
// against the circuit; a well-formed non-2xx answer means the service is up.
func (b *base) record(err error) {
	if b.breaker == nil {
		return
	}
	if dErrors.HasCode(err, dErrors.CodeUpstreamUnavailable) || dErrors.HasCode(err, dErrors.CodeTimeout) {
		if opened := b.breaker.RecordFailure(); opened && b.metrics != nil {
			b.metrics.CircuitOpened.WithLabelValues(b.service).Inc()
		}
		return
	}
	b.breaker.RecordSuccess()
}

func (b *base) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal request")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reqBody)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.token != nil {
		if tok := b.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		// http.Client.Timeout expiry surfaces as a transport timeout error
		// without touching ctx.Err(), so inspect the error itself.
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, b.service+" request timeout")
		}
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, b.service+" unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s: record not found", b.service))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dErrors.New(dErrors.CodeUpstreamStatus,
			fmt.Sprintf("%s returned status %d", b.service, resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return dErrors.Wrap(err, dErrors.CodeUpstreamStatus, b.service+" returned malformed body")
		}
	}
	return nil
}
