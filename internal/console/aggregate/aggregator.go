// Package aggregate implements the console's join engine: one pass fetches a
// primary collection (borrows or fines) together with the secondary
// collections needed to resolve display names, and emits enriched rows.
//
// Failure policy is asymmetric by design: the primary fetch failing fails
// the pass (the caller keeps its previous snapshot), while secondary fetches
// are best-effort — their absence degrades every lookup to the "N/A"
// sentinel and never aborts the pass.
package aggregate

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"bibliodesk/internal/console/models"
	"bibliodesk/internal/platform/metrics"
	"bibliodesk/pkg/platform/tracer"
)

const passTimeout = 30 * time.Second

// Aggregator joins the four upstream collections into enriched view rows.
type Aggregator struct {
	users   UserLister
	books   BookLister
	borrows BorrowLister
	fines   FineLister

	logger  *slog.Logger
	tracer  tracer.Tracer
	metrics *metrics.Metrics
}

// AggregatorOption configures optional observability hooks.
type AggregatorOption func(*Aggregator)

// WithTracer sets the tracer spanning each pass.
func WithTracer(t tracer.Tracer) AggregatorOption {
	return func(a *Aggregator) {
		a.tracer = t
	}
}

// WithMetrics enables pass outcome counters.
func WithMetrics(m *metrics.Metrics) AggregatorOption {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// New creates an aggregator over the given collection clients.
func New(users UserLister, books BookLister, borrows BorrowLister, fines FineLister, logger *slog.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		users:   users,
		books:   books,
		borrows: borrows,
		fines:   fines,
		logger:  logger,
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// secondaryMaps holds the id → display-name lookups built from the secondary
// collections. Each fetch goroutine writes to its own field, avoiding data
// races; a nil map means that secondary was unavailable and every lookup
// resolves to the sentinel.
type secondaryMaps struct {
	userNames  map[int64]string
	bookTitles map[int64]string
}

// Borrows runs one aggregation pass over the borrow collection.
// Row count and order of the result always match the borrow snapshot.
func (a *Aggregator) Borrows(ctx context.Context) ([]models.EnrichedBorrow, error) {
	ctx, cancel := context.WithTimeout(ctx, passTimeout)
	defer cancel()
	ctx, span := a.tracer.Start(ctx, "aggregate.borrows")

	g, gctx := errgroup.WithContext(ctx)

	var primary []models.BorrowRecord
	var sec secondaryMaps

	// Only the primary fetch may fail the group; secondaries degrade.
	g.Go(func() error {
		records, err := a.borrows.List(gctx)
		if err != nil {
			return err
		}
		primary = records
		return nil
	})
	a.launchUserFetch(gctx, g, &sec)
	a.launchBookFetch(gctx, g, &sec)

	err := g.Wait()
	a.observePass("borrows", err)
	span.End(err)
	if err != nil {
		a.logger.ErrorContext(ctx, "borrow aggregation pass failed", "error", err)
		return nil, err
	}

	enriched := make([]models.EnrichedBorrow, 0, len(primary))
	for _, b := range primary {
		enriched = append(enriched, models.EnrichedBorrow{
			BorrowRecord: b,
			UserName:     resolve(sec.userNames, b.UserID),
			BookTitle:    resolve(sec.bookTitles, b.BookID),
		})
	}
	return enriched, nil
}

// Fines runs one aggregation pass over the fine collection.
func (a *Aggregator) Fines(ctx context.Context) ([]models.EnrichedFine, error) {
	ctx, cancel := context.WithTimeout(ctx, passTimeout)
	defer cancel()
	ctx, span := a.tracer.Start(ctx, "aggregate.fines")

	g, gctx := errgroup.WithContext(ctx)

	var primary []models.Fine
	var sec secondaryMaps

	g.Go(func() error {
		records, err := a.fines.List(gctx)
		if err != nil {
			return err
		}
		primary = records
		return nil
	})
	a.launchUserFetch(gctx, g, &sec)

	err := g.Wait()
	a.observePass("fines", err)
	span.End(err)
	if err != nil {
		a.logger.ErrorContext(ctx, "fine aggregation pass failed", "error", err)
		return nil, err
	}

	enriched := make([]models.EnrichedFine, 0, len(primary))
	for _, f := range primary {
		enriched = append(enriched, models.EnrichedFine{
			Fine:     f,
			UserName: resolve(sec.userNames, f.UserID),
		})
	}
	return enriched, nil
}

// launchUserFetch fetches the user snapshot into an isolated field.
// Failures are logged and absorbed: enrichment is best-effort, never
// load-bearing.
func (a *Aggregator) launchUserFetch(ctx context.Context, g *errgroup.Group, sec *secondaryMaps) {
	g.Go(func() error {
		users, err := a.users.List(ctx)
		if err != nil {
			a.logger.WarnContext(ctx, "user snapshot unavailable, joins degrade to sentinel", "error", err)
			return nil
		}
		names := make(map[int64]string, len(users))
		for _, u := range users {
			names[u.UserID] = u.Name
		}
		sec.userNames = names
		return nil
	})
}

// launchBookFetch fetches the book snapshot into an isolated field.
func (a *Aggregator) launchBookFetch(ctx context.Context, g *errgroup.Group, sec *secondaryMaps) {
	g.Go(func() error {
		books, err := a.books.List(ctx)
		if err != nil {
			a.logger.WarnContext(ctx, "book snapshot unavailable, joins degrade to sentinel", "error", err)
			return nil
		}
		titles := make(map[int64]string, len(books))
		for _, b := range books {
			titles[b.ID] = b.Title
		}
		sec.bookTitles = titles
		return nil
	})
}

// resolve looks up a display value, substituting the sentinel only when the
// key is absent. A present-but-empty value is returned as-is: the record
// exists, its display field is simply empty.
func resolve(m map[int64]string, id int64) string {
	v, ok := m[id]
	if !ok {
		return models.Sentinel
	}
	return v
}

func (a *Aggregator) observePass(collection string, err error) {
	if a.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	a.metrics.AggregationPasses.WithLabelValues(collection, outcome).Inc()
}
