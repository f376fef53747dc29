// Package lifecycle drives the borrow/fine state machines for one operator
// console: it owns the refresh-after-mutate policy, the local guards that
// reject impossible transitions before any network call, and the staleness
// accounting for reads served from a snapshot that could not be refreshed.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"bibliodesk/internal/console/models"
	"bibliodesk/internal/console/view"
	"bibliodesk/internal/platform/metrics"
	"bibliodesk/internal/upstream"
	dErrors "bibliodesk/pkg/domain-errors"
)

// Controller composes the aggregation passes, the mutating clients, and one
// pair of views. A Controller is bound to a single operator session and is
// safe for concurrent use; the views carry the locking.
type Controller struct {
	snapshots  Snapshotter
	borrows    BorrowMutator
	fines      FineMutator
	borrowView *view.View[models.EnrichedBorrow]
	fineView   *view.View[models.EnrichedFine]
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Controller)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

func New(
	snapshots Snapshotter,
	borrows BorrowMutator,
	fines FineMutator,
	borrowView *view.View[models.EnrichedBorrow],
	fineView *view.View[models.EnrichedFine],
	logger *slog.Logger,
	opts ...Option,
) *Controller {
	c := &Controller{
		snapshots:  snapshots,
		borrows:    borrows,
		fines:      fines,
		borrowView: borrowView,
		fineView:   fineView,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BorrowView exposes the controller's borrow view for session bookkeeping.
func (c *Controller) BorrowView() *view.View[models.EnrichedBorrow] { return c.borrowView }

// FineView exposes the controller's fine view for session bookkeeping.
func (c *Controller) FineView() *view.View[models.EnrichedFine] { return c.fineView }

// RefreshBorrows runs one borrow aggregation pass and installs the result.
// On failure the view keeps its previous snapshot and the error is returned.
// A snapshot that arrives after the view was invalidated is dropped silently.
func (c *Controller) RefreshBorrows(ctx context.Context) error {
	token := c.borrowView.Token()
	rows, err := c.snapshots.Borrows(ctx)
	if err != nil {
		return fmt.Errorf("refresh borrows: %w", err)
	}
	if !c.borrowView.Apply(rows, token) {
		c.logger.DebugContext(ctx, "discarded stale borrow snapshot", "rows", len(rows))
	}
	return nil
}

// RefreshFines runs one fine aggregation pass and installs the result,
// under the same staleness rules as RefreshBorrows.
func (c *Controller) RefreshFines(ctx context.Context) error {
	token := c.fineView.Token()
	rows, err := c.snapshots.Fines(ctx)
	if err != nil {
		return fmt.Errorf("refresh fines: %w", err)
	}
	if !c.fineView.Apply(rows, token) {
		c.logger.DebugContext(ctx, "discarded stale fine snapshot", "rows", len(rows))
	}
	return nil
}

// Borrows serves one page of the borrow table. The first read and any read
// with refresh set runs an aggregation pass first; if that pass fails while
// an older snapshot exists, the old snapshot is served and stale is true.
func (c *Controller) Borrows(ctx context.Context, search string, page int, refresh bool) (view.Page[models.EnrichedBorrow], bool, error) {
	stale := false
	if refresh || !c.borrowView.Loaded() {
		if err := c.RefreshBorrows(ctx); err != nil {
			if !c.borrowView.Loaded() {
				return view.Page[models.EnrichedBorrow]{}, false, err
			}
			c.logger.WarnContext(ctx, "serving stale borrow view", "error", err)
			stale = true
		}
	}
	c.borrowView.SetSearch(search)
	if page > 0 {
		c.borrowView.SetPage(page)
	}
	return c.borrowView.Current(), stale, nil
}

// Fines serves one page of the fine table under the same rules as Borrows.
func (c *Controller) Fines(ctx context.Context, search string, page int, refresh bool) (view.Page[models.EnrichedFine], bool, error) {
	stale := false
	if refresh || !c.fineView.Loaded() {
		if err := c.RefreshFines(ctx); err != nil {
			if !c.fineView.Loaded() {
				return view.Page[models.EnrichedFine]{}, false, err
			}
			c.logger.WarnContext(ctx, "serving stale fine view", "error", err)
			stale = true
		}
	}
	c.fineView.SetSearch(search)
	if page > 0 {
		c.fineView.SetPage(page)
	}
	return c.fineView.Current(), stale, nil
}

// MarkReturned transitions a borrow to RETURNED. A record already in the
// RETURNED state is rejected locally; no upstream call is placed.
func (c *Controller) MarkReturned(ctx context.Context, id int64) error {
	if err := c.ensureBorrows(ctx); err != nil {
		return err
	}
	record, ok := c.borrowView.Find(func(b models.EnrichedBorrow) bool { return b.ID == id })
	if !ok {
		c.observeMutation("borrow_return", "rejected")
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("borrow %d not found", id))
	}
	if record.Status == models.StatusReturned {
		c.observeMutation("borrow_return", "rejected")
		return dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("borrow %d is already returned", id))
	}

	err := c.borrows.Return(ctx, id)
	c.observeMutation("borrow_return", outcome(err))
	c.refreshBorrowsAfterMutation(ctx, "borrow_return")
	return err
}

// DeleteBorrow removes a borrow record. Existence is delegated to the borrow
// service; an unknown id surfaces as not_found.
func (c *Controller) DeleteBorrow(ctx context.Context, id int64) error {
	err := c.borrows.Delete(ctx, id)
	c.observeMutation("borrow_delete", outcome(err))
	c.refreshBorrowsAfterMutation(ctx, "borrow_delete")
	return err
}

// CreateFineCommand carries the operator's input for a new fine. BorrowID
// and UserID are set here once and never again; later edits cannot touch
// them.
type CreateFineCommand struct {
	BorrowID int64
	UserID   int64
	Amount   float64
	Reason   models.FineReason
}

func (cmd CreateFineCommand) Validate() error {
	if cmd.BorrowID <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "borrowId must be a positive integer")
	}
	if cmd.UserID <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "userId must be a positive integer")
	}
	if cmd.Amount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must not be negative")
	}
	if !models.ValidFineReason(cmd.Reason) {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown fine reason %q", cmd.Reason))
	}
	return nil
}

// UpdateFineCommand carries the only two fields an existing fine allows to
// change.
type UpdateFineCommand struct {
	Amount float64
	Reason models.FineReason
}

func (cmd UpdateFineCommand) Validate() error {
	if cmd.Amount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must not be negative")
	}
	if !models.ValidFineReason(cmd.Reason) {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown fine reason %q", cmd.Reason))
	}
	return nil
}

// CreateFine validates the command locally and issues the fine. Invalid
// input never reaches the fine service.
func (c *Controller) CreateFine(ctx context.Context, cmd CreateFineCommand) error {
	if err := cmd.Validate(); err != nil {
		c.observeMutation("fine_create", "rejected")
		return err
	}

	err := c.fines.Create(ctx, upstream.CreateFineInput{
		BorrowID: cmd.BorrowID,
		UserID:   cmd.UserID,
		Amount:   cmd.Amount,
		Reason:   cmd.Reason,
	})
	c.observeMutation("fine_create", outcome(err))
	c.refreshFinesAfterMutation(ctx, "fine_create")
	return err
}

// UpdateFine replaces a fine's amount and reason. The upstream payload
// carries only those two fields, so the borrow and user bindings cannot
// drift even against a permissive fine service.
func (c *Controller) UpdateFine(ctx context.Context, id int64, cmd UpdateFineCommand) error {
	if err := cmd.Validate(); err != nil {
		c.observeMutation("fine_update", "rejected")
		return err
	}

	err := c.fines.Update(ctx, id, upstream.UpdateFineInput{
		Amount: cmd.Amount,
		Reason: cmd.Reason,
	})
	c.observeMutation("fine_update", outcome(err))
	c.refreshFinesAfterMutation(ctx, "fine_update")
	return err
}

// PayFine settles an open fine. A fine already marked paid is rejected
// locally; no upstream call is placed.
func (c *Controller) PayFine(ctx context.Context, id int64) error {
	if err := c.ensureFines(ctx); err != nil {
		return err
	}
	fine, ok := c.fineView.Find(func(f models.EnrichedFine) bool { return f.ID == id })
	if !ok {
		c.observeMutation("fine_pay", "rejected")
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("fine %d not found", id))
	}
	if fine.Paid {
		c.observeMutation("fine_pay", "rejected")
		return dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("fine %d is already paid", id))
	}

	err := c.fines.Pay(ctx, id)
	c.observeMutation("fine_pay", outcome(err))
	c.refreshFinesAfterMutation(ctx, "fine_pay")
	return err
}

// DeleteFine removes a fine record.
func (c *Controller) DeleteFine(ctx context.Context, id int64) error {
	err := c.fines.Delete(ctx, id)
	c.observeMutation("fine_delete", outcome(err))
	c.refreshFinesAfterMutation(ctx, "fine_delete")
	return err
}

// ensureBorrows materializes the borrow view before a guard needs to read
// it. Unlike reads, a guard cannot run against a missing snapshot.
func (c *Controller) ensureBorrows(ctx context.Context) error {
	if c.borrowView.Loaded() {
		return nil
	}
	return c.RefreshBorrows(ctx)
}

func (c *Controller) ensureFines(ctx context.Context) error {
	if c.fineView.Loaded() {
		return nil
	}
	return c.RefreshFines(ctx)
}

// refreshBorrowsAfterMutation re-aggregates after any upstream write
// attempt, successful or not. There is no optimistic patching of the local
// snapshot; the services own the truth. A failed refresh keeps the previous
// snapshot and is logged, not returned — the mutation's own outcome already
// went back to the caller.
func (c *Controller) refreshBorrowsAfterMutation(ctx context.Context, op string) {
	if err := c.RefreshBorrows(ctx); err != nil {
		c.logger.WarnContext(ctx, "post-mutation refresh failed, view keeps previous snapshot",
			"op", op, "error", err)
	}
}

func (c *Controller) refreshFinesAfterMutation(ctx context.Context, op string) {
	if err := c.RefreshFines(ctx); err != nil {
		c.logger.WarnContext(ctx, "post-mutation refresh failed, view keeps previous snapshot",
			"op", op, "error", err)
	}
}

func (c *Controller) observeMutation(op, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.Mutations.WithLabelValues(op, outcome).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
