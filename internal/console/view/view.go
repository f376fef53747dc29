// Package view implements the console's presentation state: a materialized
// enriched snapshot per view, a live search term, and fixed-size pagination.
// View state is ephemeral — it lives exactly as long as the operator's view
// and is never persisted anywhere.
package view

import (
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bibliodesk/internal/console/models"
)

// DefaultPageSize matches the admin console's table size.
const DefaultPageSize = 8

// Page is one slice of the filtered result set.
type Page[T any] struct {
	Rows       []T `json:"rows"`
	Number     int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalRows  int `json:"totalRows"`
}

// View owns one enriched snapshot plus the search/page state derived from it.
// The filter always re-runs against the full base snapshot, so repeated
// searches never accumulate.
//
// Each View carries a lifetime token. A refresh captures the token before
// fetching and Apply discards the result if the token rotated meanwhile —
// the "drop on arrival" guard for snapshots that finish after their view was
// replaced.
type View[T any] struct {
	mu       sync.Mutex
	base     []T
	loaded   bool
	match    func(row T, lowerTerm string) bool
	search   string
	page     int
	pageSize int
	token    uuid.UUID
}

// New creates an empty view with the given page size and match predicate.
// The predicate receives the search term already lower-cased.
func New[T any](pageSize int, match func(row T, lowerTerm string) bool) *View[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View[T]{
		match:    match,
		page:     1,
		pageSize: pageSize,
		token:    uuid.New(),
	}
}

// Token returns the view's current lifetime token. Capture it before an
// aggregation pass and hand it back to Apply.
func (v *View[T]) Token() uuid.UUID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.token
}

// Invalidate rotates the lifetime token. In-flight passes started under the
// old token will be dropped on arrival.
func (v *View[T]) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.token = uuid.New()
}

// Apply installs a fresh snapshot if token still identifies this view's
// lifetime. Returns false when the result was stale and discarded.
func (v *View[T]) Apply(rows []T, token uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.token {
		return false
	}
	v.base = rows
	v.loaded = true
	return true
}

// Loaded reports whether the view has materialized at least one snapshot.
func (v *View[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Find returns the first row of the base snapshot matching pred. The filter
// and pagination state do not apply here; guards need the full snapshot.
func (v *View[T]) Find(pred func(T) bool) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, row := range v.base {
		if pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// SetSearch replaces the live search term and resets to the first page.
func (v *View[T]) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if term != v.search {
		v.search = term
		v.page = 1
	}
}

// Search returns the live search term.
func (v *View[T]) Search() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.search
}

// SetPage navigates to page p, clamping to the valid range. Navigating past
// either bound lands on the nearest valid page; it is never an error.
func (v *View[T]) SetPage(p int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = clamp(p, 1, v.totalPagesLocked())
}

// NextPage advances one page, clamped.
func (v *View[T]) NextPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = clamp(v.page+1, 1, v.totalPagesLocked())
}

// PrevPage goes back one page, clamped.
func (v *View[T]) PrevPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = clamp(v.page-1, 1, v.totalPagesLocked())
}

// Current computes the page for the present search term and page number.
// The slice it returns is freshly built; callers may not mutate the base
// snapshot through it.
func (v *View[T]) Current() Page[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := v.filterLocked()
	total := len(filtered)
	totalPages := pages(total, v.pageSize)

	// Re-clamp against the filtered set: a shrinking result may strand the
	// cursor past the last page.
	v.page = clamp(v.page, 1, totalPages)

	start := (v.page - 1) * v.pageSize
	end := min(start+v.pageSize, total)
	rows := make([]T, 0, v.pageSize)
	if start < total {
		rows = append(rows, filtered[start:end]...)
	}

	return Page[T]{
		Rows:       rows,
		Number:     v.page,
		PageSize:   v.pageSize,
		TotalPages: totalPages,
		TotalRows:  total,
	}
}

// filterLocked re-runs the filter over the full base snapshot, preserving
// order. An empty term matches everything.
func (v *View[T]) filterLocked() []T {
	if v.search == "" {
		return v.base
	}
	term := strings.ToLower(v.search)
	filtered := make([]T, 0, len(v.base))
	for _, row := range v.base {
		if v.match(row, term) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func (v *View[T]) totalPagesLocked() int {
	return pages(len(v.filterLocked()), v.pageSize)
}

// pages is ceil(n / size); 0 rows yield 0 pages (the empty-state row).
func pages(n, size int) int {
	return int(math.Ceil(float64(n) / float64(size)))
}

// clamp bounds p to [lo, hi], treating an empty range (hi < lo) as lo.
func clamp(p, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// NewBorrowView builds the borrow table view. The filter matches book
// title, borrower name, and status.
func NewBorrowView(pageSize int) *View[models.EnrichedBorrow] {
	return New(pageSize, func(b models.EnrichedBorrow, term string) bool {
		return strings.Contains(strings.ToLower(b.BookTitle), term) ||
			strings.Contains(strings.ToLower(b.UserName), term) ||
			strings.Contains(strings.ToLower(string(b.Status)), term)
	})
}

// NewFineView builds the fine table view. The filter matches borrower name
// and reason.
func NewFineView(pageSize int) *View[models.EnrichedFine] {
	return New(pageSize, func(f models.EnrichedFine, term string) bool {
		return strings.Contains(strings.ToLower(f.UserName), term) ||
			strings.Contains(strings.ToLower(string(f.Reason)), term)
	})
}
