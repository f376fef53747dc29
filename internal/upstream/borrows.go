package upstream

import (
	"context"
	"fmt"
	"net/http"

	"bibliodesk/internal/console/models"
)

// BorrowsClient reads and mutates the borrow service's records.
type BorrowsClient struct {
	base
}

// NewBorrowsClient creates a client for the borrow service.
func NewBorrowsClient(baseURL string, opts ...Option) *BorrowsClient {
	return &BorrowsClient{base: newBase("borrows", baseURL, opts...)}
}

// List fetches the full borrow snapshot.
func (c *BorrowsClient) List(ctx context.Context) ([]models.BorrowRecord, error) {
	var borrows []models.BorrowRecord
	if err := c.do(ctx, "list", http.MethodGet, "/borrows", nil, &borrows); err != nil {
		return nil, err
	}
	return borrows, nil
}

// Return transitions one borrow record to RETURNED.
func (c *BorrowsClient) Return(ctx context.Context, id int64) error {
	return c.do(ctx, "return", http.MethodPut, fmt.Sprintf("/borrows/%d/return", id), nil, nil)
}

// Delete removes one borrow record. Irrecoverable.
func (c *BorrowsClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, fmt.Sprintf("/borrows/%d", id), nil, nil)
}
