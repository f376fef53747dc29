package upstream

import (
	"context"
	"fmt"
	"net/http"

	"bibliodesk/internal/console/models"
)

// FinesClient reads and mutates the fines service's records.
type FinesClient struct {
	base
}

// NewFinesClient creates a client for the fines service.
func NewFinesClient(baseURL string, opts ...Option) *FinesClient {
	return &FinesClient{base: newBase("fines", baseURL, opts...)}
}

// CreateFineInput is the creation payload. BorrowID and UserID are set here
// once and never again through this client.
type CreateFineInput struct {
	BorrowID int64             `json:"borrowId"`
	UserID   int64             `json:"userId"`
	Amount   float64           `json:"amount"`
	Reason   models.FineReason `json:"reason"`
}

// UpdateFineInput is the update payload. Only amount and reason exist here;
// the write-once borrowId/userId fields cannot be resent by construction.
type UpdateFineInput struct {
	Amount float64           `json:"amount"`
	Reason models.FineReason `json:"reason"`
}

// List fetches the full fine snapshot.
func (c *FinesClient) List(ctx context.Context) ([]models.Fine, error) {
	var fines []models.Fine
	if err := c.do(ctx, "list", http.MethodGet, "/fines", nil, &fines); err != nil {
		return nil, err
	}
	return fines, nil
}

// Create issues a new fine against a borrow record.
func (c *FinesClient) Create(ctx context.Context, in CreateFineInput) error {
	return c.do(ctx, "create", http.MethodPost, "/fines", in, nil)
}

// Update changes a fine's amount and reason.
func (c *FinesClient) Update(ctx context.Context, id int64, in UpdateFineInput) error {
	return c.do(ctx, "update", http.MethodPut, fmt.Sprintf("/fines/%d", id), in, nil)
}

// Pay marks a fine as paid.
func (c *FinesClient) Pay(ctx context.Context, id int64) error {
	return c.do(ctx, "pay", http.MethodPut, fmt.Sprintf("/fines/%d/pay", id), nil, nil)
}

// Delete removes a fine. Irrecoverable.
func (c *FinesClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, fmt.Sprintf("/fines/%d", id), nil, nil)
}
