package handler

import (
	"strings"

	"bibliodesk/internal/console/lifecycle"
	"bibliodesk/internal/console/models"
)

// CreateFineRequest is the operator's input for a new fine. The reason is
// normalized to the canonical upper-case form before validation.
type CreateFineRequest struct {
	BorrowID int64   `json:"borrowId"`
	UserID   int64   `json:"userId"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
}

func (req *CreateFineRequest) Normalize() {
	req.Reason = strings.ToUpper(strings.TrimSpace(req.Reason))
}

func (req *CreateFineRequest) Validate() error {
	return req.Command().Validate()
}

func (req *CreateFineRequest) Command() lifecycle.CreateFineCommand {
	return lifecycle.CreateFineCommand{
		BorrowID: req.BorrowID,
		UserID:   req.UserID,
		Amount:   req.Amount,
		Reason:   models.FineReason(req.Reason),
	}
}

// UpdateFineRequest carries the only two editable fine fields. There are no
// borrowId/userId fields here; those bindings are write-once at creation.
type UpdateFineRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

func (req *UpdateFineRequest) Normalize() {
	req.Reason = strings.ToUpper(strings.TrimSpace(req.Reason))
}

func (req *UpdateFineRequest) Validate() error {
	return req.Command().Validate()
}

func (req *UpdateFineRequest) Command() lifecycle.UpdateFineCommand {
	return lifecycle.UpdateFineCommand{
		Amount: req.Amount,
		Reason: models.FineReason(req.Reason),
	}
}
