package lifecycle

//go:generate mockgen -source=contracts.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"bibliodesk/internal/console/models"
	"bibliodesk/internal/upstream"
)

// Snapshotter runs one aggregation pass per primary collection.
// Implemented by aggregate.Aggregator.
type Snapshotter interface {
	Borrows(ctx context.Context) ([]models.EnrichedBorrow, error)
	Fines(ctx context.Context) ([]models.EnrichedFine, error)
}

// BorrowMutator issues state changes to the borrow service.
type BorrowMutator interface {
	Return(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// FineMutator issues state changes to the fines service.
type FineMutator interface {
	Create(ctx context.Context, in upstream.CreateFineInput) error
	Update(ctx context.Context, id int64, in upstream.UpdateFineInput) error
	Pay(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
