package aggregate

//go:generate mockgen -source=contracts.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"bibliodesk/internal/console/models"
)

// UserLister fetches the user service's profile snapshot.
type UserLister interface {
	List(ctx context.Context) ([]models.UserProfile, error)
}

// BookLister fetches the catalog service's book snapshot.
type BookLister interface {
	List(ctx context.Context) ([]models.Book, error)
}

// BorrowLister fetches the borrow service's record snapshot.
type BorrowLister interface {
	List(ctx context.Context) ([]models.BorrowRecord, error)
}

// FineLister fetches the fines service's record snapshot.
type FineLister interface {
	List(ctx context.Context) ([]models.Fine, error)
}
