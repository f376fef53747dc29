// Package models holds the record types the console works with. The user,
// book, borrow, and fine services each own their collection; everything in
// here is a read model from the gateway's point of view except the borrow
// and fine mutations routed through their owning service.
package models

import "time"

// Sentinel is the display value for a foreign key that could not be
// resolved against its owning service's snapshot.
const Sentinel = "N/A"

// UserProfile is the user service's projection of a member.
// Read-only join key for the console.
type UserProfile struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

// Book is the catalog service's projection of a title.
// Read-only join key for the console.
type Book struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// BorrowStatus enumerates the borrow service's lifecycle states.
type BorrowStatus string

const (
	StatusBorrowed BorrowStatus = "BORROWED"
	StatusReturned BorrowStatus = "RETURNED"
	StatusOverdue  BorrowStatus = "OVERDUE"
)

// BorrowRecord is owned and mutated exclusively by the borrow service.
// UserID and BookID reference the other services without any enforced
// foreign-key integrity.
type BorrowRecord struct {
	ID         int64        `json:"id"`
	UserID     int64        `json:"userId"`
	BookID     int64        `json:"bookId"`
	BorrowDate time.Time    `json:"borrowDate"`
	DueDate    time.Time    `json:"dueDate"`
	ReturnDate *time.Time   `json:"returnDate,omitempty"`
	Status     BorrowStatus `json:"status"`
}

// EnrichedBorrow is a BorrowRecord with display names resolved best-effort.
// Constructed fresh on every aggregation pass, never persisted.
type EnrichedBorrow struct {
	BorrowRecord
	UserName  string `json:"userName"`
	BookTitle string `json:"bookTitle"`
}

// FineReason enumerates why a fine was issued.
type FineReason string

const (
	ReasonLate   FineReason = "LATE"
	ReasonLost   FineReason = "LOST"
	ReasonDamage FineReason = "DAMAGE"
)

// ValidFineReason reports whether r is one of the closed reason set.
func ValidFineReason(r FineReason) bool {
	switch r {
	case ReasonLate, ReasonLost, ReasonDamage:
		return true
	}
	return false
}

// Fine is owned by the fines service. BorrowID and UserID are set at
// creation and immutable thereafter; updates may only touch Amount,
// Reason, and Paid.
type Fine struct {
	ID        int64      `json:"id"`
	BorrowID  int64      `json:"borrowId"`
	UserID    int64      `json:"userId"`
	Amount    float64    `json:"amount"`
	Reason    FineReason `json:"reason"`
	Paid      bool       `json:"paid"`
	CreatedAt time.Time  `json:"createdAt"`
}

// EnrichedFine is a Fine with the borrower's name resolved best-effort.
type EnrichedFine struct {
	Fine
	UserName string `json:"userName"`
}
