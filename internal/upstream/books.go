package upstream

import (
	"context"
	"net/http"

	"bibliodesk/internal/console/models"
)

// BooksClient reads the catalog service's book collection.
type BooksClient struct {
	base
}

// NewBooksClient creates a client for the catalog service.
func NewBooksClient(baseURL string, opts ...Option) *BooksClient {
	return &BooksClient{base: newBase("books", baseURL, opts...)}
}

// List fetches the full book snapshot.
func (c *BooksClient) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := c.do(ctx, "list", http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}
