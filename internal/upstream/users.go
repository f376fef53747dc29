package upstream

import (
	"context"
	"net/http"

	"bibliodesk/internal/console/models"
)

// UsersClient reads the user service's profile collection.
type UsersClient struct {
	base
}

// NewUsersClient creates a client for the user profile service.
func NewUsersClient(baseURL string, opts ...Option) *UsersClient {
	return &UsersClient{base: newBase("users", baseURL, opts...)}
}

// List fetches the full profile snapshot.
func (c *UsersClient) List(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := c.do(ctx, "list", http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
