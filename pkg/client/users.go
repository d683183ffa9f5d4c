package client

import "context"

// UserService handles user API calls
type UserService struct {
	client *Client
}

// List retrieves all users
func (s *UserService) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.client.doRequest(ctx, "GET", "/api/v1/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
