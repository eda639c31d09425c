package gateway

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/gotrs-io/helpdesk-console/internal/models"
)

// UsersService handles user-related API operations
type UsersService struct {
	client *Client
}

func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}

// List retrieves all users
func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	var result []models.User
	err := s.client.do(ctx, call{
		operation: "list_users",
		method:    resty.MethodGet,
		path:      "/users",
		result:    &result,
	})
	return result, err
}

// Get retrieves a specific user by ID
func (s *UsersService) Get(ctx context.Context, id int64) (*models.User, error) {
	var result models.User
	err := s.client.do(ctx, call{
		operation:  "get_user",
		method:     resty.MethodGet,
		path:       "/users/{id}",
		pathParams: idParam(id),
		result:     &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Create creates a new user
func (s *UsersService) Create(ctx context.Context, request *models.UserCreateRequest) (*models.User, error) {
	if err := checkBody("create_user", userCreateContract, request); err != nil {
		s.client.metrics.observe("create_user", outcomeInvalid, 0)
		return nil, err
	}

	var result models.User
	err := s.client.do(ctx, call{
		operation: "create_user",
		method:    resty.MethodPost,
		path:      "/users",
		body:      request,
		result:    &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Update replaces a user with the full object given.
func (s *UsersService) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	if err := checkBody("update_user", userUpdateContract, user); err != nil {
		s.client.metrics.observe("update_user", outcomeInvalid, 0)
		return nil, err
	}

	var result models.User
	err := s.client.do(ctx, call{
		operation:  "update_user",
		method:     resty.MethodPut,
		path:       "/users/{id}",
		pathParams: idParam(id),
		body:       user,
		result:     &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete deletes a user
func (s *UsersService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, call{
		operation:  "delete_user",
		method:     resty.MethodDelete,
		path:       "/users/{id}",
		pathParams: idParam(id),
	})
}
