package client

import (
	"context"
	"fmt"
	"net/url"
)

// ResourceService handles resource-related API calls
type ResourceService struct {
	client *Client
}

// CreateResourceRequest represents a request to create a resource
type CreateResourceRequest struct {
	Name     string                 `json:"name"`
	Provider string                 `json:"provider"`
	Type     string                 `json:"type"`
	Region   string                 `json:"region"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

// UpdateResourceRequest represents a partial update. Nil fields are left untouched.
type UpdateResourceRequest struct {
	Name   *string   `json:"name,omitempty"`
	Region *string   `json:"region,omitempty"`
	Status *string   `json:"status,omitempty"`
	Tags   *[]string `json:"tags,omitempty"`
}

// ResourceListOptions filters the resource list
type ResourceListOptions struct {
	Provider string
	Type     string
	Region   string
	Status   string
}

// List retrieves resources with refreshed statuses
func (s *ResourceService) List(ctx context.Context, opts *ResourceListOptions) ([]Resource, error) {
	query := url.Values{}
	if opts != nil {
		for key, value := range map[string]string{
			"provider": opts.Provider,
			"type":     opts.Type,
			"region":   opts.Region,
			"status":   opts.Status,
		} {
			if value != "" {
				query.Set(key, value)
			}
		}
	}

	path := "/api/v1/resources"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resources []Resource
	if err := s.client.doRequest(ctx, "GET", path, nil, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// Get retrieves a single resource
func (s *ResourceService) Get(ctx context.Context, id int64) (*Resource, error) {
	var res Resource
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/resources/%d", id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Create provisions a new resource
func (s *ResourceService) Create(ctx context.Context, req *CreateResourceRequest) (*Resource, error) {
	var res Resource
	if err := s.client.doRequest(ctx, "POST", "/api/v1/resources", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Update applies a partial update
func (s *ResourceService) Update(ctx context.Context, id int64, req *UpdateResourceRequest) (*Resource, error) {
	var res Resource
	if err := s.client.doRequest(ctx, "PUT", fmt.Sprintf("/api/v1/resources/%d", id), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete terminates and removes a resource
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/resources/%d", id), nil, nil)
}

// Metrics retrieves the utilisation series of a resource
func (s *ResourceService) Metrics(ctx context.Context, id int64) ([]MetricPoint, error) {
	var points []MetricPoint
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/resources/%d/metrics", id), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// History retrieves the action log of a resource
func (s *ResourceService) History(ctx context.Context, id int64) ([]LogEntry, error) {
	var entries []LogEntry
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/resources/%d/logs", id), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
