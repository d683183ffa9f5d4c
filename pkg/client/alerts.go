package client

import "context"

// AlertService handles alert-related API calls
type AlertService struct {
	client *Client
}

// List retrieves the current alerts
func (s *AlertService) List(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := s.client.doRequest(ctx, "GET", "/api/v1/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}
