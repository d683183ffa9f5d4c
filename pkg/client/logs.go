package client

import (
	"context"
	"strconv"
)

// LogService handles action log API calls
type LogService struct {
	client *Client
}

// List retrieves action log entries, newest first. A limit of 0 returns all.
func (s *LogService) List(ctx context.Context, limit int) ([]LogEntry, error) {
	path := "/api/v1/logs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var entries []LogEntry
	if err := s.client.doRequest(ctx, "GET", path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
