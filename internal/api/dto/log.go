package dto

import (
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
)

// LogEntryDTO is one action log row as shown to operators
type LogEntryDTO struct {
	ID        int64                  `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	User      string                 `json:"user"`
	Action    string                 `json:"action"`
	Resource  string                 `json:"resource"`
	Status    string                 `json:"status"`
	Provider  string                 `json:"provider"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// NewLogEntryDTO converts an audit entry
func NewLogEntryDTO(e *audit.Entry) LogEntryDTO {
	user := e.UserEmail
	if user == "" {
		user = audit.SystemActor
	}
	return LogEntryDTO{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		User:      user,
		Action:    string(e.Action),
		Resource:  e.ResourceName,
		Status:    e.Status,
		Provider:  e.Provider,
		Details:   e.Details,
	}
}
