package audit

import "time"

// Action is the lifecycle operation being recorded
type Action string

// Actions
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Outcome of a recorded action
const (
	StatusSuccess = "Success"
	StatusFailure = "Failure"
)

// SystemActor is recorded as the user of every entry until authentication exists.
const SystemActor = "system"

// Entry is one append-only audit record. ResourceID is nil once the resource
// it referred to has been deleted; ResourceName keeps the name it had.
type Entry struct {
	ID           int64                  `json:"id"`
	Timestamp    time.Time              `json:"timestamp"`
	ResourceID   *int64                 `json:"resourceId,omitempty"`
	ResourceName string                 `json:"resourceName"`
	UserEmail    string                 `json:"userEmail"`
	Action       Action                 `json:"action"`
	Status       string                 `json:"status"`
	Provider     string                 `json:"provider"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// NewEntry builds an entry stamped with the current time and the system actor.
func NewEntry(action Action, status, provider, resourceName string, details map[string]interface{}) *Entry {
	if details == nil {
		details = map[string]interface{}{}
	}
	return &Entry{
		Timestamp:    time.Now().UTC(),
		ResourceName: resourceName,
		UserEmail:    SystemActor,
		Action:       action,
		Status:       status,
		Provider:     provider,
		Details:      details,
	}
}

// StatusFor maps a failure flag to Success or Failure.
func StatusFor(failed bool) string {
	if failed {
		return StatusFailure
	}
	return StatusSuccess
}
