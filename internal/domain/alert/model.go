package alert

import (
	"fmt"
	"time"
)

// Alert is derived from a resource whose status needs attention. Alerts are
// not stored.
type Alert struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Severity string    `json:"severity"`
	Time     time.Time `json:"time"`
}

// Alert severity levels
const (
	SeverityCritical = "Critical"
	SeverityWarning  = "Warning"
	SeverityInfo     = "Info"
)

// StatusAlertID is the stable ID of the status alert for a resource.
func StatusAlertID(resourceID int64) string {
	return fmt.Sprintf("alert-%d-status", resourceID)
}

// StatusAlertTitle describes a resource stuck in a status.
func StatusAlertTitle(name, status string) string {
	return fmt.Sprintf("%s is in %s state", name, status)
}
