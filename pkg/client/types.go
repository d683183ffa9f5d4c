package client

import "time"

// Resource is a managed cloud resource
type Resource struct {
	ID           int64     `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Provider     string    `json:"provider" yaml:"provider"`
	Type         string    `json:"type" yaml:"type"`
	Region       string    `json:"region" yaml:"region"`
	ExternalID   string    `json:"externalId" yaml:"externalId"`
	Status       string    `json:"status" yaml:"status"`
	CPU          string    `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Memory       string    `json:"memory,omitempty" yaml:"memory,omitempty"`
	Storage      string    `json:"storage,omitempty" yaml:"storage,omitempty"`
	CostPerMonth float64   `json:"costPerMonth" yaml:"costPerMonth"`
	Uptime       float64   `json:"uptime" yaml:"uptime"`
	Tags         []string  `json:"tags" yaml:"tags"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// MetricPoint is one utilisation sample
type MetricPoint struct {
	Time       time.Time `json:"time" yaml:"time"`
	CPU        float64   `json:"cpu" yaml:"cpu"`
	Memory     float64   `json:"memory" yaml:"memory"`
	NetworkIn  float64   `json:"networkIn" yaml:"networkIn"`
	NetworkOut float64   `json:"networkOut" yaml:"networkOut"`
}

// Alert is derived from a resource that needs attention
type Alert struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Severity string    `json:"severity" yaml:"severity"`
	Time     time.Time `json:"time" yaml:"time"`
}

// LogEntry is one action log row
type LogEntry struct {
	ID        int64                  `json:"id" yaml:"id"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	User      string                 `json:"user" yaml:"user"`
	Action    string                 `json:"action" yaml:"action"`
	Resource  string                 `json:"resource" yaml:"resource"`
	Status    string                 `json:"status" yaml:"status"`
	Provider  string                 `json:"provider" yaml:"provider"`
	Details   map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// User is an operator account
type User struct {
	ID        int64      `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Email     string     `json:"email" yaml:"email"`
	Role      string     `json:"role" yaml:"role"`
	Status    string     `json:"status" yaml:"status"`
	Avatar    string     `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty" yaml:"lastLogin,omitempty"`
}

// HealthStatus is the body of the health endpoints
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
