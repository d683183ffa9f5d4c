package resource

import (
	"strings"
	"time"
)

// Provider identifies the cloud a resource lives in
type Provider string

// Providers
const (
	ProviderAWS   Provider = "AWS"
	ProviderGCP   Provider = "GCP"
	ProviderAzure Provider = "Azure"
)

// Type is the logical kind of resource
type Type string

// Resource types
const (
	TypeVM           Type = "VM"
	TypeStorage      Type = "Storage"
	TypeDatabase     Type = "Database"
	TypeServerless   Type = "Serverless"
	TypeLoadBalancer Type = "Load Balancer"
)

// Providers lists every supported provider.
var Providers = []Provider{ProviderAWS, ProviderGCP, ProviderAzure}

// Types lists every supported resource type.
var Types = []Type{TypeVM, TypeStorage, TypeDatabase, TypeServerless, TypeLoadBalancer}

// Resource represents a managed cloud resource
type Resource struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Provider     Provider  `json:"provider"`
	Type         Type      `json:"type"`
	Region       string    `json:"region"`
	ExternalID   string    `json:"externalId"`
	Status       Status    `json:"status"`
	CPU          string    `json:"cpu,omitempty"`
	Memory       string    `json:"memory,omitempty"`
	Storage      string    `json:"storage,omitempty"`
	CostPerMonth float64   `json:"costPerMonth"`
	Uptime       float64   `json:"uptime"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Spec holds the descriptive sizing strings an adapter reports on create
type Spec struct {
	CPU     string
	Memory  string
	Storage string
}

// CreateInput is what a caller supplies to create a resource
type CreateInput struct {
	Name     string
	Provider Provider
	Type     Type
	Region   string
	Config   map[string]interface{}
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name   *string
	Region *string
	Status *Status
	Tags   *[]string
}

// Fields returns the names of the fields set on the patch, in a stable order.
func (p Patch) Fields() []string {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "name")
	}
	if p.Region != nil {
		fields = append(fields, "region")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.Tags != nil {
		fields = append(fields, "tags")
	}
	return fields
}

// Empty reports whether no field is set.
func (p Patch) Empty() bool {
	return len(p.Fields()) == 0
}

// Apply copies the set fields onto r.
func (p Patch) Apply(r *Resource) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Region != nil {
		r.Region = *p.Region
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Tags != nil {
		r.Tags = append([]string(nil), (*p.Tags)...)
	}
}

// Filter contains resource filtering options
type Filter struct {
	Provider Provider
	Type     Type
	Region   string
	Status   Status
}

// Matches reports whether r passes the filter.
func (f Filter) Matches(r *Resource) bool {
	if f.Provider != "" && r.Provider != f.Provider {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Region != "" && r.Region != f.Region {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

// ParseProvider resolves a provider name case-insensitively.
func ParseProvider(s string) (Provider, bool) {
	for _, p := range Providers {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return "", false
}

// ParseType resolves a type name case-insensitively. "LoadBalancer" is accepted
// as an alias of "Load Balancer".
func ParseType(s string) (Type, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, t := range Types {
		if key == strings.ToLower(strings.ReplaceAll(string(t), " ", "")) {
			return t, true
		}
	}
	return "", false
}
