package dto

import (
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/validator"
)

// CreateResourceRequest represents a resource creation request
type CreateResourceRequest struct {
	Name     string                 `json:"name" validate:"required,max=255"`
	Provider string                 `json:"provider" validate:"required,resource_provider"`
	Type     string                 `json:"type" validate:"required,resource_type"`
	Region   string                 `json:"region" validate:"required,max=100"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

// ToInput converts a validated request into a create input
func (r CreateResourceRequest) ToInput() resource.CreateInput {
	p, _ := resource.ParseProvider(r.Provider)
	t, _ := resource.ParseType(r.Type)
	return resource.CreateInput{
		Name:     r.Name,
		Provider: p,
		Type:     t,
		Region:   r.Region,
		Config:   r.Config,
	}
}

// UpdateResourceRequest represents a partial resource update. Absent fields are kept.
type UpdateResourceRequest struct {
	Name   *string   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Region *string   `json:"region,omitempty" validate:"omitempty,max=100"`
	Status *string   `json:"status,omitempty" validate:"omitempty,resource_status"`
	Tags   *[]string `json:"tags,omitempty" validate:"omitempty,dive,max=64"`
}

// ToPatch converts a validated request into a patch
func (r UpdateResourceRequest) ToPatch() resource.Patch {
	patch := resource.Patch{
		Name:   r.Name,
		Region: r.Region,
		Tags:   r.Tags,
	}
	if r.Status != nil {
		s, _ := resource.ParseStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// RegisterRules adds the resource vocabulary tags to v
func RegisterRules(v *validator.Validator) error {
	rules := []struct {
		tag string
		msg string
		fn  func(string) bool
	}{
		{"resource_provider", "must be one of [AWS GCP Azure]", func(s string) bool {
			_, ok := resource.ParseProvider(s)
			return ok
		}},
		{"resource_type", "must be one of [VM Storage Database Serverless Load Balancer]", func(s string) bool {
			_, ok := resource.ParseType(s)
			return ok
		}},
		{"resource_status", "must be a known resource status", func(s string) bool {
			_, ok := resource.ParseStatus(s)
			return ok
		}},
	}

	for _, rule := range rules {
		if err := v.RegisterStringRule(rule.tag, rule.msg, rule.fn); err != nil {
			return err
		}
	}
	return nil
}
