package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
)

// Native status tokens shared by adapters
const (
	// StatusNotCreatedInAWS marks a logical-only AWS resource.
	StatusNotCreatedInAWS = "NotCreatedInAWS"
	// StatusNotSupportedInFreeTier marks types the demo account cannot create.
	StatusNotSupportedInFreeTier = "NotSupportedInFreeTier"
	// StatusLogicalHealthy is reported for logical IDs without asking the provider.
	StatusLogicalHealthy = "Running"
)

// Outcome is the result of a create call
type Outcome struct {
	ExternalID   string
	NativeStatus string
	// Logical is set when ExternalID is synthetic and nothing exists in the provider.
	Logical bool
	Spec    resource.Spec
}

// Adapter provisions and removes one provider/type pair.
//
// Create never reports provider failures: it degrades to a logical Outcome.
// It returns an error only when ctx is done. Terminate is a no-op for logical
// IDs and otherwise returns the provider failure. Region is the one the
// resource was created in; empty means the client default.
type Adapter interface {
	Create(ctx context.Context, name, region string) (Outcome, error)
	Terminate(ctx context.Context, externalID, region string) error
}

// StatusReader is implemented by adapters that can read a live native status.
// Logical IDs answer StatusLogicalHealthy without a provider call; any error
// means the status is absent.
type StatusReader interface {
	Status(ctx context.Context, externalID, region string) (string, error)
}

// ProviderError is a failed provider call
type ProviderError struct {
	Provider  resource.Provider
	Operation string
	Code      string
	Err       error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Operation, e.Code, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrOffline is returned when no SDK client could be configured.
var ErrOffline = errors.New("provider client not configured")

// ErrNotFound is returned when the provider has no such resource.
var ErrNotFound = errors.New("resource not found in provider")

func newProviderError(provider resource.Provider, op string, err error) *ProviderError {
	pe := &ProviderError{Provider: provider, Operation: op, Err: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		pe.Code = apiErr.ErrorCode()
	}
	return pe
}

func awsError(op string, err error) *ProviderError {
	return newProviderError(resource.ProviderAWS, op, err)
}

// randomHex returns n lowercase hex characters.
func randomHex(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// Registry resolves the adapter for a provider and type
type Registry struct {
	adapters map[key]Adapter
}

type key struct {
	provider resource.Provider
	typ      resource.Type
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[key]Adapter)}
}

// Register binds an adapter to a provider and type
func (r *Registry) Register(p resource.Provider, t resource.Type, a Adapter) {
	r.adapters[key{p, t}] = a
}

// Lookup returns the adapter for a provider and type
func (r *Registry) Lookup(p resource.Provider, t resource.Type) (Adapter, bool) {
	a, ok := r.adapters[key{p, t}]
	return a, ok
}
