package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
)

// LoadBalancerAdapter records AWS load balancers as logical resources; the
// demo account cannot create them.
type LoadBalancerAdapter struct{}

// Create returns the logical load balancer ID
func (LoadBalancerAdapter) Create(ctx context.Context, name, _ string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	return Outcome{
		ExternalID:   "aws-lb-" + name,
		NativeStatus: StatusNotSupportedInFreeTier,
		Logical:      true,
	}, nil
}

// Terminate is a no-op
func (LoadBalancerAdapter) Terminate(context.Context, string, string) error {
	return nil
}

// SimulatedAdapter stands in for a provider that has no real backend. Every
// resource it creates is reported Running.
type SimulatedAdapter struct {
	provider resource.Provider
	typ      resource.Type
}

// NewSimulatedAdapter creates a simulated adapter for one provider and type
func NewSimulatedAdapter(p resource.Provider, t resource.Type) *SimulatedAdapter {
	return &SimulatedAdapter{provider: p, typ: t}
}

// Create returns "<provider>-<type>-<hex8>" in lower case
func (s *SimulatedAdapter) Create(ctx context.Context, _, _ string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	id := fmt.Sprintf("%s-%s-%s",
		strings.ToLower(string(s.provider)),
		strings.ToLower(strings.ReplaceAll(string(s.typ), " ", "")),
		randomHex(8))
	return Outcome{ExternalID: id, NativeStatus: "Running", Logical: true}, nil
}

// Terminate is a no-op
func (s *SimulatedAdapter) Terminate(context.Context, string, string) error {
	return nil
}
