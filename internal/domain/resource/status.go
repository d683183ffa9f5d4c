package resource

import "strings"

// Status is the canonical, provider-independent resource state
type Status string

// Canonical statuses
const (
	StatusCreating               Status = "Creating"
	StatusRunning                Status = "Running"
	StatusStopped                Status = "Stopped"
	StatusTerminated             Status = "Terminated"
	StatusDeleted                Status = "Deleted"
	StatusFailed                 Status = "Failed"
	StatusUnknown                Status = "Unknown"
	StatusNotCreatedInProvider   Status = "NotCreatedInProvider"
	StatusNotSupportedInFreeTier Status = "NotSupportedInFreeTier"
)

// Statuses lists every canonical status.
var Statuses = []Status{
	StatusCreating,
	StatusRunning,
	StatusStopped,
	StatusTerminated,
	StatusDeleted,
	StatusFailed,
	StatusUnknown,
	StatusNotCreatedInProvider,
	StatusNotSupportedInFreeTier,
}

// ParseStatus resolves a canonical status name case-insensitively.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// IsStable reports whether a status survives a failed provider read.
func (s Status) IsStable() bool {
	switch s {
	case StatusRunning, StatusStopped, StatusTerminated, StatusDeleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the resource is gone in the provider. Terminal
// resources are never refreshed.
func (s Status) IsTerminal() bool {
	return s == StatusTerminated || s == StatusDeleted
}

// Healthy reports whether the status does not warrant an alert.
func (s Status) Healthy() bool {
	return s == StatusRunning || s == StatusStopped
}

type tableKey struct {
	provider Provider
	typ      Type
}

// anyType matches every resource type of a provider.
const anyType Type = "*"

// Native vocabularies, keyed by lower-cased native token.
var statusTables = map[tableKey]map[string]Status{
	{ProviderAWS, TypeVM}: {
		"pending":         StatusRunning,
		"running":         StatusRunning,
		"stopping":        StatusStopped,
		"stopped":         StatusStopped,
		"shutting-down":   StatusStopped,
		"terminated":      StatusTerminated,
		"notcreatedinaws": StatusNotCreatedInProvider,
	},
	{ProviderAWS, TypeDatabase}: {
		"creating":        StatusRunning,
		"updating":        StatusRunning,
		"active":          StatusRunning,
		"deleting":        StatusDeleted,
		"notcreatedinaws": StatusNotCreatedInProvider,
	},
	{ProviderAWS, TypeStorage}: {
		"running":         StatusRunning,
		"notcreatedinaws": StatusRunning,
	},
	{ProviderAWS, TypeServerless}: {
		"pending":         StatusRunning,
		"active":          StatusRunning,
		"running":         StatusRunning,
		"inactive":        StatusStopped,
		"failed":          StatusFailed,
		"notcreatedinaws": StatusNotCreatedInProvider,
	},
	{ProviderAWS, TypeLoadBalancer}: {
		"notsupportedinfreetier": StatusNotSupportedInFreeTier,
	},
	{ProviderGCP, anyType}: {
		"running":    StatusRunning,
		"stopped":    StatusStopped,
		"terminated": StatusTerminated,
	},
	{ProviderAzure, anyType}: {
		"running":    StatusRunning,
		"stopped":    StatusStopped,
		"terminated": StatusTerminated,
	},
}

func tableFor(p Provider, t Type) map[string]Status {
	if table, ok := statusTables[tableKey{p, t}]; ok {
		return table
	}
	return statusTables[tableKey{p, anyType}]
}

// Normalize maps a provider-native status onto the canonical enum.
//
// An empty native status means the provider could not be read: a stable
// previous status is kept, anything else becomes Failed. A native token with
// no mapping keeps the previous status, or Unknown when there is none.
func Normalize(p Provider, t Type, native string, previous Status) Status {
	native = strings.TrimSpace(native)
	if native == "" {
		if previous.IsStable() {
			return previous
		}
		return StatusFailed
	}

	if s, ok := tableFor(p, t)[strings.ToLower(native)]; ok {
		return s
	}
	if previous != "" {
		return previous
	}
	return StatusUnknown
}
