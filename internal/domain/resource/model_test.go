package resource

import (
	"reflect"
	"testing"
)

func TestMonthlyCost(t *testing.T) {
	tests := []struct {
		provider Provider
		typ      Type
		want     float64
	}{
		{ProviderAWS, TypeVM, 800},
		{ProviderAWS, TypeStorage, 50},
		{ProviderAWS, TypeDatabase, 300},
		{ProviderAWS, TypeServerless, 50},
		{ProviderAWS, TypeLoadBalancer, 200},
		{ProviderGCP, TypeVM, 900},
		{ProviderGCP, TypeStorage, 900},
		{ProviderAzure, TypeServerless, 900},
		{ProviderAWS, Type("Queue"), 0},
		{Provider("Oracle"), TypeVM, 0},
	}

	for _, tt := range tests {
		if got := MonthlyCost(tt.provider, tt.typ); got != tt.want {
			t.Errorf("MonthlyCost(%s, %s) = %v, want %v", tt.provider, tt.typ, got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in     string
		want   Type
		wantOK bool
	}{
		{"VM", TypeVM, true},
		{"storage", TypeStorage, true},
		{"Load Balancer", TypeLoadBalancer, true},
		{"LoadBalancer", TypeLoadBalancer, true},
		{"load balancer", TypeLoadBalancer, true},
		{"Queue", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseType(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseType(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestParseProvider(t *testing.T) {
	if p, ok := ParseProvider("aws"); !ok || p != ProviderAWS {
		t.Errorf("ParseProvider(aws) = %q, %v", p, ok)
	}
	if p, ok := ParseProvider("AZURE"); !ok || p != ProviderAzure {
		t.Errorf("ParseProvider(AZURE) = %q, %v", p, ok)
	}
	if _, ok := ParseProvider("oracle"); ok {
		t.Error("ParseProvider accepted oracle")
	}
}

func TestPatch(t *testing.T) {
	name := "renamed"
	status := StatusStopped
	tags := []string{"prod", "web"}
	p := Patch{Name: &name, Status: &status, Tags: &tags}

	if got := p.Fields(); !reflect.DeepEqual(got, []string{"name", "status", "tags"}) {
		t.Errorf("Fields() = %v", got)
	}

	r := &Resource{Name: "old", Region: "ap-south-1", ExternalID: "i-123", Status: StatusRunning}
	p.Apply(r)
	if r.Name != "renamed" || r.Status != StatusStopped || r.Region != "ap-south-1" {
		t.Errorf("unexpected resource after Apply: %+v", r)
	}
	if r.ExternalID != "i-123" {
		t.Error("Apply must not touch ExternalID")
	}

	tags[0] = "mutated"
	if r.Tags[0] != "prod" {
		t.Error("Apply should copy tags")
	}

	if !(Patch{}).Empty() {
		t.Error("zero Patch should be empty")
	}
}

func TestFilterMatches(t *testing.T) {
	r := &Resource{Provider: ProviderAWS, Type: TypeVM, Region: "ap-south-1", Status: StatusRunning}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"provider", Filter{Provider: ProviderAWS}, true},
		{"wrong provider", Filter{Provider: ProviderGCP}, false},
		{"type and status", Filter{Type: TypeVM, Status: StatusRunning}, true},
		{"wrong region", Filter{Region: "us-east-1"}, false},
	}

	for _, tt := range tests {
		if got := tt.filter.Matches(r); got != tt.want {
			t.Errorf("%s: Matches() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
