package resource

var awsMonthlyCost = map[Type]float64{
	TypeVM:           800,
	TypeStorage:      50,
	TypeDatabase:     300,
	TypeServerless:   50,
	TypeLoadBalancer: 200,
}

const simulatedMonthlyCost = 900

// MonthlyCost returns the static monthly cost for a provider and type, 0 when unknown.
func MonthlyCost(p Provider, t Type) float64 {
	switch p {
	case ProviderAWS:
		return awsMonthlyCost[t]
	case ProviderGCP, ProviderAzure:
		if _, ok := ParseType(string(t)); ok {
			return simulatedMonthlyCost
		}
	}
	return 0
}
