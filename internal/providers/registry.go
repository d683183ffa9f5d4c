package providers

import (
	"github.com/pratik-mahalle/cloudmgr/internal/config"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
)

// NewDefaultRegistry wires one adapter per supported provider and type.
// AWS adapters share clients; GCP and Azure are simulated.
func NewDefaultRegistry(clients *AWSClients, cfg config.AWSConfig, log *logger.Logger) *Registry {
	if clients == nil {
		clients = OfflineAWSClients(cfg.Region)
	}

	r := NewRegistry()

	r.Register(resource.ProviderAWS, resource.TypeVM, NewEC2Adapter(clients.EC2, cfg.EC2AMI, cfg.EC2InstanceType, log))
	r.Register(resource.ProviderAWS, resource.TypeStorage, NewS3Adapter(clients.S3, log))
	r.Register(resource.ProviderAWS, resource.TypeDatabase, NewDynamoDBAdapter(clients.DynamoDB, log))
	r.Register(resource.ProviderAWS, resource.TypeServerless, NewLambdaAdapter(clients.Lambda, cfg.LambdaRoleARN, cfg.LambdaRuntime, clients.Region, log))
	r.Register(resource.ProviderAWS, resource.TypeLoadBalancer, LoadBalancerAdapter{})

	for _, p := range []resource.Provider{resource.ProviderGCP, resource.ProviderAzure} {
		for _, t := range resource.Types {
			r.Register(p, t, NewSimulatedAdapter(p, t))
		}
	}

	return r
}
