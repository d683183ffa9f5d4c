package providers

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
)

const (
	ec2LogicalPrefix = "aws-ec2-local-"
	// legacy prefix of IDs written before the logical sentinel existed
	ec2ErrorPrefix = "ec2-error-"
	projectTag     = "CloudResourceManagerDemo"
)

var vmSpec = resource.Spec{CPU: "1 vCPU", Memory: "1 GB"}

// EC2Adapter provisions AWS VMs as single EC2 instances
type EC2Adapter struct {
	client       EC2API
	ami          string
	instanceType ec2types.InstanceType
	logger       *logger.Logger
}

// NewEC2Adapter creates a VM adapter. A nil client yields logical instances only.
func NewEC2Adapter(client EC2API, ami, instanceType string, log *logger.Logger) *EC2Adapter {
	return &EC2Adapter{
		client:       client,
		ami:          ami,
		instanceType: ec2types.InstanceType(instanceType),
		logger:       log.With("adapter", "aws-ec2"),
	}
}

// IsLogicalEC2ID reports whether id is a synthetic instance ID.
func IsLogicalEC2ID(id string) bool {
	return strings.HasPrefix(id, ec2LogicalPrefix) || strings.HasPrefix(id, ec2ErrorPrefix)
}

func (a *EC2Adapter) logical() Outcome {
	return Outcome{
		ExternalID:   ec2LogicalPrefix + randomHex(8),
		NativeStatus: StatusNotCreatedInAWS,
		Logical:      true,
		Spec:         vmSpec,
	}
}

// Create launches one instance tagged with the resource name
func (a *EC2Adapter) Create(ctx context.Context, name, region string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if a.client == nil {
		return a.logical(), nil
	}

	out, err := a.client.RunInstances(ctx, &ec2.RunInstancesInput{
		ImageId:      aws.String(a.ami),
		InstanceType: a.instanceType,
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeInstance,
			Tags: []ec2types.Tag{
				{Key: aws.String("Name"), Value: aws.String(name)},
				{Key: aws.String("Project"), Value: aws.String(projectTag)},
			},
		}},
	}, withEC2Region(region))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		a.logger.WithError(awsError("RunInstances", err)).Warn("EC2 create failed, keeping logical instance")
		return a.logical(), nil
	}
	if len(out.Instances) == 0 || out.Instances[0].InstanceId == nil {
		a.logger.Warn("EC2 RunInstances returned no instance, keeping logical instance")
		return a.logical(), nil
	}

	inst := out.Instances[0]
	native := "pending"
	if inst.State != nil && inst.State.Name != "" {
		native = string(inst.State.Name)
	}

	a.logger.With("instance_id", *inst.InstanceId).Info("EC2 instance launched")
	return Outcome{ExternalID: *inst.InstanceId, NativeStatus: native, Spec: vmSpec}, nil
}

// Status returns the EC2 instance state name
func (a *EC2Adapter) Status(ctx context.Context, externalID, region string) (string, error) {
	if IsLogicalEC2ID(externalID) {
		return StatusLogicalHealthy, nil
	}
	if a.client == nil {
		return "", awsError("DescribeInstances", ErrOffline)
	}

	out, err := a.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{externalID},
	}, withEC2Region(region))
	if err != nil {
		return "", awsError("DescribeInstances", err)
	}
	for _, res := range out.Reservations {
		for _, inst := range res.Instances {
			if inst.State != nil {
				return string(inst.State.Name), nil
			}
		}
	}
	return "", awsError("DescribeInstances", ErrNotFound)
}

// Terminate terminates the instance
func (a *EC2Adapter) Terminate(ctx context.Context, externalID, region string) error {
	if externalID == "" || IsLogicalEC2ID(externalID) {
		return nil
	}
	if a.client == nil {
		return awsError("TerminateInstances", ErrOffline)
	}

	if _, err := a.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{externalID},
	}, withEC2Region(region)); err != nil {
		return awsError("TerminateInstances", err)
	}
	return nil
}

func withEC2Region(region string) func(*ec2.Options) {
	return func(o *ec2.Options) {
		if region != "" {
			o.Region = region
		}
	}
}
