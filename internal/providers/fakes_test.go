package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeEC2 struct {
	runFn       func(*ec2.RunInstancesInput) (*ec2.RunInstancesOutput, error)
	describeFn  func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error)
	terminateFn func(*ec2.TerminateInstancesInput) (*ec2.TerminateInstancesOutput, error)
	calls       int
	regions     []string
}

func (f *fakeEC2) record(optFns []func(*ec2.Options)) {
	f.calls++
	o := ec2.Options{Region: "client-default"}
	for _, fn := range optFns {
		fn(&o)
	}
	f.regions = append(f.regions, o.Region)
}

func (f *fakeEC2) RunInstances(_ context.Context, in *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	f.record(optFns)
	return f.runFn(in)
}

func (f *fakeEC2) DescribeInstances(_ context.Context, in *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.record(optFns)
	return f.describeFn(in)
}

func (f *fakeEC2) TerminateInstances(_ context.Context, in *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error) {
	f.record(optFns)
	return f.terminateFn(in)
}

type fakeS3 struct {
	createErr error
	objects   []string
	deleted   []string
	bucketDel bool
	created   *s3.CreateBucketInput
	regions   []string
}

func (f *fakeS3) record(optFns []func(*s3.Options)) {
	o := s3.Options{Region: "client-default"}
	for _, fn := range optFns {
		fn(&o)
	}
	f.regions = append(f.regions, o.Region)
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.record(optFns)
	f.created = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, _ *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.record(optFns)
	out := &s3.ListObjectsV2Output{}
	for _, k := range f.objects {
		key := k
		out.Contents = append(out.Contents, s3Object(key))
	}
	return out, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.record(optFns)
	f.deleted = append(f.deleted, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) DeleteBucket(_ context.Context, _ *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	f.record(optFns)
	f.bucketDel = true
	return &s3.DeleteBucketOutput{}, nil
}

type fakeDynamoDB struct {
	createErr   error
	describeOut *dynamodb.DescribeTableOutput
	describeErr error
	deleted     []string
	regions     []string
}

func (f *fakeDynamoDB) record(optFns []func(*dynamodb.Options)) {
	o := dynamodb.Options{Region: "client-default"}
	for _, fn := range optFns {
		fn(&o)
	}
	f.regions = append(f.regions, o.Region)
}

func (f *fakeDynamoDB) CreateTable(_ context.Context, _ *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.record(optFns)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeDynamoDB) DescribeTable(_ context.Context, _ *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.record(optFns)
	return f.describeOut, f.describeErr
}

func (f *fakeDynamoDB) DeleteTable(_ context.Context, in *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error) {
	f.record(optFns)
	f.deleted = append(f.deleted, *in.TableName)
	return &dynamodb.DeleteTableOutput{}, nil
}

type fakeLambda struct {
	createOut *lambda.CreateFunctionOutput
	createErr error
	getOut    *lambda.GetFunctionOutput
	created   *lambda.CreateFunctionInput
	regions   []string
}

func (f *fakeLambda) record(optFns []func(*lambda.Options)) {
	o := lambda.Options{Region: "client-default"}
	for _, fn := range optFns {
		fn(&o)
	}
	f.regions = append(f.regions, o.Region)
}

func (f *fakeLambda) CreateFunction(_ context.Context, in *lambda.CreateFunctionInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error) {
	f.record(optFns)
	f.created = in
	return f.createOut, f.createErr
}

func (f *fakeLambda) GetFunction(_ context.Context, _ *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error) {
	f.record(optFns)
	return f.getOut, nil
}

func (f *fakeLambda) DeleteFunction(_ context.Context, _ *lambda.DeleteFunctionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error) {
	f.record(optFns)
	return &lambda.DeleteFunctionOutput{}, nil
}

type fakeCloudWatch struct {
	byMetric map[string]*cloudwatch.GetMetricStatisticsOutput
	err      error
	regions  []string
}

func (f *fakeCloudWatch) GetMetricStatistics(_ context.Context, in *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	o := cloudwatch.Options{Region: "client-default"}
	for _, fn := range optFns {
		fn(&o)
	}
	f.regions = append(f.regions, o.Region)
	if f.err != nil {
		return nil, f.err
	}
	if out, ok := f.byMetric[*in.MetricName]; ok {
		return out, nil
	}
	return &cloudwatch.GetMetricStatisticsOutput{}, nil
}
