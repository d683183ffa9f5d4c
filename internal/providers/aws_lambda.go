package providers

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
)

// placeholder account of synthetic function ARNs
const logicalAccount = "000000000000"

const handlerSource = `def handler(event, context):
    return {"statusCode": 200, "body": "ok"}
`

// LambdaAdapter provisions AWS serverless functions. Without an execution
// role it only produces logical functions.
type LambdaAdapter struct {
	client  LambdaAPI
	roleARN string
	runtime lambdatypes.Runtime
	region  string
	logger  *logger.Logger
}

// NewLambdaAdapter creates a serverless adapter
func NewLambdaAdapter(client LambdaAPI, roleARN, runtime, region string, log *logger.Logger) *LambdaAdapter {
	return &LambdaAdapter{
		client:  client,
		roleARN: roleARN,
		runtime: lambdatypes.Runtime(runtime),
		region:  region,
		logger:  log.With("adapter", "aws-lambda"),
	}
}

// IsLogicalFunction reports whether arn is a synthetic function ARN.
func IsLogicalFunction(arn string) bool {
	return strings.Contains(arn, ":"+logicalAccount+":function:")
}

// FunctionName derives a unique Lambda function name from a resource name.
func FunctionName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	stem := strings.Trim(b.String(), "-")
	if len(stem) > 57 {
		stem = stem[:57]
	}
	if stem == "" {
		stem = "function"
	}
	return stem + "-" + randomHex(6)
}

func (a *LambdaAdapter) logical(name, region, native string) Outcome {
	if region == "" {
		region = a.region
	}
	return Outcome{
		ExternalID:   fmt.Sprintf("arn:aws:lambda:%s:%s:function:%s", region, logicalAccount, FunctionName(name)),
		NativeStatus: native,
		Logical:      true,
	}
}

// Create deploys a minimal function when a role is configured
func (a *LambdaAdapter) Create(ctx context.Context, name, region string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if a.client == nil || a.roleARN == "" {
		return a.logical(name, region, StatusLogicalHealthy), nil
	}

	code, err := handlerZip()
	if err != nil {
		a.logger.ErrorWithErr(err, "Failed to package Lambda handler")
		return a.logical(name, region, StatusNotCreatedInAWS), nil
	}

	out, err := a.client.CreateFunction(ctx, &lambda.CreateFunctionInput{
		FunctionName: aws.String(FunctionName(name)),
		Role:         aws.String(a.roleARN),
		Runtime:      a.runtime,
		Handler:      aws.String("index.handler"),
		Code:         &lambdatypes.FunctionCode{ZipFile: code},
		Tags:         map[string]string{"Project": projectTag, "Name": name},
	}, withLambdaRegion(region))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		a.logger.WithError(awsError("CreateFunction", err)).Warn("Lambda create failed, keeping logical function")
		return a.logical(name, region, StatusNotCreatedInAWS), nil
	}
	if out.FunctionArn == nil {
		return a.logical(name, region, StatusNotCreatedInAWS), nil
	}

	native := string(lambdatypes.StatePending)
	if out.State != "" {
		native = string(out.State)
	}

	a.logger.With("function_arn", *out.FunctionArn).Info("Lambda function created")
	return Outcome{ExternalID: *out.FunctionArn, NativeStatus: native}, nil
}

// Status returns the function state
func (a *LambdaAdapter) Status(ctx context.Context, arn, region string) (string, error) {
	if IsLogicalFunction(arn) {
		return StatusLogicalHealthy, nil
	}
	if a.client == nil {
		return "", awsError("GetFunction", ErrOffline)
	}

	out, err := a.client.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(arn)}, withLambdaRegion(region))
	if err != nil {
		return "", awsError("GetFunction", err)
	}
	if out.Configuration == nil {
		return "", awsError("GetFunction", ErrNotFound)
	}
	return string(out.Configuration.State), nil
}

// Terminate deletes the function
func (a *LambdaAdapter) Terminate(ctx context.Context, arn, region string) error {
	if arn == "" || IsLogicalFunction(arn) {
		return nil
	}
	if a.client == nil {
		return awsError("DeleteFunction", ErrOffline)
	}

	if _, err := a.client.DeleteFunction(ctx, &lambda.DeleteFunctionInput{FunctionName: aws.String(arn)}, withLambdaRegion(region)); err != nil {
		return awsError("DeleteFunction", err)
	}
	return nil
}

func withLambdaRegion(region string) func(*lambda.Options) {
	return func(o *lambda.Options) {
		if region != "" {
			o.Region = region
		}
	}
}

func handlerZip() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("index.py")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write([]byte(handlerSource)); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
