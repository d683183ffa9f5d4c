package providers

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
)

const (
	s3LogicalPrefix = "aws-s3-local-"
	// bucket names are at most 63 characters; 9 are taken by the suffix
	maxBucketStem = 54
)

var storageSpec = resource.Spec{Storage: "5 GB"}

// S3Adapter provisions AWS storage as S3 buckets
type S3Adapter struct {
	client S3API
	logger *logger.Logger
}

// NewS3Adapter creates a storage adapter. A nil client yields logical buckets only.
func NewS3Adapter(client S3API, log *logger.Logger) *S3Adapter {
	return &S3Adapter{client: client, logger: log.With("adapter", "aws-s3")}
}

// IsLogicalBucket reports whether name is a synthetic bucket ID.
func IsLogicalBucket(name string) bool {
	return strings.HasPrefix(name, s3LogicalPrefix)
}

// BucketName derives a valid, unique bucket name from a resource name.
func BucketName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	stem := strings.Trim(b.String(), "-.")
	if len(stem) > maxBucketStem {
		stem = strings.TrimRight(stem[:maxBucketStem], "-.")
	}
	if stem == "" {
		stem = "bucket"
	}
	return stem + "-" + randomHex(8)
}

func (a *S3Adapter) logical() Outcome {
	return Outcome{
		ExternalID:   s3LogicalPrefix + randomHex(8),
		NativeStatus: StatusNotCreatedInAWS,
		Logical:      true,
		Spec:         storageSpec,
	}
}

// Create creates an empty bucket in region
func (a *S3Adapter) Create(ctx context.Context, name, region string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if a.client == nil {
		return a.logical(), nil
	}

	bucket := BucketName(name)
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}

	if _, err := a.client.CreateBucket(ctx, input, withS3Region(region)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		a.logger.WithError(awsError("CreateBucket", err)).Warn("S3 create failed, keeping logical bucket")
		return a.logical(), nil
	}

	a.logger.With("bucket", bucket).Info("S3 bucket created")
	return Outcome{ExternalID: bucket, NativeStatus: "Running", Spec: storageSpec}, nil
}

// Terminate empties and deletes the bucket
func (a *S3Adapter) Terminate(ctx context.Context, bucket, region string) error {
	if bucket == "" || IsLogicalBucket(bucket) {
		return nil
	}
	if a.client == nil {
		return awsError("DeleteBucket", ErrOffline)
	}

	var token *string
	for {
		page, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			ContinuationToken: token,
		}, withS3Region(region))
		if err != nil {
			return awsError("ListObjectsV2", err)
		}
		for _, obj := range page.Contents {
			if _, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(bucket),
				Key:    obj.Key,
			}, withS3Region(region)); err != nil {
				return awsError("DeleteObject", err)
			}
		}
		if page.IsTruncated == nil || !*page.IsTruncated || page.NextContinuationToken == nil {
			break
		}
		token = page.NextContinuationToken
	}

	if _, err := a.client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)}, withS3Region(region)); err != nil {
		return awsError("DeleteBucket", err)
	}
	return nil
}

func withS3Region(region string) func(*s3.Options) {
	return func(o *s3.Options) {
		if region != "" {
			o.Region = region
		}
	}
}
