package providers

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
)

const ddbLogicalPrefix = "aws-ddb-local-"

// DynamoDBAdapter provisions AWS databases as on-demand DynamoDB tables
type DynamoDBAdapter struct {
	client DynamoDBAPI
	logger *logger.Logger
}

// NewDynamoDBAdapter creates a database adapter. A nil client yields logical tables only.
func NewDynamoDBAdapter(client DynamoDBAPI, log *logger.Logger) *DynamoDBAdapter {
	return &DynamoDBAdapter{client: client, logger: log.With("adapter", "aws-dynamodb")}
}

// IsLogicalTable reports whether name is a synthetic table ID.
func IsLogicalTable(name string) bool {
	return strings.HasPrefix(name, ddbLogicalPrefix)
}

// table names are at most 255 characters; 7 are taken by the suffix
const maxTableStem = 248

// TableName derives a valid, unique table name from a resource name.
// Characters outside [A-Za-z0-9_.-] become underscores.
func TableName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	stem := strings.Trim(b.String(), "_")
	if len(stem) > maxTableStem {
		stem = stem[:maxTableStem]
	}
	if stem == "" {
		stem = "table"
	}
	return stem + "_" + randomHex(6)
}

func (a *DynamoDBAdapter) logical() Outcome {
	return Outcome{
		ExternalID:   ddbLogicalPrefix + randomHex(6),
		NativeStatus: StatusNotCreatedInAWS,
		Logical:      true,
	}
}

// Create creates a table keyed by a string "id"
func (a *DynamoDBAdapter) Create(ctx context.Context, name, region string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if a.client == nil {
		return a.logical(), nil
	}

	table := TableName(name)
	out, err := a.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []ddbtypes.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: ddbtypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbtypes.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: ddbtypes.KeyTypeHash},
		},
		BillingMode: ddbtypes.BillingModePayPerRequest,
	}, withDynamoDBRegion(region))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		a.logger.WithError(awsError("CreateTable", err)).Warn("DynamoDB create failed, keeping logical table")
		return a.logical(), nil
	}

	native := string(ddbtypes.TableStatusCreating)
	if out.TableDescription != nil && out.TableDescription.TableStatus != "" {
		native = string(out.TableDescription.TableStatus)
	}

	a.logger.With("table", table).Info("DynamoDB table created")
	return Outcome{ExternalID: table, NativeStatus: native}, nil
}

// Status returns the table status
func (a *DynamoDBAdapter) Status(ctx context.Context, table, region string) (string, error) {
	if IsLogicalTable(table) {
		return StatusLogicalHealthy, nil
	}
	if a.client == nil {
		return "", awsError("DescribeTable", ErrOffline)
	}

	out, err := a.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, withDynamoDBRegion(region))
	if err != nil {
		return "", awsError("DescribeTable", err)
	}
	if out.Table == nil {
		return "", awsError("DescribeTable", ErrNotFound)
	}
	return string(out.Table.TableStatus), nil
}

// Terminate deletes the table
func (a *DynamoDBAdapter) Terminate(ctx context.Context, table, region string) error {
	if table == "" || IsLogicalTable(table) {
		return nil
	}
	if a.client == nil {
		return awsError("DeleteTable", ErrOffline)
	}

	if _, err := a.client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(table)}, withDynamoDBRegion(region)); err != nil {
		return awsError("DeleteTable", err)
	}
	return nil
}

func withDynamoDBRegion(region string) func(*dynamodb.Options) {
	return func(o *dynamodb.Options) {
		if region != "" {
			o.Region = region
		}
	}
}
