package connection

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hpolloni/rdsline/pkg/results"
)

// DataAPIClient is the subset of the RDS Data API client used by DataAPI.
// Tests inject a fake; production code passes *rdsdata.Client.
type DataAPIClient interface {
	ExecuteStatement(ctx context.Context, params *rdsdata.ExecuteStatementInput, optFns ...func(*rdsdata.Options)) (*rdsdata.ExecuteStatementOutput, error)
}

// DataAPI is a connection to an Aurora cluster through the RDS Data API,
// authenticated with a Secrets Manager secret.
type DataAPI struct {
	ClusterARN string
	SecretARN  string
	Database   string

	client DataAPIClient
}

// NewDataAPI creates a Data API connection.
func NewDataAPI(clusterARN, secretARN, database string, client DataAPIClient) *DataAPI {
	return &DataAPI{
		ClusterARN: clusterARN,
		SecretARN:  secretARN,
		Database:   database,
		client:     client,
	}
}

// Execute implements Connection. Each call is a single stateless
// ExecuteStatement request; result metadata is always requested so query
// results come back with column names.
func (c *DataAPI) Execute(ctx context.Context, sql string) (results.StatementResult, error) {
	log := logrus.WithField("statement_id", uuid.NewString())
	log.Debugf("executing statement: %s", sql)

	out, err := c.client.ExecuteStatement(ctx, &rdsdata.ExecuteStatementInput{
		ResourceArn:           aws.String(c.ClusterARN),
		SecretArn:             aws.String(c.SecretARN),
		Database:              aws.String(c.Database),
		Sql:                   aws.String(sql),
		IncludeResultMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("execute statement: %w", err)
	}

	result := toResult(out)
	log.Debugf("statement finished: %s", result.Summary())
	return result, nil
}

// Describe implements Connection.
func (c *DataAPI) Describe() string {
	return strings.Join([]string{
		"RDSDataAPIConnection",
		"Cluster ARN: " + c.ClusterARN,
		"Secret ARN: " + c.SecretARN,
		"Database: " + c.Database,
	}, "\n")
}

// toResult shapes an ExecuteStatement response into a StatementResult. A
// response without column metadata is a DML/DDL outcome; everything else is
// a query result.
func toResult(out *rdsdata.ExecuteStatementOutput) results.StatementResult {
	if len(out.ColumnMetadata) == 0 {
		return &results.DMLResult{RecordsUpdated: out.NumberOfRecordsUpdated}
	}

	columns := make([]string, len(out.ColumnMetadata))
	for i, col := range out.ColumnMetadata {
		columns[i] = aws.ToString(col.Name)
	}

	rows := make([][]any, len(out.Records))
	for i, record := range out.Records {
		row := make([]any, len(record))
		for j, field := range record {
			row[j] = decodeField(field)
		}
		rows[i] = row
	}

	return &results.QueryResult{Columns: columns, Rows: rows}
}

// decodeField converts one Data API field union member to a native scalar.
func decodeField(field rdstypes.Field) any {
	switch f := field.(type) {
	case *rdstypes.FieldMemberIsNull:
		return nil
	case *rdstypes.FieldMemberBooleanValue:
		return f.Value
	case *rdstypes.FieldMemberLongValue:
		return f.Value
	case *rdstypes.FieldMemberDoubleValue:
		return f.Value
	case *rdstypes.FieldMemberStringValue:
		return f.Value
	case *rdstypes.FieldMemberBlobValue:
		return f.Value
	case *rdstypes.FieldMemberArrayValue:
		return "ARRAY"
	default:
		return "UNKNOWN"
	}
}
