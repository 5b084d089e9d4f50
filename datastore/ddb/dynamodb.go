/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/suparena/entityquery/config"
	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/log"
	"github.com/suparena/entityquery/storagemodels"
)

// ExecuteStatementAPI is the part of the DynamoDB client the data store needs.
type ExecuteStatementAPI interface {
	ExecuteStatement(ctx context.Context, params *sdk.ExecuteStatementInput, optFns ...func(*sdk.Options)) (*sdk.ExecuteStatementOutput, error)
}

// DynamodbDataStore implements datastore.Gateway[T] by running PartiQL statements
// against AWS DynamoDB.
type DynamodbDataStore[T any] struct {
	client         ExecuteStatementAPI
	tableName      string
	consistentRead bool
	logger         log.Logger
}

var (
	_ datastore.Gateway[struct{}] = (*DynamodbDataStore[struct{}])(nil)
	_ ExecuteStatementAPI          = (*sdk.Client)(nil)
)

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used when an
// access key is configured, the default credential chain otherwise.
func NewDynamoDBClient(ctx context.Context, cfg config.DynamoDB) (*sdk.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for type T.
func NewDynamodbDataStore[T any](client ExecuteStatementAPI, tableName string) *DynamodbDataStore[T] {
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
		logger:    log.Discard(),
	}
}

// WithLogger sets the logger statements are traced with
func (d *DynamodbDataStore[T]) WithLogger(l log.Logger) *DynamodbDataStore[T] {
	d.logger = l
	return d
}

// WithConsistentRead makes every statement a strongly consistent read
func (d *DynamodbDataStore[T]) WithConsistentRead(consistent bool) *DynamodbDataStore[T] {
	d.consistentRead = consistent
	return d
}

// TableName returns the table the data store was created for.
func (d *DynamodbDataStore[T]) TableName() string {
	return d.tableName
}

// SelectAll returns a statement selecting every item of the table.
func (d *DynamodbDataStore[T]) SelectAll() storagemodels.Statement {
	return storagemodels.NewStatement(fmt.Sprintf("SELECT * FROM %q", d.tableName))
}
