/*
Package ddb provides a DynamoDB implementation of the Gateway interface.

The DynamodbDataStore runs PartiQL statements through ExecuteStatement:
  - Keyset bounds compare the identifier directly, so the identifier must be the sort
    key and the statement must select a single partition
  - Limits are enforced client-side while following NextToken, because DynamoDB
    applies Limit to evaluated items rather than to returned ones
  - Items are unmarshaled with attributevalue through the "dynamodbav" struct tags

Streaming:
The streaming API pages through NextToken in a background goroutine:

	results := store.Stream(ctx, stmt,
	    storagemodels.WithBufferSize(100),
	    storagemodels.WithPageSize(25),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        log.Printf("Processed %d items", p.ItemsProcessed)
	    }),
	)

A local DynamoDB can be targeted by setting store.dynamodb.endpoint in the configuration.
*/
package ddb
