/*
Package datastore defines the Store Gateway, the seam between executions and a concrete store.

	type Gateway[T any] interface {
	    FetchMany(ctx context.Context, stmt storagemodels.Statement) ([]T, error)
	    FetchOne(ctx context.Context, stmt storagemodels.Statement) (*T, error)
	    FetchRaw(ctx context.Context, stmt storagemodels.Statement) (RawResult, error)
	    Stream(ctx context.Context, stmt storagemodels.Statement, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	}

Implementations:
  - cql: Apache Cassandra, keyset predicate rendered as token(id) > token(?)
  - ddb: DynamoDB PartiQL, keyset predicate rendered on the sort key
  - mock: in-memory gateway evaluating statements for tests

MockGateway is a gomock mock used where tests assert on the exact calls made.
*/
package datastore
