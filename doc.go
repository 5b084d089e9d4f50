/*
Package entityquery executes queries against wide-column stores and shapes the results
into what the caller asked for: a single entity, a collection, a lazy stream, the raw
driver result, or a page of a keyset-paginated result.

Pagination never uses offsets. A page of size n fetches n+1 rows ordered by the
store's ordering token of the identifier column; the extra row only tells whether
another page exists, and the next page resumes strictly after the last row returned:

	SELECT * FROM rating_events WHERE token(id) > token(?) LIMIT 11

Key Features:
  - Type-safe repositories using Go generics
  - Cassandra (gocql) and DynamoDB (PartiQL) gateways, plus an in-memory mock
  - URL-safe continuation tokens
  - Result projection onto declared types with mapstructure
  - Semantic error types for page size and continuation failures
  - Structured logging with request-id correlation

Basic Usage:

	registry.RegisterEntity(registry.Entity[RatingEvent]{
	    Table: "rating_events",
	    ID:    registry.SingleColumn("id", func(e RatingEvent) int64 { return e.ID }),
	})

	session, _ := cql.NewCassandraSession(cfg.Store.Cassandra)
	repo := entityquery.NewRepository[RatingEvent](cql.NewCassandraDataStore[RatingEvent](session))

	page, err := repo.Slice(ctx, execution.FirstPage(10), "SELECT * FROM rating_events")
	for {
	    // use page.Rows
	    next, ok := page.NextPage()
	    if !ok {
	        break
	    }
	    page, err = repo.Slice(ctx, next, "SELECT * FROM rating_events")
	}
*/
package entityquery
