/*
Package registry holds the entity metadata EntityQuery needs at execution time.

Entities are registered per Go type, usually from init() functions:

	registry.RegisterEntity(registry.Entity[Event]{
	    Name:  "Event",
	    Table: "events",
	    ID: registry.SingleColumn("id", func(e Event) int64 {
	        return e.ID
	    }),
	})

The identifier accessor replaces reflective field access: pagination reads the
identifier of the last row of a page through it, and gateways that filter in
memory use it to compute ordering tokens.

Entities without an identifier (ID == nil) can still be queried, but a paginated
query on them cannot be resumed. Identifiers with several columns are reported as
composite and are likewise rejected for resumption.

The registry is thread-safe and should be populated during initialization.
*/
package registry
