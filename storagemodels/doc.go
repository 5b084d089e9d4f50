/*
Package storagemodels defines the data structures shared by executions and gateways.

Key Types:

Statement:
The structured effective query handed to a gateway:

	stmt := storagemodels.NewStatement("SELECT * FROM events WHERE kind = ?", "click").
	    WithAfter("id", lastID).
	    WithLimit(pageSize + 1)

After is rendered by each gateway as its keyset predicate (for Cassandra,
token(id) > token(?)), Limit as its row cap.

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    Item  T          // The typed entity
	    Error error      // Item-specific error, if any
	    Meta  StreamMeta // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithProgressHandler(progressFunc),
	}

These types provide a consistent interface across different storage implementations.
*/
package storagemodels
