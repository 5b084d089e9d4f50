/*
Package cql provides a Cassandra implementation of the Gateway interface, built on the
Apache Cassandra gocql driver.

Statements are rendered in CQL. Keyset bounds compare partitioner tokens, so pages
follow the order in which the cluster stores partitions:

	stmt := storagemodels.NewStatement("SELECT * FROM rating_events WHERE rating_system_id = ? ALLOW FILTERING", "elo").
	    WithAfter("id", int64(42)).
	    WithLimit(11)

	query, args := cql.Render(stmt)
	// SELECT * FROM rating_events WHERE rating_system_id = ? AND token(id) > token(?) LIMIT 11 ALLOW FILTERING
	// args: ["elo", 42]

Rows are read with MapScan and decoded with mapstructure through the "cql" struct
tags. Streams page through results with the driver's paging state.
*/
package cql
