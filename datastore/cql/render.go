/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/suparena/entityquery/storagemodels"
)

var (
	wherePattern          = regexp.MustCompile(`(?i)\bWHERE\b`)
	allowFilteringPattern = regexp.MustCompile(`(?i)\s+ALLOW\s+FILTERING\s*$`)
)

// Render returns the CQL text and bind values of stmt. A keyset bound becomes a range
// predicate on the partitioner token of the identifier column, joined to an existing
// filter with AND, and the limit becomes a LIMIT clause:
//
//	SELECT * FROM events WHERE token(id) > token(?) LIMIT 11
//
// The bound value is always bound, never formatted into the query text.
func Render(stmt storagemodels.Statement) (string, []any) {
	query := strings.TrimSuffix(strings.TrimSpace(stmt.Query), ";")
	args := append([]any(nil), stmt.Args...)

	// ALLOW FILTERING has to stay the last clause
	var suffix string
	if loc := allowFilteringPattern.FindStringIndex(query); loc != nil {
		suffix = " ALLOW FILTERING"
		query = query[:loc[0]]
	}

	if stmt.After != nil {
		keyword := "WHERE"
		if wherePattern.MatchString(query) {
			keyword = "AND"
		}
		query += fmt.Sprintf(" %s token(%s) > token(?)", keyword, stmt.After.Column)
		args = append(args, stmt.After.Value)
	}
	if stmt.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", stmt.Limit)
	}
	return query + suffix, args
}
