/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/entityquery/storagemodels"
)

var wherePattern = regexp.MustCompile(`(?i)\bWHERE\b`)

// Render returns the PartiQL text and parameters of stmt. DynamoDB has no partitioner
// token function: items of a partition come back in sort key order, so the keyset bound
// compares the identifier, which has to be the sort key, directly:
//
//	SELECT * FROM "events" WHERE "pk" = ? AND "id" > ?
//
// The limit is not part of the text. DynamoDB applies Limit to the items it evaluates,
// so FetchMany enforces it while following NextToken.
func Render(stmt storagemodels.Statement) (string, []types.AttributeValue, error) {
	query := strings.TrimSuffix(strings.TrimSpace(stmt.Query), ";")

	args := stmt.Args
	if stmt.After != nil {
		keyword := "WHERE"
		if wherePattern.MatchString(query) {
			keyword = "AND"
		}
		query += fmt.Sprintf(" %s %q > ?", keyword, stmt.After.Column)
		args = append(append([]any(nil), stmt.Args...), stmt.After.Value)
	}

	params := make([]types.AttributeValue, 0, len(args))
	for i, arg := range args {
		av, err := attributevalue.Marshal(arg)
		if err != nil {
			return "", nil, fmt.Errorf("failed to marshal parameter %d: %w", i, err)
		}
		params = append(params, av)
	}
	if len(params) == 0 {
		params = nil
	}
	return query, params, nil
}
