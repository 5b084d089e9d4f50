/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package execution

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/registry"
	"github.com/suparena/entityquery/storagemodels"
)

// ExecutePaginated fetches one page of stmt using keyset pagination.
//
// The statement is extended with a keyset bound on the identifier column when c
// resumes after a row, and with a limit of one row more than the page size. The extra
// row only signals that another page exists and is trimmed from the tail before the
// page is returned.
//
// Validation failures are returned before the gateway is called. Gateway errors are
// returned unmodified.
func ExecutePaginated[T any](ctx context.Context, gw datastore.Gateway[T], stmt storagemodels.Statement, c Continuation) (*Page[T], error) {
	pageSize := c.PageSize()
	if pageSize <= 0 {
		return nil, errors.NewPageSizeError(pageSize)
	}

	id, hasID := registry.IdentifierOf[T]()
	if !c.IsFirstPage() {
		if err := checkResumable(registry.EntityName[T](), id, hasID, c.Value()); err != nil {
			return nil, err
		}
		stmt = stmt.WithAfter(id.Column(), c.Value())
	}
	stmt = stmt.WithLimit(pageSize + 1)

	fetched, err := gw.FetchMany(ctx, stmt)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{Rows: fetched, Next: c}
	if len(fetched) <= pageSize {
		return page, nil
	}

	page.HasMore = true
	page.Rows = fetched[:pageSize:pageSize]

	if !hasID || id.Composite() || id.Read == nil {
		// the page is complete but cannot be resumed from
		return page, nil
	}
	last := page.Rows[len(page.Rows)-1]
	page.Next = ContinueAfter(id.Read(last), pageSize)
	page.resumable = true
	return page, nil
}

func checkResumable[T any](entity string, id *registry.Identifier[T], hasID bool, value any) error {
	if !hasID {
		return errors.NewUnsupportedContinuationError(entity, "no identifier column to resume from")
	}
	if id.Composite() {
		return errors.NewUnsupportedContinuationError(entity, fmt.Sprintf("composite identifier (%s) cannot be resumed", strings.Join(id.Columns, ", ")))
	}
	if id.Type == nil {
		return nil
	}
	if vt := reflect.TypeOf(value); !vt.AssignableTo(id.Type) {
		return errors.NewInvalidContinuationError(entity, id.Column(), fmt.Sprintf("expected %s, got %s", id.Type, vt))
	}
	return nil
}
