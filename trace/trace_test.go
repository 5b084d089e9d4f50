/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureRequestID(t *testing.T) {
	t.Run("generates when missing", func(t *testing.T) {
		ctx := EnsureRequestID(context.Background())
		id := GetRequestIDFromContext(ctx)
		assert.Len(t, id, 26)
	})

	t.Run("keeps existing", func(t *testing.T) {
		ctx := InjectRequestID(context.Background(), "req-1")
		assert.Equal(t, "req-1", GetRequestIDFromContext(EnsureRequestID(ctx)))
	})

	t.Run("empty context", func(t *testing.T) {
		assert.Empty(t, GetRequestIDFromContext(context.Background()))
	})
}
