package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStoreError(t *testing.T) {
	decline := declinef(CodeInsufficientStock, "item 100: requested 5, available 2")
	opaque := errors.New("connection reset by peer")

	cases := map[string]struct {
		in        error
		transient bool
		same      bool
	}{
		"nil":                  {in: nil, same: true},
		"decline passthrough":  {in: decline, same: true},
		"fatal passthrough":    {in: fmt.Errorf("decrement: %w", ErrFatalWrite), same: true},
		"deadline exceeded":    {in: context.DeadlineExceeded, transient: true},
		"canceled":             {in: context.Canceled, transient: true},
		"serialization":        {in: &pq.Error{Code: "40001"}, transient: true},
		"deadlock":             {in: &pq.Error{Code: "40P01"}, transient: true},
		"lock not available":   {in: &pq.Error{Code: "55P03"}, transient: true},
		"query canceled":       {in: &pq.Error{Code: "57014"}, transient: true},
		"unique violation":     {in: &pq.Error{Code: "23505"}, transient: true},
		"constraint violation": {in: &pq.Error{Code: "23514"}, same: true},
		"opaque":               {in: opaque, same: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := classifyStoreError(tc.in)
			if tc.transient {
				assert.ErrorIs(t, got, ErrTransientStore)
				return
			}
			if tc.same {
				assert.Equal(t, tc.in, got)
			}
		})
	}
}

func TestDeclineErrorMessage(t *testing.T) {
	err := declinef(CodeUnknownTender, "tender %d not accepted", 9)
	assert.Equal(t, "UNKNOWN_TENDER: tender 9 not accepted", err.Error())

	d, ok := AsDecline(fmt.Errorf("checkout: %w", err))
	assert.True(t, ok)
	assert.Equal(t, CodeUnknownTender, d.Code)
}
