package capabilities_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inmovista/inmovista/pkg/capabilities"
)

type fakeProber struct {
	calls   atomic.Int64
	columns map[string]bool
	err     error
}

func (f *fakeProber) ColumnExists(_ context.Context, table, column string) (bool, error) {
	f.calls.Add(1)
	if f.err != nil {
		return false, f.err
	}
	return f.columns[table+"."+column], nil
}

func TestRegistry_MemoizesPerFlag(t *testing.T) {
	prober := &fakeProber{columns: map[string]bool{"leads.assigned_operator_id": true}}
	registry := capabilities.New(prober)
	ctx := context.Background()

	assert.True(t, registry.Has(ctx, capabilities.LeadAssignment))
	assert.True(t, registry.Has(ctx, capabilities.LeadAssignment))
	assert.True(t, registry.Has(ctx, capabilities.LeadAssignment))
	assert.Equal(t, int64(1), prober.calls.Load())

	assert.False(t, registry.Has(ctx, capabilities.OperatorContactLink))
	assert.Equal(t, int64(2), prober.calls.Load())
}

func TestRegistry_LookupFailureCachesFalse(t *testing.T) {
	prober := &fakeProber{err: errors.New("connection refused")}
	registry := capabilities.New(prober)
	ctx := context.Background()

	assert.False(t, registry.Has(ctx, capabilities.LeadTimestamp))
	// Failures are not retried within the process.
	prober.err = nil
	prober.columns = map[string]bool{"leads.created_at": true}
	assert.False(t, registry.Has(ctx, capabilities.LeadTimestamp))
	assert.Equal(t, int64(1), prober.calls.Load())
}

func TestRegistry_ConcurrentFirstCallersConverge(t *testing.T) {
	prober := &fakeProber{columns: map[string]bool{"operators.contact_id": true}}
	registry := capabilities.New(prober)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]bool, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = registry.Has(ctx, capabilities.OperatorContactLink)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.True(t, got)
	}
	// After the race settles, the value is served from cache.
	before := prober.calls.Load()
	assert.True(t, registry.Has(ctx, capabilities.OperatorContactLink))
	assert.Equal(t, before, prober.calls.Load())
}

func TestRegistry_UnknownFlagIsFalse(t *testing.T) {
	registry := capabilities.New(&fakeProber{})
	assert.False(t, registry.Has(context.Background(), capabilities.Flag("nope")))
}
