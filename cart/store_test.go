package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDispatchPersists(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryPersister()
	store := NewStore(mem)

	a := part("a", "100")
	_, err := store.Dispatch(ctx, "cart-1", AddItem{Item: a})
	require.NoError(t, err)
	_, err = store.Dispatch(ctx, "cart-1", AddItem{Item: a})
	require.NoError(t, err)

	saved, err := mem.Load(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 2, saved[0].Quantity)

	restored, err := store.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.True(t, restored.Total().Equal(decimal.NewFromInt(200)))

	other, err := store.Get(ctx, "cart-2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestStoreClearDeletesEntry(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryPersister()
	store := NewStore(mem)

	_, err := store.Dispatch(ctx, "c", AddItem{Item: part("a", "1")})
	require.NoError(t, err)
	_, err = store.Dispatch(ctx, "c", ClearCart{})
	require.NoError(t, err)

	saved, err := mem.Load(ctx, "c")
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestStorePersistFailureKeepsTransition(t *testing.T) {
	mem := NewMemoryPersister()
	mem.FailSaves = errors.New("redis down")
	store := NewStore(mem)

	state, err := store.Dispatch(context.Background(), "c", AddItem{Item: part("a", "42")})
	require.NoError(t, err)
	assert.Equal(t, 1, state.ItemCount())
	assert.True(t, state.Total().Equal(decimal.NewFromInt(42)))
}

type failingLoader struct{ *MemoryPersister }

func (failingLoader) Load(context.Context, string) ([]Item, error) {
	return nil, errors.New("timeout")
}

func TestStoreLoadFailureIsReturned(t *testing.T) {
	store := NewStore(failingLoader{NewMemoryPersister()})
	_, err := store.Dispatch(context.Background(), "c", ClearCart{})
	assert.Error(t, err)
}

func TestStoreSerialisesConcurrentDispatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryPersister())
	a := part("a", "2.50")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Dispatch(ctx, "shared", AddItem{Item: a})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 50, state.ItemCount())
	assert.True(t, state.Total().Equal(decimal.RequireFromString("125")))
}

func TestNewView(t *testing.T) {
	s := NewState()
	a := part("a", "4.50")
	s.Apply(AddItem{Item: a})
	s.Apply(AddItem{Item: a})

	v := NewView("cart-9", s)
	assert.Equal(t, "cart-9", v.ID)
	require.Len(t, v.Items, 1)
	assert.True(t, v.Items[0].LineTotal.Equal(decimal.NewFromInt(9)))
	assert.Equal(t, 2, v.ItemCount)
}

func TestStoreRemovePurchasedKeepsLaterLines(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryPersister())
	a, b, c := part("a", "10"), part("b", "5"), part("c", "7")

	for _, it := range []Item{a, a, b} {
		_, err := store.Dispatch(ctx, "c1", AddItem{Item: it})
		require.NoError(t, err)
	}
	snapshot, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	bought := snapshot.Items()

	// Changed after payment started: one more a, and a new line c.
	_, err = store.Dispatch(ctx, "c1", AddItem{Item: a})
	require.NoError(t, err)
	_, err = store.Dispatch(ctx, "c1", AddItem{Item: c})
	require.NoError(t, err)

	left, err := store.RemovePurchased(ctx, "c1", bought)
	require.NoError(t, err)
	assert.Equal(t, 2, left.ItemCount())
	assert.True(t, left.Total().Equal(decimal.NewFromInt(17)))
	_, hasB := left.Get(b.PartID)
	assert.False(t, hasB)
	lineA, ok := left.Get(a.PartID)
	require.True(t, ok)
	assert.Equal(t, 1, lineA.Quantity)
}

func TestStoreRemovePurchasedEmptiesUnchangedCart(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryPersister()
	store := NewStore(mem)
	_, err := store.Dispatch(ctx, "c1", AddItem{Item: part("a", "3")})
	require.NoError(t, err)
	snapshot, err := store.Get(ctx, "c1")
	require.NoError(t, err)

	left, err := store.RemovePurchased(ctx, "c1", snapshot.Items())
	require.NoError(t, err)
	assert.True(t, left.IsEmpty())
	saved, err := mem.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, saved)
}
