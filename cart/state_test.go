package cart

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func part(name string, price string) Item {
	return Item{
		PartID:    uuid.Must(uuid.NewV7()),
		Name:      name,
		Slug:      name,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func assertConsistent(t *testing.T, s *State) {
	t.Helper()
	total := decimal.Zero
	count := 0
	for _, it := range s.Items() {
		require.GreaterOrEqual(t, it.Quantity, 1)
		total = total.Add(it.LineTotal())
		count += it.Quantity
	}
	assert.True(t, total.Equal(s.Total()), "total %s != running total %s", total, s.Total())
	assert.Equal(t, count, s.ItemCount())
}

func TestAddAndRemove(t *testing.T) {
	a := part("a", "100")
	b := part("b", "50")

	s := NewState()
	s.Apply(AddItem{Item: a})
	s.Apply(AddItem{Item: b})
	s.Apply(AddItem{Item: b})

	assert.True(t, s.Total().Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 3, s.ItemCount())
	assert.Equal(t, 2, s.Len())

	s.Apply(RemoveItem{PartID: a.PartID})
	assert.True(t, s.Total().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2, s.ItemCount())
	assertConsistent(t, s)
}

func TestAddItemKeepsOriginalPrice(t *testing.T) {
	a := part("a", "10.00")
	s := NewState()
	s.Apply(AddItem{Item: a})

	repriced := a
	repriced.UnitPrice = decimal.RequireFromString("99.00")
	repriced.Quantity = 7
	s.Apply(AddItem{Item: repriced})

	line, ok := s.Get(a.PartID)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, s.Total().Equal(decimal.RequireFromString("20.00")))
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s := NewState()
	s.Apply(AddItem{Item: part("a", "5")})
	s.Apply(RemoveItem{PartID: uuid.New()})
	s.Apply(UpdateQuantity{PartID: uuid.New(), Quantity: 4})
	assert.Equal(t, 1, s.ItemCount())
	assertConsistent(t, s)
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	a := part("a", "12.50")
	b := part("b", "3.20")

	viaUpdate := NewState()
	viaRemove := NewState()
	for _, s := range []*State{viaUpdate, viaRemove} {
		s.Apply(AddItem{Item: a})
		s.Apply(AddItem{Item: b})
		s.Apply(UpdateQuantity{PartID: a.PartID, Quantity: 4})
	}

	viaUpdate.Apply(UpdateQuantity{PartID: a.PartID, Quantity: 0})
	viaRemove.Apply(RemoveItem{PartID: a.PartID})

	assert.Equal(t, viaRemove.Items(), viaUpdate.Items())
	assert.True(t, viaRemove.Total().Equal(viaUpdate.Total()))
	assert.Equal(t, viaRemove.ItemCount(), viaUpdate.ItemCount())

	viaUpdate.Apply(UpdateQuantity{PartID: b.PartID, Quantity: -3})
	assert.True(t, viaUpdate.IsEmpty())
	assert.True(t, viaUpdate.Total().IsZero())
}

func TestUpdateQuantityAdjustsByDelta(t *testing.T) {
	a := part("a", "19.99")
	s := NewState()
	s.Apply(AddItem{Item: a})
	s.Apply(UpdateQuantity{PartID: a.PartID, Quantity: 5})
	assert.True(t, s.Total().Equal(decimal.RequireFromString("99.95")))
	s.Apply(UpdateQuantity{PartID: a.PartID, Quantity: 2})
	assert.True(t, s.Total().Equal(decimal.RequireFromString("39.98")))
	assert.Equal(t, 2, s.ItemCount())
}

func TestLoadCartMatchesSequentialAdds(t *testing.T) {
	a := part("a", "100")
	b := part("b", "50")
	c := part("c", "7.25")

	sequential := NewState()
	sequential.Apply(AddItem{Item: a})
	sequential.Apply(AddItem{Item: b})
	sequential.Apply(AddItem{Item: b})
	sequential.Apply(AddItem{Item: c})

	b2 := b
	b2.Quantity = 2
	a1, c1 := a, c
	a1.Quantity, c1.Quantity = 1, 1

	loaded := NewState()
	loaded.Apply(AddItem{Item: part("stale", "1")})
	loaded.Apply(LoadCart{Items: []Item{a1, b2, c1}})

	assert.True(t, sequential.Total().Equal(loaded.Total()))
	assert.Equal(t, sequential.ItemCount(), loaded.ItemCount())
	assert.Equal(t, sequential.Items(), loaded.Items())
}

func TestLoadCartDropsInvalidAndMergesDuplicates(t *testing.T) {
	a := part("a", "10")
	a.Quantity = 2
	dup := a
	dup.Quantity = 3
	zero := part("zero", "99")
	negative := part("neg", "99")
	negative.Quantity = -1

	s := NewState()
	s.Apply(LoadCart{Items: []Item{a, zero, dup, negative}})

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 5, s.ItemCount())
	assert.True(t, s.Total().Equal(decimal.NewFromInt(50)))
	assertConsistent(t, s)
}

func TestClearCart(t *testing.T) {
	s := NewState()
	s.Apply(AddItem{Item: part("a", "1")})
	s.Apply(ClearCart{})
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.ItemCount())
	assert.True(t, s.Total().IsZero())
}

func TestRandomSequencesKeepTotalsConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	catalog := []Item{
		part("a", "0.99"), part("b", "12.50"), part("c", "149.99"), part("d", "3"),
	}

	s := NewState()
	for i := 0; i < 2000; i++ {
		p := catalog[rng.Intn(len(catalog))]
		switch rng.Intn(5) {
		case 0, 1:
			s.Apply(AddItem{Item: p})
		case 2:
			s.Apply(RemoveItem{PartID: p.PartID})
		case 3:
			s.Apply(UpdateQuantity{PartID: p.PartID, Quantity: rng.Intn(6) - 1})
		case 4:
			if rng.Intn(20) == 0 {
				s.Apply(ClearCart{})
			} else {
				s.Apply(LoadCart{Items: s.Items()})
			}
		}
		assertConsistent(t, s)
	}
}
