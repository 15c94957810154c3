package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action is a cart transition. The set is closed: AddItem, RemoveItem,
// UpdateQuantity, ClearCart and LoadCart.
type Action interface {
	apply(*State)
	Name() string
}

// AddItem adds one unit of Item. An existing line is incremented and keeps
// its original unit price; Item.Quantity is ignored.
type AddItem struct {
	Item Item
}

func (AddItem) Name() string { return "ADD_ITEM" }

func (a AddItem) apply(s *State) {
	if it, ok := s.items[a.Item.PartID]; ok {
		it.Quantity++
		s.total = s.total.Add(it.UnitPrice)
		s.count++
		return
	}
	line := a.Item
	line.Quantity = 1
	s.insert(line)
}

// RemoveItem drops the line for PartID. Removing an absent part does nothing.
type RemoveItem struct {
	PartID uuid.UUID
}

func (RemoveItem) Name() string { return "REMOVE_ITEM" }

func (a RemoveItem) apply(s *State) {
	s.remove(a.PartID)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line.
type UpdateQuantity struct {
	PartID   uuid.UUID
	Quantity int
}

func (UpdateQuantity) Name() string { return "UPDATE_QUANTITY" }

func (a UpdateQuantity) apply(s *State) {
	if a.Quantity <= 0 {
		s.remove(a.PartID)
		return
	}
	it, ok := s.items[a.PartID]
	if !ok {
		return
	}
	delta := a.Quantity - it.Quantity
	it.Quantity = a.Quantity
	s.total = s.total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(delta))))
	s.count += delta
}

// ClearCart empties the cart.
type ClearCart struct{}

func (ClearCart) Name() string { return "CLEAR_CART" }

func (ClearCart) apply(s *State) {
	s.reset()
}

// LoadCart replaces the cart wholesale and recomputes totals from scratch.
// Lines with quantity below one are dropped and duplicate parts are merged.
type LoadCart struct {
	Items []Item
}

func (LoadCart) Name() string { return "LOAD_CART" }

func (a LoadCart) apply(s *State) {
	s.reset()
	for _, item := range a.Items {
		if item.Quantity < 1 || item.PartID == uuid.Nil {
			continue
		}
		if existing, ok := s.items[item.PartID]; ok {
			existing.Quantity += item.Quantity
			s.total = s.total.Add(existing.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
			s.count += item.Quantity
			continue
		}
		s.insert(item)
	}
}
