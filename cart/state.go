// Package cart holds the shopping cart: a reducer over explicit actions plus
// a Store that serialises transitions per cart and persists after each one.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one cart line. UnitPrice is the part price captured when the line
// was first added.
type Item struct {
	PartID    uuid.UUID       `json:"part_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is UnitPrice × Quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// State is the in-memory cart. Total and ItemCount are maintained
// incrementally so every transition is O(1) apart from slice bookkeeping.
type State struct {
	items map[uuid.UUID]*Item
	order []uuid.UUID
	total decimal.Decimal
	count int
}

func NewState() *State {
	return &State{items: make(map[uuid.UUID]*Item)}
}

// Items returns copies of the lines in the order they were first added.
func (s *State) Items() []Item {
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Get returns the line for partID.
func (s *State) Get(partID uuid.UUID) (Item, bool) {
	it, ok := s.items[partID]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

func (s *State) Total() decimal.Decimal { return s.total }

func (s *State) ItemCount() int { return s.count }

// Len is the number of distinct parts.
func (s *State) Len() int { return len(s.order) }

func (s *State) IsEmpty() bool { return len(s.order) == 0 }

// Apply runs action against s.
func (s *State) Apply(action Action) {
	action.apply(s)
}

func (s *State) insert(item Item) {
	it := item
	s.items[it.PartID] = &it
	s.order = append(s.order, it.PartID)
	s.total = s.total.Add(it.LineTotal())
	s.count += it.Quantity
}

func (s *State) remove(partID uuid.UUID) {
	it, ok := s.items[partID]
	if !ok {
		return
	}
	s.total = s.total.Sub(it.LineTotal())
	s.count -= it.Quantity
	delete(s.items, partID)
	for i, id := range s.order {
		if id == partID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *State) reset() {
	s.items = make(map[uuid.UUID]*Item)
	s.order = nil
	s.total = decimal.Zero
	s.count = 0
}
