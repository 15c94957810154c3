package cart

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Persister saves and restores cart lines. Load returns (nil, nil) for an
// unknown cart.
type Persister interface {
	Load(ctx context.Context, cartID string) ([]Item, error)
	Save(ctx context.Context, cartID string, items []Item) error
	Delete(ctx context.Context, cartID string) error
}

const lockStripes = 64

// Store owns every cart. It is built once by the application root and
// handed to the cart handlers and the checkout flow.
type Store struct {
	persister      Persister
	locks          [lockStripes]sync.Mutex
	persistTimeout time.Duration
}

func NewStore(p Persister) *Store {
	return &Store{persister: p, persistTimeout: 5 * time.Second}
}

func (s *Store) lockFor(cartID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(cartID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Get restores a cart without changing it.
func (s *Store) Get(ctx context.Context, cartID string) (*State, error) {
	mu := s.lockFor(cartID)
	mu.Lock()
	defer mu.Unlock()
	return s.load(ctx, cartID)
}

// Dispatch restores the cart, applies action and then persists the result.
// A failed save is logged and does not undo the transition.
func (s *Store) Dispatch(ctx context.Context, cartID string, action Action) (*State, error) {
	mu := s.lockFor(cartID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	state.Apply(action)
	s.persist(ctx, cartID, state)

	log.Printf("[cart] %s on %s → %d items, total %s", action.Name(), cartID, state.ItemCount(), state.Total().StringFixed(2))
	return state, nil
}

// RemovePurchased takes the bought quantities out of the cart in one
// transition. Lines added after the purchase snapshot stay in the cart.
func (s *Store) RemovePurchased(ctx context.Context, cartID string, bought []Item) (*State, error) {
	mu := s.lockFor(cartID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for _, b := range bought {
		line, ok := state.Get(b.PartID)
		if !ok {
			continue
		}
		state.Apply(UpdateQuantity{PartID: b.PartID, Quantity: line.Quantity - b.Quantity})
	}
	s.persist(ctx, cartID, state)

	log.Printf("[cart] purchase settled on %s → %d items left", cartID, state.ItemCount())
	return state, nil
}

func (s *Store) load(ctx context.Context, cartID string) (*State, error) {
	items, err := s.persister.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", cartID, err)
	}
	state := NewState()
	state.Apply(LoadCart{Items: items})
	return state, nil
}

func (s *Store) persist(ctx context.Context, cartID string, state *State) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()

	var err error
	if state.IsEmpty() {
		err = s.persister.Delete(pctx, cartID)
	} else {
		err = s.persister.Save(pctx, cartID, state.Items())
	}
	if err != nil {
		log.Printf("[cart] ⚠️ failed to persist cart %s: %v", cartID, err)
	}
}

// View is the JSON shape returned to the storefront.
type View struct {
	ID        string          `json:"id"`
	Items     []ViewItem      `json:"items"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	ItemCount int             `json:"item_count"`
}

type ViewItem struct {
	Item
	LineTotal decimal.Decimal `json:"line_total" swaggertype:"string"`
}

func NewView(cartID string, state *State) View {
	items := state.Items()
	out := make([]ViewItem, 0, len(items))
	for _, it := range items {
		out = append(out, ViewItem{Item: it, LineTotal: it.LineTotal()})
	}
	return View{
		ID:        cartID,
		Items:     out,
		Total:     state.Total(),
		ItemCount: state.ItemCount(),
	}
}
