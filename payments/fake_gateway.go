package payments

import (
	"context"
	"fmt"
	"sync"
)

// FakeGateway is an in-memory Gateway for tests and local runs without a
// processor account. Intents are created in requires_payment_method; call
// Succeed to simulate the customer confirming the card.
type FakeGateway struct {
	mu       sync.Mutex
	intents  map[string]*Intent
	seq      int
	Created  []IntentParams
	FailWith error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{intents: make(map[string]*Intent)}
}

func (g *FakeGateway) CreatePaymentIntent(_ context.Context, params IntentParams) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailWith != nil {
		return nil, g.FailWith
	}
	g.seq++
	id := fmt.Sprintf("pi_fake_%d", g.seq)
	intent := &Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       "requires_payment_method",
		Amount:       params.Amount,
		Currency:     params.Currency,
		Metadata:     params.Metadata,
	}
	g.intents[id] = intent
	g.Created = append(g.Created, params)
	cp := *intent
	return &cp, nil
}

func (g *FakeGateway) GetPaymentIntent(_ context.Context, id string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent, ok := g.intents[id]
	if !ok {
		return nil, fmt.Errorf("%w: no such payment intent %s", ErrGateway, id)
	}
	cp := *intent
	return &cp, nil
}

// Succeed marks an intent as paid.
func (g *FakeGateway) Succeed(id string) {
	g.SetStatus(id, StatusSucceeded)
}

func (g *FakeGateway) SetStatus(id, status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if intent, ok := g.intents[id]; ok {
		intent.Status = status
	}
}
