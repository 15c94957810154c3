package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gorilla/websocket"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = 50 * time.Second
	feedBuffer     = 16
)

// OrderEvent is pushed to dashboard clients.
type OrderEvent struct {
	Type  string              `json:"type"`
	Order models.OrderListRow `json:"order"`
}

const (
	OrderEventPaid          = "order.paid"
	OrderEventStatusChanged = "order.status_changed"
)

// OrderFeed fans new-order events out to every connected admin websocket.
// A slow client whose buffer fills is dropped rather than blocking others.
type OrderFeed struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*feedClient]struct{}
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewOrderFeed accepts upgrades from allowedOrigins only; an empty list
// allows any origin.
func NewOrderFeed(allowedOrigins []string) *OrderFeed {
	return &OrderFeed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
			},
		},
		clients: make(map[*feedClient]struct{}),
	}
}

// ServeWS upgrades the request and blocks until the client disconnects.
func (f *OrderFeed) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	client := &feedClient{conn: conn, send: make(chan []byte, feedBuffer)}

	f.mu.Lock()
	f.clients[client] = struct{}{}
	f.mu.Unlock()
	log.Printf("[order.feed] client connected (%d total)", f.ClientCount())

	go client.writeLoop()
	client.readLoop()

	f.remove(client)
	log.Printf("[order.feed] client disconnected (%d total)", f.ClientCount())
	return nil
}

// OrderRecorded broadcasts a newly paid order.
func (f *OrderFeed) OrderRecorded(_ context.Context, order *models.Order) {
	f.Broadcast(OrderEvent{Type: OrderEventPaid, Order: order.ToListRow()})
}

func (f *OrderFeed) Broadcast(event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[order.feed] failed to marshal event: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		select {
		case client.send <- data:
		default:
			delete(f.clients, client)
			close(client.send)
		}
	}
}

func (f *OrderFeed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *OrderFeed) remove(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[client]; ok {
		delete(f.clients, client)
		close(client.send)
	}
}

// readLoop discards inbound messages and returns when the peer goes away.
func (c *feedClient) readLoop() {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *feedClient) writeLoop() {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
