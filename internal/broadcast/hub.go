package broadcast

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"bazaar-orders/internal/domain"
)

// defaultWriteTimeout bounds how long one observer may stall a broadcast
// before it is dropped.
const defaultWriteTimeout = 5 * time.Second

const (
	EventNewOrder     = "new_order"
	EventOrderUpdated = "order_updated"
)

// Event is the wire shape pushed to every observer. Clients ignore types
// they do not recognize.
type Event struct {
	Type  string        `json:"type"`
	Order *domain.Order `json:"order"`
}

// Hub holds the set of connected observers and fans order events out to
// them. Delivery is fire-and-forget: an observer whose write fails is
// dropped, and a reconnecting observer re-fetches current state over HTTP.
type Hub struct {
	mu           sync.Mutex
	conns        map[*websocket.Conn]struct{}
	writeTimeout time.Duration
}

func NewHub() *Hub {
	return &Hub{
		conns:        make(map[*websocket.Conn]struct{}),
		writeTimeout: defaultWriteTimeout,
	}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) OrderCreated(order *domain.Order) {
	h.broadcast(Event{Type: EventNewOrder, Order: order})
}

func (h *Hub) OrderUpdated(order *domain.Order) {
	h.broadcast(Event{Type: EventOrderUpdated, Order: order})
}

// broadcast serializes the event once and writes it to every member of the
// set. The hub lock also serializes writes per connection, which gorilla
// requires. Every write carries a deadline: an observer that stopped
// reading must not wedge the lock and with it all order traffic, so it is
// dropped the moment its write times out.
func (h *Hub) broadcast(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("broadcast: marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}
