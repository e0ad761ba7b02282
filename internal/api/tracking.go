package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"foodassistant/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Tracker fans order status transitions out to websocket subscribers
type Tracker struct {
	mu     sync.Mutex
	subs   map[string]map[*trackConn]struct{}
	logger *zap.Logger
}

// trackConn maintains one websocket connection following one order
type trackConn struct {
	orderID string
	conn    *websocket.Conn
	send    chan []byte
	tracker *Tracker
}

// NewTracker creates an empty tracker
func NewTracker(logger *zap.Logger) *Tracker {
	return &Tracker{
		subs:   make(map[string]map[*trackConn]struct{}),
		logger: logger,
	}
}

// Publish pushes order to everyone tracking it. Subscribers are released
// once the order reaches a terminal status.
func (t *Tracker) Publish(order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		t.logger.Error("failed to encode order update", zap.String("order_id", order.ID), zap.Error(err))
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for tc := range t.subs[order.ID] {
		t.enqueue(tc, data)
		if order.Status.IsTerminal() {
			t.removeLocked(tc)
		}
	}
}

// Subscribers returns how many connections follow orderID
func (t *Tracker) Subscribers(orderID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs[orderID])
}

// Close releases every subscriber
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, conns := range t.subs {
		for tc := range conns {
			t.removeLocked(tc)
		}
	}
}

// register adds tc and queues the current order snapshot under the same lock
// Publish uses, so a transition is never delivered before the snapshot.
func (t *Tracker) register(tc *trackConn, current func() (models.Order, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	order, err := current()
	if err != nil {
		return err
	}
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	if t.subs[tc.orderID] == nil {
		t.subs[tc.orderID] = make(map[*trackConn]struct{})
	}
	t.subs[tc.orderID][tc] = struct{}{}

	t.enqueue(tc, data)
	if order.Status.IsTerminal() {
		t.removeLocked(tc)
	}
	return nil
}

func (t *Tracker) unregister(tc *trackConn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(tc)
}

// removeLocked closes tc's send channel once; the write pump then closes the socket
func (t *Tracker) removeLocked(tc *trackConn) {
	conns, ok := t.subs[tc.orderID]
	if !ok {
		return
	}
	if _, ok := conns[tc]; !ok {
		return
	}
	delete(conns, tc)
	if len(conns) == 0 {
		delete(t.subs, tc.orderID)
	}
	close(tc.send)
}

func (t *Tracker) enqueue(tc *trackConn, data []byte) {
	select {
	case tc.send <- data:
	default:
		t.logger.Warn("tracking buffer full, dropping update", zap.String("order_id", tc.orderID))
	}
}

// TrackOrder upgrades the request to a websocket that streams the order's status
func (f *FoodAPI) TrackOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if _, err := f.Orders.Get(c.Request.Context(), orderID); err != nil {
		f.handleError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	tc := &trackConn{
		orderID: orderID,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		tracker: f.Tracker,
	}

	err = f.Tracker.register(tc, func() (models.Order, error) {
		return f.Orders.Get(context.Background(), orderID)
	})
	if err != nil {
		f.logger.Warn("failed to start tracking", zap.String("order_id", orderID), zap.Error(err))
		conn.Close()
		return
	}

	go tc.writePump()
	go tc.readPump()
}

// readPump drains client frames so control messages are processed
func (tc *trackConn) readPump() {
	defer func() {
		tc.tracker.unregister(tc)
	}()

	tc.conn.SetReadLimit(maxMessageSize)
	tc.conn.SetReadDeadline(time.Now().Add(pongWait))
	tc.conn.SetPongHandler(func(string) error {
		tc.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := tc.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				tc.tracker.logger.Debug("tracking connection error", zap.String("order_id", tc.orderID), zap.Error(err))
			}
			return
		}
	}
}

// writePump pumps order updates from the tracker to the websocket connection
func (tc *trackConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		tc.conn.Close()
	}()

	for {
		select {
		case message, ok := <-tc.send:
			tc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				tc.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "tracking finished"))
				return
			}
			if err := tc.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			tc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := tc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
