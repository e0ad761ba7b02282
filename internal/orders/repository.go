package orders

import (
	"fmt"
	"sync"
	"sync/atomic"

	"foodassistant/internal/models"

	"github.com/shopspring/decimal"
)

// IDBase is the number of the first order id issued by a fresh repository
const IDBase = 1000

// Repository is the in-memory order store. Orders live for the process lifetime.
type Repository struct {
	mu      sync.RWMutex
	orders  map[string]*models.Order
	ids     []string
	counter atomic.Int64
}

// NewRepository creates an empty repository
func NewRepository() *Repository {
	r := &Repository{
		orders: make(map[string]*models.Order),
		ids:    make([]string, 0),
	}
	r.counter.Store(IDBase)
	return r
}

// nextID issues a new id; concurrent callers never receive the same value
func (r *Repository) nextID() string {
	n := r.counter.Add(1) - 1
	return fmt.Sprintf("ORD-%d", n)
}

// Create stores draft under a freshly issued id and returns the stored order.
// The id, total and initial status are always set by the repository.
func (r *Repository) Create(draft models.Order) models.Order {
	order := draft
	order.ID = r.nextID()
	order.Items = append([]models.LineItem(nil), draft.Items...)
	order.Total = CalculateTotal(order.Items)
	order.Status = models.OrderStatusPlaced

	r.mu.Lock()
	r.orders[order.ID] = &order
	r.ids = append(r.ids, order.ID)
	r.mu.Unlock()

	return clone(&order)
}

// Get returns the order with the given id or models.ErrOrderNotFound
func (r *Repository) Get(id string) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return models.Order{}, models.ErrOrderNotFound
	}
	return clone(order), nil
}

// List returns all orders in insertion order
func (r *Repository) List() []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, clone(r.orders[id]))
	}
	return out
}

// Advance writes status to the order if it keeps the lifecycle forward-only.
// Writing the current status again is a no-op and reports changed as false.
func (r *Repository) Advance(id string, status models.OrderStatus) (models.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return models.Order{}, false, models.ErrOrderNotFound
	}
	if !order.Status.CanAdvanceTo(status) {
		return clone(order), false, fmt.Errorf("%s: %s -> %s: %w", id, order.Status, status, models.ErrInvalidTransition)
	}
	if order.Status == status {
		return clone(order), false, nil
	}
	order.Status = status
	return clone(order), true, nil
}

// CalculateTotal returns Σ price × quantity using decimal arithmetic
func CalculateTotal(items []models.LineItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}

func clone(o *models.Order) models.Order {
	c := *o
	c.Items = append([]models.LineItem(nil), o.Items...)
	return c
}
