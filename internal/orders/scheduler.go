package orders

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"

	"foodassistant/internal/config"
	"foodassistant/internal/models"

	"go.uber.org/zap"
)

// Step is one scheduled transition, relative to the order time
type Step struct {
	After  time.Duration
	Status models.OrderStatus
}

// Timeline builds the fulfillment steps from configuration
func Timeline(cfg config.OrdersConfig) []Step {
	return []Step{
		{After: cfg.PrepareAfter, Status: models.OrderStatusPreparing},
		{After: cfg.DispatchAfter, Status: models.OrderStatusOutForDelivery},
		{After: cfg.DeliverAfter, Status: models.OrderStatusDelivered},
	}
}

// StatusWriter applies a status to a stored order, reporting whether it changed
type StatusWriter interface {
	Advance(id string, status models.OrderStatus) (models.Order, bool, error)
}

// Listener is notified with the order snapshot after every applied transition
type Listener func(order models.Order)

type task struct {
	due     time.Time
	seq     uint64
	orderID string
	status  models.OrderStatus
}

// taskQueue is a min-heap ordered by due time, then by scheduling order
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q taskQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x interface{}) { *q = append(*q, x.(*task)) }
func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler drives orders through their lifecycle on a virtual timeline anchored
// at each order's creation time. Run executes due tasks against the wall clock;
// Fire can be called directly to process everything due at a given instant.
type Scheduler struct {
	clock  Clock
	writer StatusWriter
	steps  []Step
	logger *zap.Logger

	mu        sync.Mutex
	queue     taskQueue
	seq       uint64
	scheduled map[string]bool
	listeners []Listener
	wake      chan struct{}

	fireMu sync.Mutex
}

// NewScheduler creates a scheduler applying steps through writer
func NewScheduler(writer StatusWriter, steps []Step, clock Clock, logger *zap.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:     clock,
		writer:    writer,
		steps:     steps,
		logger:    logger,
		queue:     make(taskQueue, 0),
		scheduled: make(map[string]bool),
		wake:      make(chan struct{}, 1),
	}
}

// Subscribe registers a listener for applied transitions
func (s *Scheduler) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// ScheduleLifecycle enqueues every step for the order. An order is only ever
// scheduled once; repeated calls return false and enqueue nothing.
func (s *Scheduler) ScheduleLifecycle(order models.Order) bool {
	s.mu.Lock()
	if s.scheduled[order.ID] {
		s.mu.Unlock()
		return false
	}
	s.scheduled[order.ID] = true
	for _, step := range s.steps {
		s.seq++
		heap.Push(&s.queue, &task{
			due:     order.OrderTime.Add(step.After),
			seq:     s.seq,
			orderID: order.ID,
			status:  step.Status,
		})
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// Pending returns the number of transitions not yet applied
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Fire applies every task due at or before now, in due order, and returns how many ran
func (s *Scheduler) Fire(now time.Time) int {
	s.fireMu.Lock()
	defer s.fireMu.Unlock()

	s.mu.Lock()
	due := make([]*task, 0)
	for len(s.queue) > 0 && !s.queue[0].due.After(now) {
		due = append(due, heap.Pop(&s.queue).(*task))
	}
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, t := range due {
		s.apply(t, listeners)
	}
	return len(due)
}

func (s *Scheduler) apply(t *task, listeners []Listener) {
	order, changed, err := s.writer.Advance(t.orderID, t.status)
	switch {
	case errors.Is(err, models.ErrOrderNotFound):
		return
	case err != nil:
		s.logger.Error("status transition rejected",
			zap.String("order_id", t.orderID),
			zap.String("status", string(t.status)),
			zap.Error(err))
		return
	case !changed:
		return
	}

	s.logger.Info("order status updated",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)))

	for _, l := range listeners {
		l(order)
	}
}

// Run processes tasks as they fall due until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		s.mu.Lock()
		hasNext := len(s.queue) > 0
		var wait time.Duration
		if hasNext {
			wait = s.queue[0].due.Sub(s.clock.Now())
		}
		s.mu.Unlock()

		if hasNext && wait <= 0 {
			s.Fire(s.clock.Now())
			continue
		}

		var timer *time.Timer
		var timerC <-chan time.Time
		if hasNext {
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case <-s.wake:
			if timer != nil {
				timer.Stop()
			}
		case <-timerC:
			s.Fire(s.clock.Now())
		}
	}
}
