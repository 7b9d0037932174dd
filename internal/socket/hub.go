// internal/socket/hub.go
package socket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tusep-web/config"
	"tusep-web/internal/client"
	"tusep-web/internal/models"
	"tusep-web/internal/timer"

	"github.com/sirupsen/logrus"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// TimerMessage is pushed to the browser on every tick.
type TimerMessage struct {
	FaultID string `json:"fault_id"`
	Elapsed string `json:"elapsed"`
	Running bool   `json:"running"`
}

// Subscriber is one browser watching the repair timer of one fault.
type Subscriber struct {
	FaultID string
	conn    Conn
	display *timer.Display
	ended   atomic.Bool
	wmu     sync.Mutex
}

func (s *Subscriber) send(msg TimerMessage) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.conn.WriteJSON(msg)
}

// Hub tracks live timer subscriptions grouped by fault.
type Hub struct {
	subs     map[string]map[*Subscriber]struct{}
	mu       sync.RWMutex
	logger   *logrus.Logger
	interval time.Duration
}

func NewHub() *Hub {
	return &Hub{
		subs:     make(map[string]map[*Subscriber]struct{}),
		logger:   config.GetLogger(),
		interval: time.Second,
	}
}

// Register starts streaming the elapsed repair time of f to conn. The ticker
// runs until Unregister, ctx cancellation or RepairEnded.
func (h *Hub) Register(ctx context.Context, f models.Fault, conn Conn) *Subscriber {
	s := &Subscriber{FaultID: f.ID, conn: conn}
	running := f.Started() && !f.Ended()
	s.display = timer.NewDisplay(f.RepairStart.Time, f.RepairEnd.Time, func(elapsed string) {
		msg := TimerMessage{FaultID: f.ID, Elapsed: elapsed, Running: running && !s.ended.Load()}
		if err := s.send(msg); err != nil {
			h.logger.WithError(err).WithField("fault_id", f.ID).Debug("timer push failed")
		}
	}, timer.WithInterval(h.interval))

	h.mu.Lock()
	if h.subs[f.ID] == nil {
		h.subs[f.ID] = make(map[*Subscriber]struct{})
	}
	h.subs[f.ID][s] = struct{}{}
	h.mu.Unlock()

	h.logger.WithField("fault_id", f.ID).Debug("timer subscriber registered")
	s.display.Start(ctx)
	return s
}

// Unregister stops the subscriber's ticker and forgets it.
func (h *Hub) Unregister(s *Subscriber) {
	s.display.Stop()
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[s.FaultID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.FaultID)
		}
		h.logger.WithField("fault_id", s.FaultID).Debug("timer subscriber unregistered")
	}
}

// RepairEnded freezes every timer of faultID at end.
func (h *Hub) RepairEnded(faultID string, end time.Time) {
	if end.IsZero() {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[faultID] {
		s.ended.Store(true)
		s.display.SetEnd(end)
	}
}

// FaultSource reloads one fault from the backend.
type FaultSource func(ctx context.Context, id string) (models.Fault, error)

// Follow re-reads the subscriber's fault every interval and freezes all timers
// of that fault once the backend reports an end. It returns nil when ctx is
// done or the subscriber's ticker has stopped, and the error when the backend
// rejects the session.
func (h *Hub) Follow(ctx context.Context, s *Subscriber, every time.Duration, src FaultSource) error {
	done := s.display.Done()
	if done == nil || every <= 0 {
		return nil
	}
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case <-tick.C:
			f, err := src(ctx, s.FaultID)
			if client.IsUnauthorized(err) {
				return err
			}
			if err != nil {
				h.logger.WithError(err).WithField("fault_id", s.FaultID).Debug("timer refresh failed")
				continue
			}
			if f.Ended() {
				h.RepairEnded(s.FaultID, f.RepairEnd.Time)
			}
		}
	}
}

// Count is the number of live subscribers for faultID.
func (h *Hub) Count(faultID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[faultID])
}
