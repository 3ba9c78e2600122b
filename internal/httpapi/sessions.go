package httpapi

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nikolayk812/zini-storefront/internal/cart"
	"github.com/nikolayk812/zini-storefront/internal/checkout"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	cartKeyPrefix = "zini-cart:"

	DefaultSessionIdleTimeout = 30 * time.Minute
)

// visitor is one browser: its cart and, while the checkout view is open, its checkout session.
type visitor struct {
	mu       sync.Mutex
	id       string
	cart     *cart.Store
	checkout *checkout.Session

	// lastSeen is guarded by sessions.mu.
	lastSeen time.Time
	streams  atomic.Int32
}

// closeCheckout must be called with v.mu held.
func (v *visitor) closeCheckout() {
	if v.checkout != nil {
		v.checkout.Close()
		v.checkout = nil
	}
}

// busy must be called with v.mu held.
func (v *visitor) busy() bool {
	return v.streams.Load() > 0 || (v.checkout != nil && v.checkout.View().Processing)
}

// sessions keeps visitors that changed something. Idle ones are evicted; their
// cart survives in storage and is restored on the next request.
type sessions struct {
	mu       sync.Mutex
	byID     map[string]*visitor
	storage  port.CartStorage
	currency currency.Unit
	logger   *zap.Logger

	idleTimeout time.Duration
	now         func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newSessions(storage port.CartStorage, unit currency.Unit, idleTimeout time.Duration, logger *zap.Logger) *sessions {
	if idleTimeout <= 0 {
		idleTimeout = DefaultSessionIdleTimeout
	}

	return &sessions{
		byID:        make(map[string]*visitor),
		storage:     storage,
		currency:    unit,
		logger:      logger,
		idleTimeout: idleTimeout,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
}

// get returns the registered visitor for id. An unknown visitor is only
// registered when asked to; otherwise it is built from storage for this request alone.
func (s *sessions) get(ctx context.Context, id string, register bool) (*visitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.byID[id]; ok {
		v.lastSeen = s.now()
		return v, nil
	}

	store, err := cart.New(ctx, s.storage, cartKeyPrefix+id, s.currency, s.logger)
	if err != nil {
		return nil, fmt.Errorf("cart.New: %w", err)
	}

	v := &visitor{id: id, cart: store, lastSeen: s.now()}
	if register {
		s.byID[id] = v
	}

	return v, nil
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.byID)
}

// sweep evicts visitors idle for longer than the timeout, closing their checkout.
// Visitors with an open event stream, a placement in flight or a request in progress are kept.
func (s *sessions) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTimeout)
	evicted := 0

	for id, v := range s.byID {
		if v.lastSeen.After(cutoff) {
			continue
		}
		if !v.mu.TryLock() {
			continue
		}
		if v.busy() {
			v.mu.Unlock()
			continue
		}

		v.closeCheckout()
		v.mu.Unlock()

		delete(s.byID, id)
		evicted++
	}

	if evicted > 0 {
		s.logger.Info("idle visitors evicted", zap.Int("evicted", evicted), zap.Int("remaining", len(s.byID)))
	}

	return evicted
}

func (s *sessions) startSweeper(interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *sessions) closeAll() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()

	s.mu.Lock()
	visitors := make([]*visitor, 0, len(s.byID))
	for _, v := range s.byID {
		visitors = append(visitors, v)
	}
	s.mu.Unlock()

	for _, v := range visitors {
		v.mu.Lock()
		v.closeCheckout()
		v.mu.Unlock()
	}
}
