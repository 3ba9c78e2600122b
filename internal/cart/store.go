// Package cart is the shared cart state container: one single-writer store per
// storage key, persisted after every mutation and observable by subscribers.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"github.com/nikolayk812/zini-storefront/internal/pricing"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 2147483647")
	ErrCurrencyMismatch = errors.New("product currency does not match the store currency")
	ErrNoProduct        = errors.New("product is nil")
)

type Snapshot struct {
	Items []domain.CartItem
	Count int
	Total domain.Money
}

type Store struct {
	mu       sync.Mutex
	items    []domain.CartItem
	storage  port.CartStorage
	key      string
	currency currency.Unit
	logger   *zap.Logger

	nextSubID   int
	subscribers map[int]chan Snapshot
}

// New restores the cart saved under key. A snapshot that cannot be loaded is
// logged and replaced by an empty cart.
func New(ctx context.Context, storage port.CartStorage, key string, unit currency.Unit, logger *zap.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		storage:     storage,
		key:         key,
		currency:    unit,
		logger:      logger.With(zap.String("cart_key", key)),
		subscribers: make(map[int]chan Snapshot),
	}

	items, err := storage.LoadCart(ctx, key)
	if err != nil {
		s.logger.Warn("cart snapshot not restored, starting empty", zap.Error(err))
		return s, nil
	}

	s.items = restore(items, unit, s.logger)

	return s, nil
}

// restore drops entries that would break the store invariants instead of failing the whole cart.
func restore(items []domain.CartItem, unit currency.Unit, logger *zap.Logger) []domain.CartItem {
	var result []domain.CartItem
	for _, item := range items {
		if item.Product == nil || !validQuantity(item.Quantity) || !item.Product.Info().Price.SameCurrency(domain.ZeroMoney(unit)) {
			logger.Warn("dropping invalid cart entry", zap.String("product_id", item.ProductID()), zap.Int("quantity", item.Quantity))
			continue
		}
		if slices.ContainsFunc(result, func(i domain.CartItem) bool { return i.ProductID() == item.ProductID() }) {
			logger.Warn("dropping duplicate cart entry", zap.String("product_id", item.ProductID()))
			continue
		}
		result = append(result, item)
	}
	return result
}

// AddItem increments an existing line or appends a new one. A line never grows past domain.MaxQuantity.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) error {
	if product == nil {
		return ErrNoProduct
	}
	if !validQuantity(quantity) {
		return ErrInvalidQuantity
	}
	if !product.Info().Price.SameCurrency(domain.ZeroMoney(s.currency)) {
		return ErrCurrencyMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := product.Info().ID
	if i := s.indexOf(id); i >= 0 {
		if quantity > domain.MaxQuantity-s.items[i].Quantity {
			return ErrInvalidQuantity
		}
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, domain.CartItem{Product: product, Quantity: quantity})
	}

	return s.commit(ctx)
}

// RemoveItem is a no-op for unknown ids.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}

	s.items = slices.Delete(s.items, i, i+1)

	return s.commit(ctx)
}

// SetQuantity ignores quantities below 1 and unknown ids; RemoveItem is the only way to drop a line.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	if quantity > domain.MaxQuantity {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}

	s.items[i].Quantity = quantity

	return s.commit(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	return s.commit(ctx)
}

func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return count(s.items)
}

func (s *Store) Total() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pricing.Subtotal(s.items, s.currency)
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items) == 0
}

func (s *Store) Currency() currency.Unit {
	return s.currency
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Subscribe delivers the latest snapshot after every mutation. Slow readers
// only ever see the most recent one. cancel closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++

	ch := make(chan Snapshot, 1)
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.subscribers, id)
			close(ch)
		})
	}

	return ch, cancel
}

func validQuantity(quantity int) bool {
	return quantity >= 1 && quantity <= domain.MaxQuantity
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.ProductID() == productID
	})
}

// commit must be called with s.mu held.
func (s *Store) commit(ctx context.Context) error {
	snap := s.snapshot()

	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}

	if err := s.storage.SaveCart(ctx, s.key, snap.Items); err != nil {
		s.logger.Error("cart snapshot not persisted", zap.Error(err))
		return fmt.Errorf("storage.SaveCart: %w", err)
	}

	return nil
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Items: slices.Clone(s.items),
		Count: count(s.items),
		Total: pricing.Subtotal(s.items, s.currency),
	}
}

func count(items []domain.CartItem) int {
	var n int
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
