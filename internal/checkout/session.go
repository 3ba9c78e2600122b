// Package checkout drives the Details → Payment → Review → Complete flow over a cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/pricing"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Step int

const (
	StepDetails Step = iota + 1
	StepPayment
	StepReview
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	case StepComplete:
		return "complete"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

const DefaultProcessingDelay = 2 * time.Second

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrWrongStep       = errors.New("action is not available at this step")
	ErrProcessing      = errors.New("order is already being placed")
	ErrCompleted       = errors.New("order is already complete")
	ErrClosed          = errors.New("checkout is closed")
	ErrInvalidShipping = errors.New("shipping method is not valid")
	ErrInvalidPayment  = errors.New("payment method is not valid")
)

// Cart is the part of the cart store checkout reads and clears.
type Cart interface {
	Items() []domain.CartItem
	IsEmpty() bool
	Clear(ctx context.Context) error
	Currency() currency.Unit
}

type Options struct {
	ProcessingDelay time.Duration
	Policy          *pricing.Policy
	Logger          *zap.Logger
	Now             func() time.Time
	NewReference    func() string
}

type View struct {
	Step       Step
	Processing bool
	Form       domain.CheckoutForm
	Items      []domain.CartItem
	Subtotal   domain.Money
	Shipping   domain.Money
	Total      domain.Money
	Order      *domain.Order
}

type Session struct {
	mu     sync.Mutex
	cart   Cart
	policy pricing.Policy
	delay  time.Duration
	logger *zap.Logger
	now    func() time.Time
	newRef func() string

	step       Step
	form       domain.CheckoutForm
	processing bool
	order      *domain.Order

	started bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Begin refuses to start a checkout over an empty cart.
func Begin(cart Cart, opts Options) (*Session, error) {
	if cart == nil {
		return nil, fmt.Errorf("cart is nil")
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	s := &Session{
		cart:   cart,
		delay:  opts.ProcessingDelay,
		logger: opts.Logger,
		now:    opts.Now,
		newRef: opts.NewReference,
		step:   StepDetails,
		form: domain.CheckoutForm{
			ShippingMethod: domain.ShippingPickup,
			PaymentMethod:  domain.PaymentCreditCard,
		},
		done: make(chan struct{}),
	}

	if opts.Policy != nil {
		s.policy = *opts.Policy
	} else {
		s.policy = pricing.DefaultPolicy(cart.Currency())
	}
	if s.delay <= 0 {
		s.delay = DefaultProcessingDelay
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newRef == nil {
		s.newRef = newOrderReference
	}

	return s, nil
}

func newOrderReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ZINI-" + strings.ToUpper(id[:8])
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step
}

// ShouldRedirect reports that the visitor must leave checkout: the cart was
// emptied elsewhere and no order has just completed.
func (s *Session) ShouldRedirect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step != StepComplete && !s.processing && s.cart.IsEmpty()
}

func (s *Session) SelectShipping(method domain.ShippingMethod) error {
	if !method.Valid() {
		return ErrInvalidShipping
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(StepDetails); err != nil {
		return err
	}

	s.form.ShippingMethod = method

	return nil
}

// SubmitDetails advances to Payment only when every required field is present.
func (s *Session) SubmitDetails(in DetailsInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(StepDetails); err != nil {
		return err
	}

	in = trimDetails(in)
	if in.ShippingMethod == "" {
		in.ShippingMethod = s.form.ShippingMethod
	}

	if err := validateStruct(in); err != nil {
		return err
	}

	s.form.Contact = domain.Contact{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	}
	s.form.ShippingMethod = in.ShippingMethod
	if in.ShippingMethod == domain.ShippingDelivery {
		s.form.Address = domain.Address{
			Address:    in.Address,
			City:       in.City,
			Province:   in.Province,
			PostalCode: in.PostalCode,
		}
	} else {
		s.form.Address = domain.Address{}
	}

	s.step = StepPayment

	return nil
}

// SubmitPayment only records the method; no card data is collected.
func (s *Session) SubmitPayment(method domain.PaymentMethod) error {
	if method == "" {
		method = domain.PaymentCreditCard
	}
	if !method.Valid() {
		return ErrInvalidPayment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(StepPayment); err != nil {
		return err
	}

	s.form.PaymentMethod = method
	s.step = StepReview

	return nil
}

func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(StepPayment, StepReview); err != nil {
		return err
	}

	s.step--

	return nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

// Review is the step 3 summary. It stays available while the order is being placed.
func (s *Session) Review() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return View{}, ErrClosed
	case s.step == StepComplete:
		return View{}, ErrCompleted
	case s.step != StepReview:
		return View{}, fmt.Errorf("%w: %s", ErrWrongStep, s.step)
	}

	return s.view(), nil
}

// view must be called with s.mu held.
func (s *Session) view() View {
	if s.order != nil {
		return View{
			Step:     s.step,
			Form:     s.order.Form,
			Items:    s.order.Items,
			Subtotal: s.order.Subtotal,
			Shipping: s.order.Shipping,
			Total:    s.order.Total,
			Order:    s.order,
		}
	}

	items := s.cart.Items()
	subtotal := pricing.Subtotal(items, s.cart.Currency())
	shipping := s.policy.ShippingFee(s.form.ShippingMethod, subtotal)

	return View{
		Step:       s.step,
		Processing: s.processing,
		Form:       s.form,
		Items:      items,
		Subtotal:   subtotal,
		Shipping:   shipping,
		Total:      subtotal.Add(shipping),
	}
}

// PlaceOrder starts the simulated processing delay and returns immediately.
// Placement always succeeds unless Close cancels it first.
func (s *Session) PlaceOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(StepReview); err != nil {
		return err
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return ErrEmptyCart
	}

	subtotal := pricing.Subtotal(items, s.cart.Currency())
	shipping := s.policy.ShippingFee(s.form.ShippingMethod, subtotal)
	order := domain.Order{
		Reference: s.newRef(),
		Items:     items,
		Form:      s.form,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.processing = true
	s.started = true

	s.logger.Info("placing order",
		zap.String("reference", order.Reference),
		zap.String("total", order.Total.String()),
		zap.Int("lines", len(order.Items)))

	go s.process(ctx, order)

	return nil
}

// Done is closed once a placed order completed or the session was closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close ends the checkout view. A pending placement is cancelled and its
// completion dropped, leaving the cart untouched. Close blocks until the
// placement goroutine has exited.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	cancel := s.cancel
	started := s.started
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if !started {
		close(s.done)
	}
	<-s.done
}

func (s *Session) process(ctx context.Context, order domain.Order) {
	defer close(s.done)

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.logger.Info("order placement cancelled", zap.String("reference", order.Reference))
		return
	case <-timer.C:
	}

	s.finish(order)
}

func (s *Session) finish(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel = nil
	s.processing = false

	if s.closed {
		s.logger.Info("order completion dropped after checkout closed", zap.String("reference", order.Reference))
		return
	}

	if err := s.cart.Clear(context.Background()); err != nil {
		s.logger.Error("cart not cleared after order", zap.String("reference", order.Reference), zap.Error(err))
	}

	order.PlacedAt = s.now()
	s.order = &order
	s.step = StepComplete

	s.logger.Info("order complete", zap.String("reference", order.Reference))
}

// guard must be called with s.mu held.
func (s *Session) guard(allowed ...Step) error {
	switch {
	case s.closed:
		return ErrClosed
	case s.step == StepComplete:
		return ErrCompleted
	case s.processing:
		return ErrProcessing
	}

	for _, step := range allowed {
		if s.step == step {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongStep, s.step)
}
