package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/zini-storefront/internal/checkout"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"go.uber.org/zap"
)

const cartRoute = "/cart"

type shippingRequest struct {
	Method domain.ShippingMethod `json:"method" binding:"required"`
}

type paymentRequest struct {
	Method domain.PaymentMethod `json:"method"`
}

// enterCheckout resumes an unfinished checkout or starts a new one over the current cart.
func (s *Server) enterCheckout(c *gin.Context) {
	v := visitorFrom(c)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.checkout != nil && v.checkout.Step() != checkout.StepComplete {
		c.JSON(http.StatusOK, toCheckoutDTO(v.checkout.View()))
		return
	}
	v.closeCheckout()

	session, err := checkout.Begin(v.cart, checkout.Options{
		ProcessingDelay: s.deps.ProcessingDelay,
		Policy:          &s.deps.Policy,
		Logger:          s.logger.With(zap.String("session", v.id)),
	})
	if err != nil {
		s.checkoutError(c, err)
		return
	}
	v.checkout = session

	c.JSON(http.StatusCreated, toCheckoutDTO(session.View()))
}

func (s *Server) getCheckout(c *gin.Context) {
	v := visitorFrom(c)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.checkout == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout not started", "redirect": cartRoute})
		return
	}

	if v.checkout.ShouldRedirect() {
		v.closeCheckout()
		s.checkoutError(c, checkout.ErrEmptyCart)
		return
	}

	c.JSON(http.StatusOK, toCheckoutDTO(v.checkout.View()))
}

func (s *Server) leaveCheckout(c *gin.Context) {
	v := visitorFrom(c)

	v.mu.Lock()
	v.closeCheckout()
	v.mu.Unlock()

	c.Status(http.StatusNoContent)
}

func (s *Server) selectShipping(c *gin.Context) {
	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.withCheckout(c, func(session *checkout.Session) error {
		return session.SelectShipping(req.Method)
	})
}

func (s *Server) submitDetails(c *gin.Context) {
	var in checkout.DetailsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.withCheckout(c, func(session *checkout.Session) error {
		return session.SubmitDetails(in)
	})
}

func (s *Server) submitPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.withCheckout(c, func(session *checkout.Session) error {
		return session.SubmitPayment(req.Method)
	})
}

func (s *Server) checkoutBack(c *gin.Context) {
	s.withCheckout(c, func(session *checkout.Session) error {
		return session.Back()
	})
}

func (s *Server) reviewCheckout(c *gin.Context) {
	v := visitorFrom(c)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.checkout == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout not started", "redirect": cartRoute})
		return
	}

	view, err := v.checkout.Review()
	if err != nil {
		s.checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCheckoutDTO(view))
}

func (s *Server) placeOrder(c *gin.Context) {
	v := visitorFrom(c)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.checkout == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout not started", "redirect": cartRoute})
		return
	}

	if err := v.checkout.PlaceOrder(); err != nil {
		s.checkoutError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, toCheckoutDTO(v.checkout.View()))
}

func (s *Server) withCheckout(c *gin.Context, fn func(session *checkout.Session) error) {
	v := visitorFrom(c)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.checkout == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout not started", "redirect": cartRoute})
		return
	}

	if err := fn(v.checkout); err != nil {
		s.checkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCheckoutDTO(v.checkout.View()))
}

func (s *Server) checkoutError(c *gin.Context, err error) {
	var verr *checkout.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please fill in all required fields", "fields": verr.Fields})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "redirect": cartRoute})
	case errors.Is(err, checkout.ErrInvalidShipping), errors.Is(err, checkout.ErrInvalidPayment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrWrongStep),
		errors.Is(err, checkout.ErrProcessing),
		errors.Is(err, checkout.ErrCompleted),
		errors.Is(err, checkout.ErrClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
