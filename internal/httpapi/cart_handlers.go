package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/zini-storefront/internal/cart"
	"github.com/nikolayk812/zini-storefront/internal/catalog"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"go.uber.org/zap"
)

// addItemRequest names a product either by id or by flavour and size.
type addItemRequest struct {
	ProductID string `json:"productId"`
	FlavourID string `json:"flavorId"`
	Size      string `json:"size"`
	Quantity  *int   `json:"quantity" binding:"omitempty,min=1,max=2147483647"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=2147483647"`
}

func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCartDTO(visitorFrom(c).cart.Snapshot()))
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := resolveProduct(req)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	v := visitorFrom(c)
	if err := v.cart.AddItem(c.Request.Context(), product, quantity); err != nil {
		s.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartDTO(v.cart.Snapshot()))
}

func (s *Server) setCartItemQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := visitorFrom(c)
	if err := v.cart.SetQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		s.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartDTO(v.cart.Snapshot()))
}

func (s *Server) removeCartItem(c *gin.Context) {
	v := visitorFrom(c)
	if err := v.cart.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		s.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartDTO(v.cart.Snapshot()))
}

func (s *Server) clearCart(c *gin.Context) {
	v := visitorFrom(c)
	if err := v.cart.Clear(c.Request.Context()); err != nil {
		s.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartDTO(v.cart.Snapshot()))
}

func resolveProduct(req addItemRequest) (domain.Product, bool) {
	if req.ProductID != "" {
		return catalog.Find(req.ProductID)
	}

	variant, err := catalog.Variant(req.FlavourID, req.Size)
	if err != nil {
		return nil, false
	}

	return variant, true
}

// cartError keeps the in-memory change when only persistence failed: the cart
// still answers with its current contents, the failure is just logged.
func (s *Server) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrNoProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrCurrencyMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.logger.Warn("cart not persisted", zap.String("session", visitorFrom(c).id), zap.Error(err))
		c.JSON(http.StatusOK, toCartDTO(visitorFrom(c).cart.Snapshot()))
	}
}
