// Package httpapi exposes the storefront over HTTP for the single-page client.
package httpapi

import (
	"net/http"
	"path/filepath"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/zini-storefront/internal/catalog"
	"github.com/nikolayk812/zini-storefront/internal/imagegen"
	"github.com/nikolayk812/zini-storefront/internal/marketing"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"github.com/nikolayk812/zini-storefront/internal/pricing"
	"go.uber.org/zap"
)

// ClientRoutes are answered with the SPA shell so deep links survive a reload.
var ClientRoutes = []string{"/", "/shop", "/starter-kit", "/our-story", "/cart", "/checkout", "/contact"}

type Deps struct {
	CartStorage     port.CartStorage
	Newsletter      *marketing.Newsletter
	Contact         *marketing.Contact
	Images          *imagegen.Service
	Policy          pricing.Policy
	ProcessingDelay time.Duration

	// SessionIdleTimeout evicts visitors not seen for this long; zero means DefaultSessionIdleTimeout.
	SessionIdleTimeout time.Duration

	CORSOrigins []string
	StaticDir   string
	Logger      *zap.Logger
}

type Server struct {
	engine   *gin.Engine
	sessions *sessions
	deps     Deps
	logger   *zap.Logger
}

func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		engine:   gin.New(),
		sessions: newSessions(deps.CartStorage, catalog.Currency, deps.SessionIdleTimeout, logger),
		deps:     deps,
		logger:   logger,
	}

	s.engine.Use(gin.Recovery(), requestLogger(logger), cors.New(corsConfig(deps.CORSOrigins)))
	s.routes()
	s.sessions.startSweeper(s.sessions.idleTimeout / 2)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Close stops the idle sweeper and every open checkout. An order still processing is dropped and its cart kept.
func (s *Server) Close() {
	s.sessions.closeAll()
}

func (s *Server) routes() {
	api := s.engine.Group("/api")

	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.GET("/flavours", s.listFlavours)

	api.POST("/newsletter", s.subscribe)
	api.POST("/contact", s.sendInquiry)
	api.POST("/images", s.generateImage)

	visitors := api.Group("", withVisitor(s.sessions))

	visitors.GET("/cart", s.getCart)
	visitors.DELETE("/cart", s.clearCart)
	visitors.POST("/cart/items", s.addCartItem)
	visitors.PUT("/cart/items/:id", s.setCartItemQuantity)
	visitors.DELETE("/cart/items/:id", s.removeCartItem)
	visitors.GET("/cart/events", s.cartEvents)

	visitors.POST("/checkout", s.enterCheckout)
	visitors.GET("/checkout", s.getCheckout)
	visitors.DELETE("/checkout", s.leaveCheckout)
	visitors.PUT("/checkout/shipping", s.selectShipping)
	visitors.POST("/checkout/details", s.submitDetails)
	visitors.POST("/checkout/payment", s.submitPayment)
	visitors.POST("/checkout/back", s.checkoutBack)
	visitors.GET("/checkout/review", s.reviewCheckout)
	visitors.POST("/checkout/order", s.placeOrder)

	if s.deps.StaticDir != "" {
		s.staticRoutes(s.deps.StaticDir)
	}
}

func (s *Server) staticRoutes(dir string) {
	index := filepath.Join(dir, "index.html")
	for _, route := range ClientRoutes {
		s.engine.StaticFile(route, index)
	}
	s.engine.Static("/assets", filepath.Join(dir, "assets"))
	s.engine.Static("/images", filepath.Join(dir, "images"))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders: []string{sessionHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cfg
}
