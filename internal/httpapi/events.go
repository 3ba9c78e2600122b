package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool { return true },
}

// cartEvents streams the visitor's cart: the current snapshot first, then one
// message per change. Changes that arrive faster than the client reads are coalesced.
func (s *Server) cartEvents(c *gin.Context) {
	v := visitorFrom(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.String("session", v.id), zap.Error(err))
		return
	}
	defer conn.Close()

	v.streams.Add(1)
	defer v.streams.Add(-1)

	updates, cancel := v.cart.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := writeJSON(conn, toCartDTO(v.cart.Snapshot())); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := writeJSON(conn, toCartDTO(snap)); err != nil {
				s.logger.Debug("cart event not delivered", zap.String("session", v.id), zap.Error(err))
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}
