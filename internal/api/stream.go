package api

import (
	"net/http"
	"time"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/events"
	"github.com/RichStephens/killzone/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
)

// Subscriber hands out event subscriptions; *events.Hub implements it.
type Subscriber interface {
	Subscribe() *events.Subscription
}

// StreamHandler upgrades requests to websockets and forwards arena events.
type StreamHandler struct {
	hub      Subscriber
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a stream handler reading from hub.
func NewStreamHandler(hub Subscriber) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Stream sends every arena event as a JSON text frame until the client
// goes away or the hub closes. Client messages are read and discarded.
func (s *StreamHandler) Stream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", logging.Fields{
			constants.LogFieldClientIP: c.ClientIP(),
			"error":                    err.Error(),
		})
		return
	}
	defer conn.Close()

	sub := s.hub.Subscribe()
	defer sub.Close()
	logging.Info("stream subscriber connected", logging.Fields{constants.LogFieldClientIP: c.ClientIP()})

	gone := make(chan struct{})
	go func() {
		defer close(gone)
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

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-gone:
			return
		case <-c.Request.Context().Done():
			return
		case e, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := conn.WriteJSON(e); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
