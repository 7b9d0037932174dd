// internal/api/handlers/websocket_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"tusep-web/config"
	"tusep-web/internal/notify"
	"tusep-web/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Longest wait for any frame from the browser when PongWait is unset.
	pongWait = 60 * time.Second
	// How often the fault is re-read when PollInterval is unset.
	pollInterval = 10 * time.Second
	writeWait    = 10 * time.Second
)

type WebSocketHandler struct {
	Hub *socket.Hub
	// AllowedOrigins restricts cross-origin upgrades. Empty admits any origin.
	AllowedOrigins []string
	// PongWait bounds the silence from the browser. The server pings at 9/10
	// of it and every pong extends the read deadline.
	PongWait time.Duration
	// PollInterval is how often the fault is re-read so a repair ended
	// elsewhere freezes the timer.
	PollInterval time.Duration
}

func (h *WebSocketHandler) pongWait() time.Duration {
	if h.PongWait > 0 {
		return h.PongWait
	}
	return pongWait
}

func (h *WebSocketHandler) pollInterval() time.Duration {
	if h.PollInterval > 0 {
		return h.PollInterval
	}
	return pollInterval
}

func (h *WebSocketHandler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(h.AllowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, o := range h.AllowedOrigins {
				if o == "*" || o == origin {
					return true
				}
			}
			return false
		},
	}
}

// ServeTimer streams the elapsed repair time of one fault, one message per
// second, until the browser goes away.
func (h *WebSocketHandler) ServeTimer(c *gin.Context) {
	logger := config.GetLogger()
	id := c.Param("id")

	api := backend(c)
	fault, err := api.Fault(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, notify.Error(err, notify.FaultsLoadFailed))
		return
	}
	if !fault.Started() {
		c.JSON(http.StatusConflict, gin.H{"error": "Repair has not started"})
		return
	}

	up := h.upgrader()
	conn, err := up.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		config.LogError(logger, "handlers", "ServeTimer", "upgrade connection", id, err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	sub := h.Hub.Register(ctx, fault, conn)
	defer func() {
		cancel()
		h.Hub.Unregister(sub)
		conn.Close()
	}()

	go func() {
		err := h.Hub.Follow(ctx, sub, h.pollInterval(), api.Fault)
		if err == nil {
			return
		}
		logger.WithError(err).WithField("fault_id", id).Info("timer session expired")
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, notify.SessionExpired)
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
	}()

	wait := h.pongWait()
	go keepAlive(ctx, conn, wait*9/10)

	conn.SetReadDeadline(time.Now().Add(wait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wait))
	})
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wait))
		return conn.WriteControl(websocket.PongMessage, nil, time.Now().Add(time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.WithError(err).WithField("fault_id", id).Warn("timer socket closed unexpectedly")
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(wait))
	}
}

// keepAlive pings the browser until ctx ends or a ping cannot be written.
func keepAlive(ctx context.Context, conn *websocket.Conn, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
