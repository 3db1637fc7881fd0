package api

import (
	"net/http"
	"sync"

	"habitquest/internal/service"
	"habitquest/pkg/auth"
	"habitquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ReminderHub fans reminder events out to each user's connected websocket
// clients. It only ever carries events outward; nothing coming in over the
// socket touches game state.
type ReminderHub struct {
	mu    sync.RWMutex
	conns map[int64][]*websocket.Conn
}

func NewReminderHub() *ReminderHub {
	return &ReminderHub{conns: map[int64][]*websocket.Conn{}}
}

// Publish implements service.ReminderSink.
func (h *ReminderHub) Publish(ev service.ReminderEvent) {
	log := logger.Logger()

	h.mu.RLock()
	conns := h.conns[ev.UserID]
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(ev); err != nil {
			log.Warn("failed to push reminder",
				zap.Int64("user_id", ev.UserID), zap.Error(err))
		}
	}
}

func (h *ReminderHub) add(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[userID] = append(h.conns[userID], conn)
	h.mu.Unlock()
}

func (h *ReminderHub) remove(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[userID]
	for i, c := range conns {
		if c == conn {
			h.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

type wsRoutes struct {
	hub *ReminderHub
	a   *auth.TelegramAuth
}

func NewWSRoutes(handler *gin.RouterGroup, hub *ReminderHub, a *auth.TelegramAuth) {
	r := &wsRoutes{hub: hub, a: a}
	h := handler.Group("/ws")
	h.Use(a.TelegramAuthMiddleware())
	h.GET("/", r.handleWebSocket)
}

func (r *wsRoutes) handleWebSocket(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	r.hub.add(user.ID, conn)

	go func() {
		defer func() {
			r.hub.remove(user.ID, conn)
			conn.Close()
		}()

		// Drain until the client goes away; inbound frames are ignored.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Info("websocket closed unexpectedly",
						zap.Int64("user_id", user.ID), zap.Error(err))
				}
				return
			}
		}
	}()
}
