package server

import (
	"maze-core/internal/engine"
	"maze-core/pkg/api"
	"maze-core/pkg/logger"
	"maze-core/pkg/utils"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и одной сессией GameService.
// Несколько клиентов могут смотреть одну сессию, управление у всех общее.
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	SessionID string
	ID        string

	updates chan api.ServerResponse
	log     *logrus.Entry
}

func NewClient(game *engine.GameService, sessionID string, conn *websocket.Conn) *Client {
	id := utils.GenerateID()
	return &Client{
		Game:      game,
		Conn:      conn,
		SessionID: sessionID,
		ID:        id,
		updates:   game.Hub.Register(sessionID, id),
		log: logger.Component("ws_client").WithFields(logrus.Fields{
			"session": sessionID,
			"client":  id,
		}),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Game.Hub.Unregister(c.SessionID, c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.log.Info("Client connected")

	// INIT - триггер первой отрисовки
	if err := c.Game.ProcessCommand(c.SessionID, api.ClientCommand{Action: "INIT", Token: c.ID}); err != nil {
		c.log.WithError(err).Warn("Initial snapshot request failed")
		return
	}

	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS read error")
			}
			break
		}
		cmd.Token = c.ID
		if err := c.Game.ProcessCommand(c.SessionID, cmd); err != nil {
			c.Game.Hub.SendTo(c.SessionID, c.ID, api.ServerResponse{
				Type:      "ERROR",
				SessionID: c.SessionID,
				Error:     err.Error(),
			})
		}
	}
}

// writePump отправляет данные клиенту + Ping.
// Канал подписки закрывает хаб (Unregister или закрытие сессии).
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
