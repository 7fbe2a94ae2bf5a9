package handlers

import (
	"log/slog"
	"net/http"

	"github.com/emontecinos/futbol-tracker/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// En producción esto debe validar el Origin contra los dominios
		// del front. Para desarrollo se acepta todo.
		return true
	},
}

type WebSocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeStandings suscribe al cliente a la sala de la tabla de posiciones.
// El cliente recibe cada evento de la liga apenas se confirma la escritura.
func (h *WebSocketHandler) ServeStandings(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("no se pudo elevar la conexión a websocket", "error", err)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: live.RoomStandings,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
