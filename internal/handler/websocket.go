package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/CageChen/filehub/internal/log"
	"github.com/CageChen/filehub/internal/watcher"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins, the API is served with open CORS too
	},
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ChangePayload describes a change inside a served folder
type ChangePayload struct {
	Event  string `json:"event"`
	Folder string `json:"folder"`
	Path   string `json:"path"`
}

// WSHandler pushes folder changes to connected clients. A client may
// subscribe to a single folder with the folder query parameter.
type WSHandler struct {
	clients map[*websocket.Conn]string
	mu      sync.RWMutex
}

// NewWSHandler creates a new WebSocket handler
func NewWSHandler() *WSHandler {
	return &WSHandler{
		clients: make(map[*websocket.Conn]string),
	}
}

// HandleWS handles WebSocket upgrade and connection
func (h *WSHandler) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug("websocket upgrade failed", "error", err.Error())
		return
	}
	defer func() {
		h.removeClient(conn)
		_ = conn.Close()
	}()

	// An empty folder subscribes to every folder
	h.addClient(conn, c.Query("folder"))

	// Keep the connection open until the client goes away; incoming messages are ignored
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// OnFileChange is called when a file change is detected
func (h *WSHandler) OnFileChange(event watcher.Event) {
	h.broadcast(event.Folder, WSMessage{
		Type: "fileChange",
		Payload: ChangePayload{
			Event:  event.Type.String(),
			Folder: event.Folder,
			Path:   event.Folder + "/" + event.Path,
		},
	})
}

func (h *WSHandler) addClient(conn *websocket.Conn, folder string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = folder
}

func (h *WSHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

func (h *WSHandler) broadcast(folder string, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client, subscribed := range h.clients {
		if subscribed == "" || subscribed == folder {
			clients = append(clients, client)
		}
	}
	h.mu.RUnlock()

	// Write outside the lock; failed clients are dropped
	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.removeClient(client)
		}
	}
}
