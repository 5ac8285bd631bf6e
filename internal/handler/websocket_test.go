package handler_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CageChen/filehub/internal/handler"
	"github.com/CageChen/filehub/internal/watcher"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWSHandler_Broadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ws := handler.NewWSHandler()
	r := gin.New()
	r.GET("/ws", ws.HandleWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	all := dialWS(t, srv, "")
	notesOnly := dialWS(t, srv, "?folder=notes")

	// registration happens after the upgrade completes on the server side
	time.Sleep(50 * time.Millisecond)

	ws.OnFileChange(watcher.Event{Type: watcher.EventRemove, Folder: "archive", Path: "old.md"})
	ws.OnFileChange(watcher.Event{Type: watcher.EventWrite, Folder: "notes", Path: "dir/a.md"})

	var msg struct {
		Type    string                `json:"type"`
		Payload handler.ChangePayload `json:"payload"`
	}

	require.NoError(t, all.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, all.ReadJSON(&msg))
	assert.Equal(t, "fileChange", msg.Type)
	assert.Equal(t, handler.ChangePayload{Event: "remove", Folder: "archive", Path: "archive/old.md"}, msg.Payload)
	require.NoError(t, all.ReadJSON(&msg))
	assert.Equal(t, "update", msg.Payload.Event)

	require.NoError(t, notesOnly.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, notesOnly.ReadJSON(&msg))
	assert.Equal(t, handler.ChangePayload{Event: "update", Folder: "notes", Path: "notes/dir/a.md"}, msg.Payload)
}
