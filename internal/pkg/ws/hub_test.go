package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.Equal(t, 0, hub.ConnectionCount())
}

// dialTestConn 建立一对服务端/客户端 websocket 连接
func dialTestConn(t *testing.T, hub *Hub, userID int64) (*Client, *websocket.Conn, func()) {
	t.Helper()

	connected := make(chan *Client, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := &Client{UserID: userID, Conn: conn}
		hub.Register(client)
		connected <- client
	}))

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	client := <-connected
	cleanup := func() {
		clientConn.Close()
		server.Close()
	}
	return client, clientConn, cleanup
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client, _, cleanup := dialTestConn(t, hub, 1)
	defer cleanup()

	assert.Equal(t, 1, hub.ConnectionCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub()

	c1, _, cleanup1 := dialTestConn(t, hub, 1)
	defer cleanup1()
	_, _, cleanup2 := dialTestConn(t, hub, 1)
	defer cleanup2()

	assert.Equal(t, 2, hub.ConnectionCount())

	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ConnectionCount())
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()

	_, clientConn, cleanup := dialTestConn(t, hub, 1)
	defer cleanup()

	err := hub.Broadcast(&Message{Type: "comment_flagged", Data: map[string]interface{}{"comment_id": 42}})
	require.NoError(t, err)

	clientConn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := clientConn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "comment_flagged")
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()

	_, conn1, cleanup1 := dialTestConn(t, hub, 1)
	defer cleanup1()
	_, conn2, cleanup2 := dialTestConn(t, hub, 2)
	defer cleanup2()

	err := hub.SendToUser(1, &Message{Type: "ping"})
	require.NoError(t, err)

	conn1.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn1.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "ping")

	// 其他用户收不到消息
	conn2.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = conn2.ReadMessage()
	assert.Error(t, err)
}

func TestHub_SendToUser_Offline(t *testing.T) {
	hub := NewHub()

	// 不在线时静默丢弃
	err := hub.SendToUser(99, &Message{Type: "ping"})
	assert.NoError(t, err)
}
