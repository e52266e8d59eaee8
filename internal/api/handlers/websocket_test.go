package handlers_test

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// wsMessage 對應伺服器與客戶端之間的訊息封包
type wsMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type statusResponse struct {
	RoomCode          string `json:"room_code"`
	DevicesConnected  int    `json:"devices_connected"`
	LastContentLength int    `json:"last_content_length"`
}

func createRoomViaServer(t *testing.T, serverURL string) string {
	t.Helper()

	resp, err := http.Post(serverURL+"/create-room", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		RoomCode string `json:"room_code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.RoomCode
}

func syncViaServer(t *testing.T, serverURL, code, content string) int {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"room_code": code, "content": content})
	require.NoError(t, err)
	resp, err := http.Post(serverURL+"/sync", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Status  string `json:"status"`
		Devices int    `json:"devices"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Devices
}

func roomStatusViaServer(t *testing.T, serverURL, code string) statusResponse {
	t.Helper()

	resp, err := http.Get(serverURL + "/room/" + code + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// waitForDevices 輪詢狀態端點直到房間內的連線數符合預期，
// 避免測試依賴固定的 sleep 時間
func waitForDevices(t *testing.T, serverURL, code string, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if roomStatusViaServer(t, serverURL, code).DevicesConnected == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %s never reached %d connected devices", code, want)
}

func dialRoom(t *testing.T, serverURL, code string) *websocket.Conn {
	t.Helper()

	u, err := url.Parse(serverURL)
	require.NoError(t, err)
	u.Scheme = "ws"
	u.Path = "/ws/" + code

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		resp.Body.Close()
	})
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// expectNoMessage 確認在 timeout 內沒有任何訊息抵達。
// 讀取逾時後這條連線不可再用於讀取
func expectNoMessage(t *testing.T, conn *websocket.Conn, timeout time.Duration) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(timeout)))
	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatal("expected no message, but received one")
	}
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return
	}
	t.Fatalf("unexpected error while waiting: %v", err)
}

func TestWebSocketUnknownRoomRejected(t *testing.T) {
	req := require.New(t)
	ts := httptest.NewServer(setupRouter())
	defer ts.Close()

	u, err := url.Parse(ts.URL)
	req.NoError(err)
	u.Scheme = "ws"
	u.Path = "/ws/ZZZZZZ"

	// 升級本身會成功，伺服器隨後以 1008 關閉連線
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	req.NoError(err)
	defer conn.Close()
	defer resp.Body.Close()

	req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, _, err = conn.ReadMessage()
	req.Error(err)
	req.True(websocket.IsCloseError(err, websocket.ClosePolicyViolation))

	closeErr, ok := err.(*websocket.CloseError)
	req.True(ok)
	req.Equal("Room not found", closeErr.Text)
}

func TestWebSocketReplayOnJoin(t *testing.T) {
	req := require.New(t)
	ts := httptest.NewServer(setupRouter())
	defer ts.Close()

	code := createRoomViaServer(t, ts.URL)
	syncViaServer(t, ts.URL, code, "stored content")

	// 加入已有內容的房間，第一則訊息必須是回放
	conn := dialRoom(t, ts.URL, code)
	msg := readMessage(t, conn)
	req.Equal("sync", msg.Type)
	req.Equal("stored content", msg.Content)
}

func TestWebSocketClipboardBroadcast(t *testing.T) {
	req := require.New(t)
	ts := httptest.NewServer(setupRouter())
	defer ts.Close()

	code := createRoomViaServer(t, ts.URL)
	c1 := dialRoom(t, ts.URL, code)
	c2 := dialRoom(t, ts.URL, code)
	waitForDevices(t, ts.URL, code, 2)

	req.NoError(c1.WriteJSON(wsMessage{Type: "clipboard", Content: "world"}))

	msg := readMessage(t, c2)
	req.Equal("sync", msg.Type)
	req.Equal("world", msg.Content)

	// 房間的最後內容隨廣播更新
	req.Equal(5, roomStatusViaServer(t, ts.URL, code).LastContentLength)

	// 發送者自己不會收到這次更新
	expectNoMessage(t, c1, 200*time.Millisecond)
}

func TestRestSyncReachesAllConnections(t *testing.T) {
	req := require.New(t)
	ts := httptest.NewServer(setupRouter())
	defer ts.Close()

	code := createRoomViaServer(t, ts.URL)
	c1 := dialRoom(t, ts.URL, code)
	c2 := dialRoom(t, ts.URL, code)
	waitForDevices(t, ts.URL, code, 2)

	devices := syncViaServer(t, ts.URL, code, "hello")
	req.Equal(2, devices)

	// REST 來的更新沒有排除對象，兩條連線都收得到
	for _, conn := range []*websocket.Conn{c1, c2} {
		msg := readMessage(t, conn)
		req.Equal("sync", msg.Type)
		req.Equal("hello", msg.Content)
	}
}

func TestWebSocketIgnoresMalformedAndUnknownMessages(t *testing.T) {
	req := require.New(t)
	ts := httptest.NewServer(setupRouter())
	defer ts.Close()

	code := createRoomViaServer(t, ts.URL)
	c1 := dialRoom(t, ts.URL, code)
	c2 := dialRoom(t, ts.URL, code)
	waitForDevices(t, ts.URL, code, 2)

	req.NoError(c1.WriteMessage(websocket.TextMessage, []byte("not valid json")))
	req.NoError(c1.WriteJSON(wsMessage{Type: "presence", Content: "ping"}))

	// 兩者都不應觸發任何廣播，也不該弄髒房間內容
	expectNoMessage(t, c2, 300*time.Millisecond)
	req.Equal(0, roomStatusViaServer(t, ts.URL, code).LastContentLength)

	// 連線依然存活，後續合法訊息照常送達新加入的裝置
	c3 := dialRoom(t, ts.URL, code)
	waitForDevices(t, ts.URL, code, 3)

	req.NoError(c1.WriteJSON(wsMessage{Type: "clipboard", Content: "after-noise"}))
	msg := readMessage(t, c3)
	req.Equal("sync", msg.Type)
	req.Equal("after-noise", msg.Content)
}

func TestWebSocketDisconnectLeavesRoom(t *testing.T) {
	ts := httptest.NewServer(setupRouter())
	defer ts.Close()

	code := createRoomViaServer(t, ts.URL)
	conn := dialRoom(t, ts.URL, code)
	waitForDevices(t, ts.URL, code, 1)

	// 客戶端斷線後成員會被移出房間，但房間本身保留
	conn.Close()
	waitForDevices(t, ts.URL, code, 0)
}
