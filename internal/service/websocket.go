package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"clipboard_bridge/internal/models"
	"clipboard_bridge/pkg/metrics"
)

const (
	writeWait  = 10 * time.Second // 單次寫入的超時時間
	pongWait   = 60 * time.Second // 等待 pong 回應的最長時間
	pingPeriod = 54 * time.Second // 心跳間隔，必須小於 pongWait
)

// Client 代表一條 WebSocket 連線，實作 models.Member
type Client struct {
	ID       string               // 連線的唯一識別碼
	RoomCode string               // 所屬房間代碼
	Conn     *websocket.Conn      // WebSocket 連線
	SendChan chan *models.Message // 訊息發送隊列，由 writePump 消費

	closeOnce sync.Once
}

// Deliver 以非阻塞方式將訊息排入發送隊列，隊列已滿時回傳 false
func (c *Client) Deliver(msg *models.Message) bool {
	select {
	case c.SendChan <- msg:
		return true
	default:
		return false
	}
}

// Close 關閉底層連線，可安全地重複呼叫。
// SendChan 從不關閉，writePump 會因連線關閉而自行結束。
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.Conn.Close()
	})
}

// WebSocketService 管理即時通道的連線生命週期
type WebSocketService struct {
	roomService    *RoomService
	maxMessageSize int64
	sendBufferSize int
}

// NewWebSocketService 創建並初始化新的 WebSocket 服務
func NewWebSocketService(roomService *RoomService, maxMessageSize int64, sendBufferSize int) *WebSocketService {
	return &WebSocketService{
		roomService:    roomService,
		maxMessageSize: maxMessageSize,
		sendBufferSize: sendBufferSize,
	}
}

// HandleConnection 將升級完成的連線掛入指定房間並啟動讀寫循環。
// 房間不存在時以 1008 拒絕；連線結束時自動離開房間。
func (s *WebSocketService) HandleConnection(conn *websocket.Conn, roomCode string) {
	client := &Client{
		ID:       uuid.NewString(),
		RoomCode: roomCode,
		Conn:     conn,
		SendChan: make(chan *models.Message, s.sendBufferSize),
	}

	if err := s.roomService.Join(roomCode, client); err != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "Room not found"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"component": "websocket",
		"room":      roomCode,
		"client":    client.ID,
	})
	log.Info("client connected")
	metrics.ActiveConnections.Inc()

	defer func() {
		s.roomService.Leave(roomCode, client)
		client.Close()
		metrics.ActiveConnections.Dec()
		log.Info("client disconnected")
	}()

	go s.writePump(client)
	s.readPump(client)
}

// readPump 持續讀取客戶端上傳的訊息，直到連線結束
func (s *WebSocketService) readPump(client *Client) {
	client.Conn.SetReadLimit(s.maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logrus.WithFields(logrus.Fields{
					"component": "websocket",
					"client":    client.ID,
				}).Warnf("unexpected close: %v", err)
			}
			break
		}

		// 解析失敗或類型不符的訊息一律靜默略過
		var msg models.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type != models.MessageTypeClipboard {
			continue
		}

		if _, err := s.roomService.UpdateContent(client.RoomCode, msg.Content, client); err != nil {
			// 房間已被清理，結束這條連線
			break
		}
	}
}

// writePump 消費發送隊列並定期發送心跳，直到寫入失敗
func (s *WebSocketService) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Close()
	}()

	for {
		select {
		case message, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(message)
			if err != nil {
				logrus.WithField("component", "websocket").Errorf("message encoding error: %v", err)
				continue
			}

			w, err := client.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(payload); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
