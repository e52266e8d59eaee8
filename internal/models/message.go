package models

// 即時通道上的訊息類型
const (
	MessageTypeSync      = "sync"      // 伺服器向客戶端推送的同步訊息
	MessageTypeClipboard = "clipboard" // 客戶端上傳的剪貼簿內容
)

// Message 代表即時通道上傳輸的訊息封包
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// NewSyncMessage 創建一個新的同步訊息
func NewSyncMessage(content string) *Message {
	return &Message{
		Type:    MessageTypeSync,
		Content: content,
	}
}
