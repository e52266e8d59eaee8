package models

// Member 代表房間內的一條即時連線，由傳輸層實作。
// 房間只透過這個介面與連線互動，不持有任何傳輸細節。
type Member interface {
	// Deliver 以非阻塞方式將訊息排入發送隊列，
	// 回傳 false 表示該連線已無法接收訊息
	Deliver(msg *Message) bool
	// Close 關閉底層連線
	Close()
}
