package service

import (
	"github.com/sirupsen/logrus"

	"clipboard_bridge/internal/models"
	"clipboard_bridge/pkg/metrics"
)

// BroadcastResult 描述一次廣播的投遞結果
type BroadcastResult struct {
	Delivered int // 成功排入發送隊列的成員數
	Pruned    int // 因投遞失敗而被移出房間的成員數
}

// Broadcaster 負責將內容更新扇出給房間成員
type Broadcaster struct{}

// NewBroadcaster 創建一個新的廣播器
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Broadcast 更新房間內容，並將同步訊息投遞給除 exclude 外的所有成員。
// 每條連線只投遞一次，不重試；投遞失敗視為連線已死，
// 待整輪掃完後一併移出房間並關閉。
func (b *Broadcaster) Broadcast(room *models.Room, content string, exclude models.Member) BroadcastResult {
	members := room.UpdateContent(content, exclude)
	msg := models.NewSyncMessage(content)

	var failed []models.Member
	for _, m := range members {
		if !m.Deliver(msg) {
			failed = append(failed, m)
		}
	}

	room.RemoveMembers(failed)
	for _, m := range failed {
		m.Close()
	}

	result := BroadcastResult{
		Delivered: len(members) - len(failed),
		Pruned:    len(failed),
	}
	metrics.MessagesDelivered.Add(float64(result.Delivered))
	metrics.MembersPruned.Add(float64(result.Pruned))

	if result.Pruned > 0 {
		logrus.WithFields(logrus.Fields{
			"component": "broadcast",
			"room":      room.Code(),
			"pruned":    result.Pruned,
		}).Warn("pruned members after failed delivery")
	}

	return result
}
