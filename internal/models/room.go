package models

import (
	"sync"
	"time"
	"unicode/utf8"
)

// Room 代表一個剪貼簿共享房間
type Room struct {
	code      string
	createdAt time.Time

	mu          sync.RWMutex
	members     map[Member]bool
	lastContent string
	expired     bool
}

// NewRoom 創建一個新的空房間
func NewRoom(code string) *Room {
	return &Room{
		code:      code,
		createdAt: time.Now(),
		members:   make(map[Member]bool),
	}
}

// Code 回傳房間代碼
func (r *Room) Code() string {
	return r.code
}

// CreatedAt 回傳房間的建立時間
func (r *Room) CreatedAt() time.Time {
	return r.createdAt
}

// AddMember 將連線加入房間的成員集合。
// 若房間已有上一次同步的內容，會在同一次鎖定內先將一則同步訊息
// 排入該連線的發送隊列，確保回放先於任何後續廣播送達。
// 房間已過期時不加入並回傳 false。
func (r *Room) AddMember(m Member) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.expired {
		return false
	}
	r.members[m] = true
	if r.lastContent != "" {
		m.Deliver(NewSyncMessage(r.lastContent))
	}
	return true
}

// RemoveMember 將連線移出房間，重複移除為無操作
func (r *Room) RemoveMember(m Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, m)
}

// RemoveMembers 批次移除連線，供廣播後清理失效成員使用
func (r *Room) RemoveMembers(members []Member) {
	if len(members) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range members {
		delete(r.members, m)
	}
}

// UpdateContent 更新房間的最後內容，並回傳目前成員的快照（排除 exclude）。
// 內容更新與快照在同一次鎖定內完成，投遞則由呼叫方在鎖外進行，
// 避免廣播期間成員集合被同時修改。
func (r *Room) UpdateContent(content string, exclude Member) []Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastContent = content
	return r.snapshotLocked(exclude)
}

// Content 回傳最後一次同步的內容
func (r *Room) Content() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastContent
}

// ContentLength 回傳最後內容的字元數
func (r *Room) ContentLength() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return utf8.RuneCountInString(r.lastContent)
}

// MemberCount 回傳目前的成員數量
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Expire 將房間標記為已過期並清空成員集合，
// 回傳先前的成員清單，由呼叫方負責關閉這些連線
func (r *Room) Expire() []Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.expired = true
	members := r.snapshotLocked(nil)
	r.members = make(map[Member]bool)
	return members
}

func (r *Room) snapshotLocked(exclude Member) []Member {
	members := make([]Member, 0, len(r.members))
	for m := range r.members {
		if m != exclude {
			members = append(members, m)
		}
	}
	return members
}
