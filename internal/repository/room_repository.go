package repository

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"clipboard_bridge/internal/models"
)

type RoomRepository interface {
	InsertIfAbsent(room *models.Room) bool
	FindByCode(code string) (*models.Room, bool)
	RemoveExpired(now time.Time, ttl time.Duration) []*models.Room
	Count() int
}

type roomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room
}

// NewRoomRepository 創建一個以記憶體為後端的房間儲存
func NewRoomRepository() RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*models.Room),
	}
}

// InsertIfAbsent 寫入新房間，代碼已存在時回傳 false 且不覆蓋
func (r *roomRepository) InsertIfAbsent(room *models.Room) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.Code()]; ok {
		return false
	}
	r.rooms[room.Code()] = room
	return true
}

func (r *roomRepository) FindByCode(code string) (*models.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	return room, ok
}

// RemoveExpired 移除所有存活時間超過 ttl 的房間並回傳它們
func (r *roomRepository) RemoveExpired(now time.Time, ttl time.Duration) []*models.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	expired := lo.PickBy(r.rooms, func(_ string, room *models.Room) bool {
		return now.Sub(room.CreatedAt()) > ttl
	})
	for code := range expired {
		delete(r.rooms, code)
	}
	return lo.Values(expired)
}

// Count 回傳目前存活的房間數量
func (r *roomRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}
