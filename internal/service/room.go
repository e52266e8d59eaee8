package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"clipboard_bridge/internal/models"
	"clipboard_bridge/internal/repository"
	"clipboard_bridge/internal/utils"
	"clipboard_bridge/pkg/metrics"
)

// ErrRoomNotFound 表示指定代碼的房間不存在
var ErrRoomNotFound = errors.New("room not found")

// RoomStatus 描述房間的即時狀態，只暴露內容長度而非內容本身
type RoomStatus struct {
	RoomCode          string `json:"room_code"`
	DevicesConnected  int    `json:"devices_connected"`
	LastContentLength int    `json:"last_content_length"`
}

// RoomService 管理房間的生命週期與內容同步
type RoomService struct {
	roomRepo    repository.RoomRepository
	broadcaster *Broadcaster
	ttl         time.Duration
}

func NewRoomService(roomRepo repository.RoomRepository, broadcaster *Broadcaster, ttl time.Duration) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		broadcaster: broadcaster,
		ttl:         ttl,
	}
}

// CreateRoom 建立一個新房間並回傳其代碼。
// 建立前會先清理過期房間；代碼碰撞時重新生成。
func (s *RoomService) CreateRoom() (string, error) {
	s.ExpireOldRooms(time.Now())

	for {
		code, err := utils.GenerateRoomCode()
		if err != nil {
			return "", err
		}
		if s.roomRepo.InsertIfAbsent(models.NewRoom(code)) {
			metrics.RoomsCreated.Inc()
			logrus.WithFields(logrus.Fields{
				"component": "room",
				"room":      code,
			}).Info("room created")
			return code, nil
		}
		// 代碼已被占用，重新生成
	}
}

// GetRoom 依代碼查詢房間，找不到時回傳 ErrRoomNotFound
func (s *RoomService) GetRoom(code string) (*models.Room, error) {
	room, ok := s.roomRepo.FindByCode(code)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Status 回傳房間目前的連線數與最後內容的長度
func (s *RoomService) Status(code string) (*RoomStatus, error) {
	room, err := s.GetRoom(code)
	if err != nil {
		return nil, err
	}

	return &RoomStatus{
		RoomCode:          code,
		DevicesConnected:  room.MemberCount(),
		LastContentLength: room.ContentLength(),
	}, nil
}

// UpdateContent 更新房間內容並廣播給所有成員（排除 exclude），
// 回傳清理失效連線後仍在房間內的成員數
func (s *RoomService) UpdateContent(code, content string, exclude models.Member) (int, error) {
	room, err := s.GetRoom(code)
	if err != nil {
		return 0, err
	}

	s.broadcaster.Broadcast(room, content, exclude)
	return room.MemberCount(), nil
}

// Join 將連線註冊進房間。若房間已有內容，
// 該連線會在收到任何廣播前先收到一則回放訊息
func (s *RoomService) Join(code string, m models.Member) error {
	room, err := s.GetRoom(code)
	if err != nil {
		return err
	}
	if !room.AddMember(m) {
		// 房間在查詢與加入之間被清理掉了
		return ErrRoomNotFound
	}
	return nil
}

// Leave 將連線移出房間，房間不存在或連線不在其中時皆為無操作
func (s *RoomService) Leave(code string, m models.Member) {
	room, ok := s.roomRepo.FindByCode(code)
	if !ok {
		return
	}
	room.RemoveMember(m)
}

// ExpireOldRooms 移除所有存活超過 TTL 的房間，並關閉其成員連線
func (s *RoomService) ExpireOldRooms(now time.Time) int {
	expired := s.roomRepo.RemoveExpired(now, s.ttl)
	for _, room := range expired {
		for _, m := range room.Expire() {
			m.Close()
		}
		metrics.RoomsExpired.Inc()
	}

	if len(expired) > 0 {
		logrus.WithFields(logrus.Fields{
			"component": "room",
			"expired":   len(expired),
			"remaining": s.roomRepo.Count(),
		}).Info("expired old rooms")
	}
	return len(expired)
}

// RunSweeper 以固定間隔清理過期房間，設計為以 goroutine 方式啟動
func (s *RoomService) RunSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logrus.WithField("component", "room").Info("room sweeper started")
	for range ticker.C {
		s.ExpireOldRooms(time.Now())
	}
}
