package service

import (
	"clipboard_bridge/internal/repository"
	"clipboard_bridge/pkg/config"
)

type Services struct {
	Room      *RoomService
	WebSocket *WebSocketService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	broadcaster := NewBroadcaster()
	roomService := NewRoomService(repos.Room, broadcaster, cfg.Room.TTL)
	wsService := NewWebSocketService(roomService, cfg.WebSocket.MaxMessageSize, cfg.WebSocket.SendBufferSize)

	return &Services{
		Room:      roomService,
		WebSocket: wsService,
	}
}
