package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clipboard_bridge/internal/service"
)

// RoomHandler 處理與剪貼簿房間相關的請求
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom 處理創建新房間的請求
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	code, err := h.roomService.CreateRoom()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建房間失敗"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_code": code})
}

// SyncClipboard 處理剪貼簿內容的同步請求，
// 將內容更新進房間並廣播給所有連線中的裝置
func (h *RoomHandler) SyncClipboard(c *gin.Context) {
	var input struct {
		RoomCode string `json:"room_code" binding:"required,roomcode"`
		Content  string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	devices, err := h.roomService.UpdateContent(input.RoomCode, input.Content, nil)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "synced",
		"devices": devices,
	})
}

// RoomStatus 處理查詢房間狀態的請求，只回傳內容長度而非內容本身
func (h *RoomHandler) RoomStatus(c *gin.Context) {
	status, err := h.roomService.Status(c.Param("room_code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, status)
}
