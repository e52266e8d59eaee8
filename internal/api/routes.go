package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"clipboard_bridge/internal/api/handlers"
	"clipboard_bridge/internal/middleware"
	"clipboard_bridge/internal/service"
	"clipboard_bridge/internal/utils"
	"clipboard_bridge/pkg/metrics"
)

func SetupRoutes(r *gin.Engine, services *service.Services, corsOrigin string) {
	registerValidators()

	// 初始化 handlers
	roomHandler := handlers.NewRoomHandler(services.Room)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket)

	r.Use(middleware.CORS(corsOrigin))

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 測試頁面與監控端點
	r.GET("/", handlers.IndexPage)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// 房間操作
	r.POST("/create-room", roomHandler.CreateRoom)
	r.POST("/sync", roomHandler.SyncClipboard)
	r.GET("/room/:room_code/status", roomHandler.RoomStatus)

	// WebSocket 連接點
	r.GET("/ws/:room_code", wsHandler.HandleWebSocket)
}

// registerValidators 註冊自訂的請求欄位驗證規則
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("roomcode", func(fl validator.FieldLevel) bool {
			return utils.IsValidRoomCode(fl.Field().String())
		})
	}
}
