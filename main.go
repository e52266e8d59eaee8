package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"clipboard_bridge/internal/api"
	"clipboard_bridge/internal/repository"
	"clipboard_bridge/internal/service"
	"clipboard_bridge/pkg/config"
)

func main() {
	// 載入 .env 檔（若存在），供本地開發覆蓋環境變數
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Error loading .env file, relying on system environment variables")
	}

	// 載入應用程式配置
	// 從配置文件與環境變數中讀取設置，如伺服器地址和房間存活時間等
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日誌
	setupLogger(cfg)

	// 初始化 repositories 與 services
	// 房間狀態全部保存在記憶體中，程序重啟即重置
	repos := repository.NewRepositories()
	services := service.NewServices(repos, cfg)

	// 啟動背景的過期房間清理任務
	go services.Room.RunSweeper(cfg.Room.SweepInterval)

	// 設置 Gin 路由
	// 創建一個默認的 Gin 路由器並設置路由
	r := gin.Default()
	api.SetupRoutes(r, services, cfg.CORS.AllowOrigin)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	logrus.Infof("Server starting on %s", cfg.Server.Address)
	if err := r.Run(cfg.Server.Address); err != nil {
		logrus.Fatalf("Failed to run server: %v", err)
	}
}

// setupLogger 依配置設定全域 logger 的等級與輸出格式
func setupLogger(cfg *config.Config) {
	if cfg.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using default 'info'", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
}
