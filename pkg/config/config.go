package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Room      RoomConfig
	WebSocket WebSocketConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Address string
}

type RoomConfig struct {
	TTL           time.Duration // 房間存活時間，超過即被清理
	SweepInterval time.Duration // 背景清理任務的執行間隔
}

type WebSocketConfig struct {
	MaxMessageSize int64 // 單則訊息的大小上限（位元組）
	SendBufferSize int   // 每條連線的發送隊列長度
}

type CORSConfig struct {
	AllowOrigin string
}

type LogConfig struct {
	Level  string // debug / info / warn / error
	Format string // text / json
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")
	viper.AddConfigPath(".")

	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("room.ttl", "24h")
	viper.SetDefault("room.sweepinterval", "10m")
	viper.SetDefault("websocket.maxmessagesize", 1<<20)
	viper.SetDefault("websocket.sendbuffersize", 256)
	viper.SetDefault("cors.alloworigin", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// 環境變數覆蓋，例如 CLIPBOARD_SERVER_ADDRESS
	viper.SetEnvPrefix("clipboard")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 設定檔可有可無，找不到時採用預設值
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
