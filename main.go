package main

import (
	"os"
	"time"

	"pokdeng/repository"
	"pokdeng/router"
	"pokdeng/service"
	"pokdeng/utils"
	"pokdeng/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	repository.InitRedis()
	repository.InitMySQL()

	// 注入房间存储（redis 实现）
	store := repository.NewRedisRoomStore(repository.Rdb)
	service.Store = store
	ws.Store = store

	r := gin.Default()
	r.Use(utils.RequestLogger(logger))

	// 设置 CORS 中间件，允许所有域名、所有方法、所有 header
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true, // 允许所有来源
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.InitRouter(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	r.Run(":" + port)
}
