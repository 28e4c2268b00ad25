package router

import (
	"pokdeng/controller"
	"pokdeng/middleware"
	"pokdeng/ws"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine) {
	// 房间接口路由
	room := r.Group("/room")
	{
		room.POST("/create", controller.CreateRoom)
		room.POST("/join", controller.JoinRoom)
		room.GET("/list", controller.GetRoomList)
		room.GET("/:roomCode", controller.GetRoomView)
	}

	// 游戏动作路由，统一要求 X-User-ID
	game := r.Group("/game", middleware.UserID())
	{
		game.POST("/ready", controller.SetReady)
		game.POST("/bet", controller.SetBet)
		game.POST("/start", controller.StartRound)
		game.POST("/hit", controller.Hit)
		game.POST("/stand", controller.Stand)
		game.POST("/dealer/draw", controller.DealerDraw)
		game.POST("/dealer/settle", controller.DealerSettle)
		game.POST("/dealer/showdown", controller.DealerShowdown)
		game.POST("/lobby", controller.BackToLobby)
	}

	// WebSocket 路由
	r.GET("/ws", ws.HandleWebSocket)
}
