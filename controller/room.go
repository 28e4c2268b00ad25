package controller

import (
	"errors"
	"net/http"

	"pokdeng/dto"
	"pokdeng/service"

	"github.com/gin-gonic/gin"
)

// replyError 按错误类别映射 HTTP 状态码：
// 实体缺失404，并发冲突409，前置条件不满足400，其余500
func replyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound) || errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case service.IsPrecondition(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	code, err := service.CreateRoom(req)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间创建成功",
		"data": dto.CreateRoomResponse{
			RoomCode: code,
		},
	})
}

func JoinRoom(c *gin.Context) {
	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	role, err := service.JoinRoom(req)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "加入房间成功",
		"data": dto.JoinRoomResponse{
			RoomCode: req.RoomCode,
			Role:     role,
		},
	})
}

func GetRoomList(c *gin.Context) {
	rooms, err := service.GetRoomList()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取房间列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "获取成功",
		"data": dto.GetRoomList{
			Rooms: rooms,
		},
	})
}

// GetRoomView 轮询入口：返回请求者视角的房间状态（已脱敏）
func GetRoomView(c *gin.Context) {
	code := c.Param("roomCode")
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 userId"})
		return
	}

	view, err := service.GetRoomView(code, userID)
	if err != nil {
		replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "获取成功",
		"data":        view,
	})
}
