package controller

import (
	"net/http"

	"pokdeng/dto"
	"pokdeng/middleware"
	"pokdeng/service"

	"github.com/gin-gonic/gin"
)

// bindAction 动作类请求的统一解析：body 里拿房间号，header 里拿玩家身份
func bindAction(c *gin.Context) (code, userID string, ok bool) {
	var req dto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return "", "", false
	}
	return req.RoomCode, c.GetString(middleware.UserIDKey), true
}

func replyOK(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         msg,
	})
}

func SetReady(c *gin.Context) {
	var req dto.ReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	if err := service.SetReady(req.RoomCode, c.GetString(middleware.UserIDKey), *req.Ready); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "准备状态已更新")
}

func SetBet(c *gin.Context) {
	var req dto.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	if err := service.SetBet(req.RoomCode, c.GetString(middleware.UserIDKey), req.Bet); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "下注已更新")
}

func StartRound(c *gin.Context) {
	code, userID, ok := bindAction(c)
	if !ok {
		return
	}
	if err := service.StartRound(code, userID); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "开局成功")
}

func Hit(c *gin.Context) {
	code, userID, ok := bindAction(c)
	if !ok {
		return
	}
	if err := service.Hit(code, userID); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "要牌成功")
}

func Stand(c *gin.Context) {
	code, userID, ok := bindAction(c)
	if !ok {
		return
	}
	if err := service.Stand(code, userID); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "已停牌")
}

func DealerDraw(c *gin.Context) {
	code, userID, ok := bindAction(c)
	if !ok {
		return
	}
	if err := service.DealerDraw(code, userID); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "庄家补牌成功")
}

// DealerSettle 分批结算，targets 为空表示结算剩余全部
func DealerSettle(c *gin.Context) {
	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	if err := service.DealerSettle(req.RoomCode, c.GetString(middleware.UserIDKey), req.Targets); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "结算完成")
}

func DealerShowdown(c *gin.Context) {
	code, userID, ok := bindAction(c)
	if !ok {
		return
	}
	if err := service.DealerShowdown(code, userID); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "已开牌结算")
}

func BackToLobby(c *gin.Context) {
	code, userID, ok := bindAction(c)
	if !ok {
		return
	}
	if err := service.BackToLobby(code, userID); err != nil {
		replyError(c, err)
		return
	}
	replyOK(c, "已回到大厅")
}
