package ws

import (
	"encoding/json"
	"time"

	"pokdeng/dto"

	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// handleChatMessage 聊天消息只做转发，不落库。
// 发送者字段以服务端记录的连接身份为准，客户端传什么都盖掉。
func handleChatMessage(roomCode, playerID string, msgMap map[string]interface{}) {
	var chat dto.ChatMessage
	if err := mapstructure.Decode(msgMap, &chat); err != nil {
		logger.Warn("❌ 聊天消息格式错误", zap.Error(err))
		return
	}
	chat.Type = "chat"
	chat.From = playerID
	chat.SentAt = time.Now().Unix()

	data, err := json.Marshal(chat)
	if err != nil {
		logger.Warn("❌ 编码 JSON 失败", zap.Error(err))
		return
	}

	roomLock.Lock()
	defer roomLock.Unlock()
	for _, pc := range Rooms[roomCode] {
		if pc.Online && pc.Conn != nil {
			if err := pc.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Warn("向玩家发送聊天消息失败", zap.String("user", pc.PlayerID), zap.Error(err))
			}
		}
	}
}
