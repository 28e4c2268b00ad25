package ws

import (
	"encoding/json"

	"pokdeng/dto"
	"pokdeng/entities"
	"pokdeng/repository"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Store ws 包自己持有一份存储引用（只读用），main 里注入
var Store repository.RoomStore

// BroadcastRoom 把房间状态推给房间内所有在线连接。
// 每个连接收到的是按自己视角脱敏后的视图，别人的手牌只有张数。
func BroadcastRoom(room *entities.Room) {
	roomLock.Lock()
	defer roomLock.Unlock()

	for i, pc := range Rooms[room.Code] {
		if !pc.Online || pc.Conn == nil {
			continue
		}
		if err := syncRoomMessage(pc.Conn, room, pc.PlayerID); err != nil {
			logger.Warn("广播失败，标记离线", zap.String("user", pc.PlayerID), zap.Error(err))
			pc.Conn.Close()
			Rooms[room.Code][i].Online = false
			Rooms[room.Code][i].Conn = nil
		}
	}
}

// RefreshRoom 从存储读最新状态再广播
func RefreshRoom(roomCode string) {
	if Store == nil {
		return
	}
	room, err := Store.GetRoom(roomCode)
	if err != nil || room == nil {
		return
	}
	BroadcastRoom(room)
}

// 向该客户端发送同步消息（视角脱敏在 BuildRoomView 里做）
func syncRoomMessage(conn *websocket.Conn, room *entities.Room, playerID string) error {
	view := dto.BuildRoomView(room, playerID)
	msg := map[string]interface{}{
		"type": "sync",
		"room": view,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
