package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"pokdeng/dto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Rooms 房间内的所有连接（掉线的保留在列表里，等重连）
var Rooms = make(map[string][]dto.PlayerConn)
var roomLock sync.Mutex

var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}
}

// RegisterRoom 建房时登记连接列表
func RegisterRoom(roomCode string) {
	roomLock.Lock()
	defer roomLock.Unlock()
	if _, ok := Rooms[roomCode]; !ok {
		Rooms[roomCode] = []dto.PlayerConn{}
	}
}

// 校验玩家是否属于该房间，并把连接挂进房间（已存在则视为重连）
func validateAndJoinRoom(roomCode, playerID string, conn *websocket.Conn) bool {
	room, err := Store.GetRoom(roomCode)
	if err != nil || room == nil {
		logger.Warn("❌ 无法获取房间信息", zap.String("room", roomCode), zap.Error(err))
		return false
	}
	if _, ok := room.Users[playerID]; !ok {
		logger.Warn("非房间成员尝试连接", zap.String("room", roomCode), zap.String("user", playerID))
		return false
	}

	roomLock.Lock()
	defer roomLock.Unlock()

	for i, pc := range Rooms[roomCode] {
		if pc.PlayerID == playerID {
			Rooms[roomCode][i].Conn = conn
			Rooms[roomCode][i].Online = true
			logger.Info("玩家重连成功", zap.String("room", roomCode), zap.String("user", playerID))
			return true
		}
	}

	Rooms[roomCode] = append(Rooms[roomCode], dto.PlayerConn{
		PlayerID: playerID,
		Conn:     conn,
		Online:   true,
	})
	logger.Info("玩家连接房间", zap.String("room", roomCode), zap.String("user", playerID))
	return true
}

// 向单个客户端发送初始化消息（确认自己的 playerId）
func sendInitMessage(conn *websocket.Conn, playerID string) {
	msg := map[string]string{
		"type":     "init",
		"playerId": playerID,
	}
	data, _ := json.Marshal(msg)
	conn.WriteMessage(websocket.TextMessage, data)
}

// 玩家断开后只标记离线，不移除，方便重连
func cleanupOnDisconnect(roomCode, playerID string, conn *websocket.Conn) {
	roomLock.Lock()
	defer roomLock.Unlock()

	for i, pc := range Rooms[roomCode] {
		if pc.PlayerID == playerID && pc.Conn == conn {
			Rooms[roomCode][i].Online = false
			Rooms[roomCode][i].Conn = nil
			break
		}
	}
	logger.Info("玩家离开房间", zap.String("room", roomCode), zap.String("user", playerID))
}

// 持续监听客户端消息并按类型分发
func listenMessages(roomCode, playerID string, conn *websocket.Conn) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Info("读取消息失败，连接关闭", zap.String("user", playerID), zap.Error(err))
			break
		}

		var msgMap map[string]interface{}
		if err := json.Unmarshal(msg, &msgMap); err != nil {
			logger.Warn("消息解析失败", zap.Error(err))
			continue
		}

		msgType, _ := msgMap["type"].(string)
		switch msgType {
		case "chat":
			handleChatMessage(roomCode, playerID, msgMap)
		case "sync":
			// 客户端主动要一次全量状态
			RefreshRoom(roomCode)
		default:
			logger.Warn("未知消息类型", zap.String("type", msgType))
		}
	}
}

// 将 HTTP 请求升级为 WebSocket 连接
func upgradeConnection(c *gin.Context) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket 升级失败", zap.Error(err))
	}
	return conn, err
}

// HandleWebSocket WebSocket 主入口（处理每个连接）
func HandleWebSocket(c *gin.Context) {
	conn, err := upgradeConnection(c)
	if err != nil {
		return
	}
	defer conn.Close()

	roomCode := c.Query("roomCode")
	playerID := c.Query("userId")
	if roomCode == "" || playerID == "" {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","message":"缺少 roomCode 或 userId"}`))
		return
	}

	if !validateAndJoinRoom(roomCode, playerID, conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","message":"不在该房间内"}`))
		return
	}
	defer cleanupOnDisconnect(roomCode, playerID, conn)

	sendInitMessage(conn, playerID)
	// 连上来先推一次全量状态
	RefreshRoom(roomCode)

	listenMessages(roomCode, playerID, conn)
}
