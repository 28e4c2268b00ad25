package dto

import "github.com/gorilla/websocket"

// PlayerConn 玩家连接对象结构体（掉线时保留，支持重连）
type PlayerConn struct {
	PlayerID string
	Conn     *websocket.Conn
	Online   bool
}

// ChatMessage 房间内聊天消息（只做转发，不落库）
type ChatMessage struct {
	Type    string `json:"type" mapstructure:"type"`
	From    string `json:"from" mapstructure:"from"`
	Name    string `json:"name" mapstructure:"name"`
	Message string `json:"message" mapstructure:"message"`
	SentAt  int64  `json:"sentAt" mapstructure:"sentAt"`
}
