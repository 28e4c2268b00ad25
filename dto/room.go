package dto

import "pokdeng/entities"

type CreateRoomRequest struct {
	UserID           string `json:"userId" binding:"required"`
	Name             string `json:"name"`
	MaxPlayers       int    `json:"maxPlayers" binding:"required"`
	MinBet           int    `json:"minBet" binding:"required"`
	StartingBankroll int    `json:"startingBankroll" binding:"required"`
}

type CreateRoomResponse struct {
	RoomCode string `json:"roomCode"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"` // 期望角色：player / dealer（庄家位已占时降级为player）
}

type JoinRoomResponse struct {
	RoomCode string `json:"roomCode"`
	Role     string `json:"role"`
}

type GetRoomList struct {
	Rooms []entities.RoomInfo `json:"rooms"`
}
