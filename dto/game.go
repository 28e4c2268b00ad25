package dto

// ActionRequest 只带房间号的动作（开局、要牌、停牌、庄家动作等），
// 玩家身份统一从 X-User-ID 请求头取
type ActionRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
}

type ReadyRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	Ready    *bool  `json:"ready" binding:"required"`
}

type BetRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	Bet      int    `json:"bet" binding:"required"`
}

// SettleRequest Targets 为空表示结算所有未结算的闲家
type SettleRequest struct {
	RoomCode string   `json:"roomCode" binding:"required"`
	Targets  []string `json:"targets"`
}
