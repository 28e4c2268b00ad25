package entities

import "time"

type RoomStatus string

const (
	RoomStatusLobby         RoomStatus = "lobby"          // 大厅，等待玩家准备
	RoomStatusDealing       RoomStatus = "dealing"        // 发牌中（过渡状态，发牌在同一次写入里完成）
	RoomStatusPlayerActions RoomStatus = "player_actions" // 玩家行动阶段
	RoomStatusDealerAction  RoomStatus = "dealer_action"  // 庄家行动阶段
	RoomStatusSettlement    RoomStatus = "settlement"     // 开牌结算
)

const (
	RoleDealer = "dealer"
	RolePlayer = "player"
)

const (
	OutcomeWin  = "win"
	OutcomeLose = "lose"
	OutcomePush = "push"
)

// Settings 建房时的配置
type Settings struct {
	MaxPlayers       int `json:"maxPlayers"`
	MinBet           int `json:"minBet"`
	StartingBankroll int `json:"startingBankroll"`
}

// User 房间内的一名参与者（庄家或闲家）
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"` // dealer / player
	Bankroll int    `json:"bankroll"`
	Bet      int    `json:"bet"`
	Hand     Hand   `json:"hand"`
	Acted    bool   `json:"acted"`
	Ready    bool   `json:"ready"`
	LastSeen int64  `json:"lastSeen"` // 最近一次轮询/消息的unix时间戳
}

// SettleResult 单个闲家一轮的结算结果
type SettleResult struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	Outcome     string `json:"outcome"` // win / lose / push
	Payout      int    `json:"payout"`  // 带符号，闲家视角
	PlayerPts   int    `json:"playerPts"`
	DealerPts   int    `json:"dealerPts"`
	PlayerLabel string `json:"playerLabel"` // 闲家倍数标签
	DealerLabel string `json:"dealerLabel"` // 庄家倍数标签
}

// Room 房间是全部可变游戏状态的唯一持有者
type Room struct {
	Code      string           `json:"code"`
	OwnerID   string           `json:"ownerId"`
	Status    RoomStatus       `json:"status"`
	Settings  Settings         `json:"settings"`
	Users     map[string]*User `json:"users"`
	Order     []string         `json:"order"`    // 闲家的行动/展示顺序，不含庄家
	Admitted  []string         `json:"admitted"` // 本轮实际参与的闲家（开局时已准备的那部分）
	Deck      Deck             `json:"deck"`
	Settled   map[string]bool  `json:"settled"` // 本轮已结算的闲家，防止重复结算
	Results   []SettleResult   `json:"results"`
	Round     int              `json:"round"`
	Version   int64            `json:"version"`
	CreatedAt int64            `json:"createdAt"`
	UpdatedAt int64            `json:"updatedAt"`
}

// RoomInfo 房间列表展示用的概要信息（存在 redis hash 里）
type RoomInfo struct {
	Code       string `json:"code"`
	Status     string `json:"status"`
	MaxPlayers int    `json:"maxPlayers"`
	Players    int    `json:"players"`
}

// NewRoom 创建房间，建房者坐庄
func NewRoom(code, ownerID, ownerName string, settings Settings) *Room {
	now := time.Now().Unix()
	return &Room{
		Code:     code,
		OwnerID:  ownerID,
		Status:   RoomStatusLobby,
		Settings: settings,
		Users: map[string]*User{
			ownerID: {
				ID:       ownerID,
				Name:     ownerName,
				Role:     RoleDealer,
				Bankroll: settings.StartingBankroll,
				Bet:      settings.MinBet,
				LastSeen: now,
			},
		},
		Order:     []string{},
		Settled:   map[string]bool{},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DealerID 返回当前庄家ID，没有庄家时返回空串
func (r *Room) DealerID() string {
	for uid, u := range r.Users {
		if u.Role == RoleDealer {
			return uid
		}
	}
	return ""
}

// AllPlayersActed 本轮参与的闲家是否都已行动
func (r *Room) AllPlayersActed() bool {
	for _, uid := range r.Admitted {
		u, ok := r.Users[uid]
		if !ok || !u.Acted {
			return false
		}
	}
	return true
}

// ReadyPlayers 当前标记了准备的闲家（按顺序）
func (r *Room) ReadyPlayers() []string {
	ready := make([]string, 0, len(r.Order))
	for _, uid := range r.Order {
		if u, ok := r.Users[uid]; ok && u.Ready {
			ready = append(ready, uid)
		}
	}
	return ready
}

// Info 生成房间概要
func (r *Room) Info() RoomInfo {
	return RoomInfo{
		Code:       r.Code,
		Status:     string(r.Status),
		MaxPlayers: r.Settings.MaxPlayers,
		Players:    len(r.Order),
	}
}
