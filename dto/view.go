package dto

import (
	"time"

	"pokdeng/entities"
)

// 超过该秒数没有心跳就视为掉线
const onlineWindow = 15

// PlayerView 其他参与者在视图里只暴露牌背数量，直到结算才翻牌；
// 资金永远不对外暴露
type PlayerView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CardCount int           `json:"cardCount"`
	Acted     bool          `json:"acted"`
	Ready     bool          `json:"ready"`
	Online    bool          `json:"online"`
	Hand      entities.Hand `json:"hand,omitempty"`   // 仅结算阶段或自己可见
	Points    *int          `json:"points,omitempty"` // 同上
	IsMe      bool          `json:"isMe"`
}

// SelfView 自己的私有信息
type SelfView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Role     string        `json:"role"`
	Bankroll int           `json:"bankroll"`
	Bet      int           `json:"bet"`
	Hand     entities.Hand `json:"hand"`
	Points   int           `json:"points"`
	Pok      bool          `json:"pok"`
	Acted    bool          `json:"acted"`
	Ready    bool          `json:"ready"`
}

// RoomView 某个观察者眼里的房间状态
type RoomView struct {
	Code       string                 `json:"code"`
	Status     entities.RoomStatus    `json:"status"`
	Round      int                    `json:"round"`
	MinBet     int                    `json:"minBet"`
	MaxPlayers int                    `json:"maxPlayers"`
	Me         *SelfView              `json:"me,omitempty"`
	Dealer     *PlayerView            `json:"dealer,omitempty"`
	Players    []PlayerView           `json:"players"`
	MyResult   *entities.SettleResult `json:"myResult,omitempty"` // 结算结果只给本人看
	Version    int64                  `json:"version"`
}

// BuildRoomView 按观察者视角做信息脱敏：自己的手牌/资金全量可见，
// 别人的手牌在结算前只给张数，别人的资金任何时候都不给
func BuildRoomView(room *entities.Room, viewerID string) RoomView {
	now := time.Now().Unix()
	revealed := room.Status == entities.RoomStatusSettlement

	view := RoomView{
		Code:       room.Code,
		Status:     room.Status,
		Round:      room.Round,
		MinBet:     room.Settings.MinBet,
		MaxPlayers: room.Settings.MaxPlayers,
		Players:    make([]PlayerView, 0, len(room.Order)),
		Version:    room.Version,
	}

	if me, ok := room.Users[viewerID]; ok {
		pok, _ := me.Hand.IsPok()
		view.Me = &SelfView{
			ID:       me.ID,
			Name:     me.Name,
			Role:     me.Role,
			Bankroll: me.Bankroll,
			Bet:      me.Bet,
			Hand:     me.Hand,
			Points:   me.Hand.Points(),
			Pok:      pok,
			Acted:    me.Acted,
			Ready:    me.Ready,
		}
	}

	buildOne := func(u *entities.User) PlayerView {
		pv := PlayerView{
			ID:        u.ID,
			Name:      u.Name,
			CardCount: len(u.Hand),
			Acted:     u.Acted,
			Ready:     u.Ready,
			Online:    now-u.LastSeen <= onlineWindow,
			IsMe:      u.ID == viewerID,
		}
		if revealed || u.ID == viewerID {
			pts := u.Hand.Points()
			pv.Hand = u.Hand
			pv.Points = &pts
		}
		return pv
	}

	if dealerID := room.DealerID(); dealerID != "" {
		dv := buildOne(room.Users[dealerID])
		view.Dealer = &dv
	}
	for _, uid := range room.Order {
		u, ok := room.Users[uid]
		if !ok {
			continue
		}
		view.Players = append(view.Players, buildOne(u))
	}

	for i := range room.Results {
		if room.Results[i].PlayerID == viewerID {
			view.MyResult = &room.Results[i]
			break
		}
	}
	return view
}
