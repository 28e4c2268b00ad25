package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"pokdeng/entities"
)

func viewRoom(status entities.RoomStatus) *entities.Room {
	now := time.Now().Unix()
	return &entities.Room{
		Code:     "VIEW01",
		Status:   status,
		Settings: entities.Settings{MaxPlayers: 6, MinBet: 50, StartingBankroll: 1000},
		Users: map[string]*entities.User{
			"D": {
				ID: "D", Name: "庄家", Role: entities.RoleDealer,
				Bankroll: 900, Hand: entities.Hand{{Rank: "5", Suit: "♣"}, {Rank: "2", Suit: "♦"}},
				LastSeen: now,
			},
			"P1": {
				ID: "P1", Name: "P1", Role: entities.RolePlayer,
				Bankroll: 1100, Bet: 50, Acted: true,
				Hand:     entities.Hand{{Rank: "9", Suit: "♠"}, {Rank: "9", Suit: "♥"}},
				LastSeen: now,
			},
			"P2": {
				ID: "P2", Name: "P2", Role: entities.RolePlayer,
				Bankroll: 950, Bet: 50,
				Hand:     entities.Hand{{Rank: "2", Suit: "♠"}, {Rank: "3", Suit: "♥"}},
				LastSeen: now - 60, // 掉线
			},
		},
		Order:    []string{"P1", "P2"},
		Admitted: []string{"P1", "P2"},
		Results: []entities.SettleResult{
			{PlayerID: "P1", Outcome: entities.OutcomeWin, Payout: 100},
			{PlayerID: "P2", Outcome: entities.OutcomeLose, Payout: -50},
		},
		Round:   1,
		Version: 7,
	}
}

func findPlayer(t *testing.T, view RoomView, id string) PlayerView {
	t.Helper()
	for _, p := range view.Players {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("视图里找不到玩家 %s", id)
	return PlayerView{}
}

func TestBuildRoomViewRedaction(t *testing.T) {
	room := viewRoom(entities.RoomStatusPlayerActions)
	view := BuildRoomView(room, "P1")

	// 自己：手牌、点数、资金全量可见
	if view.Me == nil {
		t.Fatalf("观察者是成员时 Me 不应为空")
	}
	if view.Me.Bankroll != 1100 || len(view.Me.Hand) != 2 {
		t.Fatalf("自己的私有信息不完整: %+v", view.Me)
	}
	if !view.Me.Pok || view.Me.Points != 8 {
		t.Fatalf("自己的博/点数标记不对: pok=%v pts=%d", view.Me.Pok, view.Me.Points)
	}

	// 别人：结算前只有牌背张数
	other := findPlayer(t, view, "P2")
	if len(other.Hand) != 0 || other.Points != nil {
		t.Fatalf("结算前别人的手牌不应可见: %+v", other)
	}
	if other.CardCount != 2 {
		t.Fatalf("应能看到别人的牌数，实际 %d", other.CardCount)
	}

	// 庄家的手牌同样不可见
	if view.Dealer == nil || len(view.Dealer.Hand) != 0 {
		t.Fatalf("结算前庄家的手牌不应可见: %+v", view.Dealer)
	}

	// 自己在列表里能看到自己的牌
	self := findPlayer(t, view, "P1")
	if !self.IsMe || len(self.Hand) != 2 {
		t.Fatalf("列表里自己的条目不对: %+v", self)
	}
}

func TestBuildRoomViewRevealAtSettlement(t *testing.T) {
	room := viewRoom(entities.RoomStatusSettlement)
	view := BuildRoomView(room, "P1")

	other := findPlayer(t, view, "P2")
	if len(other.Hand) != 2 || other.Points == nil || *other.Points != 5 {
		t.Fatalf("结算阶段应翻开别人的手牌: %+v", other)
	}
	if view.Dealer == nil || len(view.Dealer.Hand) != 2 {
		t.Fatalf("结算阶段应翻开庄家的手牌: %+v", view.Dealer)
	}
}

func TestBuildRoomViewBankrollNeverLeaks(t *testing.T) {
	// 任何阶段，序列化后的视图里都不该出现别人的资金数字
	for _, status := range []entities.RoomStatus{
		entities.RoomStatusLobby,
		entities.RoomStatusPlayerActions,
		entities.RoomStatusSettlement,
	} {
		room := viewRoom(status)
		view := BuildRoomView(room, "P1")

		data, err := json.Marshal(view)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body := string(data)
		if strings.Contains(body, "950") || strings.Contains(body, "900") {
			t.Fatalf("状态 %s 下泄露了别人的资金: %s", status, body)
		}
		if !strings.Contains(body, "1100") {
			t.Fatalf("状态 %s 下自己的资金应可见", status)
		}
	}
}

func TestBuildRoomViewMyResultOnly(t *testing.T) {
	room := viewRoom(entities.RoomStatusSettlement)

	p1 := BuildRoomView(room, "P1")
	if p1.MyResult == nil || p1.MyResult.Payout != 100 {
		t.Fatalf("P1应看到自己的结算结果: %+v", p1.MyResult)
	}
	p2 := BuildRoomView(room, "P2")
	if p2.MyResult == nil || p2.MyResult.Payout != -50 {
		t.Fatalf("P2应看到自己的结算结果: %+v", p2.MyResult)
	}
	dealer := BuildRoomView(room, "D")
	if dealer.MyResult != nil {
		t.Fatalf("庄家没有单独的结算条目: %+v", dealer.MyResult)
	}
}

func TestBuildRoomViewOnlineWindow(t *testing.T) {
	room := viewRoom(entities.RoomStatusLobby)
	view := BuildRoomView(room, "P1")

	if p := findPlayer(t, view, "P1"); !p.Online {
		t.Fatalf("刚有心跳的玩家应显示在线")
	}
	if p := findPlayer(t, view, "P2"); p.Online {
		t.Fatalf("60秒没心跳的玩家应显示离线")
	}
}

func TestBuildRoomViewSpectator(t *testing.T) {
	room := viewRoom(entities.RoomStatusPlayerActions)
	view := BuildRoomView(room, "nobody")

	if view.Me != nil {
		t.Fatalf("非成员视角不应有 Me")
	}
	if view.MyResult != nil {
		t.Fatalf("非成员视角不应有结算结果")
	}
	if len(view.Players) != 2 {
		t.Fatalf("非成员仍能看到桌面概况，实际 %d 人", len(view.Players))
	}
}
