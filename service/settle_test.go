package service

import (
	"testing"

	"pokdeng/entities"
)

func card(rank, suit string) entities.Card {
	return entities.Card{Rank: rank, Suit: suit}
}

func player(id string, bet int, hand entities.Hand) *entities.User {
	return &entities.User{
		ID: id, Name: id, Role: entities.RolePlayer,
		Bankroll: 1000, Bet: bet, Hand: hand,
	}
}

func dealerUser(hand entities.Hand) *entities.User {
	return &entities.User{
		ID: "D", Name: "D", Role: entities.RoleDealer,
		Bankroll: 1000, Hand: hand,
	}
}

func TestSettleOne(t *testing.T) {
	tests := []struct {
		name        string
		playerHand  entities.Hand
		dealerHand  entities.Hand
		bet         int
		wantOutcome string
		wantPayout  int
	}{
		{
			name:       "只有闲家博，赢注乘闲家倍数(对子2倍)",
			playerHand: entities.Hand{card("9", "♠"), card("9", "♥")}, // 8点博，对子
			dealerHand: entities.Hand{card("5", "♣"), card("2", "♦")}, // 7点
			bet:        50, wantOutcome: entities.OutcomeWin, wantPayout: 100,
		},
		{
			name:       "只有庄家博，输注乘庄家倍数",
			playerHand: entities.Hand{card("3", "♠"), card("4", "♥")}, // 7点
			dealerHand: entities.Hand{card("A", "♦"), card("8", "♦")}, // 9点博，同花2倍
			bet:        50, wantOutcome: entities.OutcomeLose, wantPayout: -100,
		},
		{
			name:       "双博比点数，闲家高",
			playerHand: entities.Hand{card("A", "♠"), card("8", "♥")}, // 9点博
			dealerHand: entities.Hand{card("4", "♣"), card("4", "♦")}, // 8点博
			bet:        30, wantOutcome: entities.OutcomeWin, wantPayout: 30,
		},
		{
			name:       "双博同点为平",
			playerHand: entities.Hand{card("A", "♠"), card("7", "♥")}, // 8点博
			dealerHand: entities.Hand{card("3", "♣"), card("5", "♦")}, // 8点博
			bet:        30, wantOutcome: entities.OutcomePush, wantPayout: 0,
		},
		{
			name:       "都不博直接比点",
			playerHand: entities.Hand{card("2", "♠"), card("5", "♥")}, // 7点
			dealerHand: entities.Hand{card("2", "♣"), card("4", "♦")}, // 6点
			bet:        10, wantOutcome: entities.OutcomeWin, wantPayout: 10,
		},
		{
			name:       "同点非博为平",
			playerHand: entities.Hand{card("2", "♠"), card("4", "♥")}, // 6点
			dealerHand: entities.Hand{card("A", "♣"), card("5", "♦")}, // 6点
			bet:        10, wantOutcome: entities.OutcomePush, wantPayout: 0,
		},
		{
			name:       "庄家赢时用庄家的倍数，不用闲家的",
			playerHand: entities.Hand{card("2", "♠"), card("2", "♥")},               // 4点，对子(2倍，不应生效)
			dealerHand: entities.Hand{card("5", "♣"), card("6", "♣"), card("7", "♣")}, // 8点，同花顺3倍
			bet:        20, wantOutcome: entities.OutcomeLose, wantPayout: -60,
		},
		{
			name:       "闲家三张豹子赢5倍",
			playerHand: entities.Hand{card("3", "♠"), card("3", "♥"), card("3", "♦")}, // 9点豹子
			dealerHand: entities.Hand{card("2", "♣"), card("4", "♦")},                 // 6点
			bet:        10, wantOutcome: entities.OutcomeWin, wantPayout: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := player("P", tt.bet, tt.playerHand)
			d := dealerUser(tt.dealerHand)
			res := settleOne(p, d)
			if res.Outcome != tt.wantOutcome {
				t.Fatalf("outcome = %s, want %s", res.Outcome, tt.wantOutcome)
			}
			if res.Payout != tt.wantPayout {
				t.Fatalf("payout = %d, want %d", res.Payout, tt.wantPayout)
			}
		})
	}
}

func roundRoom(players map[string]entities.Hand, dealerHand entities.Hand) *entities.Room {
	room := &entities.Room{
		Code:     "TEST01",
		Status:   entities.RoomStatusDealerAction,
		Settings: entities.Settings{MaxPlayers: 6, MinBet: 10, StartingBankroll: 1000},
		Users:    map[string]*entities.User{"D": dealerUser(dealerHand)},
		Settled:  map[string]bool{},
	}
	for id, hand := range players {
		room.Users[id] = player(id, 50, hand)
		room.Order = append(room.Order, id)
		room.Admitted = append(room.Admitted, id)
	}
	return room
}

func TestSettlePlayersZeroSum(t *testing.T) {
	room := roundRoom(map[string]entities.Hand{
		"P1": {card("A", "♠"), card("8", "♥")}, // 赢
		"P2": {card("2", "♠"), card("3", "♥")}, // 输
		"P3": {card("2", "♣"), card("5", "♦")}, // 平
	}, entities.Hand{card("3", "♣"), card("4", "♦")}) // 庄家7点

	settlePlayers(room, room.Admitted)

	total := 0
	for _, u := range room.Users {
		total += u.Bankroll - 1000
	}
	if total != 0 {
		t.Fatalf("结算后全桌盈亏之和应为0，实际 %d", total)
	}
	if len(room.Results) != 3 {
		t.Fatalf("应产生3条结算结果，实际 %d", len(room.Results))
	}
}

func TestSettlePlayersIdempotent(t *testing.T) {
	room := roundRoom(map[string]entities.Hand{
		"P1": {card("A", "♠"), card("8", "♥")},
	}, entities.Hand{card("3", "♣"), card("4", "♦")})

	settlePlayers(room, []string{"P1"})
	first := room.Users["P1"].Bankroll

	// 重复结算同一个人必须是无操作
	settlePlayers(room, []string{"P1"})
	if room.Users["P1"].Bankroll != first {
		t.Fatalf("重复结算改变了资金: %d -> %d", first, room.Users["P1"].Bankroll)
	}
	if len(room.Results) != 1 {
		t.Fatalf("重复结算追加了结果: %d", len(room.Results))
	}
}

func TestSettlePlayersPartialWaves(t *testing.T) {
	room := roundRoom(map[string]entities.Hand{
		"P1": {card("A", "♠"), card("8", "♥")}, // 起手博，先结
		"P2": {card("2", "♠"), card("3", "♥")},
		"P3": {card("2", "♣"), card("5", "♦")},
	}, entities.Hand{card("3", "♣"), card("4", "♦")})

	settlePlayers(room, []string{"P1"})
	if got := remainingUnsettled(room); len(got) != 2 {
		t.Fatalf("第一波后应剩2人未结算，实际 %v", got)
	}

	settlePlayers(room, remainingUnsettled(room))
	if got := remainingUnsettled(room); len(got) != 0 {
		t.Fatalf("第二波后不应有人未结算，实际 %v", got)
	}
	if len(room.Results) != 3 {
		t.Fatalf("两波合计应有3条结果，实际 %d", len(room.Results))
	}
}
