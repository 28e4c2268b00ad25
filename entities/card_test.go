package entities

import (
	"testing"
)

func c(rank, suit string) Card {
	return Card{Rank: rank, Suit: suit}
}

func TestHandPoints(t *testing.T) {
	tests := []struct {
		name string
		hand Hand
		want int
	}{
		{name: "A+8", hand: Hand{c("A", "♠"), c("8", "♥")}, want: 9},
		{name: "9+9 wraps to 8", hand: Hand{c("9", "♠"), c("9", "♥")}, want: 8},
		{name: "face cards are zero", hand: Hand{c("K", "♠"), c("J", "♥")}, want: 0},
		{name: "10 is zero", hand: Hand{c("10", "♦"), c("7", "♣")}, want: 7},
		{name: "three cards", hand: Hand{c("4", "♠"), c("5", "♥"), c("7", "♦")}, want: 6},
		{name: "empty hand", hand: Hand{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hand.Points(); got != tt.want {
				t.Fatalf("Points() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandPointsRange(t *testing.T) {
	// 任意手牌的点数都应落在 [0,9]
	deck := NewDeck()
	for i := 0; i < len(deck); i++ {
		for j := i + 1; j < len(deck); j++ {
			pts := Hand{deck[i], deck[j]}.Points()
			if pts < 0 || pts > 9 {
				t.Fatalf("两张牌 %v %v 点数越界: %d", deck[i], deck[j], pts)
			}
		}
	}
}

func TestIsPok(t *testing.T) {
	tests := []struct {
		name    string
		hand    Hand
		wantPok bool
		wantPts int
	}{
		{name: "A+8 is pok 9", hand: Hand{c("A", "♠"), c("8", "♥")}, wantPok: true, wantPts: 9},
		{name: "9+9 is pok 8", hand: Hand{c("9", "♠"), c("9", "♥")}, wantPok: true, wantPts: 8},
		{name: "7 points is not pok", hand: Hand{c("3", "♠"), c("4", "♥")}, wantPok: false, wantPts: 7},
		{name: "three cards never pok", hand: Hand{c("A", "♠"), c("8", "♥"), c("K", "♦")}, wantPok: false},
		{name: "empty hand", hand: Hand{}, wantPok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pok, pts := tt.hand.IsPok()
			if pok != tt.wantPok {
				t.Fatalf("IsPok() = %v, want %v", pok, tt.wantPok)
			}
			if tt.wantPok && pts != tt.wantPts {
				t.Fatalf("IsPok() pts = %d, want %d", pts, tt.wantPts)
			}
		})
	}
}

func TestDengMultiplier(t *testing.T) {
	tests := []struct {
		name string
		hand Hand
		want int
	}{
		{name: "pair", hand: Hand{c("7", "♠"), c("7", "♥")}, want: 2},
		{name: "suited two cards", hand: Hand{c("3", "♠"), c("9", "♠")}, want: 2},
		{name: "plain two cards", hand: Hand{c("3", "♠"), c("9", "♥")}, want: 1},
		{name: "straight flush", hand: Hand{c("2", "♠"), c("3", "♠"), c("4", "♠")}, want: 3},
		{name: "offsuit straight", hand: Hand{c("5", "♠"), c("6", "♥"), c("7", "♦")}, want: 3},
		{name: "QKA wrap straight", hand: Hand{c("Q", "♠"), c("K", "♥"), c("A", "♦")}, want: 3},
		{name: "AQK order does not matter", hand: Hand{c("A", "♦"), c("Q", "♠"), c("K", "♥")}, want: 3},
		{name: "flush", hand: Hand{c("2", "♥"), c("8", "♥"), c("K", "♥")}, want: 3},
		{name: "JQK", hand: Hand{c("J", "♠"), c("Q", "♥"), c("K", "♦")}, want: 3},
		{name: "tong", hand: Hand{c("5", "♠"), c("5", "♥"), c("5", "♦")}, want: 5},
		{name: "plain three cards", hand: Hand{c("2", "♠"), c("7", "♥"), c("K", "♦")}, want: 1},
		{name: "KA2 is not a straight", hand: Hand{c("K", "♠"), c("A", "♥"), c("2", "♦")}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, label := tt.hand.DengMultiplier()
			if got != tt.want {
				t.Fatalf("DengMultiplier() = %d (%s), want %d", got, label, tt.want)
			}
			if label == "" {
				t.Fatalf("倍数标签不能为空")
			}
		})
	}
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("牌堆应有52张，实际 %d", len(deck))
	}
	seen := map[Card]bool{}
	for _, card := range deck {
		if seen[card] {
			t.Fatalf("牌堆里出现重复牌: %v", card)
		}
		seen[card] = true
	}
}

func TestNewShuffledDeckDeterministic(t *testing.T) {
	a := NewShuffledDeck(42)
	b := NewShuffledDeck(42)
	if len(a) != 52 || len(b) != 52 {
		t.Fatalf("洗牌后应仍是52张")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("同一种子洗出的牌序应一致，位置 %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestDeckDraw(t *testing.T) {
	deck := Deck{c("A", "♠"), c("K", "♥")}
	card, ok := deck.Draw()
	if !ok || card != c("K", "♥") {
		t.Fatalf("应从末尾抽牌，得到 %v", card)
	}
	if len(deck) != 1 {
		t.Fatalf("抽牌后牌堆应剩1张，实际 %d", len(deck))
	}
	deck.Draw()
	if _, ok := deck.Draw(); ok {
		t.Fatalf("空牌堆不应再抽出牌")
	}
}
