package entities

import (
	"golang.org/x/exp/rand"
)

// 花色与点数定义（博定牌使用标准52张牌）
var Suits = []string{"♠", "♥", "♦", "♣"}
var Ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// 每个点数对应的分值：A=1，2~9按面值，10/J/Q/K=0
var rankValue = map[string]int{
	"A": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"10": 0, "J": 0, "Q": 0, "K": 0,
}

// 点数在顺子判断中的序号：A=1 ... K=13
var rankIndex = map[string]int{
	"A": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"10": 10, "J": 11, "Q": 12, "K": 13,
}

type Card struct {
	Rank string `json:"rank"` // "A" ~ "K"
	Suit string `json:"suit"` // "♠" "♥" "♦" "♣"
}

// Hand 一名参与者手里的牌（0、2 或 3 张）
type Hand []Card

// Deck 洗好的牌堆，从末尾抽牌
type Deck []Card

// NewDeck 生成按顺序排列的52张牌
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// NewShuffledDeck 用指定种子洗牌（种子固定时发牌顺序可复现）
func NewShuffledDeck(seed uint64) Deck {
	deck := NewDeck()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Draw 从牌堆末尾抽一张牌，牌堆空了返回 false
func (d *Deck) Draw() (Card, bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	card := (*d)[len(*d)-1]
	*d = (*d)[:len(*d)-1]
	return card, true
}

// CardPoints 单张牌的分值
func CardPoints(rank string) int {
	return rankValue[rank]
}

// Points 手牌总分：逐张求和后对10取模
func (h Hand) Points() int {
	sum := 0
	for _, c := range h {
		sum += rankValue[c.Rank]
	}
	return sum % 10
}

// IsPok 是否为博（两张牌合计8或9点），同时返回点数
func (h Hand) IsPok() (bool, int) {
	if len(h) != 2 {
		return false, 0
	}
	pts := h.Points()
	return pts == 8 || pts == 9, pts
}

// isStraight 三张牌是否为顺子（A,2,...,K 顺序，另外特判 Q-K-A 回头顺）
func isStraight(ranks []string) bool {
	idx := []int{rankIndex[ranks[0]], rankIndex[ranks[1]], rankIndex[ranks[2]]}
	if idx[0] > idx[1] {
		idx[0], idx[1] = idx[1], idx[0]
	}
	if idx[1] > idx[2] {
		idx[1], idx[2] = idx[2], idx[1]
	}
	if idx[0] > idx[1] {
		idx[0], idx[1] = idx[1], idx[0]
	}
	if idx[1] == idx[0]+1 && idx[2] == idx[1]+1 {
		return true
	}
	// Q(12)-K(13)-A(1)
	return idx[0] == 1 && idx[1] == 12 && idx[2] == 13
}

func isFlush(suits []string) bool {
	return suits[0] == suits[1] && suits[1] == suits[2]
}

func isTong(ranks []string) bool {
	return ranks[0] == ranks[1] && ranks[1] == ranks[2]
}

func isJQK(ranks []string) bool {
	set := map[string]bool{}
	for _, r := range ranks {
		set[r] = true
	}
	return len(set) == 3 && set["J"] && set["Q"] && set["K"]
}

// DengMultiplier 计算倍数（เด้ง）：
// 两张：对子或同花色 → 2倍
// 三张：豹子 → 5倍；顺子/同花/JQK → 3倍
func (h Hand) DengMultiplier() (int, string) {
	if len(h) == 2 {
		if h[0].Rank == h[1].Rank || h[0].Suit == h[1].Suit {
			return 2, "2倍"
		}
		return 1, "x1"
	}
	if len(h) == 3 {
		ranks := []string{h[0].Rank, h[1].Rank, h[2].Rank}
		suits := []string{h[0].Suit, h[1].Suit, h[2].Suit}
		if isTong(ranks) {
			return 5, "5倍(豹子)"
		}
		if isStraight(ranks) || isFlush(suits) || isJQK(ranks) {
			return 3, "3倍"
		}
		return 1, "x1"
	}
	return 1, "x1"
}
