package service

import (
	"time"

	"pokdeng/entities"
	"pokdeng/repository"
	"pokdeng/utils"

	"go.uber.org/zap"
)

// 每轮的新牌堆，测试里替换成固定种子或摆好的牌堆让发牌可复现
var newRoundDeck = func() entities.Deck {
	return entities.NewShuffledDeck(uint64(time.Now().UnixNano()))
}

// StartRound 庄家开局：只有已准备的闲家进入本轮，发两张牌（先闲后庄），
// 拿到博的闲家直接标记已行动。庄家起手就是博时整轮直接跳到结算。
func StartRound(code, userID string) error {
	room, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		if room.DealerID() != userID {
			return nil, ErrNotDealer
		}
		if room.Status != entities.RoomStatusLobby {
			return nil, ErrWrongStatus
		}
		admitted := room.ReadyPlayers()
		if len(admitted) == 0 {
			return nil, ErrNoReadyPlayers
		}

		// 重置一轮：新牌堆、清空所有人手牌和行动标记
		room.Status = entities.RoomStatusDealing
		room.Deck = newRoundDeck()
		room.Admitted = admitted
		room.Settled = map[string]bool{}
		room.Results = nil
		room.Round++
		for _, u := range room.Users {
			u.Hand = nil
			u.Acted = false
		}

		// 先给每个参与闲家发两张，最后给庄家发两张
		dealerID := room.DealerID()
		for _, uid := range append(append([]string{}, admitted...), dealerID) {
			c1, ok1 := room.Deck.Draw()
			c2, ok2 := room.Deck.Draw()
			if !ok1 || !ok2 {
				return nil, ErrDeckEmpty
			}
			room.Users[uid].Hand = entities.Hand{c1, c2}
		}

		// 起手博的闲家没有可选动作，直接算已行动
		for _, uid := range admitted {
			if pok, _ := room.Users[uid].Hand.IsPok(); pok {
				room.Users[uid].Acted = true
			}
			room.Users[uid].Ready = false
		}
		room.Users[dealerID].Ready = false

		if dealerPok, _ := room.Users[dealerID].Hand.IsPok(); dealerPok {
			// 庄家起手博：立刻对本轮全部参与闲家结算，后来的旁观者不受影响
			settlePlayers(room, admitted)
			room.Status = entities.RoomStatusSettlement
		} else {
			room.Status = entities.RoomStatusPlayerActions
		}

		return &repository.RoomDelta{
			Status:   &room.Status,
			Users:    room.Users,
			Admitted: &room.Admitted,
			Deck:     &room.Deck,
			Settled:  &room.Settled,
			Results:  &room.Results,
			Round:    &room.Round,
		}, nil
	})
	if err != nil {
		return err
	}

	logger.Info("开局", zap.String("room", code), zap.Int("round", room.Round),
		zap.Int("admitted", len(room.Admitted)), zap.String("status", string(room.Status)))
	if room.Status == entities.RoomStatusSettlement {
		repository.ArchiveResults(code, room.Round, room.Results)
	}
	return nil
}

// Hit 闲家要牌：只能在玩家行动阶段、未行动、手里正好两张且不是博的时候要，
// 抽牌和行动标记在同一次补丁里提交，两个并发的要牌绝不会摸到同一张牌
func Hit(code, userID string) error {
	_, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		u, err := actingPlayer(room, userID)
		if err != nil {
			return nil, err
		}
		if len(u.Hand) != 2 {
			return nil, ErrCannotHit
		}
		if pok, _ := u.Hand.IsPok(); pok {
			return nil, ErrCannotHit
		}

		card, ok := room.Deck.Draw()
		if !ok {
			return nil, ErrDeckEmpty
		}
		u.Hand = append(u.Hand, card)
		u.Acted = true
		u.LastSeen = time.Now().Unix()

		delta := &repository.RoomDelta{Users: room.Users, Deck: &room.Deck}
		if room.AllPlayersActed() {
			room.Status = entities.RoomStatusDealerAction
			delta.Status = &room.Status
		}
		return delta, nil
	})
	return err
}

// Stand 闲家停牌
func Stand(code, userID string) error {
	_, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		u, err := actingPlayer(room, userID)
		if err != nil {
			return nil, err
		}
		u.Acted = true
		u.LastSeen = time.Now().Unix()

		delta := &repository.RoomDelta{Users: room.Users}
		if room.AllPlayersActed() {
			room.Status = entities.RoomStatusDealerAction
			delta.Status = &room.Status
		}
		return delta, nil
	})
	return err
}

// actingPlayer Hit/Stand 共用的前置校验
func actingPlayer(room *entities.Room, userID string) (*entities.User, error) {
	if room.Status != entities.RoomStatusPlayerActions {
		return nil, ErrWrongStatus
	}
	u, ok := room.Users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if u.Role != entities.RolePlayer {
		return nil, ErrNotPlayer
	}
	if !utils.StringInSlice(userID, room.Admitted) {
		return nil, ErrNotInRound
	}
	if u.Acted {
		return nil, ErrAlreadyActed
	}
	return u, nil
}

// DealerDraw 庄家补牌：一轮最多一次，且只有两张牌、点数≤4时才允许
func DealerDraw(code, userID string) error {
	_, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		if room.DealerID() != userID {
			return nil, ErrNotDealer
		}
		if room.Status != entities.RoomStatusDealerAction {
			return nil, ErrWrongStatus
		}
		dealer := room.Users[userID]
		if len(dealer.Hand) != 2 || dealer.Hand.Points() > 4 {
			return nil, ErrCannotDraw
		}

		card, ok := room.Deck.Draw()
		if !ok {
			return nil, ErrDeckEmpty
		}
		dealer.Hand = append(dealer.Hand, card)
		dealer.LastSeen = time.Now().Unix()
		return &repository.RoomDelta{Users: room.Users, Deck: &room.Deck}, nil
	})
	return err
}

// DealerSettle 庄家分批结算：targets 为空表示结算剩下所有未结算的闲家。
// 全部结算完后房间自动进入结算状态。
func DealerSettle(code, userID string, targets []string) error {
	room, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		if room.DealerID() != userID {
			return nil, ErrNotDealer
		}
		if room.Status != entities.RoomStatusDealerAction {
			return nil, ErrWrongStatus
		}

		batch := targets
		if len(batch) == 0 {
			batch = remainingUnsettled(room)
		} else {
			for _, uid := range batch {
				if !utils.StringInSlice(uid, room.Admitted) {
					return nil, ErrUserNotFound
				}
				if room.Settled[uid] {
					return nil, ErrAlreadySettled
				}
			}
		}

		settlePlayers(room, batch)

		delta := &repository.RoomDelta{
			Users:   room.Users,
			Settled: &room.Settled,
			Results: &room.Results,
		}
		if len(remainingUnsettled(room)) == 0 {
			room.Status = entities.RoomStatusSettlement
			delta.Status = &room.Status
		}
		return delta, nil
	})
	if err != nil {
		return err
	}

	if room.Status == entities.RoomStatusSettlement {
		repository.ArchiveResults(code, room.Round, room.Results)
	}
	return nil
}

// DealerShowdown 庄家停牌开牌：结算所有未结算的闲家并进入结算状态
func DealerShowdown(code, userID string) error {
	room, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		if room.DealerID() != userID {
			return nil, ErrNotDealer
		}
		if room.Status != entities.RoomStatusDealerAction {
			return nil, ErrWrongStatus
		}

		settlePlayers(room, remainingUnsettled(room))
		room.Status = entities.RoomStatusSettlement
		return &repository.RoomDelta{
			Status:  &room.Status,
			Users:   room.Users,
			Settled: &room.Settled,
			Results: &room.Results,
		}, nil
	})
	if err != nil {
		return err
	}

	logger.Info("开牌结算", zap.String("room", code), zap.Int("round", room.Round),
		zap.Int("results", len(room.Results)))
	repository.ArchiveResults(code, room.Round, room.Results)
	return nil
}

// BackToLobby 庄家带大家回大厅：清手牌、行动和准备标记，
// 资金、成员和庄家位都保留，上一轮的结算记录清空
func BackToLobby(code, userID string) error {
	_, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		if room.DealerID() != userID {
			return nil, ErrNotDealer
		}
		if room.Status != entities.RoomStatusSettlement {
			return nil, ErrWrongStatus
		}

		for _, u := range room.Users {
			u.Hand = nil
			u.Acted = false
			u.Ready = false
		}
		room.Status = entities.RoomStatusLobby
		room.Deck = nil
		room.Admitted = nil
		room.Settled = map[string]bool{}
		room.Results = nil

		return &repository.RoomDelta{
			Status:   &room.Status,
			Users:    room.Users,
			Deck:     &room.Deck,
			Admitted: &room.Admitted,
			Settled:  &room.Settled,
			Results:  &room.Results,
		}, nil
	})
	return err
}
