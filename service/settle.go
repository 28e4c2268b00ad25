package service

import (
	"pokdeng/entities"
)

// settleOne 按规则裁定一名闲家对庄家的胜负：
// 1. 任何一方有博先比博：都有博比点数，只闲家博闲家赢，只庄家博闲家输
// 2. 都没博直接比点数，点数相同为平
// 3. 赢的金额 = 注 × 赢方自己的倍数：闲家赢用闲家倍数，庄家赢用庄家倍数
func settleOne(player *entities.User, dealer *entities.User) entities.SettleResult {
	pPts := player.Hand.Points()
	dPts := dealer.Hand.Points()
	pPok, _ := player.Hand.IsPok()
	dPok, _ := dealer.Hand.IsPok()
	pMult, pLabel := player.Hand.DengMultiplier()
	dMult, dLabel := dealer.Hand.DengMultiplier()

	bet := player.Bet
	outcome := entities.OutcomePush
	payout := 0

	switch {
	case pPok && dPok:
		if pPts > dPts {
			outcome, payout = entities.OutcomeWin, bet*pMult
		} else if pPts < dPts {
			outcome, payout = entities.OutcomeLose, -bet*dMult
		}
	case pPok:
		outcome, payout = entities.OutcomeWin, bet*pMult
	case dPok:
		outcome, payout = entities.OutcomeLose, -bet*dMult
	default:
		if pPts > dPts {
			outcome, payout = entities.OutcomeWin, bet*pMult
		} else if pPts < dPts {
			outcome, payout = entities.OutcomeLose, -bet*dMult
		}
	}

	return entities.SettleResult{
		PlayerID:    player.ID,
		PlayerName:  player.Name,
		Outcome:     outcome,
		Payout:      payout,
		PlayerPts:   pPts,
		DealerPts:   dPts,
		PlayerLabel: pLabel,
		DealerLabel: dLabel,
	}
}

// settlePlayers 结算指定的闲家，资金按零和转移（闲家 +payout，庄家 -payout）。
// 已结算过的直接跳过，保证一轮里每人只结算一次。返回本次新产生的结果。
func settlePlayers(room *entities.Room, targets []string) []entities.SettleResult {
	dealerID := room.DealerID()
	if dealerID == "" {
		return nil
	}
	dealer := room.Users[dealerID]
	if room.Settled == nil {
		room.Settled = map[string]bool{}
	}

	var produced []entities.SettleResult
	for _, uid := range targets {
		if room.Settled[uid] {
			continue
		}
		u, ok := room.Users[uid]
		if !ok || u.Role != entities.RolePlayer {
			continue
		}
		res := settleOne(u, dealer)
		u.Bankroll += res.Payout
		dealer.Bankroll -= res.Payout
		room.Settled[uid] = true
		room.Results = append(room.Results, res)
		produced = append(produced, res)
	}
	return produced
}

// remainingUnsettled 本轮参与但尚未结算的闲家
func remainingUnsettled(room *entities.Room) []string {
	var rest []string
	for _, uid := range room.Admitted {
		if !room.Settled[uid] {
			rest = append(rest, uid)
		}
	}
	return rest
}
