package service

import "errors"

// 实体缺失类错误（接口层映射为 404）
var (
	ErrRoomNotFound = errors.New("房间不存在")
	ErrUserNotFound = errors.New("玩家不在该房间内")
)

// 并发冲突：乐观补丁重试耗尽（接口层映射为 409，提示稍后重试）
var ErrConflict = errors.New("房间状态刚被别人改过，请重试")

// 前置条件类错误：非法动作直接拒绝，不改任何状态（接口层映射为 400）
var (
	ErrNotDealer      = errors.New("只有庄家能执行该操作")
	ErrNotPlayer      = errors.New("只有闲家能执行该操作")
	ErrWrongStatus    = errors.New("当前房间状态不允许该操作")
	ErrNoReadyPlayers = errors.New("没有已准备的闲家，无法开局")
	ErrRoomFull       = errors.New("房间已满")
	ErrDealerTaken    = errors.New("庄家位已被占用")
	ErrNotInRound     = errors.New("本轮未参与，等下一轮开始前先准备")
	ErrAlreadyActed   = errors.New("本轮已经行动过了")
	ErrCannotHit      = errors.New("当前手牌不能要牌")
	ErrCannotDraw     = errors.New("庄家当前不满足补牌条件")
	ErrBetTooSmall    = errors.New("下注不能低于最低注")
	ErrAlreadySettled = errors.New("该闲家本轮已结算")
	ErrDeckEmpty      = errors.New("牌堆已空")
)

var preconditionErrs = []error{
	ErrNotDealer, ErrNotPlayer, ErrWrongStatus, ErrNoReadyPlayers,
	ErrRoomFull, ErrDealerTaken, ErrNotInRound, ErrAlreadyActed, ErrCannotHit,
	ErrCannotDraw, ErrBetTooSmall, ErrAlreadySettled, ErrDeckEmpty,
}

// IsPrecondition 是否属于"动作被拒绝"一类的错误
func IsPrecondition(err error) bool {
	for _, e := range preconditionErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
