package service

import (
	"strings"
	"time"

	"pokdeng/dto"
	"pokdeng/entities"
	"pokdeng/repository"
	"pokdeng/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store 房间存储，main 里注入 redis 实现，测试里换成内存实现
var Store repository.RoomStore

var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}
}

// 乐观补丁的重试次数：冲突了重读一次再试，再失败就把冲突抛给调用方
const patchAttempts = 2

// mutateRoom 读-改-写一个房间：fn 在最新快照上做决策并直接改快照，
// 返回要提交的补丁；返回 nil 补丁表示无需写入。
// 版本冲突时整体重读重试，绝不覆盖别人的写入。
func mutateRoom(code string, fn func(room *entities.Room) (*repository.RoomDelta, error)) (*entities.Room, error) {
	for i := 0; i < patchAttempts; i++ {
		room, err := Store.GetRoom(code)
		if err != nil {
			return nil, err
		}
		if room == nil {
			return nil, ErrRoomNotFound
		}

		delta, err := fn(room)
		if err != nil {
			return nil, err
		}
		if delta == nil {
			return room, nil
		}

		ok, err := Store.PatchRoom(room, delta)
		if err != nil {
			return nil, err
		}
		if ok {
			ws.BroadcastRoom(room)
			return room, nil
		}
		logger.Info("房间补丁冲突，重试", zap.String("room", code), zap.Int("attempt", i+1))
	}
	return nil, ErrConflict
}

// CreateRoom 创建房间，建房者自动坐庄
func CreateRoom(params dto.CreateRoomRequest) (string, error) {
	// 生成唯一房间号（6位，好念好输）
	uuidStr := uuid.New().String()
	code := strings.ToUpper(strings.ReplaceAll(uuidStr, "-", "")[:6])

	name := params.Name
	if name == "" {
		name = "玩家-" + shortID(params.UserID)
	}
	room := entities.NewRoom(code, params.UserID, name, entities.Settings{
		MaxPlayers:       params.MaxPlayers,
		MinBet:           params.MinBet,
		StartingBankroll: params.StartingBankroll,
	})
	if err := Store.SaveRoom(room); err != nil {
		return "", err
	}

	ws.RegisterRoom(code)
	logger.Info("房间创建成功", zap.String("room", code), zap.String("owner", params.UserID))
	return code, nil
}

// JoinRoom 加入房间，返回实际分配的角色。
// 想坐庄但庄家位已占时自动降级为闲家；已在房间里的视为重连，只刷新昵称和心跳。
func JoinRoom(params dto.JoinRoomRequest) (string, error) {
	role := entities.RolePlayer

	_, err := mutateRoom(params.RoomCode, func(room *entities.Room) (*repository.RoomDelta, error) {
		now := time.Now().Unix()

		if u, ok := room.Users[params.UserID]; ok {
			// 重连
			role = u.Role
			if params.Name != "" {
				u.Name = params.Name
			}
			u.LastSeen = now
			return &repository.RoomDelta{Users: room.Users}, nil
		}

		role = entities.RolePlayer
		if params.Role == entities.RoleDealer && room.DealerID() == "" {
			role = entities.RoleDealer
		}
		if role == entities.RolePlayer && len(room.Order) >= room.Settings.MaxPlayers {
			return nil, ErrRoomFull
		}

		name := params.Name
		if name == "" {
			name = "玩家-" + shortID(params.UserID)
		}
		room.Users[params.UserID] = &entities.User{
			ID:       params.UserID,
			Name:     name,
			Role:     role,
			Bankroll: room.Settings.StartingBankroll,
			Bet:      room.Settings.MinBet,
			LastSeen: now,
		}

		delta := &repository.RoomDelta{Users: room.Users}
		if role == entities.RolePlayer {
			room.Order = append(room.Order, params.UserID)
			delta.Order = &room.Order
		}
		return delta, nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("玩家加入房间", zap.String("room", params.RoomCode),
		zap.String("user", params.UserID), zap.String("role", role))
	return role, nil
}

// GetRoomView 拉取某个观察者视角的房间状态。
// 每次读都顺带做两件事：刷新心跳、检查"全员已行动"的自动推进条件——
// 状态推进只发生在某个客户端的读写上，没有后台线程。
func GetRoomView(code, viewerID string) (*dto.RoomView, error) {
	room, err := Store.GetRoom(code)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	viewer, ok := room.Users[viewerID]
	if !ok {
		return nil, ErrUserNotFound
	}

	now := time.Now().Unix()

	// 心跳刷新：5秒内刷新过就不写，省掉无谓的版本递增；
	// 冲突说明有真正的动作在写，心跳下次轮询再补
	if now-viewer.LastSeen >= 5 {
		viewer.LastSeen = now
		if ok, err := Store.PatchRoom(room, &repository.RoomDelta{Users: room.Users}); err == nil && ok {
			room.Version++
		}
	}

	// 自动推进：全部参与闲家已行动 → 进入庄家阶段。
	// 任何一个轮询方观察到条件成立都可以替庄家提交这次转移。
	if room.Status == entities.RoomStatusPlayerActions && room.AllPlayersActed() {
		status := entities.RoomStatusDealerAction
		if ok, err := Store.PatchRoom(room, &repository.RoomDelta{Status: &status}); err == nil && ok {
			room.Status = status
			room.Version++
			ws.BroadcastRoom(room)
		}
	}

	view := dto.BuildRoomView(room, viewerID)
	return &view, nil
}

// GetRoomList 房间概要列表
func GetRoomList() ([]entities.RoomInfo, error) {
	return Store.ListRooms()
}

// SetReady 大厅里闲家切换准备状态
func SetReady(code, userID string, ready bool) error {
	_, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		if room.Status != entities.RoomStatusLobby {
			return nil, ErrWrongStatus
		}
		u, ok := room.Users[userID]
		if !ok {
			return nil, ErrUserNotFound
		}
		if u.Role != entities.RolePlayer {
			return nil, ErrNotPlayer
		}
		if u.Ready == ready {
			return nil, nil // 幂等，不写
		}
		u.Ready = ready
		u.LastSeen = time.Now().Unix()
		return &repository.RoomDelta{Users: room.Users}, nil
	})
	return err
}

// SetBet 大厅里闲家调整下注，不能低于最低注
func SetBet(code, userID string, bet int) error {
	_, err := mutateRoom(code, func(room *entities.Room) (*repository.RoomDelta, error) {
		if room.Status != entities.RoomStatusLobby {
			return nil, ErrWrongStatus
		}
		u, ok := room.Users[userID]
		if !ok {
			return nil, ErrUserNotFound
		}
		if u.Role != entities.RolePlayer {
			return nil, ErrNotPlayer
		}
		if bet < room.Settings.MinBet {
			return nil, ErrBetTooSmall
		}
		if u.Bet == bet {
			return nil, nil
		}
		u.Bet = bet
		return &repository.RoomDelta{Users: room.Users}, nil
	})
	return err
}

func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}
