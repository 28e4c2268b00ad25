package repository

import "pokdeng/entities"

// RoomStore 房间存储能力：按房间号读取、整体覆盖、乐观并发补丁。
// 核心逻辑只依赖这个接口，测试里用内存实现替换 redis。
type RoomStore interface {
	// GetRoom 房间不存在（或数据损坏）时返回 (nil, nil)
	GetRoom(code string) (*entities.Room, error)
	// SaveRoom 无条件覆盖写入，内部递增版本号并刷新 updatedAt
	SaveRoom(room *entities.Room) error
	// PatchRoom 只有当存储中的版本号等于 snapshot.Version 时才应用 delta，
	// 成功返回 true；版本不一致或房间不存在返回 false
	PatchRoom(snapshot *entities.Room, delta *RoomDelta) (bool, error)
	// ListRooms 房间概要列表
	ListRooms() ([]entities.RoomInfo, error)
}

// RoomDelta 浅合并补丁：非 nil 的字段整体替换存储中的对应字段
type RoomDelta struct {
	Status   *entities.RoomStatus
	Users    map[string]*entities.User
	Order    *[]string
	Admitted *[]string
	Deck     *entities.Deck
	Settled  *map[string]bool
	Results  *[]entities.SettleResult
	Round    *int
}

// Apply 把补丁合并到房间上（不动版本号，版本号由存储层管理）
func (d *RoomDelta) Apply(room *entities.Room) {
	if d.Status != nil {
		room.Status = *d.Status
	}
	if d.Users != nil {
		room.Users = d.Users
	}
	if d.Order != nil {
		room.Order = *d.Order
	}
	if d.Admitted != nil {
		room.Admitted = *d.Admitted
	}
	if d.Deck != nil {
		room.Deck = *d.Deck
	}
	if d.Settled != nil {
		room.Settled = *d.Settled
	}
	if d.Results != nil {
		room.Results = *d.Results
	}
	if d.Round != nil {
		room.Round = *d.Round
	}
}
