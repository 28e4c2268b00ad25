package repository

import (
	"encoding/json"
	"sync"
	"time"

	"pokdeng/entities"
)

// MemoryRoomStore 内存版房间存储，语义和 redis 实现一致，测试用。
// 内部存 JSON 字节，读写都走序列化，保证拿到的是快照而不是共享指针。
type MemoryRoomStore struct {
	mu    sync.Mutex
	rooms map[string][]byte
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{rooms: map[string][]byte{}}
}

func (s *MemoryRoomStore) GetRoom(code string) (*entities.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.rooms[code]
	if !ok {
		return nil, nil
	}
	var room entities.Room
	if err := json.Unmarshal(data, &room); err != nil {
		// 与 redis 实现一致：损坏按不存在处理
		return nil, nil
	}
	return &room, nil
}

func (s *MemoryRoomStore) SaveRoom(room *entities.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room.Version++
	room.UpdatedAt = time.Now().Unix()
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	s.rooms[room.Code] = data
	return nil
}

func (s *MemoryRoomStore) PatchRoom(snapshot *entities.Room, delta *RoomDelta) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.rooms[snapshot.Code]
	if !ok {
		return false, nil
	}
	var current entities.Room
	if err := json.Unmarshal(data, &current); err != nil {
		return false, nil
	}
	if current.Version != snapshot.Version {
		return false, nil
	}

	delta.Apply(&current)
	current.Version++
	current.UpdatedAt = time.Now().Unix()

	out, err := json.Marshal(&current)
	if err != nil {
		return false, err
	}
	s.rooms[snapshot.Code] = out
	return true, nil
}

func (s *MemoryRoomStore) ListRooms() ([]entities.RoomInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rooms []entities.RoomInfo
	for _, data := range s.rooms {
		var room entities.Room
		if err := json.Unmarshal(data, &room); err != nil {
			continue
		}
		rooms = append(rooms, room.Info())
	}
	return rooms, nil
}

// Corrupt 人为写坏某个房间的数据，用于测试损坏降级路径
func (s *MemoryRoomStore) Corrupt(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[code] = []byte("{not json")
}
