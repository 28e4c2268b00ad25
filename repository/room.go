package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"time"

	"pokdeng/entities"

	"github.com/go-redis/redis/v8"
	"github.com/mitchellh/mapstructure"
)

var errVersionMismatch = errors.New("版本号不一致")

// RedisRoomStore 房间存储的 redis 实现。
// 房间全量状态以 JSON 存在 room:{code}:data，
// 概要信息存在 room:{code}:info（Hash），房间号集合存在 rooms。
type RedisRoomStore struct {
	rdb *redis.Client
}

func NewRedisRoomStore(rdb *redis.Client) *RedisRoomStore {
	return &RedisRoomStore{rdb: rdb}
}

func roomDataKey(code string) string {
	return fmt.Sprintf("room:%s:data", code)
}

func roomInfoKey(code string) string {
	return fmt.Sprintf("room:%s:info", code)
}

func (s *RedisRoomStore) GetRoom(code string) (*entities.Room, error) {
	val, err := s.rdb.Get(Ctx, roomDataKey(code)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取房间[%s]失败: %w", code, err)
	}

	var room entities.Room
	if err := json.Unmarshal([]byte(val), &room); err != nil {
		// 数据损坏按不存在处理，不让整个请求挂掉
		log.Printf("❌ 房间[%s]数据损坏，按空处理: %v\n", code, err)
		return nil, nil
	}
	return &room, nil
}

func (s *RedisRoomStore) SaveRoom(room *entities.Room) error {
	room.Version++
	room.UpdatedAt = time.Now().Unix()

	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("房间[%s]序列化失败: %w", room.Code, err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(Ctx, roomDataKey(room.Code), data, 0)
	pipe.HSet(Ctx, roomInfoKey(room.Code), infoFields(room))
	pipe.SAdd(Ctx, "rooms", room.Code)
	if _, err := pipe.Exec(Ctx); err != nil {
		return fmt.Errorf("写入房间[%s]失败: %w", room.Code, err)
	}
	return nil
}

// PatchRoom 乐观并发补丁：WATCH 房间 key，版本号一致才提交。
// 锁只覆盖单次读写，调用方的决策逻辑不在锁内，冲突靠重试解决。
func (s *RedisRoomStore) PatchRoom(snapshot *entities.Room, delta *RoomDelta) (bool, error) {
	key := roomDataKey(snapshot.Code)

	err := s.rdb.Watch(Ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(Ctx, key).Result()
		if err == redis.Nil {
			return errVersionMismatch
		}
		if err != nil {
			return err
		}

		var current entities.Room
		if err := json.Unmarshal([]byte(val), &current); err != nil {
			log.Printf("❌ 房间[%s]数据损坏，补丁失败: %v\n", snapshot.Code, err)
			return errVersionMismatch
		}
		if current.Version != snapshot.Version {
			return errVersionMismatch
		}

		delta.Apply(&current)
		current.Version++
		current.UpdatedAt = time.Now().Unix()

		data, err := json.Marshal(&current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(Ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(Ctx, key, data, 0)
			pipe.HSet(Ctx, roomInfoKey(current.Code), infoFields(&current))
			return nil
		})
		return err
	}, key)

	if err == errVersionMismatch || err == redis.TxFailedErr {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("房间[%s]补丁写入失败: %w", snapshot.Code, err)
	}
	return true, nil
}

func (s *RedisRoomStore) ListRooms() ([]entities.RoomInfo, error) {
	codes, err := s.rdb.SMembers(Ctx, "rooms").Result()
	if err != nil {
		return nil, fmt.Errorf("获取房间列表失败: %w", err)
	}

	var rooms []entities.RoomInfo
	for _, code := range codes {
		data, err := s.rdb.HGetAll(Ctx, roomInfoKey(code)).Result()
		if err != nil || len(data) == 0 {
			continue
		}

		var info entities.RoomInfo
		decoderConfig := &mapstructure.DecoderConfig{
			DecodeHook: stringToIntHookFunc(),
			Result:     &info,
			TagName:    "json",
		}
		decoder, _ := mapstructure.NewDecoder(decoderConfig)
		if err := decoder.Decode(data); err != nil {
			log.Printf("❌ 房间[%s]概要解析失败: %v\n", code, err)
			continue
		}
		rooms = append(rooms, info)
	}
	return rooms, nil
}

func infoFields(room *entities.Room) map[string]interface{} {
	info := room.Info()
	return map[string]interface{}{
		"code":       info.Code,
		"status":     info.Status,
		"maxPlayers": info.MaxPlayers,
		"players":    info.Players,
	}
}

// 自定义 HookFunc，把字符串转换成 int（redis hash 的值都是字符串）
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}
