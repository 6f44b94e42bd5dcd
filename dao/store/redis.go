package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nexorasim/LotayaAI/models"
)

// RedisStore 把生成记录作为 JSON 文档存进 redis。
// 单 key 写入本身是原子的；创建和终态更新是两次独立操作，
// 夹在中间的读取看到 processing 是预期行为。
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 创建 redis 存储。这里不做 Ping：
// redis 暂时不可用不应该阻止进程启动，失败留到每次请求时报。
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    24 * time.Hour,
	}
}

// Ping 探活，启动时仅用于打日志
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close 释放连接
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func recordKey(id string) string {
	return "generation:" + id
}

func (r *RedisStore) Create(ctx context.Context, rec *models.GenerationRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, recordKey(rec.GenerationID), data, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateID
	}
	return nil
}

func (r *RedisStore) UpdateTerminal(ctx context.Context, id string, upd TerminalUpdate) error {
	rec, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	rec.Status = upd.Status
	rec.Images = upd.Images
	rec.ResultURL = upd.ResultURL
	rec.Error = upd.Error

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, recordKey(id), data, r.ttl).Err()
}

func (r *RedisStore) Find(ctx context.Context, id string) (*models.GenerationRecord, error) {
	data, err := r.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec models.GenerationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
