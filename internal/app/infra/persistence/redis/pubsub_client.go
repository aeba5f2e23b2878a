package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PubSubClient Redis Pub/Sub 客户端封装
type PubSubClient struct {
	rdb *redis.Client
}

// NewPubSubClient 创建 Pub/Sub 客户端，支持密码认证
func NewPubSubClient(ctx context.Context, addr, password string, db int) (*PubSubClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSubClient{rdb: rdb}, nil
}

// Publish 向指定 channel 发布消息，返回收到消息的订阅者数量
func (c *PubSubClient) Publish(ctx context.Context, channel string, message []byte) (int64, error) {
	return c.rdb.Publish(ctx, channel, message).Result()
}

// Subscribe 订阅频道（下游消费者与测试使用）
func (c *PubSubClient) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return c.rdb.Subscribe(ctx, channel)
}

// Close 关闭连接
func (c *PubSubClient) Close() error {
	return c.rdb.Close()
}
