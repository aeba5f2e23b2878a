package mdevent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tourshop/common/model"
	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/infra/mq/kafka"
	"tourshop/internal/app/infra/persistence/redis"
	"tourshop/internal/app/pkg/logger"
)

// Publisher 订单事件发布接口
type Publisher interface {
	Publish(ctx context.Context, event *model.OrderEvent) error
}

// DefaultPublishTimeout 单次发布的时间上限
const DefaultPublishTimeout = 3 * time.Second

// EventModule 事件模块
// 订单变更后广播生命周期事件；发布失败或超时只记录 WARN，不影响业务结果
type EventModule struct {
	publisher Publisher
	logger    logger.Logger
	timeout   time.Duration
}

// NewEventModule 创建事件模块
func NewEventModule(publisher Publisher, log logger.Logger) *EventModule {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &EventModule{publisher: publisher, logger: log, timeout: DefaultPublishTimeout}
}

// WithTimeout 设置单次发布的时间上限
func (m *EventModule) WithTimeout(d time.Duration) *EventModule {
	if d > 0 {
		m.timeout = d
	}
	return m
}

// NewOrderEvent 由订单快照构造事件
func NewOrderEvent(eventType string, order *etorder.Order) *model.OrderEvent {
	return &model.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OwnerUserID: order.OwnerUserID,
		Status:      string(order.Status),
		Total:       order.Total.StringFixed(2),
		OccurredAt:  time.Now().UnixMilli(),
	}
}

// Publish 发布订单事件
// 数据库变更已提交，发布不随请求取消，最长等待 timeout
func (m *EventModule) Publish(ctx context.Context, eventType string, order *etorder.Order) {
	event := NewOrderEvent(eventType, order)
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()
	if err := m.publisher.Publish(pubCtx, event); err != nil {
		m.logger.WarnContext(ctx, "Failed to publish order event",
			"type", eventType,
			"order_id", order.ID,
			"error", err,
		)
	}
}

// RedisPublisher 通过 Redis Pub/Sub 广播事件
type RedisPublisher struct {
	client  *redis.PubSubClient
	channel string
}

// NewRedisPublisher 创建 Redis 事件发布器
func NewRedisPublisher(client *redis.PubSubClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish 实现 Publisher
func (p *RedisPublisher) Publish(ctx context.Context, event *model.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}
	if _, err := p.client.Publish(ctx, p.channel, payload); err != nil {
		return fmt.Errorf("publish to redis failed: %w", err)
	}
	return nil
}

// KafkaPublisher 写入 Kafka topic，key 为订单号保证同一订单有序
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher 创建 Kafka 事件发布器
func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// Publish 实现 Publisher
func (p *KafkaPublisher) Publish(ctx context.Context, event *model.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}
	headers := map[string]string{
		"event_type": event.Type,
		"version":    model.OrderEventVersion,
	}
	return p.producer.Produce(ctx, []byte(event.OrderNumber), payload, headers)
}

// NopPublisher 不发布任何事件（events.driver=none）
type NopPublisher struct{}

// Publish 实现 Publisher
func (NopPublisher) Publish(context.Context, *model.OrderEvent) error { return nil }
