package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// DeliveryTimeout 单条记录的投递上限，超时后记录失败而不是无限重试
const DeliveryTimeout = 5 * time.Second

// Producer Kafka 生产者封装
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer 创建生产者
func NewProducer(brokers []string, topic string) (*Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10*time.Millisecond),
		kgo.RecordDeliveryTimeout(DeliveryTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &Producer{client: client, topic: topic}, nil
}

// Produce 同步写入一条记录
func (p *Producer) Produce(ctx context.Context, key, value []byte, headers map[string]string) error {
	record := &kgo.Record{
		Topic:     p.topic,
		Key:       key,
		Value:     value,
		Timestamp: time.Now(),
	}
	for k, v := range headers {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka produce failed: %w", err)
	}
	return nil
}

// Close 刷新并关闭连接
func (p *Producer) Close() {
	p.client.Close()
}
