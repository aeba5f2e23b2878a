package lmstfy

import (
	"context"
	"fmt"

	"github.com/bitleak/lmstfy/client"
)

// Client Lmstfy 客户端封装
type Client struct {
	cli       *client.LmstfyClient
	namespace string
}

// Message 队列消息结构
type Message struct {
	JobID string
	Queue string
	Data  []byte
}

// NewClient 创建 Lmstfy 客户端
func NewClient(host string, port int, namespace, token string) *Client {
	return &Client{
		cli:       client.NewLmstfyClient(host, port, namespace, token),
		namespace: namespace,
	}
}

// Publish 发布消息到队列
// ttl: 消息存活时间（秒），tries: 最大投递次数，delay: 延迟时间（秒）
func (c *Client) Publish(ctx context.Context, queue string, data []byte, ttl uint32, tries uint16, delay uint32) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	jobID, err := c.cli.Publish(queue, data, ttl, tries, delay)
	if err != nil {
		return "", fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return jobID, nil
}

// Consume 从队列中消费消息，超时无消息时返回 nil
// ttr: 消息处理超时时间（秒），timeout: 等待超时时间（秒）
func (c *Client) Consume(ctx context.Context, queue string, ttr, timeout uint32) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	job, err := c.cli.Consume(queue, ttr, timeout)
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}
	if job == nil {
		return nil, nil
	}
	return &Message{
		JobID: job.ID,
		Queue: job.Queue,
		Data:  job.Data,
	}, nil
}

// Ack 确认消息已处理
func (c *Client) Ack(ctx context.Context, queue, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}
