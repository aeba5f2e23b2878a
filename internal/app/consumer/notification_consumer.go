package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"tourshop/common/model"
	"tourshop/internal/app/domains/services/svnotify"
	"tourshop/internal/app/infra/mq/lmstfy"
	"tourshop/internal/app/pkg/logger"
)

// JobQueue 任务队列接口（lmstfy.Client 实现）
type JobQueue interface {
	Consume(ctx context.Context, queue string, ttr, timeout uint32) (*lmstfy.Message, error)
	Ack(ctx context.Context, queue, jobID string) error
}

// Deliverer 通知投递接口（svnotify.NotifyService 实现）
type Deliverer interface {
	Deliver(ctx context.Context, job *model.NotificationJob) error
}

// NotificationConsumer 通知消费者
// 职责：
// 1. 从 lmstfy 队列消费通知任务
// 2. 解析消息并调用 NotifyService 发信
// 3. 确认消息（ACK）；发信失败不 ACK，由 TTR 到期后重投
type NotificationConsumer struct {
	queue     JobQueue
	deliverer Deliverer
	queueName string
	logger    logger.Logger

	// 消费配置
	timeout      uint32 // 拉取消息超时（秒）
	ttr          uint32 // Time-To-Run（秒）
	workers      int
	pollInterval time.Duration

	closing *atomic.Bool
	wg      sync.WaitGroup
}

// Config 消费者配置
type Config struct {
	QueueName    string        // 队列名称
	Timeout      int           // 拉取消息超时（秒）
	TTR          int           // Time-To-Run（秒）
	Workers      int           // 并发消费协程数
	PollInterval time.Duration // 出错后的退避间隔
}

// NewNotificationConsumer 创建通知消费者实例
func NewNotificationConsumer(queue JobQueue, deliverer Deliverer, cfg *Config, log logger.Logger) *NotificationConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = time.Second
	}
	return &NotificationConsumer{
		queue:        queue,
		deliverer:    deliverer,
		queueName:    cfg.QueueName,
		timeout:      uint32(cfg.Timeout),
		ttr:          uint32(cfg.TTR),
		workers:      workers,
		pollInterval: poll,
		closing:      atomic.NewBool(false),
		logger:       log,
	}
}

// Start 启动消费循环，阻塞直到 ctx 取消或 Shutdown
func (c *NotificationConsumer) Start(ctx context.Context) {
	c.logger.Info("Notification consumer started",
		"queue", c.queueName,
		"workers", c.workers,
		"timeout", c.timeout,
		"ttr", c.ttr,
	)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.loop(ctx)
		}()
	}
	c.wg.Wait()

	c.logger.Info("Notification consumer stopped")
}

// Shutdown 通知所有消费协程在当前消息处理完成后退出
func (c *NotificationConsumer) Shutdown() {
	if c.closing.CAS(false, true) {
		c.logger.Info("Notification consumer closing")
	}
}

func (c *NotificationConsumer) loop(ctx context.Context) {
	for !c.closing.Load() {
		if ctx.Err() != nil {
			return
		}
		if _, err := c.ConsumeOne(ctx); err != nil {
			c.logger.Error("Failed to consume message", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.pollInterval):
			}
		}
	}
}

// ConsumeOne 消费一条消息，返回是否拿到消息
func (c *NotificationConsumer) ConsumeOne(ctx context.Context) (bool, error) {
	// 1. 从队列拉取消息
	msg, err := c.queue.Consume(ctx, c.queueName, c.ttr, c.timeout)
	if err != nil {
		return false, fmt.Errorf("consume message failed: %w", err)
	}
	if msg == nil {
		return false, nil
	}

	// 2. 解析通知任务
	job, err := parseJob(msg.Data)
	if err != nil {
		c.logger.Error("Failed to parse message", "job_id", msg.JobID, "error", err)
		// 解析失败，直接 ACK（避免死循环）
		return true, c.ack(ctx, msg.JobID)
	}

	// 3. 发信
	jobCtx := logger.WithRequestID(ctx, job.RequestID)
	if err := c.deliverer.Deliver(jobCtx, job); err != nil {
		if errors.Is(err, svnotify.ErrUnknownKind) {
			c.logger.ErrorContext(jobCtx, "Dropping notification with unknown kind", "job_id", msg.JobID, "kind", job.Kind)
			return true, c.ack(ctx, msg.JobID)
		}
		c.logger.WarnContext(jobCtx, "Failed to deliver notification",
			"job_id", msg.JobID,
			"kind", job.Kind,
			"error", err,
		)
		// 发送失败，不 ACK（让 lmstfy TTR 机制重试）
		return true, err
	}

	// 4. 确认消息
	return true, c.ack(ctx, msg.JobID)
}

func (c *NotificationConsumer) ack(ctx context.Context, jobID string) error {
	if err := c.queue.Ack(ctx, c.queueName, jobID); err != nil {
		return fmt.Errorf("ack job %s failed: %w", jobID, err)
	}
	return nil
}

// parseJob 解析消息数据并校验必填字段
func parseJob(data []byte) (*model.NotificationJob, error) {
	var job model.NotificationJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal notification job failed: %w", err)
	}
	if job.Kind == "" {
		return nil, errors.New("kind is required")
	}
	if job.To == "" {
		return nil, errors.New("to is required")
	}
	return &job, nil
}
