package mdnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tourshop/common/model"
	"tourshop/internal/app/pkg/logger"
)

const (
	jobTTL      = 24 * 60 * 60 // 任务存活 24 小时
	jobTries    = 3
	asyncBudget = 10 * time.Second
)

// JobPublisher 任务队列发布接口（lmstfy.Client 实现）
type JobPublisher interface {
	Publish(ctx context.Context, queue string, data []byte, ttl uint32, tries uint16, delay uint32) (string, error)
}

// NotifyModule 通知模块
// 职责：
// 1. 构造标准化 NotificationJob 消息
// 2. 投递到 notifier 消费的队列，真正的邮件发送在 notifier 进程
type NotifyModule struct {
	publisher JobPublisher
	queueName string
	logger    logger.Logger
	wg        sync.WaitGroup
}

// NewNotifyModule 创建通知模块实例
func NewNotifyModule(publisher JobPublisher, queueName string, log logger.Logger) *NotifyModule {
	return &NotifyModule{
		publisher: publisher,
		queueName: queueName,
		logger:    log,
	}
}

// Send 同步入队一条通知，返回入队错误
func (m *NotifyModule) Send(ctx context.Context, to, kind string, data map[string]string) error {
	if to == "" {
		return fmt.Errorf("notification %s has no recipient", kind)
	}

	requestID := logger.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	job := model.NotificationJob{
		RequestID: requestID,
		Kind:      kind,
		CreatedAt: time.Now().Unix(),
		To:        to,
		Context:   data,
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification job failed: %w", err)
	}

	jobID, err := m.publisher.Publish(ctx, m.queueName, payload, jobTTL, jobTries, 0)
	if err != nil {
		return fmt.Errorf("enqueue notification failed: %w", err)
	}

	m.logger.DebugContext(ctx, "Notification queued",
		"kind", kind,
		"to", to,
		"job_id", jobID,
	)
	return nil
}

// SendAsync 后台入队，失败只记录 WARN，不影响调用方
// 使用脱离请求取消的 Context，避免 HTTP 请求结束后任务被丢弃
func (m *NotifyModule) SendAsync(ctx context.Context, to, kind string, data map[string]string) {
	bg := context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		sendCtx, cancel := context.WithTimeout(bg, asyncBudget)
		defer cancel()

		if err := m.Send(sendCtx, to, kind, data); err != nil {
			m.logger.WarnContext(sendCtx, "Async notification failed",
				"kind", kind,
				"to", to,
				"error", err,
			)
		}
	}()
}

// Wait 等待所有后台通知结束（优雅退出时调用）
func (m *NotifyModule) Wait() {
	m.wg.Wait()
}
