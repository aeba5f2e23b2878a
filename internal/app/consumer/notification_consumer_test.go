package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourshop/common/model"
	"tourshop/internal/app/domains/services/svnotify"
	"tourshop/internal/app/infra/mq/lmstfy"
	"tourshop/internal/app/pkg/logger"
)

type fakeQueue struct {
	mu       sync.Mutex
	messages []*lmstfy.Message
	acked    []string
}

func (q *fakeQueue) Consume(context.Context, string, uint32, uint32) (*lmstfy.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return nil, nil
	}
	msg := q.messages[0]
	q.messages = q.messages[1:]
	return msg, nil
}

func (q *fakeQueue) Ack(_ context.Context, _ string, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, jobID)
	return nil
}

func (q *fakeQueue) push(id string, data []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, &lmstfy.Message{JobID: id, Data: data})
}

type fakeDeliverer struct {
	mu        sync.Mutex
	delivered []*model.NotificationJob
	err       error
}

func (d *fakeDeliverer) Deliver(_ context.Context, job *model.NotificationJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.delivered = append(d.delivered, job)
	return nil
}

func jobBytes(t *testing.T, kind string) []byte {
	t.Helper()
	data, err := json.Marshal(model.NotificationJob{RequestID: "r", Kind: kind, To: "ana@example.com"})
	require.NoError(t, err)
	return data
}

func newConsumer(q *fakeQueue, d *fakeDeliverer) *NotificationConsumer {
	return NewNotificationConsumer(q, d, &Config{QueueName: "notifications", Timeout: 1, TTR: 30}, logger.NewNop())
}

func TestConsumeOneAcksDeliveredJob(t *testing.T) {
	q, d := &fakeQueue{}, &fakeDeliverer{}
	q.push("job-1", jobBytes(t, model.NotificationKindOrderCreated))

	got, err := newConsumer(q, d).ConsumeOne(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, []string{"job-1"}, q.acked)
	require.Len(t, d.delivered, 1)
	assert.Equal(t, "ana@example.com", d.delivered[0].To)
}

func TestConsumeOneEmptyQueue(t *testing.T) {
	got, err := newConsumer(&fakeQueue{}, &fakeDeliverer{}).ConsumeOne(context.Background())
	assert.NoError(t, err)
	assert.False(t, got)
}

func TestConsumeOneDropsMalformedJobs(t *testing.T) {
	q, d := &fakeQueue{}, &fakeDeliverer{}
	q.push("bad-json", []byte("{not json"))
	q.push("no-recipient", []byte(`{"kind":"order_created"}`))
	c := newConsumer(q, d)

	for i := 0; i < 2; i++ {
		_, err := c.ConsumeOne(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"bad-json", "no-recipient"}, q.acked)
	assert.Empty(t, d.delivered)
}

func TestConsumeOneUnknownKindIsAcked(t *testing.T) {
	q := &fakeQueue{}
	d := &fakeDeliverer{err: svnotify.ErrUnknownKind}
	q.push("job-sms", jobBytes(t, "sms"))

	_, err := newConsumer(q, d).ConsumeOne(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"job-sms"}, q.acked)
}

func TestConsumeOneSendFailureIsNotAcked(t *testing.T) {
	q := &fakeQueue{}
	d := &fakeDeliverer{err: errors.New("smtp down")}
	q.push("job-1", jobBytes(t, model.NotificationKindStatusChanged))

	_, err := newConsumer(q, d).ConsumeOne(context.Background())
	assert.Error(t, err)
	assert.Empty(t, q.acked)
}

func TestStartStopsOnShutdown(t *testing.T) {
	q, d := &fakeQueue{}, &fakeDeliverer{}
	q.push("job-1", jobBytes(t, model.NotificationKindRegistration))
	c := newConsumer(q, d)

	done := make(chan struct{})
	go func() {
		c.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		return len(q.acked) == 1
	}, 2*time.Second, 10*time.Millisecond)

	c.Shutdown()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}
