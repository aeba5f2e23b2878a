package mdnotify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourshop/common/model"
	"tourshop/internal/app/pkg/logger"
)

type publishedJob struct {
	queue string
	data  []byte
	ttl   uint32
	tries uint16
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []publishedJob
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, queue string, data []byte, ttl uint32, tries uint16, _ uint32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.jobs = append(f.jobs, publishedJob{queue: queue, data: data, ttl: ttl, tries: tries})
	return "job-1", nil
}

func TestSendPublishesJob(t *testing.T) {
	pub := &fakePublisher{}
	m := NewNotifyModule(pub, "notifications", logger.NewNop())

	ctx := logger.WithRequestID(context.Background(), "req-42")
	err := m.Send(ctx, "ana@example.com", model.NotificationKindOrderCreated, map[string]string{"order_number": "n-1"})
	require.NoError(t, err)

	require.Len(t, pub.jobs, 1)
	assert.Equal(t, "notifications", pub.jobs[0].queue)
	assert.EqualValues(t, jobTTL, pub.jobs[0].ttl)
	assert.EqualValues(t, jobTries, pub.jobs[0].tries)

	var job model.NotificationJob
	require.NoError(t, json.Unmarshal(pub.jobs[0].data, &job))
	assert.Equal(t, "req-42", job.RequestID)
	assert.Equal(t, model.NotificationKindOrderCreated, job.Kind)
	assert.Equal(t, "ana@example.com", job.To)
	assert.Equal(t, "n-1", job.Context["order_number"])
}

func TestSendRequiresRecipient(t *testing.T) {
	pub := &fakePublisher{}
	m := NewNotifyModule(pub, "notifications", logger.NewNop())

	err := m.Send(context.Background(), "", model.NotificationKindOrderCreatedOps, nil)
	assert.Error(t, err)
	assert.Empty(t, pub.jobs)
}

func TestSendAsyncSurvivesCanceledRequest(t *testing.T) {
	pub := &fakePublisher{}
	m := NewNotifyModule(pub, "notifications", logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.SendAsync(ctx, "ana@example.com", model.NotificationKindStatusChanged, nil)
	m.Wait()

	assert.Len(t, pub.jobs, 1)
}

func TestSendAsyncSwallowsErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("queue down")}
	m := NewNotifyModule(pub, "notifications", logger.NewNop())

	m.SendAsync(context.Background(), "ana@example.com", model.NotificationKindStatusChanged, nil)
	m.Wait()

	assert.Empty(t, pub.jobs)
}
