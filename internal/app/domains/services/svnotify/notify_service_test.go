package svnotify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourshop/common/model"
	"tourshop/internal/app/infra/mail"
	"tourshop/internal/app/pkg/logger"
)

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestEveryKindHasTemplate(t *testing.T) {
	svc, err := NewNotifyService(&fakeMailer{}, logger.NewNop())
	require.NoError(t, err)

	for _, kind := range []string{
		model.NotificationKindRegistration,
		model.NotificationKindOrderCreated,
		model.NotificationKindOrderCreatedOps,
		model.NotificationKindStatusChanged,
	} {
		msg, err := svc.Render(&model.NotificationJob{Kind: kind, To: "x@example.com"})
		require.NoError(t, err, kind)
		assert.NotEmpty(t, msg.Subject, kind)
		assert.NotContains(t, msg.Body, "<no value>", kind)
	}
}

func TestDeliverStatusChanged(t *testing.T) {
	mailer := &fakeMailer{}
	svc, err := NewNotifyService(mailer, logger.NewNop())
	require.NoError(t, err)

	job := &model.NotificationJob{
		Kind: model.NotificationKindStatusChanged,
		To:   "ana@example.com",
		Context: map[string]string{
			"order_number":  "a1b2",
			"customer_name": "Ana",
			"status":        "verificado",
			"total":         "170000.00",
		},
	}
	require.NoError(t, svc.Deliver(context.Background(), job))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@example.com", mailer.sent[0].To)
	assert.Equal(t, "Tu pedido a1b2 está verificado", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Body, "$170000.00")
}

func TestDeliverErrors(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp timeout")}
	svc, err := NewNotifyService(mailer, logger.NewNop())
	require.NoError(t, err)

	err = svc.Deliver(context.Background(), &model.NotificationJob{Kind: "sms", To: "x@example.com"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	err = svc.Deliver(context.Background(), &model.NotificationJob{Kind: model.NotificationKindOrderCreated, To: "x@example.com"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownKind)
}
