package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFields(t *testing.T) {
	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), 42)

	fields := extractFields(ctx, []interface{}{"order_id", int64(7)})

	assert.Equal(t, []interface{}{"order_id", int64(7), "request_id", "req-1", "user_id", int64(42)}, fields)
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
}

func TestExtractFieldsEmptyContext(t *testing.T) {
	fields := extractFields(context.Background(), nil)
	assert.Empty(t, fields)
}

func TestNewZapLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		l, err := NewZapLogger(level)
		assert.NoError(t, err, level)
		assert.NotNil(t, l)
	}

	var _ Logger = NewNop()
}
