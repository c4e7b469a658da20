package attr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	_, ok := RequestIDFrom(context.Background())
	assert.False(t, ok)

	ctx := WithRequestID(context.Background(), "req-1")
	id, ok := RequestIDFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
	assert.Equal(t, "req-1", RequestID(ctx).Value.String())

	generated, ok := RequestIDFrom(WithRequestID(context.Background(), ""))
	assert.True(t, ok)
	assert.Len(t, generated, 36)
}

func TestError(t *testing.T) {
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Equal(t, "", Error(nil).Value.String())
}
