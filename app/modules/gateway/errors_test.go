package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{400, KindValidation},
		{401, KindAuthentication},
		{403, KindAuthorization},
		{404, KindNotFound},
		{409, KindValidation},
		{422, KindValidation},
		{429, KindTransient},
		{500, KindTransient},
		{503, KindTransient},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromStatus(tt.status))
		})
	}
}

func TestError_IsSentinel(t *testing.T) {
	err := fmt.Errorf("fetch tasks: %w", NewError("admin.ListTasks", 401, "Session expired"))

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrForbidden)
	assert.True(t, IsAuthFailure(err))

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindAuthentication, kind)
}

func TestError_MessageVerbatim(t *testing.T) {
	err := NewError("team.SubmitTask", 400, "Task already submitted")
	assert.Equal(t, "Task already submitted", err.Error())
}

func TestTransient_WrapsCause(t *testing.T) {
	err := Transient("admin.Leaderboard", context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrTransient)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "admin.Leaderboard")
	assert.False(t, IsAuthFailure(err))
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}
