package notify

import (
	"errors"
	"fmt"
	"testing"

	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "server message wins",
			err:  &xerrors.TransportError{StatusCode: 500, Message: "report store unavailable"},
			want: "report store unavailable",
		},
		{
			name: "wrapped transport error still surfaces its message",
			err:  fmt.Errorf("fetch page: %w", &xerrors.TransportError{StatusCode: 400, Message: "bad filter"}),
			want: "bad filter",
		},
		{
			name: "session expiry gets the canonical message",
			err:  &xerrors.TransportError{StatusCode: 401, Err: xerrors.ErrSessionExpired},
			want: "Your session has expired. Please login again.",
		},
		{
			name: "plain error falls back to its own text",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, ErrorMessage(test.err))
		})
	}
}

func TestRecorderCollectsNotices(t *testing.T) {
	rec := NewRecorder()
	rec.Notify(KindInfo, "loaded")
	rec.Notify(KindError, "failed")

	notices := rec.Notices()
	assert.Len(t, notices, 2)
	assert.Equal(t, KindInfo, notices[0].Kind)
	assert.Equal(t, "failed", notices[1].Message)
}
