package rabbitmq

import (
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/jacklaaa89/go-amqp-channel/internal/frame"
)

func TestAmqpError_Code(t *testing.T) {
	assert.Equal(t, 1, (&amqpError{err: &amqp091.Error{Code: 1}}).Code())
}

func TestAmqpError_FromServer(t *testing.T) {
	assert.True(t, (&amqpError{err: &amqp091.Error{Server: true}}).FromServer())
}

func TestAmqpError_Reason(t *testing.T) {
	assert.Equal(t, "unexpected error", (&amqpError{err: &amqp091.Error{Reason: "unexpected error"}}).Reason())
}

func TestAmqpError_Recover(t *testing.T) {
	assert.False(t, (&amqpError{err: &amqp091.Error{Recover: false}}).Recover())
}

func TestWrapError_Nil(t *testing.T) {
	assert.Nil(t, wrapError(nil))
}

func TestWrapError_Unwrap(t *testing.T) {
	err := wrapError(amqp091.ErrClosed)

	var target *amqp091.Error
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, amqp091.ChannelError, target.Code)
	assert.ErrorIs(t, err, amqp091.ErrClosed)
}

func TestCloseError(t *testing.T) {
	tt := []struct {
		Name    string
		Code    uint16
		Recover bool
	}{
		{"NotFound", amqp091.NotFound, true},
		{"PreconditionFailed", amqp091.PreconditionFailed, true},
		{"CommandInvalid", amqp091.CommandInvalid, false},
		{"NotImplemented", amqp091.NotImplemented, false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			err := closeError(&frame.ChannelClose{ReplyCode: tc.Code, ReplyText: "reason"})
			assert.Equal(t, int(tc.Code), err.Code())
			assert.Equal(t, "reason", err.Reason())
			assert.True(t, err.FromServer())
			assert.Equal(t, tc.Recover, err.Recover())
			assert.Contains(t, err.Error(), "reason")
		})
	}
}
