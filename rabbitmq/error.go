package rabbitmq

import (
	"github.com/rabbitmq/amqp091-go"

	amqp "github.com/jacklaaa89/go-amqp-channel"
	"github.com/jacklaaa89/go-amqp-channel/internal/frame"
)

// ErrNoTransaction is returned when committing or rolling back a channel
// without an acknowledged transaction.
var ErrNoTransaction = &amqp091.Error{
	Code:   amqp091.PreconditionFailed,
	Reason: "no transaction in progress",
}

// amqpError represents a wrapped amqp091.Error
type amqpError struct {
	err *amqp091.Error
}

func (a *amqpError) Error() string {
	return a.err.Error()
}

// Unwrap exposes the amqp091.Error to errors.As.
func (a *amqpError) Unwrap() error {
	return a.err
}

// Code returns the AMQP error code.
func (a *amqpError) Code() int {
	return a.err.Code
}

// Reason returns the error description
func (a *amqpError) Reason() string {
	return a.err.Reason
}

// Recover whether the error is recoverable.
func (a *amqpError) Recover() bool {
	return a.err.Recover
}

// FromServer whether the close originated from the client or server.
func (a *amqpError) FromServer() bool {
	return a.err.Server
}

// wrapError converts an amqp091.Error into our generic error type.
func wrapError(err *amqp091.Error) amqp.Error {
	if err == nil {
		return nil
	}
	return &amqpError{err: err}
}

// newError builds an error from a reply code and text.
func newError(code uint16, text string, server bool) amqp.Error {
	return wrapError(&amqp091.Error{
		Code:    int(code),
		Reason:  text,
		Server:  server,
		Recover: isSoftExceptionCode(int(code)),
	})
}

// closeError builds the error carried by a broker initiated channel or connection close.
func closeError(m *frame.ChannelClose) amqp.Error {
	return newError(m.ReplyCode, m.ReplyText, true)
}

// isSoftExceptionCode whether the code only closes the channel and
// the operation may be retried on a new one.
func isSoftExceptionCode(code int) bool {
	switch code {
	case amqp091.ContentTooLarge, amqp091.NoRoute, amqp091.NoConsumers,
		amqp091.AccessRefused, amqp091.NotFound, amqp091.ResourceLocked, amqp091.PreconditionFailed:
		return true
	}
	return false
}
