package amqp

import (
	"io"
)

// Dialer represents a function which returns a connection and an error.
type Dialer func() (Connection, error)

// Error represents an error from AMQP.
type Error interface {
	error

	// Code returns the AMQP reply code
	Code() int
	// Reason returns the description of the error
	Reason() string
	// Recover returns true when this error can be recovered by retrying later or with different parameters
	Recover() bool
	// FromServer returns true when initiated from the server, false when from this library
	FromServer() bool
}

// Notifier an interface for types which omit events.
type Notifier interface {
	// NotifyClose triggers the supplied function once when the connection closes,
	// err is nil for a graceful close triggered from the SDK.
	NotifyClose(fn func(err Error))
}

// Connection represents a message amqp compatible broker connection.
//
// A connection owns the transport and is the only way to obtain a Channel.
type Connection interface {
	io.Closer
	Notifier

	// Channel opens a new channel on the connection, h is notified about the channel's events and
	// may be nil. Handler.OnReady fires once the broker has opened the channel.
	Channel(h Handler) (Channel, error)
	// IsClosed determines if the connection is closed.
	IsClosed() bool
}
