package amqp

import (
	"github.com/rabbitmq/amqp091-go"
)

// ExchangeType represents a type of exchange.
type ExchangeType string

const (
	// ExchangeTypeDirect represents a direct exchange
	// this is where a message is posted to bound queues where the routing key matches exactly.
	ExchangeTypeDirect ExchangeType = amqp091.ExchangeDirect
	// ExchangeTypeFanout represents a fanout exchange
	// this is where the routing key is ignored and all bound queues receive a copy of the message.
	ExchangeTypeFanout ExchangeType = amqp091.ExchangeFanout
	// ExchangeTypeTopic represents a topic exchange
	// this extends on top of a direct exchange by allowing the routing key to be pattern based rather
	// than having to match exactly.
	ExchangeTypeTopic ExchangeType = amqp091.ExchangeTopic
	// ExchangeTypeHeaders represents a headers exchange
	// this is where one or more headers are used to route the message
	ExchangeTypeHeaders ExchangeType = amqp091.ExchangeHeaders
)

// Table is the argument table passed verbatim to the broker.
type Table = amqp091.Table

// Flags is a set of protocol options. Each request only uses the bits its
// AMQP method defines and ignores the rest.
type Flags uint16

const (
	// Passive only checks that the exchange or queue exists.
	Passive Flags = 1 << iota
	// Durable survives a broker restart.
	Durable
	// AutoDelete removes the exchange or queue once it is no longer used.
	AutoDelete
	// Exclusive restricts a queue to the declaring connection.
	Exclusive
	// Internal prevents publishing directly to an exchange.
	Internal
	// NoWait asks the broker not to reply. No completion is reported for the request.
	NoWait
	// IfUnused only deletes an exchange or queue without bindings or consumers.
	IfUnused
	// IfEmpty only deletes a queue without messages.
	IfEmpty
)

// Has reports whether every bit in o is set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// Channel represents a single AMQP channel.
//
// A channel is a lightweight, independently sequenced RPC stream multiplexed over a single
// Connection. Request methods return nil once the request frame has been sent, which does not
// mean the broker accepted it: completion is reported asynchronously to the attached Handler,
// in the same order the requests were issued. A closed channel rejects every request with an
// error and never touches the transport.
type Channel interface {
	// ID returns the channel number, unique within the owning connection.
	ID() uint16
	// Connected whether the channel is still usable.
	Connected() bool
	// InTransaction whether the broker has acknowledged a transaction start which has not yet been
	// committed or rolled back.
	InTransaction() bool
	// SetHandler attaches h to the channel, replacing any existing handler. A nil handler detaches.
	SetHandler(h Handler)

	// Close requests the channel to be closed, Handler.OnClosed fires once the broker confirms.
	// Closing an already closed channel returns an error.
	Close() error
	// Pause asks the broker to stop delivering messages on the channel.
	Pause() error
	// Resume asks the broker to restart delivering messages on the channel.
	Resume() error

	// StartTransaction requests transactional mode.
	StartTransaction() error
	// CommitTransaction commits the active transaction. It fails without sending anything when no
	// transaction start has been acknowledged.
	CommitTransaction() error
	// RollbackTransaction abandons the active transaction, with the same precondition as
	// CommitTransaction.
	RollbackTransaction() error

	// DeclareExchange declares an exchange. Uses Passive, Durable, AutoDelete, Internal and NoWait.
	DeclareExchange(name string, typ ExchangeType, flags Flags, args Table) error
	// BindExchange binds target to source using the routing key. Uses NoWait.
	BindExchange(source, target, routingKey string, flags Flags, args Table) error
	// UnbindExchange removes a binding created by BindExchange. Uses NoWait.
	UnbindExchange(source, target, routingKey string, flags Flags, args Table) error
	// RemoveExchange deletes an exchange. Uses IfUnused and NoWait.
	RemoveExchange(name string, flags Flags) error

	// DeclareQueue declares a queue. Uses Passive, Durable, Exclusive, AutoDelete and NoWait.
	DeclareQueue(name string, flags Flags, args Table) error
	// BindQueue binds a queue to an exchange. Uses NoWait.
	BindQueue(exchange, queue, routingKey string, flags Flags, args Table) error
	// UnbindQueue removes a queue binding, the broker always replies.
	UnbindQueue(exchange, queue, routingKey string, args Table) error
	// PurgeQueue removes every message from a queue. Uses NoWait.
	PurgeQueue(name string, flags Flags) error
	// RemoveQueue deletes a queue. Uses IfUnused, IfEmpty and NoWait.
	RemoveQueue(name string, flags Flags) error
}
