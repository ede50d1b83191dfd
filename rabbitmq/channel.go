package rabbitmq

import (
	"fmt"
	"sync"

	"github.com/rabbitmq/amqp091-go"

	amqp "github.com/jacklaaa89/go-amqp-channel"
	"github.com/jacklaaa89/go-amqp-channel/internal/frame"
)

// state the lifecycle state of a channel.
type state int

const (
	stateConnected state = iota
	stateClosed
)

// event triggers a state transition.
type event int

const (
	eventClose event = iota // the broker confirmed a close.
	eventError              // the channel failed or the broker closed it.
)

// transition returns the state after e and whether it changed. Closed is terminal.
func (s state) transition(e event) (state, bool) {
	if s == stateConnected && (e == eventClose || e == eventError) {
		return stateClosed, true
	}
	return s, false
}

func (s state) String() string {
	switch s {
	case stateConnected:
		return "connected"
	case stateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// channel is a single AMQP channel multiplexed over a connection.
//
// requests are written in the calling goroutine, each one expecting a reply queues the
// key of that reply. The broker answers in request order so an incoming reply must match
// the oldest queued key, anything else is a protocol violation which closes the channel.
type channel struct {
	mu sync.Mutex // variable guard, held while a request is written.

	conn    *connection  // the owning connection.
	id      uint16       // the channel number.
	handler amqp.Handler // receives the channel events, may be nil.

	state       state    // the current lifecycle state.
	closing     bool     // a channel.close has been sent.
	draining    bool     // closed after a violation, waiting for the broker to confirm.
	transaction bool     // a tx.select has been acknowledged.
	pending     []uint32 // expected reply keys, oldest first.
}

var _ amqp.Channel = (*channel)(nil)

// newChannel creates a connected channel, the broker has not been told about it yet.
func newChannel(conn *connection, id uint16, h amqp.Handler) *channel {
	return &channel{conn: conn, id: id, handler: h, state: stateConnected}
}

// ID returns the channel number.
func (c *channel) ID() uint16 {
	return c.id
}

// Connected whether the channel is usable.
func (c *channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateConnected
}

// InTransaction whether the broker acknowledged a transaction start.
func (c *channel) InTransaction() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transaction
}

// SetHandler replaces the handler, nil detaches it.
func (c *channel) SetHandler(h amqp.Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// open sends channel.open, OnReady fires on channel.open-ok.
func (c *channel) open() error {
	return c.request(&frame.ChannelOpen{}, reply(frame.ClassChannel, frame.MethodChannelOpenOk))
}

// Close asks the broker to close the channel.
func (c *channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateConnected || c.closing {
		return amqp091.ErrClosed
	}

	err := c.send(&frame.ChannelClose{ReplyCode: frame.ReplySuccess}, reply(frame.ClassChannel, frame.MethodChannelCloseOk))
	if err != nil {
		return err
	}

	c.closing = true
	return nil
}

// Pause asks the broker to stop delivering messages.
func (c *channel) Pause() error {
	return c.request(&frame.ChannelFlow{Active: false}, reply(frame.ClassChannel, frame.MethodChannelFlowOk))
}

// Resume asks the broker to restart delivering messages.
func (c *channel) Resume() error {
	return c.request(&frame.ChannelFlow{Active: true}, reply(frame.ClassChannel, frame.MethodChannelFlowOk))
}

// StartTransaction sends tx.select.
func (c *channel) StartTransaction() error {
	return c.request(&frame.TxSelect{}, reply(frame.ClassTx, frame.MethodTxSelectOk))
}

// CommitTransaction sends tx.commit, only once a transaction start was acknowledged.
func (c *channel) CommitTransaction() error {
	return c.transactional(&frame.TxCommit{}, reply(frame.ClassTx, frame.MethodTxCommitOk))
}

// RollbackTransaction sends tx.rollback, only once a transaction start was acknowledged.
func (c *channel) RollbackTransaction() error {
	return c.transactional(&frame.TxRollback{}, reply(frame.ClassTx, frame.MethodTxRollbackOk))
}

// DeclareExchange sends exchange.declare.
func (c *channel) DeclareExchange(name string, typ amqp.ExchangeType, flags amqp.Flags, args amqp.Table) error {
	return c.request(&frame.ExchangeDeclare{
		Exchange:   name,
		Type:       string(typ),
		Passive:    flags.Has(amqp.Passive),
		Durable:    flags.Has(amqp.Durable),
		AutoDelete: flags.Has(amqp.AutoDelete),
		Internal:   flags.Has(amqp.Internal),
		NoWait:     flags.Has(amqp.NoWait),
		Arguments:  args,
	}, replyUnless(flags, frame.ClassExchange, frame.MethodExchangeDeclareOk))
}

// BindExchange sends exchange.bind, routing messages from source to target.
func (c *channel) BindExchange(source, target, routingKey string, flags amqp.Flags, args amqp.Table) error {
	return c.request(&frame.ExchangeBind{
		Destination: target,
		Source:      source,
		RoutingKey:  routingKey,
		NoWait:      flags.Has(amqp.NoWait),
		Arguments:   args,
	}, replyUnless(flags, frame.ClassExchange, frame.MethodExchangeBindOk))
}

// UnbindExchange sends exchange.unbind.
func (c *channel) UnbindExchange(source, target, routingKey string, flags amqp.Flags, args amqp.Table) error {
	return c.request(&frame.ExchangeUnbind{
		Destination: target,
		Source:      source,
		RoutingKey:  routingKey,
		NoWait:      flags.Has(amqp.NoWait),
		Arguments:   args,
	}, replyUnless(flags, frame.ClassExchange, frame.MethodExchangeUnbindOk))
}

// RemoveExchange sends exchange.delete.
func (c *channel) RemoveExchange(name string, flags amqp.Flags) error {
	return c.request(&frame.ExchangeDelete{
		Exchange: name,
		IfUnused: flags.Has(amqp.IfUnused),
		NoWait:   flags.Has(amqp.NoWait),
	}, replyUnless(flags, frame.ClassExchange, frame.MethodExchangeDeleteOk))
}

// DeclareQueue sends queue.declare, an empty name lets the broker generate one.
func (c *channel) DeclareQueue(name string, flags amqp.Flags, args amqp.Table) error {
	return c.request(&frame.QueueDeclare{
		Queue:      name,
		Passive:    flags.Has(amqp.Passive),
		Durable:    flags.Has(amqp.Durable),
		Exclusive:  flags.Has(amqp.Exclusive),
		AutoDelete: flags.Has(amqp.AutoDelete),
		NoWait:     flags.Has(amqp.NoWait),
		Arguments:  args,
	}, replyUnless(flags, frame.ClassQueue, frame.MethodQueueDeclareOk))
}

// BindQueue sends queue.bind.
func (c *channel) BindQueue(exchange, queue, routingKey string, flags amqp.Flags, args amqp.Table) error {
	return c.request(&frame.QueueBind{
		Queue:      queue,
		Exchange:   exchange,
		RoutingKey: routingKey,
		NoWait:     flags.Has(amqp.NoWait),
		Arguments:  args,
	}, replyUnless(flags, frame.ClassQueue, frame.MethodQueueBindOk))
}

// UnbindQueue sends queue.unbind, which has no no-wait option.
func (c *channel) UnbindQueue(exchange, queue, routingKey string, args amqp.Table) error {
	return c.request(&frame.QueueUnbind{
		Queue:      queue,
		Exchange:   exchange,
		RoutingKey: routingKey,
		Arguments:  args,
	}, reply(frame.ClassQueue, frame.MethodQueueUnbindOk))
}

// PurgeQueue sends queue.purge.
func (c *channel) PurgeQueue(name string, flags amqp.Flags) error {
	return c.request(&frame.QueuePurge{
		Queue:  name,
		NoWait: flags.Has(amqp.NoWait),
	}, replyUnless(flags, frame.ClassQueue, frame.MethodQueuePurgeOk))
}

// RemoveQueue sends queue.delete.
func (c *channel) RemoveQueue(name string, flags amqp.Flags) error {
	return c.request(&frame.QueueDelete{
		Queue:    name,
		IfUnused: flags.Has(amqp.IfUnused),
		IfEmpty:  flags.Has(amqp.IfEmpty),
		NoWait:   flags.Has(amqp.NoWait),
	}, replyUnless(flags, frame.ClassQueue, frame.MethodQueueDeleteOk))
}

// reply the key of the reply a request expects.
func reply(class, method uint16) uint32 {
	return frame.Key(class, method)
}

// replyUnless is reply, or no reply at all when NoWait is set.
func replyUnless(flags amqp.Flags, class, method uint16) uint32 {
	if flags.Has(amqp.NoWait) {
		return 0
	}
	return reply(class, method)
}

// request sends m on a connected channel, expecting the reply key unless it is zero.
func (c *channel) request(m frame.Method, expect uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateConnected || c.closing {
		return amqp091.ErrClosed
	}

	return c.send(m, expect)
}

// transactional is request, refused locally without an acknowledged transaction.
func (c *channel) transactional(m frame.Method, expect uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateConnected || c.closing {
		return amqp091.ErrClosed
	}
	if !c.transaction {
		return ErrNoTransaction
	}

	return c.send(m, expect)
}

// send writes m and queues the expected reply. c.mu must be held, so no reply can be
// dispatched between the write and the queueing.
func (c *channel) send(m frame.Method, expect uint32) error {
	f, err := frame.Encode(c.id, m)
	if err != nil {
		return err
	}

	if _, err := c.conn.send(f); err != nil {
		return fmt.Errorf("send %s on channel %d: %w", frame.Name(frame.KeyOf(m)), c.id, err)
	}

	if expect != 0 {
		c.pending = append(c.pending, expect)
	}

	return nil
}
