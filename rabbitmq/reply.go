package rabbitmq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	amqp "github.com/jacklaaa89/go-amqp-channel"
	"github.com/jacklaaa89/go-amqp-channel/internal/frame"
)

// maxReplyText the longest reply text a short string can carry.
const maxReplyText = 255

var closeOk = reply(frame.ClassChannel, frame.MethodChannelCloseOk)

// dispatch handles a frame the broker addressed to the channel. It is only called from the
// connection's read loop, so events are reported in the order the frames arrived.
func (c *channel) dispatch(f *frame.Frame) {
	if report := c.correlate(f); report != nil {
		report()
	}
}

// correlate matches a frame against the oldest expected reply and returns the report it
// triggers. Handlers are invoked by the caller once c.mu is released.
func (c *channel) correlate(f *frame.Frame) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := frame.Decode(f)
	if c.state == stateClosed {
		return c.drain(m, f)
	}
	if err != nil {
		return c.violation(err.Error(), nil)
	}

	// broker initiated methods, these never answer a request.
	switch m := m.(type) {
	case *frame.ChannelClose:
		c.respond(&frame.ChannelCloseOk{})
		if c.closing {
			// the broker still confirms our own close, the number is held until it does.
			c.pending = []uint32{closeOk}
			c.draining = true
		}
		c.closing = true
		cerr := closeError(m)
		return func() { c.reportChannelError(cerr) }
	case *frame.ChannelFlow:
		c.respond(&frame.ChannelFlowOk{Active: m.Active})
		return c.flow(m.Active)
	}

	key := frame.KeyOf(m)
	if len(c.pending) == 0 {
		return c.violation(fmt.Sprintf("unexpected %s, no reply expected", frame.Name(key)), m)
	}
	if c.pending[0] != key {
		return c.violation(fmt.Sprintf("unexpected %s, expected %s", frame.Name(key), frame.Name(c.pending[0])), m)
	}
	c.pending = c.pending[1:]

	switch m := m.(type) {
	case *frame.ChannelOpenOk:
		return c.reportReady
	case *frame.ChannelFlowOk:
		return c.flow(m.Active)
	case *frame.ChannelCloseOk:
		return c.reportClosed
	case *frame.TxSelectOk:
		return c.reportTransactionStarted
	case *frame.TxCommitOk:
		return c.reportTransactionCommitted
	case *frame.TxRollbackOk:
		return c.reportTransactionRolledBack
	case *frame.ExchangeDeclareOk:
		return c.reportExchangeDeclared
	case *frame.ExchangeDeleteOk:
		return c.reportExchangeDeleted
	case *frame.ExchangeBindOk:
		return c.reportExchangeBound
	case *frame.ExchangeUnbindOk:
		return c.reportExchangeUnbound
	case *frame.QueueDeclareOk:
		return func() { c.reportQueueDeclared(m.Queue, m.MessageCount, m.ConsumerCount) }
	case *frame.QueueBindOk:
		return c.reportQueueBound
	case *frame.QueueUnbindOk:
		return c.reportQueueUnbound
	case *frame.QueueDeleteOk:
		return func() { c.reportQueueDeleted(m.MessageCount) }
	case *frame.QueuePurgeOk:
		return func() { c.reportQueuePurged(m.MessageCount) }
	}

	return nil
}

// drain handles frames received once the channel is closed. Only the close-ok confirming
// a close still in flight is expected, it frees the channel number.
func (c *channel) drain(m frame.Method, f *frame.Frame) func() {
	if _, ok := m.(*frame.ChannelClose); ok && c.draining {
		c.respond(&frame.ChannelCloseOk{})
		return nil
	}
	if _, ok := m.(*frame.ChannelCloseOk); ok && c.draining && len(c.pending) > 0 && c.pending[0] == closeOk {
		c.pending = c.pending[1:]
		c.draining = false
		return func() { c.conn.release(c.id) }
	}

	logError(c.conn.ctx, fmt.Errorf("dropping %s on closed channel %d", f, c.id))
	return nil
}

// violation closes the channel after m arrived out of order, m is nil when the frame could
// not be decoded. c.mu must be held.
func (c *channel) violation(reason string, m frame.Method) func() {
	if len(reason) > maxReplyText {
		reason = reason[:maxReplyText]
	}

	cerr := newError(amqp091.UnexpectedFrame, reason, false)
	if c.closing {
		// a close is already in flight, its close-ok releases the number.
		c.pending = nil
		if _, ok := m.(*frame.ChannelCloseOk); !ok {
			c.pending = []uint32{closeOk}
			c.draining = true
		}
		return func() { c.reportChannelError(cerr) }
	}

	c.pending = nil
	c.closing = true

	err := c.send(&frame.ChannelClose{ReplyCode: amqp091.UnexpectedFrame, ReplyText: reason}, closeOk)
	if err != nil {
		logError(c.conn.ctx, err)
	} else {
		c.draining = true
	}

	return func() { c.reportChannelError(cerr) }
}

// respond answers a broker initiated method. c.mu must be held.
func (c *channel) respond(m frame.Method) {
	if err := c.send(m, 0); err != nil {
		logError(c.conn.ctx, err)
	}
}

// flow returns the report for a flow change.
func (c *channel) flow(active bool) func() {
	if active {
		return c.reportResumed
	}
	return c.reportPaused
}

// notify invokes fn with the current handler, if any.
func (c *channel) notify(fn func(h amqp.Handler)) {
	c.mu.Lock()
	h := c.handler
	c.mu.Unlock()

	if h != nil {
		fn(h)
	}
}

// reportReady the broker opened the channel.
func (c *channel) reportReady() {
	c.notify(func(h amqp.Handler) { h.OnReady(c) })
}

// reportClosed the channel closed without an error.
func (c *channel) reportClosed() {
	c.mu.Lock()
	next, changed := c.state.transition(eventClose)
	c.state = next
	c.transaction = false
	c.pending = nil
	h := c.handler
	c.mu.Unlock()

	if !changed {
		return
	}

	c.conn.release(c.id)
	if h != nil {
		h.OnClosed(c)
	}
}

// reportChannelError the channel failed, either because the broker closed it or the
// connection went away. err describes the failure.
func (c *channel) reportChannelError(err amqp.Error) {
	c.mu.Lock()
	next, changed := c.state.transition(eventError)
	c.state = next
	c.transaction = false
	draining := c.draining
	if !draining {
		c.pending = nil
	}
	h := c.handler
	c.mu.Unlock()

	if !changed {
		return
	}

	// the number stays reserved until the broker confirms the violation close.
	if !draining {
		c.conn.release(c.id)
	}
	if h != nil {
		h.OnError(c, err)
	}
}

func (c *channel) reportPaused() {
	c.notify(func(h amqp.Handler) { h.OnPaused(c) })
}

func (c *channel) reportResumed() {
	c.notify(func(h amqp.Handler) { h.OnResumed(c) })
}

// setTransaction updates the transaction flag.
func (c *channel) setTransaction(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transaction = active
}

func (c *channel) reportTransactionStarted() {
	c.setTransaction(true)
	c.notify(func(h amqp.Handler) { h.OnTransactionStarted(c) })
}

func (c *channel) reportTransactionCommitted() {
	c.setTransaction(false)
	c.notify(func(h amqp.Handler) { h.OnTransactionCommitted(c) })
}

func (c *channel) reportTransactionRolledBack() {
	c.setTransaction(false)
	c.notify(func(h amqp.Handler) { h.OnTransactionRolledBack(c) })
}

func (c *channel) reportExchangeDeclared() {
	c.notify(func(h amqp.Handler) { h.OnExchangeDeclared(c) })
}

func (c *channel) reportExchangeDeleted() {
	c.notify(func(h amqp.Handler) { h.OnExchangeDeleted(c) })
}

func (c *channel) reportExchangeBound() {
	c.notify(func(h amqp.Handler) { h.OnExchangeBound(c) })
}

func (c *channel) reportExchangeUnbound() {
	c.notify(func(h amqp.Handler) { h.OnExchangeUnbound(c) })
}

func (c *channel) reportQueueDeclared(name string, messageCount, consumerCount uint32) {
	c.notify(func(h amqp.Handler) { h.OnQueueDeclared(c, name, messageCount, consumerCount) })
}

func (c *channel) reportQueueBound() {
	c.notify(func(h amqp.Handler) { h.OnQueueBound(c) })
}

func (c *channel) reportQueueUnbound() {
	c.notify(func(h amqp.Handler) { h.OnQueueUnbound(c) })
}

func (c *channel) reportQueueDeleted(messageCount uint32) {
	c.notify(func(h amqp.Handler) { h.OnQueueDeleted(c, messageCount) })
}

func (c *channel) reportQueuePurged(messageCount uint32) {
	c.notify(func(h amqp.Handler) { h.OnQueuePurged(c, messageCount) })
}
