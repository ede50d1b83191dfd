package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	amqp "github.com/jacklaaa89/go-amqp-channel"
	"github.com/jacklaaa89/go-amqp-channel/internal/allocator"
	"github.com/jacklaaa89/go-amqp-channel/internal/frame"
)

// connection multiplexes channels over a single transport.
//
// frames are written by the calling goroutine, replies are read and dispatched
// to channels by a single background goroutine so handlers observe them in order.
type connection struct {
	mu      sync.RWMutex // variable guard.
	writeMu sync.Mutex   // serialises frame writes.
	omitMu  sync.RWMutex // mutex for events.

	ctx       context.Context // a server bound context.
	transport transport       // the socket.
	reader    *frame.Reader   // reads frames from the transport.
	frameMax  uint32          // negotiated frame-max.

	ids      *allocator.Allocator // channel number allocation.
	channels map[uint16]*channel  // open channels by number.
	closed   bool                 // whether the connection is closed.
	done     chan struct{}        // closed once the connection shuts down.

	// containers for assigned event handlers.
	closeOnce sync.Once
	closes    []func(err amqp.Error)
}

var _ amqp.Connection = (*connection)(nil)

// newConnection builds a connection over an already negotiated transport.
func newConnection(ctx context.Context, t transport, r *frame.Reader, channelMax uint16, frameMax uint32) *connection {
	if channelMax == 0 {
		channelMax = defaultChannelMax
	}

	return &connection{
		ctx:       ctx,
		transport: t,
		reader:    r,
		frameMax:  frameMax,
		ids:       allocator.New(1, int(channelMax)),
		channels:  make(map[uint16]*channel),
		done:      make(chan struct{}),
	}
}

// Channel opens a new channel, h receives its events.
func (c *connection) Channel(h amqp.Handler) (amqp.Channel, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, amqp091.ErrClosed
	}

	id, ok := c.ids.Next()
	if !ok {
		c.mu.Unlock()
		return nil, amqp091.ErrChannelMax
	}

	ch := newChannel(c, uint16(id), h)
	c.channels[ch.id] = ch
	c.mu.Unlock()

	if err := ch.open(); err != nil {
		c.release(ch.id)
		return nil, err
	}

	return ch, nil
}

// IsClosed determines if the connection is closed.
func (c *connection) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close gracefully closes the connection, waiting for the broker to confirm.
// Every open channel reports OnClosed.
func (c *connection) Close() error {
	if c.IsClosed() {
		return nil
	}

	f, err := frame.Encode(0, &frame.ConnectionClose{ReplyCode: frame.ReplySuccess, ReplyText: "kthxbai"})
	if err != nil {
		return err
	}

	if _, err := c.send(f); err != nil {
		c.shutdown(nil)
		return err
	}

	select {
	case <-c.done:
	case <-time.After(closeTimeout):
		c.shutdown(nil)
	}

	return nil
}

// NotifyClose adds a function to trigger on close, err is nil for a graceful close.
func (c *connection) NotifyClose(fn func(err amqp.Error)) {
	c.omitMu.Lock()
	defer c.omitMu.Unlock()
	c.closes = append(c.closes, fn)
}

// send writes a single frame to the transport.
func (c *connection) send(f *frame.Frame) (int, error) {
	if c.frameMax > 0 && uint32(f.Size()) > c.frameMax {
		return 0, fmt.Errorf("%s exceeds frame-max %d", f, c.frameMax)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	n, err := f.WriteTo(c.transport)
	return int(n), err
}

// release forgets a channel so its number can be reused.
func (c *connection) release(id uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.channels, id)
	c.ids.Release(int(id))
}

// lookup returns the open channel with the given number.
func (c *connection) lookup(id uint16) (*channel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.channels[id]
	return ch, ok
}

// background reads frames until the transport fails or the connection is closed.
func (c *connection) background() {
	for {
		f, err := c.reader.ReadFrame()
		if err != nil {
			if c.IsClosed() {
				return
			}
			logError(c.ctx, fmt.Errorf("read frame: %w", err))
			c.shutdown(wrapError(&amqp091.Error{
				Code:   amqp091.FrameError,
				Reason: err.Error(),
			}))
			return
		}

		c.dispatch(f)

		select {
		case <-c.done:
			return
		default:
		}
	}
}

// dispatch routes a frame to the channel it is addressed to.
func (c *connection) dispatch(f *frame.Frame) {
	if f.Type == frame.TypeHeartbeat {
		return
	}

	if f.Channel == 0 {
		c.dispatchConnection(f)
		return
	}

	ch, ok := c.lookup(f.Channel)
	if !ok {
		logError(c.ctx, fmt.Errorf("dropping %s for unknown channel", f))
		return
	}

	ch.dispatch(f)
}

// dispatchConnection handles methods addressed to the connection itself.
func (c *connection) dispatchConnection(f *frame.Frame) {
	m, err := frame.Decode(f)
	if err != nil {
		logError(c.ctx, err)
		return
	}

	switch m := m.(type) {
	case *frame.ConnectionClose:
		if rf, err := frame.Encode(0, &frame.ConnectionCloseOk{}); err == nil {
			if _, err := c.send(rf); err != nil {
				logError(c.ctx, err)
			}
		}
		c.shutdown(newError(m.ReplyCode, m.ReplyText, true))
	case *frame.ConnectionCloseOk:
		c.shutdown(nil)
	default:
		logError(c.ctx, fmt.Errorf("unexpected %s on connection", frame.Name(frame.KeyOf(m))))
	}
}

// shutdown closes the transport and every channel, err is nil for a graceful close.
func (c *connection) shutdown(err amqp.Error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		channels := make([]*channel, 0, len(c.channels))
		for id, ch := range c.channels {
			channels = append(channels, ch)
			delete(c.channels, id)
			c.ids.Release(int(id))
		}
		c.mu.Unlock()

		for _, ch := range channels {
			if err == nil {
				ch.reportClosed()
				continue
			}
			ch.reportChannelError(err)
		}

		close(c.done)
		if cerr := c.transport.Close(); cerr != nil {
			logError(c.ctx, cerr)
		}

		c.omitClose(err)
	})
}

// omitClose calls each of the registered close handlers.
func (c *connection) omitClose(err amqp.Error) {
	c.omitMu.RLock()
	defer c.omitMu.RUnlock()
	for _, fn := range c.closes {
		fn(err)
	}
}
