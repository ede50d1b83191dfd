package rabbitmq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	amqp "github.com/jacklaaa89/go-amqp-channel"
	"github.com/jacklaaa89/go-amqp-channel/internal/frame"
)

// mockTransportHandlers function handlers to override on the mocked transport.
type mockTransportHandlers struct {
	Write func(p []byte) (int, error)
	Close func() error
}

// mockTransport records every frame written to it.
type mockTransport struct {
	mu     sync.Mutex
	h      *mockTransportHandlers
	buf    bytes.Buffer
	closed bool
}

func newMockTransport() *mockTransport {
	return &mockTransport{h: &mockTransportHandlers{}}
}

func (m *mockTransport) Read([]byte) (int, error) {
	return 0, io.EOF
}

func (m *mockTransport) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.h.Write != nil {
		if n, err := m.h.Write(p); err != nil {
			return n, err
		}
	}
	return m.buf.Write(p)
}

func (m *mockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.h.Close != nil {
		return m.h.Close()
	}
	return nil
}

func (m *mockTransport) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// methods decodes every method written so far.
func (m *mockTransport) methods(t *testing.T) []frame.Method {
	m.mu.Lock()
	raw := append([]byte(nil), m.buf.Bytes()...)
	m.mu.Unlock()

	var out []frame.Method
	r := frame.NewReader(bytes.NewReader(raw), 1<<20)
	for {
		f, err := r.ReadFrame()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			return out
		}
		mt, err := frame.Decode(f)
		require.NoError(t, err)
		out = append(out, mt)
	}
}

// last returns the most recently written method.
func (m *mockTransport) last(t *testing.T) frame.Method {
	methods := m.methods(t)
	require.NotEmpty(t, methods)
	return methods[len(methods)-1]
}

// newTestConnection creates a connection over a mocked transport without a read loop,
// replies are fed in with receive.
func newTestConnection(channelMax uint16) (*connection, *mockTransport) {
	tr := newMockTransport()
	return newConnection(context.Background(), tr, nil, channelMax, 0), tr
}

// receive dispatches m as if the broker sent it on channel id.
func receive(t *testing.T, c *connection, id uint16, m frame.Method) {
	f, err := frame.Encode(id, m)
	require.NoError(t, err)
	c.dispatch(f)
}

// openChannel opens a channel and confirms it.
func openChannel(t *testing.T, c *connection, h amqp.Handler) *channel {
	ch, err := c.Channel(h)
	require.NoError(t, err)
	receive(t, c, ch.ID(), &frame.ChannelOpenOk{})
	return ch.(*channel)
}

// recorder a handler which records each event it receives.
type recorder struct {
	mu     sync.Mutex
	events []string
	errs   []amqp.Error
}

func (r *recorder) add(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) Errors() []amqp.Error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]amqp.Error(nil), r.errs...)
}

func (r *recorder) OnReady(amqp.Channel)  { r.add("ready") }
func (r *recorder) OnClosed(amqp.Channel) { r.add("closed") }
func (r *recorder) OnError(_ amqp.Channel, err amqp.Error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.add("error:%d", err.Code())
}
func (r *recorder) OnPaused(amqp.Channel)                { r.add("paused") }
func (r *recorder) OnResumed(amqp.Channel)               { r.add("resumed") }
func (r *recorder) OnTransactionStarted(amqp.Channel)    { r.add("tx.started") }
func (r *recorder) OnTransactionCommitted(amqp.Channel)  { r.add("tx.committed") }
func (r *recorder) OnTransactionRolledBack(amqp.Channel) { r.add("tx.rolledback") }
func (r *recorder) OnExchangeDeclared(amqp.Channel)      { r.add("exchange.declared") }
func (r *recorder) OnExchangeDeleted(amqp.Channel)       { r.add("exchange.deleted") }
func (r *recorder) OnExchangeBound(amqp.Channel)         { r.add("exchange.bound") }
func (r *recorder) OnExchangeUnbound(amqp.Channel)       { r.add("exchange.unbound") }
func (r *recorder) OnQueueDeclared(_ amqp.Channel, name string, messageCount, consumerCount uint32) {
	r.add("queue.declared:%s:%d:%d", name, messageCount, consumerCount)
}
func (r *recorder) OnQueueBound(amqp.Channel)   { r.add("queue.bound") }
func (r *recorder) OnQueueUnbound(amqp.Channel) { r.add("queue.unbound") }
func (r *recorder) OnQueueDeleted(_ amqp.Channel, messageCount uint32) {
	r.add("queue.deleted:%d", messageCount)
}
func (r *recorder) OnQueuePurged(_ amqp.Channel, messageCount uint32) {
	r.add("queue.purged:%d", messageCount)
}
