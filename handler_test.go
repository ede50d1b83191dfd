package amqp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// invokeAll calls every handler method once.
func invokeAll(h Handler) {
	h.OnReady(nil)
	h.OnClosed(nil)
	h.OnError(nil, nil)
	h.OnPaused(nil)
	h.OnResumed(nil)
	h.OnTransactionStarted(nil)
	h.OnTransactionCommitted(nil)
	h.OnTransactionRolledBack(nil)
	h.OnExchangeDeclared(nil)
	h.OnExchangeDeleted(nil)
	h.OnExchangeBound(nil)
	h.OnExchangeUnbound(nil)
	h.OnQueueDeclared(nil, "q1", 1, 2)
	h.OnQueueBound(nil)
	h.OnQueueUnbound(nil)
	h.OnQueueDeleted(nil, 3)
	h.OnQueuePurged(nil, 4)
}

func TestHandlerFuncs_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		invokeAll(&HandlerFuncs{})
	})
}

func TestHandlerFuncs(t *testing.T) {
	var events []string
	record := func(name string) func(Channel) {
		return func(Channel) { events = append(events, name) }
	}

	invokeAll(&HandlerFuncs{
		Ready:   record("ready"),
		Closed:  record("closed"),
		Error:   func(Channel, Error) { events = append(events, "error") },
		Paused:  record("paused"),
		Resumed: record("resumed"),

		TransactionStarted:    record("tx.started"),
		TransactionCommitted:  record("tx.committed"),
		TransactionRolledBack: record("tx.rolledback"),

		ExchangeDeclared: record("exchange.declared"),
		ExchangeDeleted:  record("exchange.deleted"),
		ExchangeBound:    record("exchange.bound"),
		ExchangeUnbound:  record("exchange.unbound"),

		QueueDeclared: func(_ Channel, name string, messageCount, consumerCount uint32) {
			assert.Equal(t, "q1", name)
			assert.Equal(t, uint32(1), messageCount)
			assert.Equal(t, uint32(2), consumerCount)
			events = append(events, "queue.declared")
		},
		QueueBound:   record("queue.bound"),
		QueueUnbound: record("queue.unbound"),
		QueueDeleted: func(_ Channel, messageCount uint32) {
			assert.Equal(t, uint32(3), messageCount)
			events = append(events, "queue.deleted")
		},
		QueuePurged: func(_ Channel, messageCount uint32) {
			assert.Equal(t, uint32(4), messageCount)
			events = append(events, "queue.purged")
		},
	})

	assert.Equal(t, []string{
		"ready", "closed", "error", "paused", "resumed",
		"tx.started", "tx.committed", "tx.rolledback",
		"exchange.declared", "exchange.deleted", "exchange.bound", "exchange.unbound",
		"queue.declared", "queue.bound", "queue.unbound", "queue.deleted", "queue.purged",
	}, events)
}

func TestFlags_Has(t *testing.T) {
	tt := []struct {
		Name     string
		Flags    Flags
		Option   Flags
		Expected bool
	}{
		{"Set", Durable | NoWait, NoWait, true},
		{"Unset", Durable, NoWait, false},
		{"Combined", Durable | AutoDelete | Exclusive, Durable | Exclusive, true},
		{"PartiallySet", Durable, Durable | Exclusive, false},
		{"Empty", 0, Passive, false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, tc.Flags.Has(tc.Option))
		})
	}
}
