package frame

import (
	"encoding/binary"
	"fmt"
)

// Method is a typed AMQP method that can be carried in a method frame.
type Method interface {
	// ID returns the class and method identifiers of the method.
	ID() (class, method uint16)
	write(b *builder)
	read(r *reader)
}

// Key packs a class and method identifier into a single comparable value.
func Key(class, method uint16) uint32 {
	return uint32(class)<<16 | uint32(method)
}

// KeyOf returns the packed identifier of m.
func KeyOf(m Method) uint32 {
	return Key(m.ID())
}

// Name returns a human readable name for a packed method identifier.
func Name(key uint32) string {
	if n, ok := names[key]; ok {
		return n
	}
	return fmt.Sprintf("%d.%d", key>>16, key&0xFFFF)
}

// Encode builds a method frame for m on the given channel.
func Encode(channel uint16, m Method) (*Frame, error) {
	class, method := m.ID()

	b := &builder{}
	b.short(class)
	b.short(method)
	m.write(b)

	payload, err := b.bytes()
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", Name(Key(class, method)), err)
	}

	return &Frame{Type: TypeMethod, Channel: channel, Payload: payload}, nil
}

// Decode parses the method carried by a method frame.
func Decode(f *Frame) (Method, error) {
	if f.Type != TypeMethod {
		return nil, fmt.Errorf("not a method frame: type=%d", f.Type)
	}
	if len(f.Payload) < 4 {
		return nil, fmt.Errorf("method frame payload too short: %d", len(f.Payload))
	}

	key := Key(binary.BigEndian.Uint16(f.Payload[0:2]), binary.BigEndian.Uint16(f.Payload[2:4]))
	fn, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unsupported method: %s", Name(key))
	}

	m := fn()
	r := newReader(f.Payload[4:])
	m.read(r)
	if r.err != nil {
		return nil, fmt.Errorf("decode %s: %w", Name(key), r.err)
	}
	return m, nil
}

var registry = map[uint32]func() Method{
	Key(ClassConnection, MethodConnectionStart):   func() Method { return &ConnectionStart{} },
	Key(ClassConnection, MethodConnectionStartOk): func() Method { return &ConnectionStartOk{} },
	Key(ClassConnection, MethodConnectionTune):    func() Method { return &ConnectionTune{} },
	Key(ClassConnection, MethodConnectionTuneOk):  func() Method { return &ConnectionTuneOk{} },
	Key(ClassConnection, MethodConnectionOpen):    func() Method { return &ConnectionOpen{} },
	Key(ClassConnection, MethodConnectionOpenOk):  func() Method { return &ConnectionOpenOk{} },
	Key(ClassConnection, MethodConnectionClose):   func() Method { return &ConnectionClose{} },
	Key(ClassConnection, MethodConnectionCloseOk): func() Method { return &ConnectionCloseOk{} },

	Key(ClassChannel, MethodChannelOpen):    func() Method { return &ChannelOpen{} },
	Key(ClassChannel, MethodChannelOpenOk):  func() Method { return &ChannelOpenOk{} },
	Key(ClassChannel, MethodChannelFlow):    func() Method { return &ChannelFlow{} },
	Key(ClassChannel, MethodChannelFlowOk):  func() Method { return &ChannelFlowOk{} },
	Key(ClassChannel, MethodChannelClose):   func() Method { return &ChannelClose{} },
	Key(ClassChannel, MethodChannelCloseOk): func() Method { return &ChannelCloseOk{} },

	Key(ClassExchange, MethodExchangeDeclare):   func() Method { return &ExchangeDeclare{} },
	Key(ClassExchange, MethodExchangeDeclareOk): func() Method { return &ExchangeDeclareOk{} },
	Key(ClassExchange, MethodExchangeDelete):    func() Method { return &ExchangeDelete{} },
	Key(ClassExchange, MethodExchangeDeleteOk):  func() Method { return &ExchangeDeleteOk{} },
	Key(ClassExchange, MethodExchangeBind):      func() Method { return &ExchangeBind{} },
	Key(ClassExchange, MethodExchangeBindOk):    func() Method { return &ExchangeBindOk{} },
	Key(ClassExchange, MethodExchangeUnbind):    func() Method { return &ExchangeUnbind{} },
	Key(ClassExchange, MethodExchangeUnbindOk):  func() Method { return &ExchangeUnbindOk{} },

	Key(ClassQueue, MethodQueueDeclare):   func() Method { return &QueueDeclare{} },
	Key(ClassQueue, MethodQueueDeclareOk): func() Method { return &QueueDeclareOk{} },
	Key(ClassQueue, MethodQueueBind):      func() Method { return &QueueBind{} },
	Key(ClassQueue, MethodQueueBindOk):    func() Method { return &QueueBindOk{} },
	Key(ClassQueue, MethodQueuePurge):     func() Method { return &QueuePurge{} },
	Key(ClassQueue, MethodQueuePurgeOk):   func() Method { return &QueuePurgeOk{} },
	Key(ClassQueue, MethodQueueDelete):    func() Method { return &QueueDelete{} },
	Key(ClassQueue, MethodQueueDeleteOk):  func() Method { return &QueueDeleteOk{} },
	Key(ClassQueue, MethodQueueUnbind):    func() Method { return &QueueUnbind{} },
	Key(ClassQueue, MethodQueueUnbindOk):  func() Method { return &QueueUnbindOk{} },

	Key(ClassTx, MethodTxSelect):     func() Method { return &TxSelect{} },
	Key(ClassTx, MethodTxSelectOk):   func() Method { return &TxSelectOk{} },
	Key(ClassTx, MethodTxCommit):     func() Method { return &TxCommit{} },
	Key(ClassTx, MethodTxCommitOk):   func() Method { return &TxCommitOk{} },
	Key(ClassTx, MethodTxRollback):   func() Method { return &TxRollback{} },
	Key(ClassTx, MethodTxRollbackOk): func() Method { return &TxRollbackOk{} },
}

var names = map[uint32]string{
	Key(ClassConnection, MethodConnectionStart):   "connection.start",
	Key(ClassConnection, MethodConnectionStartOk): "connection.start-ok",
	Key(ClassConnection, MethodConnectionTune):    "connection.tune",
	Key(ClassConnection, MethodConnectionTuneOk):  "connection.tune-ok",
	Key(ClassConnection, MethodConnectionOpen):    "connection.open",
	Key(ClassConnection, MethodConnectionOpenOk):  "connection.open-ok",
	Key(ClassConnection, MethodConnectionClose):   "connection.close",
	Key(ClassConnection, MethodConnectionCloseOk): "connection.close-ok",

	Key(ClassChannel, MethodChannelOpen):    "channel.open",
	Key(ClassChannel, MethodChannelOpenOk):  "channel.open-ok",
	Key(ClassChannel, MethodChannelFlow):    "channel.flow",
	Key(ClassChannel, MethodChannelFlowOk):  "channel.flow-ok",
	Key(ClassChannel, MethodChannelClose):   "channel.close",
	Key(ClassChannel, MethodChannelCloseOk): "channel.close-ok",

	Key(ClassExchange, MethodExchangeDeclare):   "exchange.declare",
	Key(ClassExchange, MethodExchangeDeclareOk): "exchange.declare-ok",
	Key(ClassExchange, MethodExchangeDelete):    "exchange.delete",
	Key(ClassExchange, MethodExchangeDeleteOk):  "exchange.delete-ok",
	Key(ClassExchange, MethodExchangeBind):      "exchange.bind",
	Key(ClassExchange, MethodExchangeBindOk):    "exchange.bind-ok",
	Key(ClassExchange, MethodExchangeUnbind):    "exchange.unbind",
	Key(ClassExchange, MethodExchangeUnbindOk):  "exchange.unbind-ok",

	Key(ClassQueue, MethodQueueDeclare):   "queue.declare",
	Key(ClassQueue, MethodQueueDeclareOk): "queue.declare-ok",
	Key(ClassQueue, MethodQueueBind):      "queue.bind",
	Key(ClassQueue, MethodQueueBindOk):    "queue.bind-ok",
	Key(ClassQueue, MethodQueuePurge):     "queue.purge",
	Key(ClassQueue, MethodQueuePurgeOk):   "queue.purge-ok",
	Key(ClassQueue, MethodQueueDelete):    "queue.delete",
	Key(ClassQueue, MethodQueueDeleteOk):  "queue.delete-ok",
	Key(ClassQueue, MethodQueueUnbind):    "queue.unbind",
	Key(ClassQueue, MethodQueueUnbindOk):  "queue.unbind-ok",

	Key(ClassTx, MethodTxSelect):     "tx.select",
	Key(ClassTx, MethodTxSelectOk):   "tx.select-ok",
	Key(ClassTx, MethodTxCommit):     "tx.commit",
	Key(ClassTx, MethodTxCommitOk):   "tx.commit-ok",
	Key(ClassTx, MethodTxRollback):   "tx.rollback",
	Key(ClassTx, MethodTxRollbackOk): "tx.rollback-ok",
}
