package frame

// QueueDeclare creates a queue, or verifies it exists when Passive is set.
type QueueDeclare struct {
	Queue      string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	NoWait     bool
	Arguments  Table
}

func (*QueueDeclare) ID() (uint16, uint16) { return ClassQueue, MethodQueueDeclare }

func (m *QueueDeclare) write(b *builder) {
	b.short(0) // ticket
	b.shortstr(m.Queue)
	b.bit(m.Passive)
	b.bit(m.Durable)
	b.bit(m.Exclusive)
	b.bit(m.AutoDelete)
	b.bit(m.NoWait)
	b.table(m.Arguments)
}

func (m *QueueDeclare) read(r *reader) {
	_ = r.short()
	m.Queue = r.shortstr()
	m.Passive = r.bit()
	m.Durable = r.bit()
	m.Exclusive = r.bit()
	m.AutoDelete = r.bit()
	m.NoWait = r.bit()
	m.Arguments = r.table()
}

// QueueDeclareOk carries the declared name and the broker's counters.
type QueueDeclareOk struct {
	Queue         string
	MessageCount  uint32
	ConsumerCount uint32
}

func (*QueueDeclareOk) ID() (uint16, uint16) { return ClassQueue, MethodQueueDeclareOk }

func (m *QueueDeclareOk) write(b *builder) {
	b.shortstr(m.Queue)
	b.long(m.MessageCount)
	b.long(m.ConsumerCount)
}

func (m *QueueDeclareOk) read(r *reader) {
	m.Queue = r.shortstr()
	m.MessageCount = r.long()
	m.ConsumerCount = r.long()
}

// QueueBind binds a queue to an exchange.
type QueueBind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	NoWait     bool
	Arguments  Table
}

func (*QueueBind) ID() (uint16, uint16) { return ClassQueue, MethodQueueBind }

func (m *QueueBind) write(b *builder) {
	b.short(0)
	b.shortstr(m.Queue)
	b.shortstr(m.Exchange)
	b.shortstr(m.RoutingKey)
	b.bit(m.NoWait)
	b.table(m.Arguments)
}

func (m *QueueBind) read(r *reader) {
	_ = r.short()
	m.Queue = r.shortstr()
	m.Exchange = r.shortstr()
	m.RoutingKey = r.shortstr()
	m.NoWait = r.bit()
	m.Arguments = r.table()
}

// QueueBindOk confirms a queue binding.
type QueueBindOk struct{}

func (*QueueBindOk) ID() (uint16, uint16) { return ClassQueue, MethodQueueBindOk }

func (*QueueBindOk) write(*builder) {}

func (*QueueBindOk) read(*reader) {}

// QueueUnbind removes a queue binding. It has no no-wait variant.
type QueueUnbind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	Arguments  Table
}

func (*QueueUnbind) ID() (uint16, uint16) { return ClassQueue, MethodQueueUnbind }

func (m *QueueUnbind) write(b *builder) {
	b.short(0)
	b.shortstr(m.Queue)
	b.shortstr(m.Exchange)
	b.shortstr(m.RoutingKey)
	b.table(m.Arguments)
}

func (m *QueueUnbind) read(r *reader) {
	_ = r.short()
	m.Queue = r.shortstr()
	m.Exchange = r.shortstr()
	m.RoutingKey = r.shortstr()
	m.Arguments = r.table()
}

// QueueUnbindOk confirms a queue unbinding.
type QueueUnbindOk struct{}

func (*QueueUnbindOk) ID() (uint16, uint16) { return ClassQueue, MethodQueueUnbindOk }

func (*QueueUnbindOk) write(*builder) {}

func (*QueueUnbindOk) read(*reader) {}

// QueuePurge removes all messages from a queue.
type QueuePurge struct {
	Queue  string
	NoWait bool
}

func (*QueuePurge) ID() (uint16, uint16) { return ClassQueue, MethodQueuePurge }

func (m *QueuePurge) write(b *builder) {
	b.short(0)
	b.shortstr(m.Queue)
	b.bit(m.NoWait)
}

func (m *QueuePurge) read(r *reader) {
	_ = r.short()
	m.Queue = r.shortstr()
	m.NoWait = r.bit()
}

// QueuePurgeOk carries the number of purged messages.
type QueuePurgeOk struct {
	MessageCount uint32
}

func (*QueuePurgeOk) ID() (uint16, uint16) { return ClassQueue, MethodQueuePurgeOk }

func (m *QueuePurgeOk) write(b *builder) { b.long(m.MessageCount) }

func (m *QueuePurgeOk) read(r *reader) { m.MessageCount = r.long() }

// QueueDelete removes a queue.
type QueueDelete struct {
	Queue    string
	IfUnused bool
	IfEmpty  bool
	NoWait   bool
}

func (*QueueDelete) ID() (uint16, uint16) { return ClassQueue, MethodQueueDelete }

func (m *QueueDelete) write(b *builder) {
	b.short(0)
	b.shortstr(m.Queue)
	b.bit(m.IfUnused)
	b.bit(m.IfEmpty)
	b.bit(m.NoWait)
}

func (m *QueueDelete) read(r *reader) {
	_ = r.short()
	m.Queue = r.shortstr()
	m.IfUnused = r.bit()
	m.IfEmpty = r.bit()
	m.NoWait = r.bit()
}

// QueueDeleteOk carries the number of messages deleted with the queue.
type QueueDeleteOk struct {
	MessageCount uint32
}

func (*QueueDeleteOk) ID() (uint16, uint16) { return ClassQueue, MethodQueueDeleteOk }

func (m *QueueDeleteOk) write(b *builder) { b.long(m.MessageCount) }

func (m *QueueDeleteOk) read(r *reader) { m.MessageCount = r.long() }
