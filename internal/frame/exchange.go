package frame

// ExchangeDeclare creates an exchange, or verifies it exists when Passive is set.
type ExchangeDeclare struct {
	Exchange   string
	Type       string
	Passive    bool
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Arguments  Table
}

func (*ExchangeDeclare) ID() (uint16, uint16) { return ClassExchange, MethodExchangeDeclare }

func (m *ExchangeDeclare) write(b *builder) {
	b.short(0) // ticket
	b.shortstr(m.Exchange)
	b.shortstr(m.Type)
	b.bit(m.Passive)
	b.bit(m.Durable)
	b.bit(m.AutoDelete)
	b.bit(m.Internal)
	b.bit(m.NoWait)
	b.table(m.Arguments)
}

func (m *ExchangeDeclare) read(r *reader) {
	_ = r.short()
	m.Exchange = r.shortstr()
	m.Type = r.shortstr()
	m.Passive = r.bit()
	m.Durable = r.bit()
	m.AutoDelete = r.bit()
	m.Internal = r.bit()
	m.NoWait = r.bit()
	m.Arguments = r.table()
}

// ExchangeDeclareOk confirms an exchange declaration.
type ExchangeDeclareOk struct{}

func (*ExchangeDeclareOk) ID() (uint16, uint16) { return ClassExchange, MethodExchangeDeclareOk }

func (*ExchangeDeclareOk) write(*builder) {}

func (*ExchangeDeclareOk) read(*reader) {}

// ExchangeDelete removes an exchange.
type ExchangeDelete struct {
	Exchange string
	IfUnused bool
	NoWait   bool
}

func (*ExchangeDelete) ID() (uint16, uint16) { return ClassExchange, MethodExchangeDelete }

func (m *ExchangeDelete) write(b *builder) {
	b.short(0)
	b.shortstr(m.Exchange)
	b.bit(m.IfUnused)
	b.bit(m.NoWait)
}

func (m *ExchangeDelete) read(r *reader) {
	_ = r.short()
	m.Exchange = r.shortstr()
	m.IfUnused = r.bit()
	m.NoWait = r.bit()
}

// ExchangeDeleteOk confirms an exchange deletion.
type ExchangeDeleteOk struct{}

func (*ExchangeDeleteOk) ID() (uint16, uint16) { return ClassExchange, MethodExchangeDeleteOk }

func (*ExchangeDeleteOk) write(*builder) {}

func (*ExchangeDeleteOk) read(*reader) {}

// ExchangeBind binds Destination to Source.
type ExchangeBind struct {
	Destination string
	Source      string
	RoutingKey  string
	NoWait      bool
	Arguments   Table
}

func (*ExchangeBind) ID() (uint16, uint16) { return ClassExchange, MethodExchangeBind }

func (m *ExchangeBind) write(b *builder) {
	writeExchangeBinding(b, m.Destination, m.Source, m.RoutingKey, m.NoWait, m.Arguments)
}

func (m *ExchangeBind) read(r *reader) {
	m.Destination, m.Source, m.RoutingKey, m.NoWait, m.Arguments = readExchangeBinding(r)
}

// ExchangeBindOk confirms an exchange binding.
type ExchangeBindOk struct{}

func (*ExchangeBindOk) ID() (uint16, uint16) { return ClassExchange, MethodExchangeBindOk }

func (*ExchangeBindOk) write(*builder) {}

func (*ExchangeBindOk) read(*reader) {}

// ExchangeUnbind removes a binding between two exchanges.
type ExchangeUnbind struct {
	Destination string
	Source      string
	RoutingKey  string
	NoWait      bool
	Arguments   Table
}

func (*ExchangeUnbind) ID() (uint16, uint16) { return ClassExchange, MethodExchangeUnbind }

func (m *ExchangeUnbind) write(b *builder) {
	writeExchangeBinding(b, m.Destination, m.Source, m.RoutingKey, m.NoWait, m.Arguments)
}

func (m *ExchangeUnbind) read(r *reader) {
	m.Destination, m.Source, m.RoutingKey, m.NoWait, m.Arguments = readExchangeBinding(r)
}

// ExchangeUnbindOk confirms an exchange unbinding.
type ExchangeUnbindOk struct{}

func (*ExchangeUnbindOk) ID() (uint16, uint16) { return ClassExchange, MethodExchangeUnbindOk }

func (*ExchangeUnbindOk) write(*builder) {}

func (*ExchangeUnbindOk) read(*reader) {}

func writeExchangeBinding(b *builder, destination, source, key string, noWait bool, args Table) {
	b.short(0)
	b.shortstr(destination)
	b.shortstr(source)
	b.shortstr(key)
	b.bit(noWait)
	b.table(args)
}

func readExchangeBinding(r *reader) (destination, source, key string, noWait bool, args Table) {
	_ = r.short()
	destination = r.shortstr()
	source = r.shortstr()
	key = r.shortstr()
	noWait = r.bit()
	args = r.table()
	return
}
