package frame

// ConnectionStart is sent by the broker to begin the handshake.
type ConnectionStart struct {
	VersionMajor     uint8
	VersionMinor     uint8
	ServerProperties Table
	Mechanisms       string
	Locales          string
}

func (*ConnectionStart) ID() (uint16, uint16) { return ClassConnection, MethodConnectionStart }

func (m *ConnectionStart) write(b *builder) {
	b.octet(m.VersionMajor)
	b.octet(m.VersionMinor)
	b.table(m.ServerProperties)
	b.longstr([]byte(m.Mechanisms))
	b.longstr([]byte(m.Locales))
}

func (m *ConnectionStart) read(r *reader) {
	m.VersionMajor = r.octet()
	m.VersionMinor = r.octet()
	m.ServerProperties = r.table()
	m.Mechanisms = string(r.longstr())
	m.Locales = string(r.longstr())
}

// ConnectionStartOk selects a security mechanism and carries the client response.
type ConnectionStartOk struct {
	ClientProperties Table
	Mechanism        string
	Response         string
	Locale           string
}

func (*ConnectionStartOk) ID() (uint16, uint16) { return ClassConnection, MethodConnectionStartOk }

func (m *ConnectionStartOk) write(b *builder) {
	b.table(m.ClientProperties)
	b.shortstr(m.Mechanism)
	b.longstr([]byte(m.Response))
	b.shortstr(m.Locale)
}

func (m *ConnectionStartOk) read(r *reader) {
	m.ClientProperties = r.table()
	m.Mechanism = r.shortstr()
	m.Response = string(r.longstr())
	m.Locale = r.shortstr()
}

// ConnectionTune proposes connection limits.
type ConnectionTune struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (*ConnectionTune) ID() (uint16, uint16) { return ClassConnection, MethodConnectionTune }

func (m *ConnectionTune) write(b *builder) {
	b.short(m.ChannelMax)
	b.long(m.FrameMax)
	b.short(m.Heartbeat)
}

func (m *ConnectionTune) read(r *reader) {
	m.ChannelMax = r.short()
	m.FrameMax = r.long()
	m.Heartbeat = r.short()
}

// ConnectionTuneOk carries the limits the client agreed to.
type ConnectionTuneOk struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (*ConnectionTuneOk) ID() (uint16, uint16) { return ClassConnection, MethodConnectionTuneOk }

func (m *ConnectionTuneOk) write(b *builder) {
	b.short(m.ChannelMax)
	b.long(m.FrameMax)
	b.short(m.Heartbeat)
}

func (m *ConnectionTuneOk) read(r *reader) {
	m.ChannelMax = r.short()
	m.FrameMax = r.long()
	m.Heartbeat = r.short()
}

// ConnectionOpen opens a virtual host.
type ConnectionOpen struct {
	VirtualHost string
}

func (*ConnectionOpen) ID() (uint16, uint16) { return ClassConnection, MethodConnectionOpen }

func (m *ConnectionOpen) write(b *builder) {
	b.shortstr(m.VirtualHost)
	b.shortstr("") // capabilities
	b.bit(false)   // insist
}

func (m *ConnectionOpen) read(r *reader) {
	m.VirtualHost = r.shortstr()
	_ = r.shortstr()
	_ = r.bit()
}

// ConnectionOpenOk signals the connection is ready.
type ConnectionOpenOk struct{}

func (*ConnectionOpenOk) ID() (uint16, uint16) { return ClassConnection, MethodConnectionOpenOk }

func (*ConnectionOpenOk) write(b *builder) { b.shortstr("") }

func (*ConnectionOpenOk) read(r *reader) { _ = r.shortstr() }

// ConnectionClose requests a connection close.
type ConnectionClose struct {
	ReplyCode uint16
	ReplyText string
	ClassID   uint16
	MethodID  uint16
}

func (*ConnectionClose) ID() (uint16, uint16) { return ClassConnection, MethodConnectionClose }

func (m *ConnectionClose) write(b *builder) {
	b.short(m.ReplyCode)
	b.shortstr(m.ReplyText)
	b.short(m.ClassID)
	b.short(m.MethodID)
}

func (m *ConnectionClose) read(r *reader) {
	m.ReplyCode = r.short()
	m.ReplyText = r.shortstr()
	m.ClassID = r.short()
	m.MethodID = r.short()
}

// ConnectionCloseOk confirms a connection close.
type ConnectionCloseOk struct{}

func (*ConnectionCloseOk) ID() (uint16, uint16) { return ClassConnection, MethodConnectionCloseOk }

func (*ConnectionCloseOk) write(*builder) {}

func (*ConnectionCloseOk) read(*reader) {}
