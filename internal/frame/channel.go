package frame

// ChannelOpen opens a channel.
type ChannelOpen struct{}

func (*ChannelOpen) ID() (uint16, uint16) { return ClassChannel, MethodChannelOpen }

func (*ChannelOpen) write(b *builder) { b.shortstr("") }

func (*ChannelOpen) read(r *reader) { _ = r.shortstr() }

// ChannelOpenOk signals the channel is ready.
type ChannelOpenOk struct{}

func (*ChannelOpenOk) ID() (uint16, uint16) { return ClassChannel, MethodChannelOpenOk }

func (*ChannelOpenOk) write(b *builder) { b.longstr(nil) }

func (*ChannelOpenOk) read(r *reader) { _ = r.longstr() }

// ChannelFlow asks the peer to pause or restart sending content.
type ChannelFlow struct {
	Active bool
}

func (*ChannelFlow) ID() (uint16, uint16) { return ClassChannel, MethodChannelFlow }

func (m *ChannelFlow) write(b *builder) { b.bit(m.Active) }

func (m *ChannelFlow) read(r *reader) { m.Active = r.bit() }

// ChannelFlowOk confirms a flow request.
type ChannelFlowOk struct {
	Active bool
}

func (*ChannelFlowOk) ID() (uint16, uint16) { return ClassChannel, MethodChannelFlowOk }

func (m *ChannelFlowOk) write(b *builder) { b.bit(m.Active) }

func (m *ChannelFlowOk) read(r *reader) { m.Active = r.bit() }

// ChannelClose requests a channel close, from either peer.
type ChannelClose struct {
	ReplyCode uint16
	ReplyText string
	ClassID   uint16
	MethodID  uint16
}

func (*ChannelClose) ID() (uint16, uint16) { return ClassChannel, MethodChannelClose }

func (m *ChannelClose) write(b *builder) {
	b.short(m.ReplyCode)
	b.shortstr(m.ReplyText)
	b.short(m.ClassID)
	b.short(m.MethodID)
}

func (m *ChannelClose) read(r *reader) {
	m.ReplyCode = r.short()
	m.ReplyText = r.shortstr()
	m.ClassID = r.short()
	m.MethodID = r.short()
}

// ChannelCloseOk confirms a channel close.
type ChannelCloseOk struct{}

func (*ChannelCloseOk) ID() (uint16, uint16) { return ClassChannel, MethodChannelCloseOk }

func (*ChannelCloseOk) write(*builder) {}

func (*ChannelCloseOk) read(*reader) {}
