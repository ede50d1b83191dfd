package amqp

// Handler receives the lifecycle and completion events of a Channel.
//
// Events are delivered one at a time, in the order the broker replied, which is the order the
// requests were issued. Handler methods may call back into the channel.
type Handler interface {
	// OnReady fires when the broker has opened the channel.
	OnReady(ch Channel)
	// OnClosed fires when the broker confirmed a close requested through Channel.Close.
	OnClosed(ch Channel)
	// OnError fires when the channel was closed because of an error, the channel is unusable.
	OnError(ch Channel, err Error)
	// OnPaused fires when delivery on the channel has been paused.
	OnPaused(ch Channel)
	// OnResumed fires when delivery on the channel has been resumed.
	OnResumed(ch Channel)

	// OnTransactionStarted fires when the broker acknowledged StartTransaction.
	OnTransactionStarted(ch Channel)
	// OnTransactionCommitted fires when the broker acknowledged CommitTransaction.
	OnTransactionCommitted(ch Channel)
	// OnTransactionRolledBack fires when the broker acknowledged RollbackTransaction.
	OnTransactionRolledBack(ch Channel)

	// OnExchangeDeclared fires when the broker acknowledged DeclareExchange.
	OnExchangeDeclared(ch Channel)
	// OnExchangeDeleted fires when the broker acknowledged RemoveExchange.
	OnExchangeDeleted(ch Channel)
	// OnExchangeBound fires when the broker acknowledged BindExchange.
	OnExchangeBound(ch Channel)
	// OnExchangeUnbound fires when the broker acknowledged UnbindExchange.
	OnExchangeUnbound(ch Channel)

	// OnQueueDeclared carries the queue name, which is broker generated when an empty name was
	// declared, and the broker's message and consumer counters.
	OnQueueDeclared(ch Channel, name string, messageCount, consumerCount uint32)
	// OnQueueBound fires when the broker acknowledged BindQueue.
	OnQueueBound(ch Channel)
	// OnQueueUnbound fires when the broker acknowledged UnbindQueue.
	OnQueueUnbound(ch Channel)
	// OnQueueDeleted carries the number of messages deleted with the queue.
	OnQueueDeleted(ch Channel, messageCount uint32)
	// OnQueuePurged carries the number of messages purged.
	OnQueuePurged(ch Channel, messageCount uint32)
}

// HandlerFuncs implements Handler with optional function fields,
// a nil field ignores the event.
type HandlerFuncs struct {
	Ready   func(ch Channel)
	Closed  func(ch Channel)
	Error   func(ch Channel, err Error)
	Paused  func(ch Channel)
	Resumed func(ch Channel)

	TransactionStarted    func(ch Channel)
	TransactionCommitted  func(ch Channel)
	TransactionRolledBack func(ch Channel)

	ExchangeDeclared func(ch Channel)
	ExchangeDeleted  func(ch Channel)
	ExchangeBound    func(ch Channel)
	ExchangeUnbound  func(ch Channel)

	QueueDeclared func(ch Channel, name string, messageCount, consumerCount uint32)
	QueueBound    func(ch Channel)
	QueueUnbound  func(ch Channel)
	QueueDeleted  func(ch Channel, messageCount uint32)
	QueuePurged   func(ch Channel, messageCount uint32)
}

var _ Handler = (*HandlerFuncs)(nil)

func call(fn func(Channel), ch Channel) {
	if fn != nil {
		fn(ch)
	}
}

func (h *HandlerFuncs) OnReady(ch Channel)   { call(h.Ready, ch) }
func (h *HandlerFuncs) OnClosed(ch Channel)  { call(h.Closed, ch) }
func (h *HandlerFuncs) OnPaused(ch Channel)  { call(h.Paused, ch) }
func (h *HandlerFuncs) OnResumed(ch Channel) { call(h.Resumed, ch) }

func (h *HandlerFuncs) OnError(ch Channel, err Error) {
	if h.Error != nil {
		h.Error(ch, err)
	}
}

func (h *HandlerFuncs) OnTransactionStarted(ch Channel)    { call(h.TransactionStarted, ch) }
func (h *HandlerFuncs) OnTransactionCommitted(ch Channel)  { call(h.TransactionCommitted, ch) }
func (h *HandlerFuncs) OnTransactionRolledBack(ch Channel) { call(h.TransactionRolledBack, ch) }

func (h *HandlerFuncs) OnExchangeDeclared(ch Channel) { call(h.ExchangeDeclared, ch) }
func (h *HandlerFuncs) OnExchangeDeleted(ch Channel)  { call(h.ExchangeDeleted, ch) }
func (h *HandlerFuncs) OnExchangeBound(ch Channel)    { call(h.ExchangeBound, ch) }
func (h *HandlerFuncs) OnExchangeUnbound(ch Channel)  { call(h.ExchangeUnbound, ch) }

func (h *HandlerFuncs) OnQueueDeclared(ch Channel, name string, messageCount, consumerCount uint32) {
	if h.QueueDeclared != nil {
		h.QueueDeclared(ch, name, messageCount, consumerCount)
	}
}

func (h *HandlerFuncs) OnQueueBound(ch Channel)   { call(h.QueueBound, ch) }
func (h *HandlerFuncs) OnQueueUnbound(ch Channel) { call(h.QueueUnbound, ch) }

func (h *HandlerFuncs) OnQueueDeleted(ch Channel, messageCount uint32) {
	if h.QueueDeleted != nil {
		h.QueueDeleted(ch, messageCount)
	}
}

func (h *HandlerFuncs) OnQueuePurged(ch Channel, messageCount uint32) {
	if h.QueuePurged != nil {
		h.QueuePurged(ch, messageCount)
	}
}
