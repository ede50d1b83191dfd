package frame

// ProtocolHeader is sent by the client before any frame on a new connection.
const ProtocolHeader = "AMQP\x00\x00\x09\x01"

// frame types.
const (
	TypeMethod    uint8 = 1
	TypeHeader    uint8 = 2
	TypeBody      uint8 = 3
	TypeHeartbeat uint8 = 8
)

const (
	headerSize = 7    // type (1) + channel (2) + payload size (4)
	endSize    = 1    // frame-end octet
	end        = 0xCE // frame-end marker

	// MinSize is the smallest frame-max a peer may negotiate.
	MinSize = 4096
)

// ReplySuccess is the reply code used for a normal close.
const ReplySuccess = 200

// class identifiers.
const (
	ClassConnection uint16 = 10
	ClassChannel    uint16 = 20
	ClassExchange   uint16 = 40
	ClassQueue      uint16 = 50
	ClassTx         uint16 = 90
)

// connection methods.
const (
	MethodConnectionStart   uint16 = 10
	MethodConnectionStartOk uint16 = 11
	MethodConnectionTune    uint16 = 30
	MethodConnectionTuneOk  uint16 = 31
	MethodConnectionOpen    uint16 = 40
	MethodConnectionOpenOk  uint16 = 41
	MethodConnectionClose   uint16 = 50
	MethodConnectionCloseOk uint16 = 51
)

// channel methods.
const (
	MethodChannelOpen    uint16 = 10
	MethodChannelOpenOk  uint16 = 11
	MethodChannelFlow    uint16 = 20
	MethodChannelFlowOk  uint16 = 21
	MethodChannelClose   uint16 = 40
	MethodChannelCloseOk uint16 = 41
)

// exchange methods. unbind-ok is 51, not 41.
const (
	MethodExchangeDeclare   uint16 = 10
	MethodExchangeDeclareOk uint16 = 11
	MethodExchangeDelete    uint16 = 20
	MethodExchangeDeleteOk  uint16 = 21
	MethodExchangeBind      uint16 = 30
	MethodExchangeBindOk    uint16 = 31
	MethodExchangeUnbind    uint16 = 40
	MethodExchangeUnbindOk  uint16 = 51
)

// queue methods.
const (
	MethodQueueDeclare   uint16 = 10
	MethodQueueDeclareOk uint16 = 11
	MethodQueueBind      uint16 = 20
	MethodQueueBindOk    uint16 = 21
	MethodQueuePurge     uint16 = 30
	MethodQueuePurgeOk   uint16 = 31
	MethodQueueDelete    uint16 = 40
	MethodQueueDeleteOk  uint16 = 41
	MethodQueueUnbind    uint16 = 50
	MethodQueueUnbindOk  uint16 = 51
)

// tx methods.
const (
	MethodTxSelect     uint16 = 10
	MethodTxSelectOk   uint16 = 11
	MethodTxCommit     uint16 = 20
	MethodTxCommitOk   uint16 = 21
	MethodTxRollback   uint16 = 30
	MethodTxRollbackOk uint16 = 31
)
