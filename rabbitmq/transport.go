package rabbitmq

import (
	"io"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// the file contains the seams to the outside world, this is so we can easily override in tests.

const (
	defaultConnectionTimeout = 30 * time.Second
	defaultChannelMax        = (2 << 10) - 1
	defaultFrameMax          = 128 << 10
	defaultLocale            = "en_US"
)

var (
	// dial is the dialer used when Config.Dial is not set.
	dial = func(network, addr string) (net.Conn, error) {
		return net.DialTimeout(network, addr, defaultConnectionTimeout)
	}
	// parseURI parses amqp:// urls.
	parseURI = amqp091.ParseURI
	// closeTimeout how long Close waits for the broker to confirm.
	closeTimeout = 3 * time.Second
)

// transport is the socket the connection reads frames from and writes frames to,
// net.Conn satisfies it.
type transport interface {
	io.ReadWriteCloser
}
