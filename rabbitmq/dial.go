package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"syscall"

	"github.com/cenkalti/backoff/v4"
	"github.com/rabbitmq/amqp091-go"

	amqp "github.com/jacklaaa89/go-amqp-channel"
	"github.com/jacklaaa89/go-amqp-channel/internal/frame"
)

// helper types exposed from the underlined SDK package.

type (
	Config         = amqp091.Config
	Authentication = amqp091.Authentication
	PlainAuth      = amqp091.PlainAuth
)

// DialConfig attempts to connect to a rabbitmq broker using an amqp:// url while also
// supplying Config to define authentication etc.
func DialConfig(ctx context.Context, addr string, c Config) amqp.Dialer { //nolint // config has to be non-pointer to conform to amqp091.
	return func() (amqp.Connection, error) {
		return open(ctx, addr, c)
	}
}

// Dial attempts to connect to a rabbitmq broker using an amqp:// url.
func Dial(ctx context.Context, addr string) amqp.Dialer {
	return DialConfig(ctx, addr, Config{Locale: defaultLocale})
}

// open dials the broker, retrying with backoff, and performs the connection handshake.
func open(ctx context.Context, addr string, cfg Config) (amqp.Connection, error) { //nolint // see DialConfig.
	uri, err := parseURI(addr)
	if err != nil {
		return nil, err
	}

	if cfg.SASL == nil {
		cfg.SASL = []Authentication{&PlainAuth{Username: uri.Username, Password: uri.Password}}
	}
	if cfg.Vhost == "" {
		cfg.Vhost = uri.Vhost
	}
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}

	dialer := cfg.Dial
	if dialer == nil {
		dialer = dial
	}

	hostport := net.JoinHostPort(uri.Host, strconv.FormatInt(int64(uri.Port), 10))

	var conn amqp.Connection
	err = backoff.Retry(func() error {
		t, err := dialer("tcp", hostport)
		if err != nil {
			return err
		}

		c, err := handshake(ctx, t, cfg)
		if err != nil {
			_ = t.Close()
			// a refused login or vhost is not going to succeed on the next attempt.
			var aerr *amqp091.Error
			if errors.As(err, &aerr) && aerr.Code == amqp091.AccessRefused {
				return backoff.Permanent(err)
			}
			return err
		}

		conn = c
		return nil
	}, newBackoff(ctx))
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// handshake negotiates the connection on a freshly dialed transport and starts the read loop.
func handshake(ctx context.Context, t transport, cfg Config) (*connection, error) { //nolint // see DialConfig.
	if _, err := t.Write([]byte(frame.ProtocolHeader)); err != nil {
		return nil, fmt.Errorf("write protocol header: %w", err)
	}

	r := frame.NewReader(t, frame.MinSize)

	start := &frame.ConnectionStart{}
	if err := expect(r, start); err != nil {
		return nil, err
	}
	if start.VersionMajor != 0 || start.VersionMinor != 9 {
		return nil, amqp091.ErrSyntax
	}

	auth, ok := pickSASLMechanism(cfg.SASL, strings.Split(start.Mechanisms, " "))
	if !ok {
		return nil, amqp091.ErrSASL
	}

	if err := write(t, &frame.ConnectionStartOk{
		ClientProperties: clientProperties(cfg.Properties),
		Mechanism:        auth.Mechanism(),
		Response:         auth.Response(),
		Locale:           cfg.Locale,
	}); err != nil {
		return nil, err
	}

	// the broker closes the socket on bad credentials.
	tune := &frame.ConnectionTune{}
	if err := expect(r, tune); err != nil {
		return nil, handshakeFailure("connection.tune", err, amqp091.ErrCredentials)
	}

	channelMax := negotiate(uint32(cfg.ChannelMax), uint32(tune.ChannelMax))
	if channelMax == 0 || channelMax > defaultChannelMax {
		channelMax = defaultChannelMax
	}
	frameMax := negotiate(uint32(cfg.FrameSize), tune.FrameMax)
	if frameMax == 0 {
		frameMax = defaultFrameMax
	}

	// heartbeats are not sent, so they are disabled.
	if err := write(t, &frame.ConnectionTuneOk{
		ChannelMax: uint16(channelMax),
		FrameMax:   frameMax,
		Heartbeat:  0,
	}); err != nil {
		return nil, err
	}

	r.SetMaxFrameSize(frameMax)

	if err := write(t, &frame.ConnectionOpen{VirtualHost: cfg.Vhost}); err != nil {
		return nil, err
	}
	if err := expect(r, &frame.ConnectionOpenOk{}); err != nil {
		return nil, handshakeFailure("connection.open-ok", err, amqp091.ErrVhost)
	}

	c := newConnection(ctx, t, r, uint16(channelMax), frameMax)
	go c.background()
	return c, nil
}

// handshakeFailure maps a failed handshake read. A connection.close from the broker keeps
// its reply code, a dropped socket becomes dropped.
func handshakeFailure(method string, err error, dropped *amqp091.Error) error {
	var cerr amqp.Error
	switch {
	case errors.As(err, &cerr):
		return err
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, syscall.ECONNRESET):
		return dropped
	}
	return fmt.Errorf("read %s: %w", method, err)
}

// write sends a connection level method.
func write(t transport, m frame.Method) error {
	f, err := frame.Encode(0, m)
	if err != nil {
		return err
	}
	_, err = f.WriteTo(t)
	return err
}

// expect reads the next method into m, failing when the broker sends anything else.
func expect(r *frame.Reader, m frame.Method) error {
	f, err := r.ReadFrame()
	if err != nil {
		return err
	}

	got, err := frame.Decode(f)
	if err != nil {
		return err
	}

	if frame.KeyOf(got) != frame.KeyOf(m) {
		if cl, ok := got.(*frame.ConnectionClose); ok {
			return newError(cl.ReplyCode, cl.ReplyText, true)
		}
		return fmt.Errorf("expected %s, got %s", frame.Name(frame.KeyOf(m)), frame.Name(frame.KeyOf(got)))
	}

	return copyMethod(m, got)
}

// copyMethod copies the decoded method into the caller's value.
func copyMethod(dst, src frame.Method) error {
	switch d := dst.(type) {
	case *frame.ConnectionStart:
		*d = *src.(*frame.ConnectionStart)
	case *frame.ConnectionTune:
		*d = *src.(*frame.ConnectionTune)
	case *frame.ConnectionOpenOk:
	default:
		return fmt.Errorf("unsupported handshake method %s", frame.Name(frame.KeyOf(dst)))
	}
	return nil
}

// pickSASLMechanism returns the first client mechanism the broker supports.
func pickSASLMechanism(client []Authentication, server []string) (Authentication, bool) {
	for _, auth := range client {
		for _, mech := range server {
			if auth.Mechanism() == mech {
				return auth, true
			}
		}
	}
	return nil, false
}

// negotiate picks the lowest non zero limit.
func negotiate(client, server uint32) uint32 {
	if client == 0 || (server != 0 && server < client) {
		return server
	}
	return client
}

// clientProperties merges user supplied properties with the defaults.
func clientProperties(props amqp091.Table) amqp091.Table {
	out := amqp091.Table{
		"product":  "go-amqp-channel",
		"platform": "golang",
	}
	for k, v := range props {
		out[k] = v
	}
	return out
}
