package frame

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Frame is a single AMQP frame addressed to a channel.
type Frame struct {
	Type    uint8
	Channel uint16
	Payload []byte
}

// Size returns the number of bytes the frame occupies on the wire.
func (f *Frame) Size() int {
	return headerSize + len(f.Payload) + endSize
}

// MarshalBinary returns the wire representation of the frame.
func (f *Frame) MarshalBinary() ([]byte, error) {
	if uint64(len(f.Payload)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("frame payload too large: %d", len(f.Payload))
	}

	buf := make([]byte, f.Size())
	buf[0] = f.Type
	binary.BigEndian.PutUint16(buf[1:3], f.Channel)
	binary.BigEndian.PutUint32(buf[3:7], uint32(len(f.Payload)))
	copy(buf[headerSize:], f.Payload)
	buf[len(buf)-1] = end
	return buf, nil
}

// WriteTo writes the frame to w in a single call.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	buf, err := f.MarshalBinary()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(buf)
	return int64(n), err
}

// String returns a short description of the frame.
func (f *Frame) String() string {
	var typ string
	switch f.Type {
	case TypeMethod:
		typ = "METHOD"
	case TypeHeader:
		typ = "HEADER"
	case TypeBody:
		typ = "BODY"
	case TypeHeartbeat:
		typ = "HEARTBEAT"
	default:
		typ = fmt.Sprintf("UNKNOWN(%d)", f.Type)
	}

	return fmt.Sprintf("Frame{type=%s, channel=%d, size=%d}", typ, f.Channel, len(f.Payload))
}

// Reader reads frames from a connection.
type Reader struct {
	r        *bufio.Reader
	maxFrame uint32
	header   [headerSize]byte
}

// NewReader creates a frame reader, frames larger than maxFrame are rejected.
func NewReader(r io.Reader, maxFrame uint32) *Reader {
	if maxFrame < MinSize {
		maxFrame = MinSize
	}

	return &Reader{r: bufio.NewReader(r), maxFrame: maxFrame}
}

// SetMaxFrameSize updates the negotiated frame-max.
func (fr *Reader) SetMaxFrameSize(size uint32) {
	if size >= MinSize {
		fr.maxFrame = size
	}
}

// ReadFrame reads a single frame.
func (fr *Reader) ReadFrame() (*Frame, error) {
	if _, err := io.ReadFull(fr.r, fr.header[:]); err != nil {
		return nil, fmt.Errorf("read frame header: %w", err)
	}

	typ := fr.header[0]
	switch typ {
	case TypeMethod, TypeHeader, TypeBody, TypeHeartbeat:
	default:
		return nil, fmt.Errorf("invalid frame type: %d", typ)
	}

	size := binary.BigEndian.Uint32(fr.header[3:7])
	if size > fr.maxFrame {
		return nil, fmt.Errorf("frame payload too large: %d > %d", size, fr.maxFrame)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		return nil, fmt.Errorf("read frame payload: %w", err)
	}

	marker, err := fr.r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read frame end: %w", err)
	}
	if marker != end {
		return nil, fmt.Errorf("invalid frame end marker: 0x%02X", marker)
	}

	return &Frame{
		Type:    typ,
		Channel: binary.BigEndian.Uint16(fr.header[1:3]),
		Payload: payload,
	}, nil
}
