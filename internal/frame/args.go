package frame

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// builder writes method arguments. The first error is kept and every
// subsequent write becomes a no-op.
type builder struct {
	buf  bytes.Buffer
	err  error
	bits []bool
}

func (b *builder) flushBits() {
	if len(b.bits) == 0 {
		return
	}

	// bits are packed LSB first, eight per octet.
	var packed byte
	for i, bit := range b.bits {
		if bit {
			packed |= 1 << uint(i%8)
		}
		if i%8 == 7 || i == len(b.bits)-1 {
			b.buf.WriteByte(packed)
			packed = 0
		}
	}
	b.bits = b.bits[:0]
}

func (b *builder) octet(v uint8) {
	b.flushBits()
	b.buf.WriteByte(v)
}

func (b *builder) short(v uint16) {
	b.flushBits()
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
}

func (b *builder) long(v uint32) {
	b.flushBits()
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
}

func (b *builder) shortstr(s string) {
	b.flushBits()
	if b.err != nil {
		return
	}
	if len(s) > 255 {
		b.err = fmt.Errorf("short string too long: %d bytes", len(s))
		return
	}
	b.buf.WriteByte(uint8(len(s)))
	b.buf.WriteString(s)
}

func (b *builder) longstr(s []byte) {
	b.long(uint32(len(s)))
	b.buf.Write(s)
}

// bit queues a single bit; consecutive bits share octets.
func (b *builder) bit(v bool) {
	b.bits = append(b.bits, v)
}

func (b *builder) table(t Table) {
	b.flushBits()
	if b.err != nil {
		return
	}
	b.err = writeTable(&b.buf, t)
}

func (b *builder) bytes() ([]byte, error) {
	b.flushBits()
	if b.err != nil {
		return nil, b.err
	}
	return b.buf.Bytes(), nil
}

// reader reads method arguments with the same sticky error rule as builder.
type reader struct {
	r    *bytes.Reader
	err  error
	bits byte
	left int // bits remaining in the current octet
}

func newReader(p []byte) *reader {
	return &reader{r: bytes.NewReader(p)}
}

func (r *reader) read(v interface{}) {
	r.left = 0
	if r.err != nil {
		return
	}
	r.err = binary.Read(r.r, binary.BigEndian, v)
}

func (r *reader) octet() (v uint8) {
	r.read(&v)
	return v
}

func (r *reader) short() (v uint16) {
	r.read(&v)
	return v
}

func (r *reader) long() (v uint32) {
	r.read(&v)
	return v
}

func (r *reader) shortstr() string {
	n := r.octet()
	if r.err != nil {
		return ""
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return string(buf)
}

func (r *reader) longstr() []byte {
	n := r.long()
	if r.err != nil {
		return nil
	}
	if int64(n) > int64(r.r.Len()) {
		r.err = io.ErrUnexpectedEOF
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func (r *reader) bit() bool {
	if r.err != nil {
		return false
	}
	if r.left == 0 {
		var b byte
		if b, r.err = r.r.ReadByte(); r.err != nil {
			return false
		}
		r.bits, r.left = b, 8
	}
	v := r.bits&1 == 1
	r.bits >>= 1
	r.left--
	return v
}

func (r *reader) table() Table {
	r.left = 0
	if r.err != nil {
		return nil
	}
	var t Table
	t, r.err = readTable(r.r)
	return t
}
