package frame

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Table is the AMQP field table passed through from the caller.
type Table = amqp091.Table

// writeTable encodes t as a length-prefixed field table. Keys are written in
// sorted order so the same table always produces the same bytes.
func writeTable(w *bytes.Buffer, t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	var body bytes.Buffer
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if len(k) > 255 {
			return fmt.Errorf("table key too long: %q", k)
		}
		body.WriteByte(uint8(len(k)))
		body.WriteString(k)
		if err := writeField(&body, t[k]); err != nil {
			return fmt.Errorf("table field %q: %w", k, err)
		}
	}

	return writeLongBytes(w, body.Bytes())
}

func writeLongBytes(w *bytes.Buffer, p []byte) error {
	if uint64(len(p)) > math.MaxUint32 {
		return fmt.Errorf("field too large: %d bytes", len(p))
	}
	_ = binary.Write(w, binary.BigEndian, uint32(len(p)))
	w.Write(p)
	return nil
}

func writeField(w *bytes.Buffer, value interface{}) error {
	switch v := value.(type) {
	case nil:
		w.WriteByte('V')
	case bool:
		w.WriteByte('t')
		if v {
			w.WriteByte(1)
		} else {
			w.WriteByte(0)
		}
	case int8:
		w.WriteByte('b')
		w.WriteByte(byte(v))
	case uint8:
		w.WriteByte('B')
		w.WriteByte(v)
	case int16:
		w.WriteByte('s')
		_ = binary.Write(w, binary.BigEndian, v)
	case uint16:
		w.WriteByte('u')
		_ = binary.Write(w, binary.BigEndian, v)
	case int32:
		w.WriteByte('I')
		_ = binary.Write(w, binary.BigEndian, v)
	case uint32:
		w.WriteByte('i')
		_ = binary.Write(w, binary.BigEndian, v)
	case int:
		w.WriteByte('l')
		_ = binary.Write(w, binary.BigEndian, int64(v))
	case int64:
		w.WriteByte('l')
		_ = binary.Write(w, binary.BigEndian, v)
	case float32:
		w.WriteByte('f')
		_ = binary.Write(w, binary.BigEndian, v)
	case float64:
		w.WriteByte('d')
		_ = binary.Write(w, binary.BigEndian, v)
	case amqp091.Decimal:
		w.WriteByte('D')
		w.WriteByte(v.Scale)
		_ = binary.Write(w, binary.BigEndian, v.Value)
	case string:
		w.WriteByte('S')
		return writeLongBytes(w, []byte(v))
	case []byte:
		w.WriteByte('x')
		return writeLongBytes(w, v)
	case time.Time:
		w.WriteByte('T')
		_ = binary.Write(w, binary.BigEndian, uint64(v.Unix()))
	case []interface{}:
		w.WriteByte('A')
		var arr bytes.Buffer
		for _, item := range v {
			if err := writeField(&arr, item); err != nil {
				return err
			}
		}
		return writeLongBytes(w, arr.Bytes())
	case Table:
		w.WriteByte('F')
		return writeTable(w, v)
	default:
		return fmt.Errorf("unsupported field type %T", value)
	}
	return nil
}

// readTable decodes a length-prefixed field table.
func readTable(r *bytes.Reader) (Table, error) {
	var size uint32
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, err
	}
	if int64(size) > int64(r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	t := Table{}
	br := bytes.NewReader(body)
	for br.Len() > 0 {
		n, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		key := make([]byte, n)
		if _, err = io.ReadFull(br, key); err != nil {
			return nil, err
		}
		v, err := readField(br)
		if err != nil {
			return nil, fmt.Errorf("table field %q: %w", key, err)
		}
		t[string(key)] = v
	}
	return t, nil
}

func readLongBytes(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	if int64(n) > int64(r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	p := make([]byte, n)
	_, err := io.ReadFull(r, p)
	return p, err
}

func readField(r *bytes.Reader) (interface{}, error) {
	typ, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	read := func(v interface{}) error { return binary.Read(r, binary.BigEndian, v) }

	switch typ {
	case 'V':
		return nil, nil
	case 't':
		b, err := r.ReadByte()
		return b != 0, err
	case 'b':
		var v int8
		return v, read(&v)
	case 'B':
		var v uint8
		return v, read(&v)
	case 's':
		var v int16
		return v, read(&v)
	case 'u':
		var v uint16
		return v, read(&v)
	case 'I':
		var v int32
		return v, read(&v)
	case 'i':
		var v uint32
		return v, read(&v)
	case 'l':
		var v int64
		return v, read(&v)
	case 'f':
		var v float32
		return v, read(&v)
	case 'd':
		var v float64
		return v, read(&v)
	case 'D':
		var v amqp091.Decimal
		if err := read(&v.Scale); err != nil {
			return nil, err
		}
		return v, read(&v.Value)
	case 'S':
		p, err := readLongBytes(r)
		return string(p), err
	case 'x':
		return readLongBytes(r)
	case 'T':
		var v uint64
		if err := read(&v); err != nil {
			return nil, err
		}
		return time.Unix(int64(v), 0).UTC(), nil
	case 'A':
		p, err := readLongBytes(r)
		if err != nil {
			return nil, err
		}
		arr := []interface{}{}
		ar := bytes.NewReader(p)
		for ar.Len() > 0 {
			v, err := readField(ar)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case 'F':
		return readTable(r)
	}

	return nil, fmt.Errorf("unsupported field type %q", typ)
}
