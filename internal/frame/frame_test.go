package frame

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_MarshalBinary(t *testing.T) {
	f := &Frame{Type: TypeMethod, Channel: 3, Payload: []byte{0x00, 0x14, 0x00, 0x0A}}

	b, err := f.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x01,       // type
		0x00, 0x03, // channel
		0x00, 0x00, 0x00, 0x04, // size
		0x00, 0x14, 0x00, 0x0A, // payload
		0xCE, // end
	}, b)
	assert.Equal(t, len(b), f.Size())
}

func TestFrame_String(t *testing.T) {
	assert.Equal(t, "Frame{type=METHOD, channel=1, size=2}", (&Frame{Type: TypeMethod, Channel: 1, Payload: []byte{1, 2}}).String())
	assert.Equal(t, "Frame{type=UNKNOWN(9), channel=0, size=0}", (&Frame{Type: 9}).String())
}

func TestReader_ReadFrame(t *testing.T) {
	var buf bytes.Buffer
	frames := []*Frame{
		{Type: TypeMethod, Channel: 1, Payload: []byte{0x00, 0x14, 0x00, 0x0B, 0x00, 0x00, 0x00, 0x00}},
		{Type: TypeHeartbeat},
		{Type: TypeBody, Channel: 2, Payload: []byte("hello")},
	}
	for _, f := range frames {
		_, err := f.WriteTo(&buf)
		require.NoError(t, err)
	}

	r := NewReader(&buf, MinSize)
	for _, expected := range frames {
		f, err := r.ReadFrame()
		require.NoError(t, err)
		assert.Equal(t, expected.Type, f.Type)
		assert.Equal(t, expected.Channel, f.Channel)
		assert.Equal(t, len(expected.Payload), len(f.Payload))
	}

	_, err := r.ReadFrame()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_ReadFrameErrors(t *testing.T) {
	tt := []struct {
		Name  string
		Input []byte
		Max   uint32
		Error string
	}{
		{
			Name:  "InvalidType",
			Input: []byte{0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xCE},
			Error: "invalid frame type: 7",
		},
		{
			Name:  "InvalidEnd",
			Input: []byte{0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			Error: "invalid frame end marker: 0x00",
		},
		{
			Name:  "TooLarge",
			Input: []byte{0x03, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01},
			Error: "frame payload too large: 65537 > 4096",
		},
		{
			Name:  "ShortPayload",
			Input: []byte{0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x04, 0x01},
			Error: "read frame payload: unexpected EOF",
		},
		{
			Name:  "ShortHeader",
			Input: []byte{0x01, 0x00},
			Error: "read frame header: unexpected EOF",
		},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(tc.Input), tc.Max).ReadFrame()
			assert.EqualError(t, err, tc.Error)
		})
	}
}

func TestReader_SetMaxFrameSize(t *testing.T) {
	payload := make([]byte, MinSize+1)
	f := &Frame{Type: TypeBody, Channel: 1, Payload: payload}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.Bytes()

	_, err = NewReader(bytes.NewReader(raw), MinSize).ReadFrame()
	assert.Error(t, err)

	r := NewReader(bytes.NewReader(raw), MinSize)
	r.SetMaxFrameSize(1)
	r.SetMaxFrameSize(MinSize * 2)
	got, err := r.ReadFrame()
	require.NoError(t, err)
	assert.Len(t, got.Payload, MinSize+1)
}
