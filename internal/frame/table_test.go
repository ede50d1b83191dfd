package frame

import (
	"bytes"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_RoundTrip(t *testing.T) {
	in := Table{
		"nil":     nil,
		"bool":    true,
		"byte":    byte(7),
		"int16":   int16(-2),
		"int32":   int32(-3),
		"int64":   int64(1 << 40),
		"float32": float32(1.5),
		"float64": 2.25,
		"decimal": amqp091.Decimal{Scale: 1, Value: 12},
		"string":  "value",
		"bytes":   []byte{1, 2, 3},
		"time":    time.Unix(1600000000, 0).UTC(),
		"array":   []interface{}{"a", int32(1), false},
		"table":   Table{"nested": "yes"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, in))

	out, err := readTable(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTable_IntEncodesAsLong(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, Table{"n": 5}))

	out, err := readTable(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, Table{"n": int64(5)}, out)
}

func TestTable_SortedKeys(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, writeTable(&a, Table{"b": "2", "a": "1", "c": "3"}))
	require.NoError(t, writeTable(&b, Table{"c": "3", "a": "1", "b": "2"}))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, nil))
	assert.Equal(t, []byte{0, 0, 0, 0}, buf.Bytes())

	out, err := readTable(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTable_ReadErrors(t *testing.T) {
	tt := []struct {
		Name  string
		Input []byte
	}{
		{"Truncated", []byte{0, 0, 0, 9, 1, 'k'}},
		{"UnknownField", []byte{0, 0, 0, 3, 1, 'k', 'Z'}},
		{"MissingValue", []byte{0, 0, 0, 3, 1, 'k', 'I'}},
		{"NoSize", []byte{0, 0}},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := readTable(bytes.NewReader(tc.Input))
			assert.Error(t, err)
		})
	}
}
