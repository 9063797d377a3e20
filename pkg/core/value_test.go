package core_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdb/pkg/core"
)

func TestIntegerFromUint64(t *testing.T) {
	tests := []struct {
		name     string
		input    uint64
		wantKind core.Kind
		wantInt  int64
		wantText string
	}{
		{
			name:     "zero",
			input:    0,
			wantKind: core.KindInteger,
			wantInt:  0,
		},
		{
			name:     "max int64 still integer",
			input:    math.MaxInt64,
			wantKind: core.KindInteger,
			wantInt:  math.MaxInt64,
		},
		{
			name:     "one past int64 degrades to exact decimal text",
			input:    math.MaxInt64 + 1,
			wantKind: core.KindText,
			wantText: "9223372036854775808",
		},
		{
			name:     "max uint64 degrades to exact decimal text",
			input:    math.MaxUint64,
			wantKind: core.KindText,
			wantText: "18446744073709551615",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := core.IntegerFromUint64(tt.input)
			require.Equal(t, tt.wantKind, v.Kind)
			if tt.wantKind == core.KindInteger {
				assert.Equal(t, tt.wantInt, v.Int)
			} else {
				assert.Equal(t, tt.wantText, v.Text)
			}
		})
	}
}

func TestIntegerFromDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind core.Kind
		wantInt  int64
		wantText string
	}{
		{name: "small", input: "42", wantKind: core.KindInteger, wantInt: 42},
		{name: "negative", input: "-7", wantKind: core.KindInteger, wantInt: -7},
		{
			name:     "max int64",
			input:    "9223372036854775807",
			wantKind: core.KindInteger,
			wantInt:  math.MaxInt64,
		},
		{
			name:     "beyond int64 keeps exact digits",
			input:    "9223372036854775808",
			wantKind: core.KindText,
			wantText: "9223372036854775808",
		},
		{
			name:     "non-numeric passes through as text",
			input:    "3.5",
			wantKind: core.KindText,
			wantText: "3.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := core.IntegerFromDecimal(tt.input)
			require.Equal(t, tt.wantKind, v.Kind)
			if tt.wantKind == core.KindInteger {
				assert.Equal(t, tt.wantInt, v.Int)
			} else {
				assert.Equal(t, tt.wantText, v.Text)
			}
		})
	}
}

func TestBinaryValuePreviewLimits(t *testing.T) {
	tests := []struct {
		name          string
		data          []byte
		wantHexLen    int
		wantTruncated bool
	}{
		{name: "empty", data: nil, wantHexLen: 0, wantTruncated: false},
		{name: "short", data: []byte{0xDE, 0xAD}, wantHexLen: 4, wantTruncated: false},
		{
			name:          "exactly at limit",
			data:          bytes.Repeat([]byte{0x41}, core.BinaryPreviewLimit),
			wantHexLen:    core.BinaryPreviewLimit * 2,
			wantTruncated: false,
		},
		{
			name:          "one past limit",
			data:          bytes.Repeat([]byte{0x41}, core.BinaryPreviewLimit+1),
			wantHexLen:    core.BinaryPreviewLimit * 2,
			wantTruncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := core.BinaryValue(tt.data)
			require.Equal(t, core.KindBinary, v.Kind)
			assert.Len(t, v.Hex, tt.wantHexLen)
			assert.Equal(t, tt.wantTruncated, v.Truncated)
			assert.Equal(t, len(tt.data), v.ByteLen)
			assert.False(t, v.Unrecognized)
		})
	}
}

func TestBinaryValueHexIsUppercase(t *testing.T) {
	v := core.BinaryValue([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	assert.Equal(t, "DEADBEEF", v.Hex)
}

func TestUnknownBinaryValue(t *testing.T) {
	full := core.UnknownBinaryValue(bytes.Repeat([]byte{0x00}, core.UnknownBinaryPreviewLimit))
	require.Equal(t, core.KindBinary, full.Kind)
	assert.True(t, full.Unrecognized)
	assert.False(t, full.Truncated)
	assert.Len(t, full.Hex, core.UnknownBinaryPreviewLimit*2)

	over := core.UnknownBinaryValue(bytes.Repeat([]byte{0x00}, core.UnknownBinaryPreviewLimit+1))
	assert.True(t, over.Truncated)
	assert.Len(t, over.Hex, core.UnknownBinaryPreviewLimit*2)
	assert.Equal(t, core.UnknownBinaryPreviewLimit+1, over.ByteLen)
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name  string
		value core.Value
		want  string
	}{
		{name: "null", value: core.Null(), want: "NULL"},
		{name: "zero value is null", value: core.Value{}, want: "NULL"},
		{name: "bool", value: core.BoolValue(true), want: "true"},
		{name: "integer", value: core.IntegerValue(-42), want: "-42"},
		{name: "float", value: core.FloatValue(1.5), want: "1.5"},
		{name: "float whole number", value: core.FloatValue(3), want: "3"},
		{name: "text", value: core.TextValue("hello"), want: "hello"},
		{
			name:  "binary short",
			value: core.BinaryValue([]byte{0xDE, 0xAD, 0xBE, 0xEF}),
			want:  "0xDEADBEEF",
		},
		{
			name:  "binary truncated appends true length",
			value: core.BinaryValue(bytes.Repeat([]byte{0xAB}, 40)),
			want:  "0x" + strings.Repeat("AB", 32) + "... (40 bytes)",
		},
		{
			name:  "unrecognized binary short",
			value: core.UnknownBinaryValue([]byte{0x01, 0x02, 0x03}),
			want:  "[BLOB: 0x010203]",
		},
		{
			name:  "unrecognized binary truncated",
			value: core.UnknownBinaryValue(bytes.Repeat([]byte{0x01}, 20)),
			want:  "[BLOB: 0x" + strings.Repeat("01", 16) + "...]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value core.Value
		want  string
	}{
		{name: "null", value: core.Null(), want: `null`},
		{name: "bool", value: core.BoolValue(false), want: `false`},
		{name: "integer", value: core.IntegerValue(7), want: `7`},
		{name: "float", value: core.FloatValue(2.5), want: `2.5`},
		{name: "nan becomes null", value: core.FloatValue(math.NaN()), want: `null`},
		{name: "positive infinity becomes null", value: core.FloatValue(math.Inf(1)), want: `null`},
		{name: "text", value: core.TextValue("a\"b"), want: `"a\"b"`},
		{
			name:  "binary",
			value: core.BinaryValue([]byte{0xAB}),
			want:  `{"hex":"AB","length":1,"truncated":false}`,
		},
		{
			name:  "unrecognized binary",
			value: core.UnknownBinaryValue(bytes.Repeat([]byte{0xFF}, 17)),
			want:  `{"hex":"` + strings.Repeat("FF", 16) + `","length":17,"truncated":true,"unrecognized":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestResultSetRoundTrip(t *testing.T) {
	rs := &core.ResultSet{Columns: []string{"id", "name"}}
	rs.Append(core.Row{core.IntegerValue(1), core.TextValue("alpha")})
	rs.Append(core.Row{core.IntegerValue(2), core.Null()})

	require.Len(t, rs.Rows, 2)
	assert.Equal(t, 0, rs.ColumnIndex("id"))
	assert.Equal(t, 1, rs.ColumnIndex("name"))
	assert.Equal(t, -1, rs.ColumnIndex("missing"))

	got, err := json.Marshal(rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["id","name"],"rows":[[1,"alpha"],[2,null]]}`, string(got))
}
