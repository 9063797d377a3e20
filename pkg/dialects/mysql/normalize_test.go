package mysql

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdb/pkg/core"
)

func TestNormalizeTagRouting(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		raw  any
		want core.Value
	}{
		{name: "tinyint", tag: "TINYINT", raw: int64(1), want: core.IntegerValue(1)},
		{name: "bigint text protocol", tag: "BIGINT", raw: []byte("-12"), want: core.IntegerValue(-12)},
		{
			name: "unsigned bigint beyond int64",
			tag:  "UNSIGNED BIGINT",
			raw:  uint64(math.MaxUint64),
			want: core.TextValue("18446744073709551615"),
		},
		{
			name: "unsigned bigint beyond int64 text protocol",
			tag:  "UNSIGNED BIGINT",
			raw:  []byte("18446744073709551615"),
			want: core.TextValue("18446744073709551615"),
		},
		{name: "year", tag: "YEAR", raw: int64(2024), want: core.IntegerValue(2024)},
		{name: "double", tag: "DOUBLE", raw: float64(1.5), want: core.FloatValue(1.5)},
		{name: "decimal text protocol", tag: "DECIMAL", raw: []byte("10.25"), want: core.FloatValue(10.25)},
		{name: "bit", tag: "BIT", raw: []byte{0x05}, want: core.IntegerValue(5)},
		{name: "varchar", tag: "VARCHAR", raw: []byte("hello"), want: core.TextValue("hello")},
		{
			name: "json compacts",
			tag:  "JSON",
			raw:  []byte("{\"a\": 1}"),
			want: core.TextValue(`{"a":1}`),
		},
		{
			name: "datetime",
			tag:  "DATETIME",
			raw:  time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC),
			want: core.TextValue("2024-03-15 09:30:45"),
		},
		{
			name: "date",
			tag:  "DATE",
			raw:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want: core.TextValue("2024-03-15"),
		},
		{name: "time stays text", tag: "TIME", raw: []byte("09:30:45"), want: core.TextValue("09:30:45")},
		{
			name: "datetime fallback keeps verbatim text",
			tag:  "DATETIME",
			raw:  []byte("0000-00-00 00:00:00"),
			want: core.TextValue("0000-00-00 00:00:00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MySQL.Normalize(tt.tag, tt.raw))
		})
	}
}

func TestNormalizeBinaryFamily(t *testing.T) {
	data := []byte(strings.Repeat("x", 40))

	for _, tag := range []string{"BINARY", "VARBINARY", "BLOB", "LONGBLOB"} {
		t.Run(tag, func(t *testing.T) {
			v := MySQL.Normalize(tag, data)
			require.Equal(t, core.KindBinary, v.Kind)
			assert.False(t, v.Unrecognized)
			assert.True(t, v.Truncated)
			assert.Equal(t, 40, v.ByteLen)
			assert.Len(t, v.Hex, core.BinaryPreviewLimit*2)
		})
	}
}

func TestNormalizeUnknownTag(t *testing.T) {
	v := MySQL.Normalize("GEOMETRY", []byte{0xFF, 0xFE, 0x01})
	require.Equal(t, core.KindBinary, v.Kind)
	assert.True(t, v.Unrecognized)

	v = MySQL.Normalize("GEOMETRY", []byte("POINT(1 2)"))
	assert.Equal(t, core.TextValue("POINT(1 2)"), v)
}

func TestNormalizeNilIsNull(t *testing.T) {
	for _, tag := range []string{"BIGINT", "VARCHAR", "BLOB", "NO_SUCH_TYPE"} {
		assert.True(t, MySQL.Normalize(tag, nil).IsNull(), tag)
	}
}
