package postgres

import (
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
		{name: "int8", tag: "INT8", raw: int64(42), want: core.IntegerValue(42)},
		{name: "int2", tag: "INT2", raw: int64(-3), want: core.IntegerValue(-3)},
		{name: "bool", tag: "BOOL", raw: true, want: core.BoolValue(true)},
		{name: "float8", tag: "FLOAT8", raw: float64(2.5), want: core.FloatValue(2.5)},
		{name: "numeric text form", tag: "NUMERIC", raw: "10.25", want: core.FloatValue(10.25)},
		{
			name: "money formatting degrades to text",
			tag:  "MONEY",
			raw:  "$1,234.56",
			want: core.TextValue("$1,234.56"),
		},
		{
			name: "interval is not an integer tag",
			tag:  "INTERVAL",
			raw:  "1 day",
			want: core.TextValue("1 day"),
		},
		{
			name: "timestamp",
			tag:  "TIMESTAMP",
			raw:  time.Date(2024, 3, 15, 9, 30, 45, 123456000, time.UTC),
			want: core.TextValue("2024-03-15 09:30:45.123456"),
		},
		{
			name: "jsonb compacts",
			tag:  "JSONB",
			raw:  []byte(`{"b":  [1, 2]}`),
			want: core.TextValue(`{"b":[1,2]}`),
		},
		{name: "text", tag: "TEXT", raw: "plain", want: core.TextValue("plain")},
		{name: "uuid is unknown tag", tag: "UUID", raw: "0e37df36-f698-11e6-8dd4-cb9ced3df976", want: core.TextValue("0e37df36-f698-11e6-8dd4-cb9ced3df976")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Postgres.Normalize(tt.tag, tt.raw))
		})
	}
}

func TestNormalizeTimestamptzRendersUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	v := Postgres.Normalize("TIMESTAMPTZ", time.Date(2024, 3, 15, 11, 30, 45, 0, loc))
	assert.Equal(t, core.TextValue("2024-03-15 09:30:45 UTC"), v)
}

func TestNormalizeBytea(t *testing.T) {
	v := Postgres.Normalize("BYTEA", []byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.Equal(t, core.KindBinary, v.Kind)
	assert.Equal(t, "DEADBEEF", v.Hex)
	assert.False(t, v.Unrecognized)
}

func TestNormalizeNilIsNull(t *testing.T) {
	for _, tag := range []string{"INT8", "TEXT", "BYTEA", "NO_SUCH_TYPE"} {
		assert.True(t, Postgres.Normalize(tag, nil).IsNull(), tag)
	}
}
