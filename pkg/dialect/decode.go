package dialect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/leapstack-labs/leapdb/pkg/core"
)

// Canonical temporal layouts shared by the dialects.
const (
	DateTimeLayout    = "2006-01-02 15:04:05.999999999"
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04:05.999999999"
	TimestampTZLayout = "2006-01-02 15:04:05.999999999 MST"
)

// Shared decoding strategies. Dialects assemble these into per-tag chains;
// each strategy handles the raw shapes its engine's driver can produce for
// that tag class (typed values on the binary protocol, []byte on the text
// protocol).

// DecodeBool decodes boolean cells.
func DecodeBool(raw any) (core.Value, bool) {
	switch v := raw.(type) {
	case bool:
		return core.BoolValue(v), true
	case int64:
		return core.BoolValue(v != 0), true
	case []byte:
		if b, err := strconv.ParseBool(string(v)); err == nil {
			return core.BoolValue(b), true
		}
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return core.BoolValue(b), true
		}
	}
	return core.Value{}, false
}

// DecodeInt decodes signed integer cells.
func DecodeInt(raw any) (core.Value, bool) {
	switch v := raw.(type) {
	case int64:
		return core.IntegerValue(v), true
	case int32:
		return core.IntegerValue(int64(v)), true
	case int16:
		return core.IntegerValue(int64(v)), true
	case int8:
		return core.IntegerValue(int64(v)), true
	case int:
		return core.IntegerValue(int64(v)), true
	case uint32:
		return core.IntegerValue(int64(v)), true
	case uint16:
		return core.IntegerValue(int64(v)), true
	case uint8:
		return core.IntegerValue(int64(v)), true
	case []byte:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return core.IntegerValue(i), true
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return core.IntegerValue(i), true
		}
	}
	return core.Value{}, false
}

// DecodeUint decodes unsigned integer cells. Values beyond int64 range
// degrade to exact decimal text, never a wrapped integer.
func DecodeUint(raw any) (core.Value, bool) {
	switch v := raw.(type) {
	case uint64:
		return core.IntegerFromUint64(v), true
	case uint:
		return core.IntegerFromUint64(uint64(v)), true
	case []byte:
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return core.IntegerFromUint64(u), true
		}
	case string:
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return core.IntegerFromUint64(u), true
		}
	}
	return core.Value{}, false
}

// DecodeFloat decodes float and decimal cells. Decimal digits beyond float64
// precision are lossy here; exactness-critical callers read the column as
// text upstream.
func DecodeFloat(raw any) (core.Value, bool) {
	switch v := raw.(type) {
	case float64:
		return core.FloatValue(v), true
	case float32:
		return core.FloatValue(float64(v)), true
	case int64:
		return core.FloatValue(float64(v)), true
	case []byte:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return core.FloatValue(f), true
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return core.FloatValue(f), true
		}
	}
	return core.Value{}, false
}

// DecodeBit decodes BIT cells: up to 8 bytes big-endian into an unsigned
// integer (degrading past int64 to decimal text), wider values to hex text.
func DecodeBit(raw any) (core.Value, bool) {
	switch v := raw.(type) {
	case []byte:
		if len(v) <= 8 {
			var u uint64
			for _, b := range v {
				u = u<<8 | uint64(b)
			}
			return core.IntegerFromUint64(u), true
		}
		return core.TextValue(fmt.Sprintf("0x%X", v)), true
	case int64:
		return core.IntegerValue(v), true
	case uint64:
		return core.IntegerFromUint64(v), true
	}
	return core.Value{}, false
}

// DecodeTime renders native time cells with the given layout.
func DecodeTime(layout string) DecodeFunc {
	return func(raw any) (core.Value, bool) {
		if t, ok := raw.(time.Time); ok {
			return core.TextValue(t.Format(layout)), true
		}
		return core.Value{}, false
	}
}

// DecodeTimeUTC renders native time cells in UTC with the given layout.
// Used for zone-aware tags so the canonical form is stable.
func DecodeTimeUTC(layout string) DecodeFunc {
	return func(raw any) (core.Value, bool) {
		if t, ok := raw.(time.Time); ok {
			return core.TextValue(t.In(time.UTC).Format(layout)), true
		}
		return core.Value{}, false
	}
}

// DecodeJSON decodes JSON document cells to their canonical compact
// serialization.
func DecodeJSON(raw any) (core.Value, bool) {
	var data []byte
	switch v := raw.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return core.Value{}, false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return core.Value{}, false
	}
	return core.TextValue(buf.String()), true
}

// DecodeBinary previews known binary cells.
func DecodeBinary(raw any) (core.Value, bool) {
	switch v := raw.(type) {
	case []byte:
		return core.BinaryValue(v), true
	case string:
		return core.BinaryValue([]byte(v)), true
	}
	return core.Value{}, false
}

// DecodeText stringifies cells: strings verbatim, bytes when valid UTF-8,
// scalars through their decimal form. The workhorse fallback that keeps
// chains from failing cells.
func DecodeText(raw any) (core.Value, bool) {
	switch v := raw.(type) {
	case string:
		return core.TextValue(v), true
	case []byte:
		if utf8.Valid(v) {
			return core.TextValue(string(v)), true
		}
	case int64:
		return core.TextValue(strconv.FormatInt(v, 10)), true
	case uint64:
		return core.TextValue(strconv.FormatUint(v, 10)), true
	case float64:
		return core.TextValue(strconv.FormatFloat(v, 'g', -1, 64)), true
	case bool:
		return core.TextValue(strconv.FormatBool(v)), true
	case time.Time:
		return core.TextValue(v.Format("2006-01-02 15:04:05.999999999")), true
	}
	return core.Value{}, false
}

// DecodeUnknownBinary previews cells of unrecognized column types that did
// not read as text. The preview is shorter than DecodeBinary's and tagged
// so renderers can frame it apart.
func DecodeUnknownBinary(raw any) (core.Value, bool) {
	if b, ok := raw.([]byte); ok {
		return core.UnknownBinaryValue(b), true
	}
	return core.Value{}, false
}
