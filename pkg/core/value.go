package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Preview limits for binary cell values, in bytes.
const (
	// BinaryPreviewLimit caps the hex preview of values from known binary
	// column types (BLOB, BYTEA, VARBINARY, ...).
	BinaryPreviewLimit = 32

	// UnknownBinaryPreviewLimit caps the hex preview of values from
	// unrecognized column types that did not decode as UTF-8 text.
	UnknownBinaryPreviewLimit = 16
)

// =============================================================================
// Kind
// =============================================================================

// Kind identifies the normalized representation of a cell value.
type Kind int

// Value kinds. Every engine's cells normalize to one of these.
const (
	// KindNull is the absent value. It is the zero value of Kind, so a
	// zero Value is a valid null cell.
	KindNull Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindInteger is a signed 64-bit integer.
	KindInteger
	// KindFloat is a 64-bit float. Decimal columns decode here and may
	// lose precision; exactness-critical callers should treat the column
	// as text upstream.
	KindFloat
	// KindText is a UTF-8 string. Also the degraded form of numeric
	// values that exceed the int64 range: exact decimal digits, never a
	// wrapped integer.
	KindText
	// KindBinary is a hex preview of a binary value, carrying the true
	// byte length and a truncation flag.
	KindBinary
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// =============================================================================
// Value
// =============================================================================

// Value is one normalized result cell. It is a tagged union: Kind selects
// which payload field is meaningful. Construct values through the
// constructor functions rather than struct literals.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Text  string

	// Binary payload. Hex holds the uppercase hex digits of at most the
	// first BinaryPreviewLimit (or UnknownBinaryPreviewLimit) bytes;
	// ByteLen records the true length of the original value.
	Hex       string
	ByteLen   int
	Truncated bool

	// Unrecognized marks a binary preview that came from a column type
	// the normalizer did not recognize, so renderers can frame it apart
	// from known binary columns.
	Unrecognized bool
}

// Null returns the null value.
func Null() Value {
	return Value{Kind: KindNull}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IntegerValue returns a signed integer value.
func IntegerValue(i int64) Value {
	return Value{Kind: KindInteger, Int: i}
}

// FloatValue returns a float value.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// TextValue returns a text value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// IntegerFromUint64 returns an integer value when v fits in int64 and the
// exact decimal digits as text otherwise. Unsigned values never wrap.
func IntegerFromUint64(v uint64) Value {
	if v <= math.MaxInt64 {
		return IntegerValue(int64(v))
	}
	return TextValue(strconv.FormatUint(v, 10))
}

// IntegerFromDecimal parses an exact decimal count, degrading to text when
// the digits exceed int64 range or are not a signed integer at all.
func IntegerFromDecimal(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntegerValue(i)
	}
	return TextValue(s)
}

// BinaryValue returns the hex preview of a known binary value. At most
// BinaryPreviewLimit bytes are previewed; the true length is kept.
func BinaryValue(data []byte) Value {
	return binaryPreview(data, BinaryPreviewLimit, false)
}

// UnknownBinaryValue returns the hex preview of a value from an
// unrecognized column type. The preview is shorter and tagged distinctly.
func UnknownBinaryValue(data []byte) Value {
	return binaryPreview(data, UnknownBinaryPreviewLimit, true)
}

func binaryPreview(data []byte, limit int, unrecognized bool) Value {
	preview := data
	truncated := false
	if len(data) > limit {
		preview = data[:limit]
		truncated = true
	}
	return Value{
		Kind:         KindBinary,
		Hex:          fmt.Sprintf("%X", preview),
		ByteLen:      len(data),
		Truncated:    truncated,
		Unrecognized: unrecognized,
	}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// String renders the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindText:
		return v.Text
	case KindBinary:
		if v.Unrecognized {
			suffix := ""
			if v.Truncated {
				suffix = "..."
			}
			return fmt.Sprintf("[BLOB: 0x%s%s]", v.Hex, suffix)
		}
		var b strings.Builder
		b.WriteString("0x")
		b.WriteString(v.Hex)
		if v.Truncated {
			fmt.Fprintf(&b, "... (%d bytes)", v.ByteLen)
		}
		return b.String()
	default:
		return ""
	}
}

// binaryJSON is the wire form of a binary value.
type binaryJSON struct {
	Hex          string `json:"hex"`
	Length       int    `json:"length"`
	Truncated    bool   `json:"truncated"`
	Unrecognized bool   `json:"unrecognized,omitempty"`
}

// MarshalJSON emits native JSON scalars for scalar kinds and a structured
// object for binary previews. Floats outside JSON's numeric range (NaN,
// infinities) marshal as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInteger:
		return json.Marshal(v.Int)
	case KindFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.Float)
	case KindText:
		return json.Marshal(v.Text)
	case KindBinary:
		return json.Marshal(binaryJSON{
			Hex:          v.Hex,
			Length:       v.ByteLen,
			Truncated:    v.Truncated,
			Unrecognized: v.Unrecognized,
		})
	default:
		return []byte("null"), nil
	}
}
