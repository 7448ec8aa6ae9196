// Package normalize turns free-form recipe durations and yields into integers.
//
// Both normalizers are total: every input, including absent values and
// unparseable text, produces a non-negative int and there is no error path.
// The package holds no mutable state and performs no I/O so it is safe for
// concurrent use without coordination.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind tags the shape of a Value
type Kind uint8

const (
	// KindAbsent is a missing or null input
	KindAbsent Kind = iota
	// KindNumber is an already numeric input
	KindNumber
	// KindText is a string input that needs parsing
	KindText
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "absent"
	}
}

// Value is the tagged input accepted by the normalizers
// The zero value is Absent
type Value struct {
	kind Kind
	num  float64
	text string
}

// Absent is the missing input
var Absent = Value{}

// Number wraps a numeric input
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text wraps a string input
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Kind reports the value's shape
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric payload, zero unless Kind is KindNumber
func (v Value) Float() float64 { return v.num }

// Str returns the text payload, empty unless Kind is KindText
func (v Value) Str() string { return v.text }

// String implements fmt.Stringer
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// Of maps a loosely typed input into a Value
// nil and nil pointers are Absent; bools count as 0 or 1; every integer and
// float kind is a Number; json.Number is a Number when it parses and Text otherwise;
// anything else is formatted as Text
func Of(in any) Value {
	switch x := in.(type) {
	case nil:
		return Absent
	case Value:
		return x
	case string:
		return Text(x)
	case *string:
		if x == nil {
			return Absent
		}
		return Text(*x)
	case []byte:
		return Text(string(x))
	case bool:
		if x {
			return Number(1)
		}
		return Number(0)
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case *int:
		if x == nil {
			return Absent
		}
		return Number(float64(*x))
	case *float64:
		if x == nil {
			return Absent
		}
		return Number(*x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return Text(x.String())
	case fmt.Stringer:
		return Text(x.String())
	default:
		return Text(fmt.Sprint(x))
	}
}

// UnmarshalJSON accepts null, numbers and strings
// Objects and arrays are kept as their raw JSON text so the normalizers can still
// pick a number out of them
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil, string, json.Number, bool:
		*v = Of(x)
	default:
		*v = Text(string(b))
	}
	return nil
}

// MarshalJSON renders Absent as null, numbers as numbers and text as strings
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// toInt rounds half to even and clamps into [0, MaxInt]
// NaN, infinities and negatives all become 0
func toInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	r := math.RoundToEven(f)
	if r <= 0 {
		return 0
	}
	if r >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(r)
}
