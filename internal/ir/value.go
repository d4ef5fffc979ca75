package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a sealed interface representing a single instruction argument.
// Only Number, Boolean, and Text implement this. There is no integer variant:
// integer operands are Numbers with a zero fractional part.
type Value interface {
	irValue() // Sealed - only these types implement it

	// Token returns the canonical textual form used by the line codec.
	Token() string
}

// Number is a real-valued operand (cell index, literal, tick count, ...).
type Number float64

func (Number) irValue() {}

// Token renders the shortest decimal representation ("5", "2.5", "-1").
func (n Number) Token() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Int returns the value truncated toward zero.
func (n Number) Int() int {
	return int(n)
}

// IsInteger reports whether the value has no fractional part.
func (n Number) IsInteger() bool {
	f := float64(n)
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

// Boolean is the isCell flag: true means the paired operand is a cell index,
// false means it is a literal.
type Boolean bool

func (Boolean) irValue() {}

// Token renders "c" for a cell flag and "n" for a literal flag.
func (b Boolean) Token() string {
	if b {
		return "c"
	}
	return "n"
}

// Text carries sub-operation tags, label names and math operator symbols.
type Text string

func (Text) irValue() {}

// Token returns the text verbatim.
func (t Text) Token() string {
	return string(t)
}

// ValueKind names the variant of a Value for diagnostics.
func ValueKind(v Value) string {
	switch v.(type) {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Text:
		return "text"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// MarshalValue marshals a Value to its tagged JSON object form:
// {"number":5}, {"boolean":true} or {"text":"Jump"}.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Number:
		f := float64(val)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("number %v has no JSON representation", f)
		}
		return json.Marshal(map[string]float64{"number": f})
	case Boolean:
		return json.Marshal(map[string]bool{"boolean": bool(val)})
	case Text:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false) // operators like "<" and "&" stay readable
		if err := enc.Encode(map[string]string{"text": string(val)}); err != nil {
			return nil, err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

// UnmarshalValue decodes the tagged JSON object form produced by MarshalValue.
// Objects with zero or several tags are rejected.
func UnmarshalValue(data []byte) (Value, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	if len(raw) != 1 {
		return nil, fmt.Errorf("value: expected exactly one of number, boolean, text; got %d keys", len(raw))
	}

	for tag, body := range raw {
		switch tag {
		case "number":
			var f float64
			if err := json.Unmarshal(body, &f); err != nil {
				return nil, fmt.Errorf("value.number: %w", err)
			}
			return Number(f), nil
		case "boolean":
			var b bool
			if err := json.Unmarshal(body, &b); err != nil {
				return nil, fmt.Errorf("value.boolean: %w", err)
			}
			return Boolean(b), nil
		case "text":
			var s string
			if err := json.Unmarshal(body, &s); err != nil {
				return nil, fmt.Errorf("value.text: %w", err)
			}
			return Text(s), nil
		default:
			return nil, fmt.Errorf("value: unknown tag %q", tag)
		}
	}
	panic("unreachable")
}
