package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonicalProgram produces the canonical JSON used for content
// addressing a program listing:
//
//	{"ir_version":"1","lines":[{"args":[{"number":5},{"number":2}],"opcode":"Init"},...]}
//
// Lines keep argument kinds, so a Text "42" and a Number 42 never collide.
// Keys are emitted in sorted order, strings are NFC normalized, numbers use
// their token form and HTML characters are not escaped, so equal listings
// always produce identical bytes.
func MarshalCanonicalProgram(insts []Instruction) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"ir_version":`)
	v, err := marshalCanonicalString(IRVersion)
	if err != nil {
		return nil, err
	}
	buf.Write(v)

	buf.WriteString(`,"lines":[`)
	for i, inst := range insts {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalInstruction(&buf, inst); err != nil {
			return nil, fmt.Errorf("lines[%d]: %w", i, err)
		}
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

func writeCanonicalInstruction(buf *bytes.Buffer, inst Instruction) error {
	if !inst.opcode.Valid() {
		return fmt.Errorf("invalid opcode %d", int(inst.opcode))
	}

	buf.WriteString(`{"args":[`)
	for n, arg := range inst.args {
		if n > 0 {
			buf.WriteByte(',')
		}
		switch val := arg.(type) {
		case Number:
			f := float64(val)
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return fmt.Errorf("args[%d]: number %v has no JSON representation", n, f)
			}
			buf.WriteString(`{"number":`)
			buf.WriteString(val.Token())
			buf.WriteByte('}')
		case Boolean:
			buf.WriteString(`{"boolean":`)
			buf.WriteString(strconv.FormatBool(bool(val)))
			buf.WriteByte('}')
		case Text:
			s, err := marshalCanonicalString(string(val))
			if err != nil {
				return fmt.Errorf("args[%d]: %w", n, err)
			}
			buf.WriteString(`{"text":`)
			buf.Write(s)
			buf.WriteByte('}')
		default:
			return fmt.Errorf("args[%d]: unknown Value type: %T", n, arg)
		}
	}
	buf.WriteString(`],"opcode":`)
	op, err := marshalCanonicalString(inst.opcode.String())
	if err != nil {
		return err
	}
	buf.Write(op)
	buf.WriteByte('}')
	return nil
}

// marshalCanonicalString produces a JSON string with NFC normalization.
// Only control characters, backslash and quote are escaped; <, >, & and
// U+2028/U+2029 are written literally.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds trailing newline, remove it
	result := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})
	return unescapeLineSeparators(result), nil
}

// unescapeLineSeparators undoes json.Encoder's escaping of U+2028 and U+2029.
// An escape preceded by an odd number of backslashes is literal text
// ("\\u2028") and is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+5 < len(data) && string(data[i+1:i+5]) == "u202" &&
			(data[i+5] == '8' || data[i+5] == '9') && trailingBackslashes(out)%2 == 0 {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i])
	}
	return out
}

func trailingBackslashes(b []byte) int {
	n := 0
	for j := len(b) - 1; j >= 0 && b[j] == '\\'; j-- {
		n++
	}
	return n
}
