package jsonvalue

import (
	"bytes"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Marshal encodes v compactly, without whitespace between tokens.
func Marshal(v Value) []byte {
	e := &encoder{}
	e.value(v, 0)
	return e.buf.Bytes()
}

// MarshalIndent encodes v with each array element and object member on its own
// line, nested levels indented by one more copy of indent. Empty containers stay
// on one line as [] and {}.
func MarshalIndent(v Value, indent string) []byte {
	e := &encoder{indent: indent}
	e.value(v, 0)
	return e.buf.Bytes()
}

// encoder writes ASCII-only JSON: every rune outside the printable ASCII range
// is emitted as a \u escape.
type encoder struct {
	buf    bytes.Buffer
	indent string
}

func (e *encoder) value(v Value, depth int) {
	switch tv := v.(type) {
	case nil, Null:
		e.buf.WriteString("null")
	case Bool:
		if tv {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case Number:
		e.buf.WriteString(string(tv))
	case String:
		e.string(string(tv))
	case Array:
		e.array(tv, depth)
	case *Object:
		e.object(tv, depth)
	}
}

func (e *encoder) array(arr Array, depth int) {
	if len(arr) == 0 {
		e.buf.WriteString("[]")
		return
	}
	e.buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		e.value(item, depth+1)
	}
	e.newline(depth)
	e.buf.WriteByte(']')
}

func (e *encoder) object(obj *Object, depth int) {
	if obj.Len() == 0 {
		e.buf.WriteString("{}")
		return
	}
	e.buf.WriteByte('{')
	for i, m := range obj.Members() {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		e.string(m.Key)
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		e.value(m.Value, depth+1)
	}
	e.newline(depth)
	e.buf.WriteByte('}')
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(e.indent, depth))
}

func (e *encoder) string(s string) {
	e.buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if sr, ok := storedSurrogate(s[i:]); ok {
				e.unicodeEscape(sr)
				i += 3
				continue
			}
		}
		i += size

		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\b':
			e.buf.WriteString(`\b`)
		case '\f':
			e.buf.WriteString(`\f`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				e.buf.WriteByte(byte(r))
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				e.unicodeEscape(hi)
				e.unicodeEscape(lo)
			default:
				e.unicodeEscape(r)
			}
		}
	}
	e.buf.WriteByte('"')
}

func (e *encoder) unicodeEscape(r rune) {
	e.buf.WriteString(`\u`)
	e.buf.WriteByte(hexDigits[(r>>12)&0xf])
	e.buf.WriteByte(hexDigits[(r>>8)&0xf])
	e.buf.WriteByte(hexDigits[(r>>4)&0xf])
	e.buf.WriteByte(hexDigits[r&0xf])
}
