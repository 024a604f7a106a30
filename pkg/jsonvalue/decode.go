package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorKind classifies why a document could not be decoded.
type ErrorKind int

const (
	// ErrKindSyntax is malformed JSON.
	ErrKindSyntax ErrorKind = iota + 1
	// ErrKindTruncated is input that ends inside a value.
	ErrKindTruncated
	// ErrKindExtraData is non-whitespace content after a complete value.
	ErrKindExtraData
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindSyntax:
		return "syntax"
	case ErrKindTruncated:
		return "truncated"
	case ErrKindExtraData:
		return "extra-data"
	default:
		return "unknown"
	}
}

// DecodeError describes a document that is not exactly one JSON value.
type DecodeError struct {
	Kind ErrorKind
	// Offset is the 0-based byte offset where the problem was detected.
	Offset int64
	Msg    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s (char %d)", e.Msg, e.Offset)
}

// Decode parses data as exactly one JSON value. Leading and trailing whitespace
// is allowed; anything else after the value is an ErrKindExtraData error.
//
// Besides RFC 8259 input, Decode accepts the NaN, Infinity and -Infinity
// literals (kept as Number) and unpaired surrogate escapes such as "\ud800"
// (kept so that encoding writes them back unchanged).
func Decode(data []byte) (Value, error) {
	d := newDecoder(data)

	tok, err := d.dec.Token()
	if err != nil {
		return nil, decodeError(err, d.dec, data)
	}

	v, err := d.value(tok)
	if err != nil {
		return nil, decodeError(err, d.dec, data)
	}

	pos := d.dec.InputOffset()
	for pos < int64(len(data)) && isSpace(data[pos]) {
		pos++
	}
	if pos < int64(len(data)) {
		return nil, &DecodeError{Kind: ErrKindExtraData, Offset: pos, Msg: "extra data after JSON value"}
	}

	return v, nil
}

var nonFiniteLiterals = []string{"NaN", "Infinity", "-Infinity"}

// decoder wraps a token stream over a copy of the input in which non-finite
// literals were replaced by same-length numbers. Offsets are unchanged, so
// tokens are matched back to the original text by position.
type decoder struct {
	dec  *json.Decoder
	data []byte

	// nonFinite maps the start offset of a replaced literal to its text.
	nonFinite map[int64]string

	// surrogates maps the end offset of a string literal holding a
	// surrogate escape to its start offset.
	surrogates map[int64]int64
}

func newDecoder(data []byte) *decoder {
	d := &decoder{data: data}
	d.scan()

	d.dec = json.NewDecoder(bytes.NewReader(d.data))
	d.dec.UseNumber()
	return d
}

// scan walks the input once, tracking string boundaries.
func (d *decoder) scan() {
	inString := false
	var start int
	var surrogate bool

	for i := 0; i < len(d.data); i++ {
		c := d.data[i]
		if inString {
			switch c {
			case '\\':
				if i+5 < len(d.data) && d.data[i+1] == 'u' && isSurrogateEscape(d.data[i+2:i+6]) {
					surrogate = true
				}
				i++
			case '"':
				inString = false
				if surrogate {
					if d.surrogates == nil {
						d.surrogates = make(map[int64]int64)
					}
					d.surrogates[int64(i+1)] = int64(start)
				}
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			start = i
			surrogate = false
		case 'N', 'I', '-':
			for _, lit := range nonFiniteLiterals {
				if bytes.HasPrefix(d.data[i:], []byte(lit)) {
					d.replaceNonFinite(i, lit)
					i += len(lit) - 1
					break
				}
			}
		}
	}
}

func (d *decoder) replaceNonFinite(at int, lit string) {
	if d.nonFinite == nil {
		d.nonFinite = make(map[int64]string)
		d.data = append([]byte(nil), d.data...)
	}
	d.nonFinite[int64(at)] = lit

	stub := "0"
	if lit[0] == '-' {
		stub = "-0"
	}
	copy(d.data[at:], stub+strings.Repeat(" ", len(lit)-len(stub)))
}

func (d *decoder) value(tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if lit, ok := d.nonFinite[d.dec.InputOffset()-int64(len(t))]; ok {
			return Number(lit), nil
		}
		return Number(t), nil
	case string:
		return String(d.str(t)), nil
	case json.Delim:
		switch t {
		case '[':
			return d.array()
		case '{':
			return d.object()
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// str returns the decoded text of the string token just read. Literals with
// surrogate escapes are decoded from the input directly, since encoding/json
// turns unpaired surrogates into U+FFFD.
func (d *decoder) str(s string) string {
	end := d.dec.InputOffset()
	if start, ok := d.surrogates[end]; ok {
		return unquote(d.data[start:end])
	}
	return s
}

func (d *decoder) array() (Value, error) {
	arr := Array{}
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return arr, nil
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func (d *decoder) object() (Value, error) {
	obj := NewObject()
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v for object key", tok)
		}
		key = d.str(key)

		tok, err = d.dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func decodeError(err error, dec *json.Decoder, data []byte) *DecodeError {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		// Offset counts the offending byte as read.
		offset := syntaxErr.Offset - 1
		if offset < 0 {
			offset = 0
		}
		return &DecodeError{Kind: ErrKindSyntax, Offset: offset, Msg: syntaxErr.Error()}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &DecodeError{Kind: ErrKindTruncated, Offset: int64(len(data)), Msg: "unexpected end of JSON input"}
	default:
		return &DecodeError{Kind: ErrKindSyntax, Offset: dec.InputOffset(), Msg: err.Error()}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
