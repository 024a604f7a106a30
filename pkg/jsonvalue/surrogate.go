package jsonvalue

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Unpaired surrogates have no UTF-8 encoding. They are stored in a String as
// the three bytes the UTF-8 scheme would give them (ED A0..BF 80..BF), which
// no valid UTF-8 text contains.

func isSurrogateEscape(hex []byte) bool {
	if hex[0] != 'd' && hex[0] != 'D' {
		return false
	}
	switch c := hex[1]; {
	case c >= '8' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return true
	}
	return false
}

// unquote decodes a quoted string literal already validated by encoding/json.
func unquote(raw []byte) string {
	s := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r := hex4(s[i+1 : i+5])
			i += 4
			if !utf16.IsSurrogate(r) {
				b.WriteRune(r)
				continue
			}
			if r < 0xdc00 && i+6 < len(s) && s[i+1] == '\\' && s[i+2] == 'u' {
				if lo := hex4(s[i+3 : i+7]); lo >= 0xdc00 && lo <= 0xdfff {
					b.WriteRune(utf16.DecodeRune(r, lo))
					i += 6
					continue
				}
			}
			b.WriteByte(0xe0 | byte(r>>12))
			b.WriteByte(0x80 | byte(r>>6)&0x3f)
			b.WriteByte(0x80 | byte(r)&0x3f)
		default:
			// \" \\ and \/
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func hex4(h []byte) rune {
	n, _ := strconv.ParseUint(string(h), 16, 32)
	return rune(n)
}

// storedSurrogate reports the unpaired surrogate stored at the start of s.
func storedSurrogate(s string) (rune, bool) {
	if len(s) < 3 || s[0] != 0xed || s[1] < 0xa0 || s[1] > 0xbf || s[2]&0xc0 != 0x80 {
		return 0, false
	}
	return 0xd000 | rune(s[1]&0x3f)<<6 | rune(s[2]&0x3f), true
}
