// Package jsontext renders generated values as JSON text with fixed
// separators and field order preserved.
package jsontext

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mmrzaf/jsonfixture/internal/domain"
)

type Style struct {
	Name    string
	ItemSep string
	KeySep  string
}

var (
	// StylePython matches the separators of Python's json.dump defaults.
	StylePython  = Style{Name: "python", ItemSep: ", ", KeySep: ": "}
	StyleCompact = Style{Name: "compact", ItemSep: ",", KeySep: ":"}
)

func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "python":
		return StylePython, nil
	case "compact":
		return StyleCompact, nil
	default:
		return Style{}, fmt.Errorf("unknown style: %s", name)
	}
}

type Encoder struct {
	w       io.Writer
	style   Style
	scratch []byte
}

func NewEncoder(w io.Writer, style Style) *Encoder {
	return &Encoder{w: w, style: style}
}

// Encode writes v without a trailing newline.
func (e *Encoder) Encode(v domain.Value) error {
	e.scratch = AppendValue(e.scratch[:0], v, e.style)
	_, err := e.w.Write(e.scratch)
	return err
}

func Marshal(v domain.Value, style Style) []byte {
	return AppendValue(nil, v, style)
}

func AppendValue(dst []byte, v domain.Value, style Style) []byte {
	switch v.Kind {
	case domain.KindString:
		return appendString(dst, v.Str)
	case domain.KindNumber:
		return append(dst, FormatNumber(v.Num)...)
	case domain.KindBoolean:
		return strconv.AppendBool(dst, v.Bool)
	case domain.KindObject:
		dst = append(dst, '{')
		for i, f := range v.Fields {
			if i > 0 {
				dst = append(dst, style.ItemSep...)
			}
			dst = appendString(dst, f.Key)
			dst = append(dst, style.KeySep...)
			dst = AppendValue(dst, f.Value, style)
		}
		return append(dst, '}')
	case domain.KindArray:
		dst = append(dst, '[')
		for i, item := range v.Items {
			if i > 0 {
				dst = append(dst, style.ItemSep...)
			}
			dst = AppendValue(dst, item, style)
		}
		return append(dst, ']')
	default:
		return append(dst, "null"...)
	}
}

// FormatNumber returns the shortest text that round-trips f. Exponent form is
// used only for decimal exponents below -4 or at least 16; otherwise integral
// values keep a ".0" suffix so every number reads back as a float.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.LastIndexByte(e, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

const hex = "0123456789abcdef"

// appendString quotes s using ASCII-only escapes.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				dst = append(dst, '\\', '"')
			case '\\':
				dst = append(dst, '\\', '\\')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			default:
				if c < 0x20 {
					dst = appendUnicodeEscape(dst, rune(c))
				} else {
					dst = append(dst, c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			dst = appendUnicodeEscape(dst, r1)
			dst = appendUnicodeEscape(dst, r2)
		} else {
			dst = appendUnicodeEscape(dst, r)
		}
		i += size
	}
	return append(dst, '"')
}

func appendUnicodeEscape(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u', hex[r>>12&0xF], hex[r>>8&0xF], hex[r>>4&0xF], hex[r&0xF])
}
