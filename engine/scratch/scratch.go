// Package scratch formats short per-frame strings, such as widget labels,
// into one reusable byte arena.
package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

// Text is a frame arena for label strings. Strings it returns alias the
// arena and stay valid until the next Reset. Not safe for concurrent use.
type Text struct {
	buf   []byte
	grows int
}

func New(capacity int) *Text {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Text{buf: make([]byte, 0, capacity)}
}

// Reset drops every string handed out since the previous Reset.
func (t *Text) Reset() { t.buf = t.buf[:0] }

func (t *Text) Len() int { return len(t.buf) }
func (t *Text) Cap() int { return cap(t.buf) }

// Grows counts how often the arena outgrew its capacity. Size New so it
// stays at zero after the first frames.
func (t *Text) Grows() int { return t.grows }

func (t *Text) view(mark int) string {
	b := t.buf[mark:]
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// Sprintf supports %s %d %f (with .prec, default 3) %c and %%. Unknown
// verbs are copied literally; missing arguments end the output.
func (t *Text) Sprintf(format string, args ...any) string {
	c0 := cap(t.buf)
	mark := len(t.buf)
	ai := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			t.buf = append(t.buf, ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			t.buf = append(t.buf, '%')
			i++
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			start := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			prec, _ = strconv.Atoi(format[start:i])
		}
		if i >= len(format) || ai >= len(args) {
			break
		}
		switch format[i] {
		case 's':
			t.appendString(args[ai])
		case 'd':
			t.appendInt(args[ai])
		case 'f':
			if prec < 0 {
				prec = 3
			}
			t.buf = strconv.AppendFloat(t.buf, toFloat64(args[ai]), 'f', prec, 64)
		case 'c':
			if r, ok := args[ai].(rune); ok {
				t.buf = utf8.AppendRune(t.buf, r)
			}
		default:
			t.buf = append(t.buf, '%', format[i])
		}
		ai++
	}
	if cap(t.buf) != c0 {
		t.grows++
	}
	return t.view(mark)
}

func (t *Text) appendString(v any) {
	switch x := v.(type) {
	case string:
		t.buf = append(t.buf, x...)
	case []byte:
		t.buf = append(t.buf, x...)
	case interface{ String() string }:
		t.buf = append(t.buf, x.String()...)
	default:
		t.buf = append(t.buf, "<?>"...)
	}
}

func (t *Text) appendInt(v any) {
	switch x := v.(type) {
	case int:
		t.buf = strconv.AppendInt(t.buf, int64(x), 10)
	case int32:
		t.buf = strconv.AppendInt(t.buf, int64(x), 10)
	case int64:
		t.buf = strconv.AppendInt(t.buf, x, 10)
	case uint:
		t.buf = strconv.AppendUint(t.buf, uint64(x), 10)
	case uint16:
		t.buf = strconv.AppendUint(t.buf, uint64(x), 10)
	case uint32:
		t.buf = strconv.AppendUint(t.buf, uint64(x), 10)
	case uint64:
		t.buf = strconv.AppendUint(t.buf, x, 10)
	default:
		t.buf = append(t.buf, "<?>"...)
	}
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
