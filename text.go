package wxf

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/hengadev/wxf/internal/wxferr"
)

// Text returns the Wolfram Language input form of v.
func Text(v Value) (string, error) {
	return defaultEncoder.Text(v)
}

// String implements fmt.Stringer. Values that cannot be rendered produce
// a %!v(...) marker instead of panicking.
func (v Value) String() string {
	s, err := Text(v)
	if err != nil {
		return "%!v(" + err.Error() + ")"
	}
	return s
}

// Text returns the input form of v, qualifying symbols the same way
// Binary does.
func (e *Encoder) Text(v Value) (string, error) {
	out, err := e.appendText(nil, v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (e *Encoder) appendText(dst []byte, v Value) ([]byte, error) {
	var err error
	switch v.kind {
	case KindSkip:
		return dst, nil

	case KindFunction:
		open, closing := byte('['), byte(']')
		head := v.fn.head
		if head.kind == KindSymbol && head.sym.qualified(e.context) == "List" {
			open, closing = '{', '}'
		} else if dst, err = e.appendText(dst, head); err != nil {
			return nil, err
		}
		dst = append(dst, open)
		for i, arg := range v.fn.args {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = e.appendText(dst, arg); err != nil {
				return nil, err
			}
		}
		return append(dst, closing), nil

	case KindBoolean:
		if v.num != 0 {
			return e.appendText(dst, symbolTrue)
		}
		return e.appendText(dst, symbolFalse)

	case KindString:
		return appendQuoted(dst, v.str), nil

	case KindBytes:
		dst = append(dst, "ByteArray[{"...)
		for i, b := range v.raw {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = strconv.AppendUint(dst, uint64(b), 10)
		}
		return append(dst, "}]"...), nil

	case KindSymbol:
		return append(dst, v.sym.qualified(e.context)...), nil

	case KindInteger8, KindInteger16, KindInteger32, KindInteger64:
		return strconv.AppendInt(dst, v.num, 10), nil

	case KindBigInteger:
		return v.big.Append(dst, 10), nil

	case KindDecimal64:
		f := math.Float64frombits(binary.LittleEndian.Uint64(v.dec[:]))
		dst = strconv.AppendFloat(dst, f, 'f', -1, 64)
		return append(dst, '`'), nil

	case KindBigDecimal:
		return append(dst, v.str...), nil

	case KindAssociation:
		dst = append(dst, "<|"...)
		for i, entry := range v.assoc.entries {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = e.appendText(dst, entry.Key); err != nil {
				return nil, err
			}
			if entry.Rule == RuleDelayed {
				dst = append(dst, ":>"...)
			} else {
				dst = append(dst, "->"...)
			}
			if dst, err = e.appendText(dst, entry.Value); err != nil {
				return nil, err
			}
		}
		return append(dst, "|>"...), nil

	case KindRule:
		return append(dst, "->"...), nil
	case KindRuleDelayed:
		return append(dst, ":>"...), nil

	default:
		return nil, wxferr.NewNotImplementedError(v.kind.String(), wxferr.EncodeText)
	}
}

// appendQuoted writes s as a Wolfram string literal.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, `\"`...)
		case '\\':
			dst = append(dst, `\\`...)
		case '\n':
			dst = append(dst, `\n`...)
		case '\t':
			dst = append(dst, `\t`...)
		case '\r':
			dst = append(dst, `\r`...)
		default:
			if r < 0x20 || r == 0x7f {
				dst = fmt.Appendf(dst, `\:%04x`, r)
				continue
			}
			dst = utf8.AppendRune(dst, r)
		}
	}
	return append(dst, '"')
}
