package wxf

import (
	"github.com/hengadev/wxf/internal/wire"
	"github.com/hengadev/wxf/internal/wxferr"
)

// Encoder renders values as binary frames or input-form text. The zero
// configuration qualifies bare symbols into Global`. An Encoder holds no
// mutable state and may be shared between goroutines.
type Encoder struct {
	context string
}

// Option configures an Encoder
type Option func(*Encoder) error

// WithDefaultContext sets the context used for bare symbols that are not
// built-in names.
func WithDefaultContext(context string) Option {
	return func(e *Encoder) error {
		if err := ValidateContext(context); err != nil {
			return err
		}
		e.context = normalizeContext(context)
		return nil
	}
}

// NewEncoder returns an Encoder configured by opts.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{context: GlobalContext}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// DefaultContext returns the context applied to bare user symbols.
func (e *Encoder) DefaultContext() string {
	return e.context
}

var defaultEncoder = &Encoder{context: GlobalContext}

// Encode returns the "8:" frame of v.
func Encode(v Value) ([]byte, error) {
	return defaultEncoder.Binary(v)
}

// AppendBinary appends the frame body of v, without header, to dst.
func AppendBinary(dst []byte, v Value) ([]byte, error) {
	return defaultEncoder.AppendBinary(dst, v)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v Value) MarshalBinary() ([]byte, error) {
	return Encode(v)
}

// Binary returns the "8:" frame of v.
func (e *Encoder) Binary(v Value) ([]byte, error) {
	return e.AppendBinary([]byte(wire.Header), v)
}

// AppendBinary appends the frame body of v, without header, to dst.
func (e *Encoder) AppendBinary(dst []byte, v Value) ([]byte, error) {
	switch v.kind {
	case KindSkip:
		return dst, nil

	case KindFunction:
		dst = append(dst, wire.TagFunction)
		dst = wire.AppendVarint(dst, uint64(len(v.fn.args)))
		var err error
		if dst, err = e.AppendBinary(dst, v.fn.head); err != nil {
			return nil, err
		}
		for _, arg := range v.fn.args {
			if dst, err = e.AppendBinary(dst, arg); err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindBoolean:
		if v.num != 0 {
			return e.AppendBinary(dst, symbolTrue)
		}
		return e.AppendBinary(dst, symbolFalse)

	case KindString:
		return wire.AppendLengthString(dst, wire.TagString, v.str), nil

	case KindBytes:
		return wire.AppendLength(dst, wire.TagBinary, v.raw), nil

	case KindSymbol:
		return wire.AppendLengthString(dst, wire.TagSymbol, v.sym.qualified(e.context)), nil

	case KindInteger8:
		return wire.AppendInt8(dst, int8(v.num)), nil
	case KindInteger16:
		return wire.AppendInt16(dst, int16(v.num)), nil
	case KindInteger32:
		return wire.AppendInt32(dst, int32(v.num)), nil
	case KindInteger64:
		return wire.AppendInt64(dst, v.num), nil

	case KindBigInteger:
		return wire.AppendLengthString(dst, wire.TagBigInteger, v.big.String()), nil

	case KindDecimal64:
		dst = append(dst, wire.TagReal64)
		return append(dst, v.dec[:]...), nil

	case KindAssociation:
		dst = append(dst, wire.TagAssociation)
		dst = wire.AppendVarint(dst, uint64(len(v.assoc.entries)))
		var err error
		for _, entry := range v.assoc.entries {
			if entry.Rule == RuleDelayed {
				dst = append(dst, wire.TagRuleDelayed)
			} else {
				dst = append(dst, wire.TagRule)
			}
			if dst, err = e.AppendBinary(dst, entry.Key); err != nil {
				return nil, err
			}
			if dst, err = e.AppendBinary(dst, entry.Value); err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindRule:
		return append(dst, wire.TagRule), nil
	case KindRuleDelayed:
		return append(dst, wire.TagRuleDelayed), nil

	default:
		// BigDecimal, PackedArray and NumericArray
		return nil, wxferr.NewNotImplementedError(v.kind.String(), wxferr.Encode)
	}
}
