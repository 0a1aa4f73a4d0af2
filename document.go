package wxf

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/hengadev/wxf/internal/wxferr"
)

// FromDocument converts a generic document tree, as produced by the JSON,
// YAML, TOML and SQLite readers, into a Value.
//
//   - nil becomes None
//   - json.Number becomes the narrowest integer, or a Decimal64 when it
//     has a fraction or exponent; out of range exponents become Infinity
//   - []any becomes a List
//   - map[string]any and map[any]any become associations of Rule entries
//   - time.Time becomes DateObject["<RFC 3339>"]
//
// Any other type yields ErrUnsupportedType.
func FromDocument(doc any) (Value, error) {
	return fromDocument(doc, "$")
}

func fromDocument(doc any, path string) (Value, error) {
	switch d := doc.(type) {
	case nil:
		return symbolNone, nil
	case Value:
		return d, nil
	case bool:
		return Bool(d), nil
	case string:
		return String(d), nil
	case []byte:
		return Bytes(d), nil
	case json.Number:
		return fromNumber(d, path)
	case int:
		return Int(int64(d)), nil
	case int8:
		return Int(int64(d)), nil
	case int16:
		return Int(int64(d)), nil
	case int32:
		return Int(int64(d)), nil
	case int64:
		return Int(d), nil
	case uint:
		return Uint(uint64(d)), nil
	case uint8:
		return Uint(uint64(d)), nil
	case uint16:
		return Uint(uint64(d)), nil
	case uint32:
		return Uint(uint64(d)), nil
	case uint64:
		return Uint(d), nil
	case float32:
		return Float32(d), nil
	case float64:
		return Float64(d), nil
	case *big.Int:
		return Integer(d), nil
	case time.Time:
		return DateObject(d), nil
	case []any:
		items := make([]Value, len(d))
		for i, item := range d {
			v, err := fromDocument(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return List(items...), nil
	case map[string]any:
		entries := make([]Entry, 0, len(d))
		for _, k := range sortedKeys(d) {
			v, err := fromDocument(d[k], path+"."+k)
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Entry{Key: String(k), Rule: Rule, Value: v})
		}
		return NewAssociation(entries...), nil
	case map[any]any:
		entries := make([]Entry, 0, len(d))
		for k, item := range d {
			key, err := fromDocument(k, path)
			if err != nil {
				return Value{}, err
			}
			v, err := fromDocument(item, fmt.Sprintf("%s.%v", path, k))
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Entry{Key: key, Rule: Rule, Value: v})
		}
		return NewAssociation(entries...), nil
	default:
		return Value{}, wxferr.NewUnsupportedTypeError(path, reflect.TypeOf(doc).String(), wxferr.Construct)
	}
}

func fromNumber(n json.Number, path string) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	if b, ok := new(big.Int).SetString(n.String(), 10); ok {
		return Integer(b), nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, fmt.Errorf("%w: %s is not a number: %w", wxferr.ErrSyntax, path, err)
	}
	return Float64(f), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
