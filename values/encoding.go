package values

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrCorruptEncoding is returned by Decode for input Encode did not produce
var ErrCorruptEncoding = errors.New("corrupt value encoding")

// Encode serializes a value to bytes: one kind byte followed by the payload.
//
// Unlike the text rendering, the encoding is lossless. A StringValue "3"
// or a set of numbers decodes to exactly what was encoded.
func Encode(v Value) []byte {
	return appendValue(nil, deref(v))
}

func appendValue(buf []byte, v Value) []byte {
	buf = append(buf, byte(v.Kind()))

	switch val := v.(type) {
	case NoneValue:
		return buf
	case BooleanValue:
		if val.b {
			return append(buf, 1)
		}
		return append(buf, 0)
	case NumberValue:
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(val.d))
	case ArrayValue:
		buf = binary.AppendUvarint(buf, uint64(len(val.elems)))
		for _, d := range val.elems {
			buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d))
		}
		return buf
	case SetValue:
		buf = binary.AppendUvarint(buf, uint64(len(val.elems)))
		for _, e := range val.elems {
			elem := appendValue(nil, e)
			buf = binary.AppendUvarint(buf, uint64(len(elem)))
			buf = append(buf, elem...)
		}
		return buf
	case StringValue:
		return append(buf, val.s...)
	default:
		panic(fmt.Sprintf("cannot encode value type: %T", v))
	}
}

// Decode deserializes a value produced by Encode
func Decode(data []byte) (Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrCorruptEncoding)
	}
	kind, payload := Kind(data[0]), data[1:]

	switch kind {
	case KindNone:
		if len(payload) != 0 {
			return nil, fmt.Errorf("%w: none value carries %d bytes", ErrCorruptEncoding, len(payload))
		}
		return None(), nil
	case KindBoolean:
		if len(payload) != 1 {
			return nil, fmt.Errorf("%w: boolean value must be 1 byte, got %d", ErrCorruptEncoding, len(payload))
		}
		return Boolean(payload[0] != 0), nil
	case KindNumber:
		if len(payload) != 8 {
			return nil, fmt.Errorf("%w: number value must be 8 bytes, got %d", ErrCorruptEncoding, len(payload))
		}
		return Number(math.Float64frombits(binary.BigEndian.Uint64(payload))), nil
	case KindArray:
		return decodeArray(payload)
	case KindSet:
		return decodeSet(payload)
	case KindString:
		return String(string(payload)), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrCorruptEncoding, kind)
	}
}

func decodeArray(payload []byte) (Value, error) {
	n, size := binary.Uvarint(payload)
	if size <= 0 {
		return nil, fmt.Errorf("%w: bad array length", ErrCorruptEncoding)
	}
	payload = payload[size:]
	if n > uint64(len(payload))/8 || uint64(len(payload)) != n*8 {
		return nil, fmt.Errorf("%w: array of %d elements has %d bytes", ErrCorruptEncoding, n, len(payload))
	}

	ds := make([]float64, n)
	for i := range ds {
		ds[i] = math.Float64frombits(binary.BigEndian.Uint64(payload[i*8:]))
	}
	return ArrayValue{elems: ds}, nil
}

func decodeSet(payload []byte) (Value, error) {
	n, size := binary.Uvarint(payload)
	if size <= 0 {
		return nil, fmt.Errorf("%w: bad set length", ErrCorruptEncoding)
	}
	payload = payload[size:]
	if n > uint64(len(payload)) {
		return nil, fmt.Errorf("%w: set of %d elements has %d bytes", ErrCorruptEncoding, n, len(payload))
	}

	elems := make([]Value, 0, n)
	for i := uint64(0); i < n; i++ {
		l, size := binary.Uvarint(payload)
		if size <= 0 || l > uint64(len(payload)-size) {
			return nil, fmt.Errorf("%w: bad length for set element %d", ErrCorruptEncoding, i)
		}
		payload = payload[size:]
		elem, err := Decode(payload[:l])
		if err != nil {
			return nil, fmt.Errorf("set element %d: %w", i, err)
		}
		elems = append(elems, elem)
		payload = payload[l:]
	}
	if len(payload) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after set", ErrCorruptEncoding, len(payload))
	}
	return Set(elems...), nil
}
