package doc

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/signadot/docval/debug"
	"github.com/signadot/docval/doc/kpath"
)

// OctetStream is the content type given to blobs coerced from []byte.
const OctetStream = "application/octet-stream"

// Coerce converts a Go value into a Value, or rejects it.
//
// Accepted inputs are nil, bool, every integer kind, float32 and float64,
// json.Number, string, time.Time, *Blob, []byte (becomes a Blob), Value,
// *MutableArray and *MutableDictionary (adopted as views), *Array and
// *Dictionary (copied), slices and arrays of accepted values, and maps
// with string keys and accepted values. Pointers to accepted values are
// followed; nil pointers become null. Anything else fails with an error
// wrapping ErrUnsupportedValueType.
//
// Map inputs carry no order; their keys are stored sorted.
func Coerce(v any) (Value, error) {
	c := &coercer{visited: map[uintptr]bool{}}
	return c.coerce(v)
}

type coercer struct {
	path    []*kpath.KPath
	visited map[uintptr]bool
}

func (c *coercer) errorf(v any, err error) error {
	var p *kpath.KPath
	for _, seg := range c.path {
		p = p.Append(seg)
	}
	return &CoercionError{Path: p.String(), GoType: fmt.Sprintf("%T", v), Err: err}
}

func (c *coercer) push(seg *kpath.KPath) { c.path = append(c.path, seg) }
func (c *coercer) pop()                  { c.path = c.path[:len(c.path)-1] }

func (c *coercer) coerce(v any) (Value, error) {
	if debug.Coerce() {
		debug.Logf("coerce %T at %q\n", v, kpathString(c.path))
	}
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return c.value(x)
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return c.float(v, float64(x))
	case float64:
		return c.float(v, x)
	case json.Number:
		res, err := numberValue(string(x))
		if err != nil {
			return Value{}, c.errorf(v, err)
		}
		return res, nil
	case string:
		return FromString(x), nil
	case time.Time:
		return FromDate(x), nil
	case *time.Time:
		if x == nil {
			return Null(), nil
		}
		return FromDate(*x), nil
	case *Blob:
		return FromBlob(x), nil
	case Blob:
		return FromBlob(&x), nil
	case []byte:
		if x == nil {
			return Null(), nil
		}
		return FromBlob(NewBlob(OctetStream, x)), nil
	case *MutableArray:
		if x == nil {
			return Null(), nil
		}
		return Value{typ: ArrayType, arr: x.node()}, nil
	case *MutableDictionary:
		if x == nil {
			return Null(), nil
		}
		return Value{typ: DictionaryType, dict: x.node()}, nil
	case *Array:
		if x == nil || x.n == nil {
			return Null(), nil
		}
		return Value{typ: ArrayType, arr: x.n}.thaw(), nil
	case *Dictionary:
		if x == nil || x.n == nil {
			return Null(), nil
		}
		return Value{typ: DictionaryType, dict: x.n}.thaw(), nil
	case []any:
		return c.slice(reflect.ValueOf(x))
	case map[string]any:
		return c.stringMap(reflect.ValueOf(x))
	}
	return c.reflect(v, reflect.ValueOf(v))
}

// value validates a Value built outside this package's containers.
func (c *coercer) value(v Value) (Value, error) {
	switch v.typ {
	case DoubleType:
		return c.float(v, v.f)
	case BlobType:
		if v.blob == nil {
			return Null(), nil
		}
	case ArrayType:
		if v.arr == nil {
			return Null(), nil
		}
		if v.arr.frozen {
			return v.thaw(), nil
		}
	case DictionaryType:
		if v.dict == nil {
			return Null(), nil
		}
		if v.dict.frozen {
			return v.thaw(), nil
		}
	case DateType:
		v.t = canonicalTime(v.t)
	}
	return v, nil
}

func (c *coercer) float(src any, f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, c.errorf(src, fmt.Errorf("%w: non finite number %v", ErrUnsupportedValueType, f))
	}
	return FromFloat(f), nil
}

// fromUint stores values above math.MaxInt64 as Double.
func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return FromFloat(float64(u))
	}
	return FromInt(int64(u))
}

// numberValue parses JSON number text: integers that fit in 64 bits are
// Integer, everything else is Double.
func numberValue(s string) (Value, error) {
	if isIntegerText(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return FromInt(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: number %s out of range", ErrUnsupportedValueType, s)
	}
	return FromFloat(f), nil
}

func isIntegerText(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return false
		}
	}
	return true
}

func (c *coercer) reflect(src any, val reflect.Value) (Value, error) {
	switch val.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			return Null(), nil
		}
		ptr := val.Pointer()
		if c.visited[ptr] {
			return Value{}, c.errorf(src, fmt.Errorf("%w: pointer visited twice", ErrCyclicReference))
		}
		c.visited[ptr] = true
		defer delete(c.visited, ptr)
		return c.coerce(val.Elem().Interface())
	case reflect.Interface:
		if val.IsNil() {
			return Null(), nil
		}
		return c.coerce(val.Elem().Interface())
	case reflect.Bool:
		return FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(val.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return c.float(src, val.Float())
	case reflect.String:
		return FromString(val.String()), nil
	case reflect.Slice:
		if val.IsNil() {
			return Null(), nil
		}
		if val.Type().Elem().Kind() == reflect.Uint8 {
			return FromBlob(NewBlob(OctetStream, val.Bytes())), nil
		}
		return c.slice(val)
	case reflect.Array:
		return c.slice(val)
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return Value{}, c.errorf(src, fmt.Errorf("%w: map key type %s", ErrUnsupportedValueType, val.Type().Key()))
		}
		if val.IsNil() {
			return Null(), nil
		}
		return c.stringMap(val)
	}
	return Value{}, c.errorf(src, ErrUnsupportedValueType)
}

func (c *coercer) slice(val reflect.Value) (Value, error) {
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return Null(), nil
		}
		if val.Len() > 0 {
			ptr := val.Pointer()
			if c.visited[ptr] {
				return Value{}, c.errorf(val.Interface(), fmt.Errorf("%w: slice contains itself", ErrCyclicReference))
			}
			c.visited[ptr] = true
			defer delete(c.visited, ptr)
		}
	}
	n := val.Len()
	res := newArrayNode(n)
	for i := range n {
		c.push(kpath.Index(i))
		elt, err := c.coerce(val.Index(i).Interface())
		c.pop()
		if err != nil {
			return Value{}, err
		}
		res.vals = append(res.vals, elt)
	}
	return Value{typ: ArrayType, arr: res}, nil
}

func (c *coercer) stringMap(val reflect.Value) (Value, error) {
	if val.IsNil() {
		return Null(), nil
	}
	ptr := val.Pointer()
	if c.visited[ptr] {
		return Value{}, c.errorf(val.Interface(), fmt.Errorf("%w: map contains itself", ErrCyclicReference))
	}
	c.visited[ptr] = true
	defer delete(c.visited, ptr)

	keys := make(map[string]reflect.Value, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys[iter.Key().String()] = iter.Value()
	}
	res := newDictNode(len(keys))
	for _, k := range slices.Sorted(maps.Keys(keys)) {
		c.push(kpath.Field(k))
		elt, err := c.coerce(keys[k].Interface())
		c.pop()
		if err != nil {
			return Value{}, err
		}
		res.set(k, elt)
	}
	res.changed = false
	return Value{typ: DictionaryType, dict: res}, nil
}

func kpathString(segs []*kpath.KPath) string {
	var p *kpath.KPath
	for _, seg := range segs {
		p = p.Append(seg)
	}
	return p.String()
}

// checkCycle rejects storing v into the container node target.
func checkCycle(target any, v Value) error {
	if v.reaches(target) {
		return fmt.Errorf("%w: container would contain itself", ErrCyclicReference)
	}
	return nil
}
