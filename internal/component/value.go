package component

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// ValueType is the exposed type of a component value. The editor renders a
// form from it and Decode coerces persisted values back into it.
type ValueType uint8

const (
	TypeNone ValueType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeEquation
	TypeSkill
	TypeItem
	TypeStat
	TypeTag
	TypeWeaponType
	TypeList
	TypeDict
	TypeFloatDict
)

var valueTypeNames = [...]string{
	TypeNone:       "none",
	TypeBool:       "bool",
	TypeInt:        "int",
	TypeFloat:      "float",
	TypeString:     "string",
	TypeEquation:   "equation",
	TypeSkill:      "skill",
	TypeItem:       "item",
	TypeStat:       "stat",
	TypeTag:        "tag",
	TypeWeaponType: "weapon_type",
	TypeList:       "list",
	TypeDict:       "dict",
	TypeFloatDict:  "float_dict",
}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return "ValueType(" + strconv.Itoa(int(t)) + ")"
}

// Expose describes the value shape of a kind. Elem is the element type of a
// List or the key type of a Dict / FloatDict.
type Expose struct {
	Type ValueType
	Elem ValueType
}

// Composite reports whether values of this shape are lists or mappings.
func (x Expose) Composite() bool {
	return x.Type == TypeList || x.Type == TypeDict || x.Type == TypeFloatDict
}

// Pair is one entry of a mapping value. Mappings are ordered slices of pairs
// so that dispatch and serialization never depend on map iteration order.
type Pair struct {
	Key   string
	Value any
}

// Decode coerces a raw value (from YAML, JSON or a caller) into the Go
// representation of x: int, float64, bool, string, []any or []Pair.
func Decode(x Expose, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch x.Type {
	case TypeNone:
		return Clone(raw), nil
	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return b, nil
	case TypeInt:
		return toInt(raw)
	case TypeFloat:
		return toFloat(raw)
	case TypeList:
		return decodeList(x.Elem, raw)
	case TypeDict:
		return decodePairs(TypeInt, raw)
	case TypeFloatDict:
		return decodePairs(TypeFloat, raw)
	default:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected %s, got %T", x.Type, raw)
		}
		return s, nil
	}
}

func decodeList(elem ValueType, raw any) (any, error) {
	items, ok := listOf(raw)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", raw)
	}
	out := make([]any, 0, len(items))
	for i, item := range items {
		v, err := Decode(Expose{Type: elem}, item)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodePairs(valueType ValueType, raw any) (any, error) {
	var pairs []Pair
	switch t := raw.(type) {
	case []Pair:
		pairs = make([]Pair, len(t))
		copy(pairs, t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pairs = append(pairs, Pair{Key: k, Value: t[k]})
		}
	default:
		items, ok := listOf(raw)
		if !ok {
			return nil, fmt.Errorf("expected mapping, got %T", raw)
		}
		for i, item := range items {
			kv, ok := listOf(item)
			if !ok || len(kv) != 2 {
				return nil, fmt.Errorf("mapping entry %d: expected [key, value]", i)
			}
			key, ok := kv[0].(string)
			if !ok {
				return nil, fmt.Errorf("mapping entry %d: key is %T", i, kv[0])
			}
			pairs = append(pairs, Pair{Key: key, Value: kv[1]})
		}
	}
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		v, err := Decode(Expose{Type: valueType}, p.Value)
		if err != nil {
			return nil, fmt.Errorf("mapping key %q: %w", p.Key, err)
		}
		out = append(out, Pair{Key: p.Key, Value: v})
	}
	return out, nil
}

func listOf(raw any) ([]any, bool) {
	switch t := raw.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}

func toInt(raw any) (int, error) {
	switch n := raw.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected int, got fractional %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected int: %w", err)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("expected int, got %T", raw)
}

func toFloat(raw any) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("expected float: %w", err)
		}
		return f, nil
	}
	i, err := toInt(raw)
	if err != nil {
		return 0, fmt.Errorf("expected float, got %T", raw)
	}
	return float64(i), nil
}

// Encode converts a value into its persisted structure: mappings become
// ordered [key, value] lists and every composite is encoded recursively.
func Encode(v any) any {
	switch t := v.(type) {
	case []Pair:
		out := make([]any, len(t))
		for i, p := range t {
			out[i] = []any{p.Key, Encode(p.Value)}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Encode(item)
		}
		return out
	case []string, []int:
		items, _ := listOf(t)
		return items
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Encode(item)
		}
		return out
	}
	return v
}

// Clone deep-copies composite values so that instances never share backing
// arrays with their kind's default.
func Clone(v any) any {
	switch t := v.(type) {
	case []Pair:
		out := make([]Pair, len(t))
		for i, p := range t {
			out[i] = Pair{Key: p.Key, Value: Clone(p.Value)}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []int:
		out := make([]int, len(t))
		copy(out, t)
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Clone(item)
		}
		return out
	}
	return v
}

// Truthy reports whether a hook answer counts as an answer for FirstTruthy:
// nil, false, zero numbers, empty strings and empty collections do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32:
		return rv.Float() != 0
	}
	return true
}

// AsInt reads an int out of a decoded value.
func AsInt(v any) (int, bool) {
	n, err := toInt(v)
	return n, err == nil
}

// AsFloat reads a float64 out of a decoded value; ints are widened.
func AsFloat(v any) (float64, bool) {
	f, err := toFloat(v)
	return f, err == nil
}

// AsString reads a string out of a decoded value.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsBool reads a bool out of a decoded value.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsStrings reads a list of strings, skipping non-string elements.
func AsStrings(v any) []string {
	items, ok := listOf(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// AsPairs reads a mapping value.
func AsPairs(v any) []Pair {
	switch t := v.(type) {
	case []Pair:
		return t
	case nil:
		return nil
	}
	decoded, err := decodePairs(TypeNone, v)
	if err != nil {
		return nil
	}
	return decoded.([]Pair)
}
