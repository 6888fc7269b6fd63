package transformers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrUnparseableResponse is returned when no strategy can turn an upstream
// result into a JSON object.
var ErrUnparseableResponse = errors.New("unable to parse model response")

// RawJSONer is implemented by SDK response objects that retain the exact
// JSON they were decoded from.
type RawJSONer interface {
	RawJSON() string
}

// Mapper is implemented by results that can convert themselves to a
// generic mapping.
type Mapper interface {
	AsMap() map[string]interface{}
}

type strategy struct {
	name  string
	apply func(result interface{}) (map[string]interface{}, bool, error)
}

// strategies are tried in order; the first applicable one decides the outcome.
var strategies = []strategy{
	{name: "mapping", apply: fromMapping},
	{name: "raw_json", apply: fromRawJSON},
	{name: "as_map", apply: fromMapper},
	{name: "round_trip", apply: fromRoundTrip},
}

// Normalize converts a heterogeneous upstream result into a canonical
// map. Plain mappings are returned unchanged.
func Normalize(result interface{}) (map[string]interface{}, error) {
	for _, s := range strategies {
		payload, applicable, err := s.apply(result)
		if !applicable {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnparseableResponse, s.name, err)
		}
		return payload, nil
	}
	return nil, fmt.Errorf("%w: unsupported result type %T", ErrUnparseableResponse, result)
}

func fromMapping(result interface{}) (map[string]interface{}, bool, error) {
	m, ok := result.(map[string]interface{})
	if !ok || m == nil {
		return nil, false, nil
	}
	return m, true, nil
}

func fromRawJSON(result interface{}) (map[string]interface{}, bool, error) {
	r, ok := result.(RawJSONer)
	if !ok || isNil(result) {
		return nil, false, nil
	}
	raw := r.RawJSON()
	if strings.TrimSpace(raw) == "" {
		// Values built in code rather than decoded carry no raw JSON.
		return nil, false, nil
	}
	payload, err := decodeObject([]byte(raw))
	return payload, true, err
}

func fromMapper(result interface{}) (map[string]interface{}, bool, error) {
	m, ok := result.(Mapper)
	if !ok || isNil(result) {
		return nil, false, nil
	}
	payload := m.AsMap()
	if payload == nil {
		return nil, true, errors.New("AsMap returned nil")
	}
	return payload, true, nil
}

func fromRoundTrip(result interface{}) (map[string]interface{}, bool, error) {
	switch v := result.(type) {
	case nil:
		return nil, true, errors.New("result is nil")
	case []byte:
		payload, err := decodeRepaired(v)
		return payload, true, err
	case json.RawMessage:
		payload, err := decodeRepaired(v)
		return payload, true, err
	case string:
		payload, err := decodeRepaired([]byte(v))
		return payload, true, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		var typeErr *json.UnsupportedTypeError
		var valueErr *json.UnsupportedValueError
		if !errors.As(err, &typeErr) && !errors.As(err, &valueErr) {
			return nil, true, err
		}
		data, err = json.Marshal(jsonSafe(reflect.ValueOf(result)))
		if err != nil {
			return nil, true, err
		}
	}
	payload, err := decodeObject(data)
	return payload, true, err
}

// decodeRepaired decodes raw upstream bytes, repairing local JSON damage
// (trailing commas, single quotes) when strict decoding fails. Truncated
// bodies are rejected, not repaired.
func decodeRepaired(data []byte) (map[string]interface{}, error) {
	payload, err := decodeObject(data)
	if err == nil {
		return payload, nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("truncated JSON body: %w", err)
	}
	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return nil, fmt.Errorf("%v (repair failed: %v)", err, repairErr)
	}
	return decodeObject([]byte(repaired))
}

func decodeObject(data []byte) (map[string]interface{}, error) {
	var decoded interface{}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&decoded); err != nil {
		return nil, err
	}
	payload, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", decoded)
	}
	return payload, nil
}

// jsonSafe rebuilds v from JSON-encodable parts, rendering values encoding/json
// rejects (funcs, channels, complex numbers, NaN) in their fmt string form.
func jsonSafe(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return jsonSafe(v.Elem())
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]interface{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = jsonSafe(iter.Value())
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		fallthrough
	case reflect.Array:
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = jsonSafe(v.Index(i))
		}
		return out
	case reflect.Struct:
		out := make(map[string]interface{}, v.NumField())
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if tag, ok := field.Tag.Lookup("json"); ok {
				tagName, _, _ := strings.Cut(tag, ",")
				if tagName == "-" {
					continue
				}
				if tagName != "" {
					name = tagName
				}
			}
			out[name] = jsonSafe(v.Field(i))
		}
		return out
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprint(f)
		}
		return f
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(v.Interface())
	default:
		if v.CanInterface() {
			return v.Interface()
		}
		return fmt.Sprint(v)
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
